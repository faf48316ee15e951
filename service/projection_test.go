package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjector_FixedGrowth(t *testing.T) {
	p := NewProjector(FixedGrowth{Rate: 0.03}, 0.02)

	points, err := p.Project(2025, 3, 20000, 500, 4000)
	require.NoError(t, err)
	require.Len(t, points, 4)

	first := points[0]
	assert.Equal(t, 2025, first.Year)
	assert.Equal(t, 20000.0, first.AccumulatedEquity)
	assert.Equal(t, 4000.0, first.MonthlyIncome)
	assert.Equal(t, 500.0, first.MonthlySavings)
	assert.Equal(t, 0.13, first.SavingsRate)

	for i := 1; i < len(points); i++ {
		assert.GreaterOrEqual(t, points[i].AccumulatedEquity, points[i-1].AccumulatedEquity)
		assert.Equal(t, i, points[i].YearIndex)
	}

	last := points[3]
	assert.Equal(t, 2028, last.Year)
	assert.InDelta(t, 38730, last.AccumulatedEquity, 1)
	assert.InDelta(t, 4370.91, last.MonthlyIncome, 0.01)
	assert.Equal(t, roundTo2Decimals(last.MonthlySavings/last.MonthlyIncome), last.SavingsRate)
	assert.Equal(t, 0.12, last.SavingsRate)
}

func TestProjector_ZeroHorizon(t *testing.T) {
	points, err := NewProjector(FixedGrowth{Rate: 0.03}, 0.02).Project(2025, 0, 1000, 100, 3000)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, 1000.0, points[0].AccumulatedEquity)
}

func TestProjector_RejectsNegativeInput(t *testing.T) {
	p := NewProjector(FixedGrowth{Rate: 0.03}, 0.02)

	_, err := p.Project(2025, -1, 0, 0, 0)
	assert.Error(t, err)

	_, err = p.Project(2025, 3, -1, 0, 0)
	assert.Error(t, err)
}

func TestRandomGrowth_BoundedAndSeeded(t *testing.T) {
	a := NewRandomGrowth(0.025, 0.035, 42)
	b := NewRandomGrowth(0.025, 0.035, 42)

	for i := 0; i < 100; i++ {
		rate := a.IncomeGrowth()
		assert.GreaterOrEqual(t, rate, 0.025)
		assert.Less(t, rate, 0.035)
		assert.Equal(t, rate, b.IncomeGrowth())
	}
}

func TestRandomGrowth_ConcurrentUse(t *testing.T) {
	g := NewRandomGrowth(0.025, 0.035, 7)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				g.IncomeGrowth()
			}
		}()
	}
	wg.Wait()
}
