package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func percentages(t *testing.T, horizon float64) []float64 {
	t.Helper()
	ms, err := ScheduleMilestones(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), horizon, 90000)
	require.NoError(t, err)
	out := make([]float64, len(ms))
	for i, m := range ms {
		require.NotNil(t, m.EquityPercentage)
		out[i] = *m.EquityPercentage
	}
	return out
}

func TestScheduleMilestones_ThreeYears(t *testing.T) {
	start := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	ms, err := ScheduleMilestones(start, 3, 90000)
	require.NoError(t, err)
	require.Len(t, ms, 5)

	assert.Equal(t, "Journey Begins", ms[0].Title)
	assert.Equal(t, start, ms[0].Date)
	assert.Equal(t, "Q1 2025", ms[0].Quarter)

	assert.Equal(t, "25% of Equity Saved", ms[1].Title)
	assert.Equal(t, 22500.0, *ms[1].AmountSaved)
	assert.Equal(t, time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC), ms[1].Date)
	assert.Equal(t, 45000.0, *ms[2].AmountSaved)
	assert.Equal(t, 67500.0, *ms[3].AmountSaved)

	last := ms[4]
	assert.Equal(t, "Ready to Purchase", last.Title)
	assert.Equal(t, time.Date(2028, 1, 15, 0, 0, 0, 0, time.UTC), last.Date)
	assert.Equal(t, "Q1 2028", last.Quarter)
	assert.Contains(t, last.Description, "€90,000")
}

func TestScheduleMilestones_Boundaries(t *testing.T) {
	for _, horizon := range []float64{1, 2, 2.5, 3, 5, 7, 30} {
		ms, err := ScheduleMilestones(time.Now(), horizon, 112500)
		require.NoError(t, err)

		first, last := ms[0], ms[len(ms)-1]
		assert.Equal(t, 0.0, *first.EquityPercentage)
		assert.Equal(t, 100.0, *last.EquityPercentage)
		assert.Equal(t, 112500.0, *last.AmountSaved)
	}
}

func TestScheduleMilestones_UnevenHorizon(t *testing.T) {
	// 10 quarters only hit the halfway mark exactly.
	assert.Equal(t, []float64{0, 50, 100}, percentages(t, 2.5))
	assert.Equal(t, []float64{0, 25, 50, 75, 100}, percentages(t, 1))
	assert.Equal(t, []float64{0, 25, 50, 75, 100}, percentages(t, 5))
	assert.Equal(t, []float64{0, 25, 50, 75, 100}, percentages(t, 7))
}

func TestScheduleMilestones_Invalid(t *testing.T) {
	_, err := ScheduleMilestones(time.Now(), 0, 1000)
	assert.Error(t, err)

	_, err = ScheduleMilestones(time.Now(), 3, -1)
	assert.Error(t, err)
}
