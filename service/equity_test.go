package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"home-route-agent/apperrors"
	"home-route-agent/domain"
)

func TestResolveEquityPlan_Gap(t *testing.T) {
	archetype := domain.Archetype{Kind: domain.ArchetypeFastTrack, DownPaymentFraction: 0.15}

	plan, err := ResolveEquityPlan(450000, archetype, 40000, 2)
	require.NoError(t, err)

	assert.Equal(t, 67500.0, plan.RequiredEquity)
	assert.Equal(t, 27500.0, plan.EquityGap)
	assert.Equal(t, 24, plan.MonthsToHorizon)
	assert.Equal(t, 1146.0, plan.MonthlySavingsRequired)
	assert.Equal(t, 382500.0, plan.LoanAmount)
}

func TestResolveEquityPlan_ExistingEquityCoversTarget(t *testing.T) {
	prices := []float64{150000, 450000, 1200000}
	fractions := []float64{0.1, 0.2, 0.25, 1}

	for _, price := range prices {
		for _, fraction := range fractions {
			archetype := domain.Archetype{Kind: domain.ArchetypeBalanced, DownPaymentFraction: fraction}
			for _, extra := range []float64{0, 1, 50000} {
				plan, err := ResolveEquityPlan(price, archetype, price*fraction+extra, 3)
				require.NoError(t, err)
				assert.Zero(t, plan.EquityGap)
				assert.Zero(t, plan.MonthlySavingsRequired)
				assert.GreaterOrEqual(t, plan.LoanAmount, 0.0)
			}
		}
	}
}

func TestResolveEquityPlan_Invalid(t *testing.T) {
	valid := domain.Archetype{Kind: domain.ArchetypeBalanced, DownPaymentFraction: 0.2}

	_, err := ResolveEquityPlan(450000, valid, 0, 0)
	assert.True(t, errors.Is(err, apperrors.ErrDivisionByZeroRisk))

	_, err = ResolveEquityPlan(450000, valid, 0, MaxHorizonYears+1)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))

	_, err = ResolveEquityPlan(-1, valid, 0, 3)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))

	_, err = ResolveEquityPlan(450000, valid, -10, 3)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))

	_, err = ResolveEquityPlan(450000, domain.Archetype{DownPaymentFraction: 1.2}, 0, 3)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestResolveLoanPlan(t *testing.T) {
	archetype := domain.Archetype{
		Kind:                domain.ArchetypeBalanced,
		DownPaymentFraction: 0.2,
		InterestRate:        4,
		LoanTermYears:       30,
	}
	plan, err := ResolveEquityPlan(375000, archetype, 0, 3)
	require.NoError(t, err)

	loan, err := ResolveLoanPlan(plan, archetype)
	require.NoError(t, err)
	assert.Equal(t, 300000.0, loan.LoanAmount)
	assert.InDelta(t, 1432.25, loan.MonthlyPayment, 0.01)

	archetype.LoanTermYears = 0
	_, err = ResolveLoanPlan(plan, archetype)
	assert.True(t, errors.Is(err, apperrors.ErrDivisionByZeroRisk))
}
