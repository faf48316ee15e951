package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"home-route-agent/apperrors"
	"home-route-agent/domain"
	"home-route-agent/logger"
	"home-route-agent/repository"
)

func newTestAffordabilityService(cache repository.CacheRepository) *AffordabilityService {
	return NewAffordabilityService(cache, 3.8, 30, logger.NewNoOpLogger())
}

func TestPurchaseCostsFor(t *testing.T) {
	costs := PurchaseCostsFor(400000)

	assert.Equal(t, 24000.0, costs.TransferTax)
	assert.Equal(t, 8000.0, costs.Notary)
	assert.Equal(t, 14280.0, costs.Broker)
	assert.Equal(t, 46280.0, costs.Total)
}

func TestAssess(t *testing.T) {
	tests := []struct {
		name      string
		input     domain.AffordabilityInput
		wantScore int
		wantRisk  domain.RiskLevel
	}{
		{
			name:      "comfortable with side costs covered",
			input:     domain.AffordabilityInput{MonthlyIncome: 8000, ExistingEquity: 60000, PropertyPrice: 200000},
			wantScore: 100,
			wantRisk:  domain.RiskLow,
		},
		{
			name: "stretched",
			input: domain.AffordabilityInput{
				MonthlyIncome:   5000,
				MonthlyExpenses: 1000,
				ExistingEquity:  30000,
				PropertyPrice:   315000,
			},
			wantScore: 56,
			wantRisk:  domain.RiskModerate,
		},
		{
			name:      "out of reach",
			input:     domain.AffordabilityInput{MonthlyIncome: 2000, PropertyPrice: 500000},
			wantScore: 0,
			wantRisk:  domain.RiskHigh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := newTestAffordabilityService(repository.NewMemoryCache()).Assess(context.Background(), tt.input)

			require.NoError(t, err)
			assert.Equal(t, tt.wantScore, result.Score)
			assert.Equal(t, tt.wantRisk, result.RiskLevel)
			assert.Greater(t, result.MaxAffordablePrice, 0.0)
		})
	}
}

func TestAssess_MaxAffordablePriceHitsComfortableRatio(t *testing.T) {
	svc := newTestAffordabilityService(repository.NewMemoryCache())
	in := domain.AffordabilityInput{MonthlyIncome: 5000, MonthlyExpenses: 1000, ExistingEquity: 30000, PropertyPrice: 315000}

	first, err := svc.Assess(context.Background(), in)
	require.NoError(t, err)

	in.PropertyPrice = first.MaxAffordablePrice
	atLimit, err := svc.Assess(context.Background(), in)
	require.NoError(t, err)
	assert.InDelta(t, ComfortablePaymentRate, atLimit.PaymentToIncome, 0.001)
}

func TestAssess_UsesCache(t *testing.T) {
	cache := repository.NewMemoryCache()
	svc := newTestAffordabilityService(cache)
	in := domain.AffordabilityInput{MonthlyIncome: 8000, ExistingEquity: 60000, PropertyPrice: 200000}

	first, err := svc.Assess(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())

	second, err := svc.Assess(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.Len())
}

func TestAssess_ExplicitTerms(t *testing.T) {
	svc := newTestAffordabilityService(repository.NewMemoryCache())
	base := domain.AffordabilityInput{MonthlyIncome: 5000, ExistingEquity: 20000, PropertyPrice: 300000}

	defaulted, err := svc.Assess(context.Background(), base)
	require.NoError(t, err)

	zeroRate := base
	zeroRate.InterestRate = floatPtr(0)
	interestFree, err := svc.Assess(context.Background(), zeroRate)
	require.NoError(t, err)

	loan := 300000 + PurchaseCostsFor(300000).Total - 20000
	assert.InDelta(t, loan/360, interestFree.MonthlyPayment, 0.01)
	assert.Less(t, interestFree.MonthlyPayment, defaulted.MonthlyPayment)

	shortTerm := base
	shortTerm.TermYears = intPtr(15)
	fifteen, err := svc.Assess(context.Background(), shortTerm)
	require.NoError(t, err)
	assert.Greater(t, fifteen.MonthlyPayment, defaulted.MonthlyPayment)

	zeroTerm := base
	zeroTerm.TermYears = intPtr(0)
	_, err = svc.Assess(context.Background(), zeroTerm)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

func TestAssess_InvalidInput(t *testing.T) {
	svc := newTestAffordabilityService(repository.NewMemoryCache())
	tests := []struct {
		name  string
		input domain.AffordabilityInput
	}{
		{"no income", domain.AffordabilityInput{PropertyPrice: 300000}},
		{"negative equity", domain.AffordabilityInput{MonthlyIncome: 4000, ExistingEquity: -1, PropertyPrice: 300000}},
		{"no price", domain.AffordabilityInput{MonthlyIncome: 4000}},
		{"expenses exceed income", domain.AffordabilityInput{MonthlyIncome: 4000, MonthlyExpenses: 4000, PropertyPrice: 300000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Assess(context.Background(), tt.input)
			require.Error(t, err)
			assert.Equal(t, apperrors.CodeInvalidInput, apperrors.PublicCode(err))
			assert.True(t, errors.Is(err, apperrors.ErrInvalidInput) || errors.Is(err, apperrors.ErrDivisionByZeroRisk))
		})
	}
}
