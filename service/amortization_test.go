package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"home-route-agent/apperrors"
)

func TestMonthlyPayment_StandardMortgage(t *testing.T) {
	payment, err := MonthlyPayment(300000, 4, 30)
	require.NoError(t, err)
	assert.InDelta(t, 1432.25, payment, 0.01)
}

func TestMonthlyPayment_ZeroRate(t *testing.T) {
	payment, err := MonthlyPayment(120000, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, payment)
}

func TestMonthlyPayment_ZeroPrincipal(t *testing.T) {
	payment, err := MonthlyPayment(0, 3.5, 25)
	require.NoError(t, err)
	assert.Zero(t, payment)
}

func TestMonthlyPayment_InvalidInput(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		rate      float64
		years     int
		sentinel  error
	}{
		{"zero term", 100000, 4, 0, apperrors.ErrDivisionByZeroRisk},
		{"negative term", 100000, 4, -5, apperrors.ErrDivisionByZeroRisk},
		{"negative principal", -1, 4, 30, apperrors.ErrInvalidInput},
		{"negative rate", 100000, -1, 30, apperrors.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MonthlyPayment(tt.principal, tt.rate, tt.years)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel), "got %v", err)
		})
	}
}

func TestPresentValue_InvertsPayment(t *testing.T) {
	payment, err := MonthlyPayment(250000, 3.8, 30)
	require.NoError(t, err)

	assert.InDelta(t, 250000, presentValue(payment, 3.8, 360), 0.01)
	assert.Equal(t, 12000.0, presentValue(100, 0, 120))
	assert.Zero(t, presentValue(100, 3.8, 0))
}
