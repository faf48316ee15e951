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

type MockLoanRepository struct {
	SaveCalled int
	ForceError bool
}

func (m *MockLoanRepository) Save(
	input domain.LoanInput,
	result domain.LoanResult,
) error {
	m.SaveCalled++
	if m.ForceError {
		return errors.New("save error")
	}
	return nil
}

func newTestLoanService(repo repository.LoanRepository) *LoanService {
	return NewLoanService(repo, repository.NewMemoryCache(), logger.NewNoOpLogger())
}

func TestCalculateLoan_WithInterest(t *testing.T) {
	mockRepo := &MockLoanRepository{}
	service := newTestLoanService(mockRepo)

	result, err := service.CalculateLoan(context.Background(), domain.LoanInput{
		Amount:       10000,
		InterestRate: 12,
		TermMonths:   24,
	})

	require.NoError(t, err)
	assert.Equal(t, 470.73, result.MonthlyPayment)
	assert.InDelta(t, 11297.63, result.TotalPayment, 0.01)
	assert.InDelta(t, 1297.63, result.TotalInterest, 0.01)
	assert.Equal(t, 1, mockRepo.SaveCalled)
}

func TestCalculateLoan_ZeroInterest(t *testing.T) {
	service := newTestLoanService(&MockLoanRepository{})

	result, err := service.CalculateLoan(context.Background(), domain.LoanInput{
		Amount:       1200,
		InterestRate: 0,
		TermMonths:   12,
	})

	require.NoError(t, err)
	assert.Equal(t, 100.0, result.MonthlyPayment)
	assert.Zero(t, result.TotalInterest)
}

func TestCalculateLoan_CachedResult(t *testing.T) {
	mockRepo := &MockLoanRepository{}
	service := newTestLoanService(mockRepo)
	input := domain.LoanInput{Amount: 200000, InterestRate: 3.8, TermMonths: 360}

	first, err := service.CalculateLoan(context.Background(), input)
	require.NoError(t, err)
	second, err := service.CalculateLoan(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, mockRepo.SaveCalled)
}

func TestCalculateLoan_RepositoryErrorIsNotFatal(t *testing.T) {
	service := newTestLoanService(&MockLoanRepository{ForceError: true})

	result, err := service.CalculateLoan(context.Background(), domain.LoanInput{
		Amount:       5000,
		InterestRate: 5,
		TermMonths:   12,
	})

	require.NoError(t, err)
	assert.Greater(t, result.MonthlyPayment, 0.0)
}

func TestCalculateLoan_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input domain.LoanInput
	}{
		{"zero amount", domain.LoanInput{Amount: 0, InterestRate: 5, TermMonths: 12}},
		{"amount too large", domain.LoanInput{Amount: MaxLoanAmount + 1, InterestRate: 5, TermMonths: 12}},
		{"negative rate", domain.LoanInput{Amount: 1000, InterestRate: -1, TermMonths: 12}},
		{"rate too high", domain.LoanInput{Amount: 1000, InterestRate: 101, TermMonths: 12}},
		{"zero term", domain.LoanInput{Amount: 1000, InterestRate: 5, TermMonths: 0}},
		{"term too long", domain.LoanInput{Amount: 1000, InterestRate: 5, TermMonths: MaxTermMonths + 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &MockLoanRepository{}
			_, err := newTestLoanService(mockRepo).CalculateLoan(context.Background(), tt.input)

			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
			assert.Zero(t, mockRepo.SaveCalled)
		})
	}
}
