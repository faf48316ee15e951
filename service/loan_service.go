package service

import (
	"context"
	"encoding/json"
	"fmt"

	"home-route-agent/apperrors"
	"home-route-agent/domain"
	"home-route-agent/logger"
	"home-route-agent/repository"
)

type LoanService struct {
	repo   repository.LoanRepository
	cache  repository.CacheRepository
	logger logger.Logger
}

// NewLoanService creates a new LoanService with the given repository and cache.
func NewLoanService(
	repo repository.LoanRepository,
	cache repository.CacheRepository,
	log logger.Logger,
) *LoanService {
	return &LoanService{repo: repo, cache: cache, logger: log}
}

// CalculateLoan calculates the loan details based on the input parameters.
func (s *LoanService) CalculateLoan(
	ctx context.Context,
	input domain.LoanInput,
) (domain.LoanResult, error) {
	if err := validateLoanInput(input); err != nil {
		return domain.LoanResult{}, err
	}

	key := fmt.Sprintf("loan:%.2f:%.4f:%d", input.Amount, input.InterestRate, input.TermMonths)
	if cached, ok := s.cache.Get(ctx, key); ok {
		var result domain.LoanResult
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			return result, nil
		}
	}

	payment, err := monthlyPaymentForMonths(input.Amount, input.InterestRate, input.TermMonths)
	if err != nil {
		return domain.LoanResult{}, err
	}

	total := payment * float64(input.TermMonths)
	result := domain.LoanResult{
		MonthlyPayment: roundTo2Decimals(payment),
		TotalPayment:   roundTo2Decimals(total),
		TotalInterest:  roundTo2Decimals(total - input.Amount),
	}

	// Persisting is best effort.
	if err := s.repo.Save(input, result); err != nil {
		s.logger.WithError(err).Warn("failed to save loan calculation", nil)
	}
	if data, err := json.Marshal(result); err == nil {
		if err := s.cache.Set(ctx, key, string(data)); err != nil {
			s.logger.WithError(err).Warn("failed to cache loan calculation", nil)
		}
	}

	return result, nil
}

func validateLoanInput(input domain.LoanInput) error {
	if input.Amount <= 0 {
		return apperrors.InvalidInput("loan amount must be positive")
	}
	if input.Amount > MaxLoanAmount {
		return apperrors.InvalidInput("loan amount exceeds the maximum of %.2f", MaxLoanAmount)
	}
	if input.InterestRate < 0 {
		return apperrors.InvalidInput("interest rate must not be negative")
	}
	if input.InterestRate > MaxInterestRate {
		return apperrors.InvalidInput("interest rate exceeds the maximum of %.2f%%", MaxInterestRate)
	}
	if input.TermMonths < MinTermMonths {
		return apperrors.InvalidInput("term must be at least %d month", MinTermMonths)
	}
	if input.TermMonths > MaxTermMonths {
		return apperrors.InvalidInput("term exceeds the maximum of %d months", MaxTermMonths)
	}
	return nil
}
