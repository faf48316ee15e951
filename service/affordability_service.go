package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"home-route-agent/apperrors"
	"home-route-agent/domain"
	"home-route-agent/logger"
	"home-route-agent/repository"
)

const sideCostRate = TransferTaxRate + NotaryRate + BrokerRate

// AffordabilityService scores how comfortably a household can carry the
// mortgage for a property.
type AffordabilityService struct {
	cache        repository.CacheRepository
	interestRate float64
	termYears    int
	logger       logger.Logger
}

func NewAffordabilityService(
	cache repository.CacheRepository,
	defaultInterestRate float64,
	defaultTermYears int,
	log logger.Logger,
) *AffordabilityService {
	return &AffordabilityService{
		cache:        cache,
		interestRate: defaultInterestRate,
		termYears:    defaultTermYears,
		logger:       log,
	}
}

// PurchaseCostsFor returns the side costs of buying at price.
func PurchaseCostsFor(price float64) domain.PurchaseCosts {
	costs := domain.PurchaseCosts{
		TransferTax: roundTo2Decimals(price * TransferTaxRate),
		Notary:      roundTo2Decimals(price * NotaryRate),
		Broker:      roundTo2Decimals(price * BrokerRate),
	}
	costs.Total = roundTo2Decimals(costs.TransferTax + costs.Notary + costs.Broker)
	return costs
}

// Assess computes the affordability score for in. A nil rate or term uses
// the service default; an explicit zero rate is an interest-free loan.
func (s *AffordabilityService) Assess(ctx context.Context, in domain.AffordabilityInput) (domain.AffordabilityResult, error) {
	terms := affordabilityTerms{rate: s.interestRate, years: s.termYears}
	if in.InterestRate != nil {
		terms.rate = *in.InterestRate
	}
	if in.TermYears != nil {
		terms.years = *in.TermYears
	}
	if err := validateAffordabilityInput(in, terms); err != nil {
		return domain.AffordabilityResult{}, err
	}

	key := fmt.Sprintf("affordability:%.2f:%.2f:%.2f:%.2f:%.4f:%d",
		in.MonthlyIncome, in.MonthlyExpenses, in.ExistingEquity, in.PropertyPrice, terms.rate, terms.years)
	if cached, ok := s.cache.Get(ctx, key); ok {
		var result domain.AffordabilityResult
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			return result, nil
		}
	}

	result, err := assessAffordability(in, terms)
	if err != nil {
		return domain.AffordabilityResult{}, err
	}

	if data, err := json.Marshal(result); err == nil {
		if err := s.cache.Set(ctx, key, string(data)); err != nil {
			s.logger.WithError(err).Warn("failed to cache affordability result", nil)
		}
	}
	s.logger.Debug("affordability assessed", map[string]interface{}{
		"score":     result.Score,
		"riskLevel": result.RiskLevel,
	})
	return result, nil
}

// affordabilityTerms are the loan terms after defaults are applied.
type affordabilityTerms struct {
	rate  float64
	years int
}

func assessAffordability(in domain.AffordabilityInput, terms affordabilityTerms) (domain.AffordabilityResult, error) {
	disposable := in.MonthlyIncome - in.MonthlyExpenses
	if disposable <= 0 {
		return domain.AffordabilityResult{}, apperrors.DivisionByZero("affordability: expenses consume the whole income")
	}

	costs := PurchaseCostsFor(in.PropertyPrice)
	loan := math.Max(0, in.PropertyPrice+costs.Total-in.ExistingEquity)
	payment, err := MonthlyPayment(loan, terms.rate, terms.years)
	if err != nil {
		return domain.AffordabilityResult{}, err
	}

	ratio := payment / disposable
	score := clampInt(int(math.Round(100*(MaxPaymentRatio-ratio)/PaymentRatioSpan)), 0, 100)
	if in.ExistingEquity >= costs.Total {
		score = clampInt(score+SideCostsCoveredBonus, 0, 100)
	}

	comfortableLoan := presentValue(ComfortablePaymentRate*disposable, terms.rate, terms.years*12)
	maxPrice := (comfortableLoan + in.ExistingEquity) / (1 + sideCostRate)

	return domain.AffordabilityResult{
		Score:              score,
		RiskLevel:          riskLevelForScore(score),
		LoanAmount:         roundTo2Decimals(loan),
		MonthlyPayment:     roundTo2Decimals(payment),
		PaymentToIncome:    math.Round(ratio*1000) / 1000,
		MaxAffordablePrice: math.Round(maxPrice),
		PurchaseCosts:      costs,
	}, nil
}

func validateAffordabilityInput(in domain.AffordabilityInput, terms affordabilityTerms) error {
	if in.MonthlyIncome <= 0 {
		return apperrors.InvalidInput("monthly income must be positive")
	}
	if in.MonthlyExpenses < 0 {
		return apperrors.InvalidInput("monthly expenses must not be negative")
	}
	if in.ExistingEquity < 0 {
		return apperrors.InvalidInput("existing equity must not be negative")
	}
	if in.PropertyPrice <= 0 || in.PropertyPrice > MaxPropertyPrice {
		return apperrors.InvalidInput("property price must be between 0 and %.0f", MaxPropertyPrice)
	}
	if terms.rate < 0 || terms.rate > MaxInterestRate || math.IsNaN(terms.rate) {
		return apperrors.InvalidInput("interest rate must be between 0 and %.0f%%", MaxInterestRate)
	}
	if terms.years < 1 || terms.years*12 > MaxTermMonths {
		return apperrors.InvalidInput("term must be between 1 and %d years", MaxTermMonths/12)
	}
	return nil
}

func riskLevelForScore(score int) domain.RiskLevel {
	switch {
	case score >= LowRiskScore:
		return domain.RiskLow
	case score >= ModerateRiskScore:
		return domain.RiskModerate
	default:
		return domain.RiskHigh
	}
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
