package service

import (
	"math"

	"home-route-agent/apperrors"
	"home-route-agent/domain"
)

// ResolveEquityPlan computes the down payment an archetype needs for price,
// the shortfall against existingEquity and the monthly saving that closes it
// within horizonYears.
func ResolveEquityPlan(
	price float64,
	archetype domain.Archetype,
	existingEquity float64,
	horizonYears int,
) (domain.EquityPlan, error) {
	if price <= 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return domain.EquityPlan{}, apperrors.InvalidInput("property price must be positive")
	}
	if existingEquity < 0 {
		return domain.EquityPlan{}, apperrors.InvalidInput("existing equity must not be negative")
	}
	if horizonYears <= 0 {
		return domain.EquityPlan{}, apperrors.DivisionByZero("equity plan: horizon must be at least 1 year")
	}
	if horizonYears > MaxHorizonYears {
		return domain.EquityPlan{}, apperrors.InvalidInput("horizon must be at most %d years", MaxHorizonYears)
	}
	// A fraction above 1 would make the loan negative: configuration error.
	if archetype.DownPaymentFraction <= 0 || archetype.DownPaymentFraction > 1 {
		return domain.EquityPlan{}, apperrors.InvalidInput(
			"archetype %s has down payment fraction %.2f outside (0, 1]",
			archetype.Kind, archetype.DownPaymentFraction,
		)
	}

	required := math.Round(price * archetype.DownPaymentFraction)
	gap := math.Max(0, required-existingEquity)
	months := horizonYears * 12

	return domain.EquityPlan{
		RequiredEquity:         required,
		EquityGap:              gap,
		MonthsToHorizon:        months,
		MonthlySavingsRequired: math.Round(gap / float64(months)),
		LoanAmount:             math.Max(0, price-required),
	}, nil
}

// ResolveLoanPlan finances what the equity plan leaves open.
func ResolveLoanPlan(plan domain.EquityPlan, archetype domain.Archetype) (domain.LoanPlan, error) {
	payment, err := MonthlyPayment(plan.LoanAmount, archetype.InterestRate, archetype.LoanTermYears)
	if err != nil {
		return domain.LoanPlan{}, err
	}
	return domain.LoanPlan{
		LoanAmount:     plan.LoanAmount,
		InterestRate:   archetype.InterestRate,
		TermYears:      archetype.LoanTermYears,
		MonthlyPayment: payment,
	}, nil
}
