package service

import (
	"math"

	"home-route-agent/apperrors"
)

// roundTo2Decimals rounds to cents; used only when presenting results.
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

// monthlyRate converts an annual percentage rate into a monthly fraction.
func monthlyRate(annualRatePercent float64) float64 {
	return annualRatePercent / 100 / 12
}

// MonthlyPayment returns the fixed-rate annuity payment for principal over
// termYears at annualRatePercent. A zero rate amortizes linearly.
func MonthlyPayment(principal, annualRatePercent float64, termYears int) (float64, error) {
	if termYears <= 0 {
		return 0, apperrors.DivisionByZero("amortization: term must be at least 1 year")
	}
	return monthlyPaymentForMonths(principal, annualRatePercent, termYears*12)
}

func monthlyPaymentForMonths(principal, annualRatePercent float64, months int) (float64, error) {
	if months <= 0 {
		return 0, apperrors.DivisionByZero("amortization: term must be at least 1 month")
	}
	if principal < 0 || math.IsNaN(principal) || math.IsInf(principal, 0) {
		return 0, apperrors.InvalidInput("principal must be a non-negative amount")
	}
	if annualRatePercent < 0 || math.IsNaN(annualRatePercent) {
		return 0, apperrors.InvalidInput("interest rate must not be negative")
	}
	if principal == 0 {
		return 0, nil
	}

	n := float64(months)
	r := monthlyRate(annualRatePercent)
	if r == 0 {
		return principal / n, nil
	}

	growth := math.Pow(1+r, n)
	payment := principal * (r * growth) / (growth - 1)
	if math.IsNaN(payment) || math.IsInf(payment, 0) {
		return 0, apperrors.DivisionByZero("amortization")
	}
	return payment, nil
}

// presentValue is the loan principal that a monthly payment services over
// months at annualRatePercent.
func presentValue(payment, annualRatePercent float64, months int) float64 {
	if months <= 0 || payment <= 0 {
		return 0
	}
	r := monthlyRate(annualRatePercent)
	if r == 0 {
		return payment * float64(months)
	}
	return payment * (1 - math.Pow(1+r, -float64(months))) / r
}
