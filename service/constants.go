package service

const (
	MaxLoanAmount   = 1_000_000_000.0
	MaxInterestRate = 100.0 // % p.a.
	MaxTermMonths   = 600   // 50 years
	MinTermMonths   = 1

	MaxPropertyPrice = 100_000_000.0
	MaxHorizonYears  = 30
	MinBuyerAge      = 18
	MaxBuyerAge      = 100

	// Purchase side costs as fractions of the price (German market).
	TransferTaxRate = 0.06
	NotaryRate      = 0.02
	BrokerRate      = 0.0357

	// Affordability scoring: a payment-to-income ratio of MaxPaymentRatio
	// scores 0, a ratio of MaxPaymentRatio-PaymentRatioSpan scores 100.
	MaxPaymentRatio        = 0.6
	PaymentRatioSpan       = 0.4
	ComfortablePaymentRate = 0.35
	SideCostsCoveredBonus  = 10
	LowRiskScore           = 70
	ModerateRiskScore      = 40

	DefaultNarrativeTimeoutSeconds = 5
)
