package domain

import "strings"

// UserProfile is the financial profile supplied once per generation request.
type UserProfile struct {
	Age             int     `json:"age"`
	Occupation      string  `json:"occupation"`
	MonthlyIncome   float64 `json:"monthlyIncome"`
	ExistingEquity  float64 `json:"existingEquity"`
	FamilySize      int     `json:"familySize"`
	DesiredTimeline string  `json:"desiredTimeline"`
	TargetLocation  string  `json:"targetLocation"`
}

// PropertySelection is the property the user wants to buy. Price fields are
// optional; see ResolvePrice.
type PropertySelection struct {
	BuyingPrice         *float64 `json:"buyingPrice,omitempty"`
	SimilarListingPrice *float64 `json:"similarListingPrice,omitempty"`
	PricePerSqm         *float64 `json:"pricePerSqm,omitempty"`
	Area                float64  `json:"area"`
	Rooms               float64  `json:"rooms"`
	City                string   `json:"city"`
}

// ResolvePrice returns the first available price in priority order: direct
// buying price, aggregated similar-listing price, price per area times area.
func (p PropertySelection) ResolvePrice() (float64, bool) {
	if p.BuyingPrice != nil && *p.BuyingPrice > 0 {
		return *p.BuyingPrice, true
	}
	if p.SimilarListingPrice != nil && *p.SimilarListingPrice > 0 {
		return *p.SimilarListingPrice, true
	}
	if p.PricePerSqm != nil && *p.PricePerSqm > 0 && p.Area > 0 {
		return *p.PricePerSqm * p.Area, true
	}
	return 0, false
}

type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskHigh     RiskLevel = "High"
)

// ParseRiskLevel matches s against the risk levels ignoring case.
func ParseRiskLevel(s string) (RiskLevel, bool) {
	for _, level := range []RiskLevel{RiskLow, RiskModerate, RiskHigh} {
		if strings.EqualFold(strings.TrimSpace(s), string(level)) {
			return level, true
		}
	}
	return "", false
}

type AffordabilityInput struct {
	MonthlyIncome   float64  `json:"monthlyIncome"`
	MonthlyExpenses float64  `json:"monthlyExpenses"`
	ExistingEquity  float64  `json:"existingEquity"`
	PropertyPrice   float64  `json:"propertyPrice"`
	InterestRate    *float64 `json:"interestRate,omitempty"` // nil uses the service default
	TermYears       *int     `json:"termYears,omitempty"`
}

type PurchaseCosts struct {
	TransferTax float64 `json:"transferTax"`
	Notary      float64 `json:"notary"`
	Broker      float64 `json:"broker"`
	Total       float64 `json:"total"`
}

type AffordabilityResult struct {
	Score              int           `json:"score"`
	RiskLevel          RiskLevel     `json:"riskLevel"`
	LoanAmount         float64       `json:"loanAmount,omitempty"`
	MonthlyPayment     float64       `json:"monthlyPayment,omitempty"`
	PaymentToIncome    float64       `json:"paymentToIncome,omitempty"`
	MaxAffordablePrice float64       `json:"maxAffordablePrice,omitempty"`
	PurchaseCosts      PurchaseCosts `json:"purchaseCosts"`
}
