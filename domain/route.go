package domain

import "time"

// ArchetypeKind is the closed set of route strategies.
type ArchetypeKind string

const (
	ArchetypeFastTrack     ArchetypeKind = "fast-track"
	ArchetypeBalanced      ArchetypeKind = "balanced"
	ArchetypeConservative  ArchetypeKind = "conservative"
	ArchetypeFamilyFirst   ArchetypeKind = "family-first"
	ArchetypeEquityBuilder ArchetypeKind = "equity-builder"
)

var archetypeKinds = []ArchetypeKind{
	ArchetypeFastTrack,
	ArchetypeBalanced,
	ArchetypeConservative,
	ArchetypeFamilyFirst,
	ArchetypeEquityBuilder,
}

// ArchetypeKinds lists every supported archetype kind.
func ArchetypeKinds() []ArchetypeKind {
	return append([]ArchetypeKind(nil), archetypeKinds...)
}

func (k ArchetypeKind) Valid() bool {
	for _, known := range archetypeKinds {
		if k == known {
			return true
		}
	}
	return false
}

// Archetype is read-only policy configuration for one route strategy.
type Archetype struct {
	Kind                ArchetypeKind `json:"kind"`
	Name                string        `json:"name"`
	Tagline             string        `json:"tagline"`
	HorizonYears        int           `json:"horizonYears"`
	DownPaymentFraction float64       `json:"downPaymentFraction"`
	InterestRate        float64       `json:"interestRate"`
	LoanTermYears       int           `json:"loanTermYears"`
	RiskTier            RiskLevel     `json:"riskTier"`
}

type EquityPlan struct {
	RequiredEquity         float64 `json:"requiredEquity"`
	EquityGap              float64 `json:"equityGap"`
	MonthsToHorizon        int     `json:"monthsToHorizon"`
	MonthlySavingsRequired float64 `json:"monthlySavingsRequired"`
	LoanAmount             float64 `json:"loanAmount"`
}

type LoanPlan struct {
	LoanAmount     float64 `json:"loanAmount"`
	InterestRate   float64 `json:"interestRate"`
	TermYears      int     `json:"termYears"`
	MonthlyPayment float64 `json:"monthlyPayment"`
}

type ProjectionPoint struct {
	Year              int     `json:"year"`
	YearIndex         int     `json:"yearIndex"`
	AccumulatedEquity float64 `json:"accumulatedEquity"`
	MonthlyIncome     float64 `json:"monthlyIncome"`
	MonthlySavings    float64 `json:"monthlySavings"`
	SavingsRate       float64 `json:"savingsRate"`
}

type Milestone struct {
	Date             time.Time `json:"date"`
	Quarter          string    `json:"quarter"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	AmountSaved      *float64  `json:"amountSaved,omitempty"`
	EquityPercentage *float64  `json:"equityPercentage,omitempty"`
}

type Route struct {
	ID                     string            `json:"id"`
	Archetype              ArchetypeKind     `json:"archetype"`
	Name                   string            `json:"name"`
	Description            string            `json:"description"`
	TargetPurchaseYear     int               `json:"targetPurchaseYear"`
	MonthsUntilPurchase    int               `json:"monthsUntilPurchase"`
	PropertyPrice          float64           `json:"propertyPrice"`
	RequiredEquity         float64           `json:"requiredEquity"`
	EquityGap              float64           `json:"equityGap"`
	MonthlyPayment         float64           `json:"monthlyPayment"`
	TotalCost              float64           `json:"totalCost"`
	RiskScore              int               `json:"riskScore"`
	RiskLevel              string            `json:"riskLevel"`
	DownPaymentPercentage  float64           `json:"downPaymentPercentage"`
	LoanAmount             float64           `json:"loanAmount"`
	InterestRate           float64           `json:"interestRate"`
	LoanTerm               int               `json:"loanTerm"`
	MonthlySavingsRequired float64           `json:"monthlySavingsRequired"`
	FinancialProjections   []ProjectionPoint `json:"financialProjections"`
	ActionSteps            []string          `json:"actionSteps"`
	Milestones             []Milestone       `json:"milestones"`
	LifestyleImpact        string            `json:"lifestyleImpact"`
	WorkLifeBalance        string            `json:"workLifeBalance"`
	FutureSelfNarrative    string            `json:"futureSelfNarrative"`
	PersonalizedInsights   []string          `json:"personalizedInsights"`
	KeyTradeoffs           []string          `json:"keyTradeoffs"`
	NarrativeFallback      bool              `json:"narrativeFallback"`
}

type RouteRequest struct {
	UserProfile         UserProfile          `json:"userProfile"`
	SelectedProperty    PropertySelection    `json:"selectedProperty"`
	AffordabilityResult *AffordabilityResult `json:"affordabilityResult,omitempty"`
}

type RouteGenerationResult struct {
	Routes             []Route   `json:"routes"`
	Summary            string    `json:"summary"`
	RecommendedRouteID string    `json:"recommendedRouteId"`
	GeneratedAt        time.Time `json:"generatedAt"`
	Considerations     []string  `json:"considerations"`
}
