package service

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"home-route-agent/apperrors"
	"home-route-agent/domain"
)

// GrowthModel supplies the annual income growth rate applied for one year.
type GrowthModel interface {
	IncomeGrowth() float64
}

// FixedGrowth applies the same rate every year. Used for reproducible output.
type FixedGrowth struct {
	Rate float64
}

func (f FixedGrowth) IncomeGrowth() float64 {
	return f.Rate
}

// RandomGrowth draws a rate uniformly from [minRate, maxRate). Safe for concurrent use.
type RandomGrowth struct {
	minRate, maxRate float64

	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomGrowth seeds the generator; seed 0 uses the current time.
func NewRandomGrowth(minRate, maxRate float64, seed int64) *RandomGrowth {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandomGrowth{
		minRate: minRate,
		maxRate: maxRate,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

func (g *RandomGrowth) IncomeGrowth() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.minRate + g.rng.Float64()*(g.maxRate-g.minRate)
}

// Projector produces year-by-year financial trajectories.
type Projector struct {
	growth            GrowthModel
	savingsEscalation float64
}

func NewProjector(growth GrowthModel, savingsEscalation float64) *Projector {
	return &Projector{growth: growth, savingsEscalation: savingsEscalation}
}

// Project returns horizonYears+1 points starting at startYear. Year 0 holds
// the inputs unchanged; each later year grows income by the growth model,
// escalates savings geometrically and adds twelve months of savings to equity.
func (p *Projector) Project(
	startYear int,
	horizonYears int,
	currentEquity float64,
	monthlySavings float64,
	monthlyIncome float64,
) ([]domain.ProjectionPoint, error) {
	if horizonYears < 0 {
		return nil, apperrors.InvalidInput("projection horizon must not be negative")
	}
	if currentEquity < 0 || monthlySavings < 0 || monthlyIncome < 0 {
		return nil, apperrors.InvalidInput("projection inputs must not be negative")
	}

	points := make([]domain.ProjectionPoint, 0, horizonYears+1)
	equity, income, savings := currentEquity, monthlyIncome, monthlySavings

	for i := 0; i <= horizonYears; i++ {
		if i > 0 {
			income *= 1 + p.growth.IncomeGrowth()
			savings *= 1 + p.savingsEscalation
			equity += savings * 12
		}
		points = append(points, domain.ProjectionPoint{
			Year:              startYear + i,
			YearIndex:         i,
			AccumulatedEquity: math.Round(equity),
			MonthlyIncome:     roundTo2Decimals(income),
			MonthlySavings:    roundTo2Decimals(savings),
			SavingsRate:       savingsRate(savings, income),
		})
	}
	return points, nil
}

func savingsRate(savings, income float64) float64 {
	if income <= 0 {
		return 0
	}
	return roundTo2Decimals(savings / income)
}
