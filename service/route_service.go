package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"home-route-agent/apperrors"
	"home-route-agent/domain"
	"home-route-agent/logger"
	"home-route-agent/metrics"
)

const (
	youngBuyerAge        = 30
	seniorBuyerAge       = 45
	strongAffordability  = 70
	savingsRiskWeight    = 50
	lowRouteRiskLimit    = 35
	moderateRouteRiskMax = 65
)

var riskTierBase = map[domain.RiskLevel]int{
	domain.RiskLow:      20,
	domain.RiskModerate: 45,
	domain.RiskHigh:     70,
}

var considerations = []string{
	"Projections assume steady employment and are estimates, not financial advice.",
	"Interest rates are indicative and depend on your bank, credit history and the market at purchase time.",
	"Budget separately for purchase side costs such as transfer tax, notary and broker fees.",
	"Keep an emergency reserve of at least three months of expenses outside your down payment savings.",
}

// RouteService turns a buyer profile and a property into one route per
// configured archetype.
type RouteService struct {
	archetypes []domain.Archetype
	narrative  *NarrativeService
	projector  *Projector
	logger     logger.Logger
	now        func() time.Time
}

type RouteServiceOption func(*RouteService)

// WithClock replaces the wall clock used for target years and milestones.
func WithClock(now func() time.Time) RouteServiceOption {
	return func(s *RouteService) {
		s.now = now
	}
}

func NewRouteService(
	archetypes []domain.Archetype,
	narrative *NarrativeService,
	projector *Projector,
	log logger.Logger,
	opts ...RouteServiceOption,
) *RouteService {
	s := &RouteService{
		archetypes: archetypes,
		narrative:  narrative,
		projector:  projector,
		logger:     log,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Archetypes returns the configured catalogue.
func (s *RouteService) Archetypes() []domain.Archetype {
	return append([]domain.Archetype(nil), s.archetypes...)
}

// SynthesizeAllRoutes builds every archetype concurrently and keeps the ones
// that succeed. It fails only on invalid input or when no archetype produced
// a route.
func (s *RouteService) SynthesizeAllRoutes(ctx context.Context, req domain.RouteRequest) (domain.RouteGenerationResult, error) {
	started := time.Now()
	defer func() {
		metrics.RouteGenerationDuration.Observe(time.Since(started).Seconds())
	}()

	price, err := validateRouteRequest(req)
	if err != nil {
		metrics.RouteGenerations.WithLabelValues("invalid").Inc()
		return domain.RouteGenerationResult{}, err
	}
	if len(s.archetypes) == 0 {
		metrics.RouteGenerations.WithLabelValues("failed").Inc()
		return domain.RouteGenerationResult{}, apperrors.RouteSynthesisFailed(0, nil)
	}

	now := s.now()
	routes := make([]*domain.Route, len(s.archetypes))
	errs := make([]error, len(s.archetypes))

	g, gctx := errgroup.WithContext(ctx)
	for i, archetype := range s.archetypes {
		g.Go(func() error {
			route, err := s.synthesize(gctx, archetype, req.UserProfile, price, now)
			if err != nil {
				errs[i] = err
				return nil
			}
			routes[i] = &route
			return nil
		})
	}
	_ = g.Wait()

	result := domain.RouteGenerationResult{
		Routes:         make([]domain.Route, 0, len(routes)),
		GeneratedAt:    now.UTC(),
		Considerations: append([]string(nil), considerations...),
	}
	var lastErr error
	for i, route := range routes {
		if route != nil {
			result.Routes = append(result.Routes, *route)
			continue
		}
		lastErr = errs[i]
		metrics.ArchetypeFailures.WithLabelValues(string(s.archetypes[i].Kind)).Inc()
		s.logger.WithError(errs[i]).Error("archetype failed to produce a route", map[string]interface{}{
			"archetype": s.archetypes[i].Kind,
		})
	}

	if len(result.Routes) == 0 {
		metrics.RouteGenerations.WithLabelValues("failed").Inc()
		return domain.RouteGenerationResult{}, apperrors.RouteSynthesisFailed(len(s.archetypes), lastErr)
	}

	recommended := RecommendRoute(result.Routes, s.archetypes, req.UserProfile, req.AffordabilityResult)
	result.RecommendedRouteID = recommended.ID
	result.Summary = s.narrative.EnrichSummary(ctx, req.UserProfile, result.Routes, recommended)

	outcome := "success"
	if len(result.Routes) < len(s.archetypes) {
		outcome = "partial"
	}
	metrics.RouteGenerations.WithLabelValues(outcome).Inc()
	s.logger.Info("routes generated", map[string]interface{}{
		"routes":      len(result.Routes),
		"failed":      len(s.archetypes) - len(result.Routes),
		"recommended": recommended.Archetype,
		"duration_ms": time.Since(started).Milliseconds(),
	})
	return result, nil
}

// SynthesizeRoute builds the route for a single archetype.
func (s *RouteService) SynthesizeRoute(
	ctx context.Context,
	archetype domain.Archetype,
	profile domain.UserProfile,
	property domain.PropertySelection,
) (domain.Route, error) {
	price, err := validateRouteRequest(domain.RouteRequest{UserProfile: profile, SelectedProperty: property})
	if err != nil {
		return domain.Route{}, err
	}
	return s.synthesize(ctx, archetype, profile, price, s.now())
}

func (s *RouteService) synthesize(
	ctx context.Context,
	archetype domain.Archetype,
	profile domain.UserProfile,
	price float64,
	now time.Time,
) (route domain.Route, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("archetype %s: panic: %v", archetype.Kind, r)
		}
	}()

	plan, err := ResolveEquityPlan(price, archetype, profile.ExistingEquity, archetype.HorizonYears)
	if err != nil {
		return domain.Route{}, err
	}
	loan, err := ResolveLoanPlan(plan, archetype)
	if err != nil {
		return domain.Route{}, err
	}
	projections, err := s.projector.Project(now.Year(), archetype.HorizonYears,
		profile.ExistingEquity, plan.MonthlySavingsRequired, profile.MonthlyIncome)
	if err != nil {
		return domain.Route{}, err
	}
	milestones, err := ScheduleMilestones(now, float64(archetype.HorizonYears), plan.RequiredEquity)
	if err != nil {
		return domain.Route{}, err
	}

	riskScore := routeRiskScore(archetype.RiskTier, plan.MonthlySavingsRequired, profile.MonthlyIncome)
	route = domain.Route{
		ID:                     uuid.NewString(),
		Archetype:              archetype.Kind,
		Name:                   archetype.Name,
		Description:            archetype.Tagline,
		TargetPurchaseYear:     now.Year() + archetype.HorizonYears,
		MonthsUntilPurchase:    plan.MonthsToHorizon,
		PropertyPrice:          math.Round(price),
		RequiredEquity:         plan.RequiredEquity,
		EquityGap:              plan.EquityGap,
		MonthlyPayment:         math.Round(loan.MonthlyPayment),
		TotalCost:              math.Round(plan.RequiredEquity + loan.MonthlyPayment*float64(loan.TermYears*12)),
		RiskScore:              riskScore,
		RiskLevel:              routeRiskLevel(riskScore),
		DownPaymentPercentage:  math.Round(archetype.DownPaymentFraction * 100),
		LoanAmount:             math.Round(loan.LoanAmount),
		InterestRate:           loan.InterestRate,
		LoanTerm:               loan.TermYears,
		MonthlySavingsRequired: plan.MonthlySavingsRequired,
		FinancialProjections:   projections,
		Milestones:             milestones,
	}

	s.enrich(ctx, &route, archetype, profile)
	return route, nil
}

// enrich fills the narrative fields. Each call either succeeds or falls back,
// so the group never returns an error.
func (s *RouteService) enrich(ctx context.Context, route *domain.Route, archetype domain.Archetype, profile domain.UserProfile) {
	label := archetype.Name
	if label == "" {
		label = string(archetype.Kind)
	}
	var fallbacks [5]bool

	var g errgroup.Group
	g.Go(func() error {
		route.PersonalizedInsights, fallbacks[0] = s.narrative.EnrichInsights(ctx, label, profile,
			route.PropertyPrice, profile.ExistingEquity, profile.MonthlyIncome)
		return nil
	})
	g.Go(func() error {
		route.KeyTradeoffs, fallbacks[1] = s.narrative.EnrichTradeoffs(ctx, label,
			archetype.HorizonYears, route.DownPaymentPercentage, route.MonthlySavingsRequired)
		return nil
	})
	g.Go(func() error {
		route.ActionSteps, fallbacks[2] = s.narrative.EnrichActionSteps(ctx, label,
			archetype.HorizonYears, route.EquityGap, route.MonthlySavingsRequired)
		return nil
	})
	g.Go(func() error {
		route.LifestyleImpact, route.WorkLifeBalance, fallbacks[3] = s.narrative.EnrichLifestyle(ctx, label,
			route.MonthlySavingsRequired, profile.MonthlyIncome)
		return nil
	})
	g.Go(func() error {
		route.FutureSelfNarrative, fallbacks[4] = s.narrative.EnrichFutureSelf(ctx, label, profile,
			route.TargetPurchaseYear, archetype.HorizonYears, route.PropertyPrice)
		return nil
	})
	_ = g.Wait()

	for _, used := range fallbacks {
		route.NarrativeFallback = route.NarrativeFallback || used
	}
}

// RecommendRoute picks one route by buyer age and the prior affordability
// assessment: young buyers with strong affordability get the fastest route,
// older buyers or high prior risk get the most conservative, everyone else
// the balanced one. routes must not be empty.
func RecommendRoute(
	routes []domain.Route,
	archetypes []domain.Archetype,
	profile domain.UserProfile,
	prior *domain.AffordabilityResult,
) domain.Route {
	horizon := make(map[domain.ArchetypeKind]int, len(archetypes))
	for _, a := range archetypes {
		horizon[a.Kind] = a.HorizonYears
	}

	switch {
	case profile.Age < youngBuyerAge && prior != nil && prior.Score > strongAffordability:
		return pickByHorizon(routes, horizon, func(a, b int) bool { return a < b })
	case profile.Age > seniorBuyerAge || (prior != nil && strings.EqualFold(string(prior.RiskLevel), string(domain.RiskHigh))):
		return pickByHorizon(routes, horizon, func(a, b int) bool { return a > b })
	}

	for _, r := range routes {
		if r.Archetype == domain.ArchetypeBalanced {
			return r
		}
	}
	return routes[0]
}

func pickByHorizon(routes []domain.Route, horizon map[domain.ArchetypeKind]int, better func(a, b int) bool) domain.Route {
	best := routes[0]
	for _, r := range routes[1:] {
		if better(horizon[r.Archetype], horizon[best.Archetype]) {
			best = r
		}
	}
	return best
}

func routeRiskScore(tier domain.RiskLevel, monthlySavings, monthlyIncome float64) int {
	normalised, _ := domain.ParseRiskLevel(string(tier))
	score := riskTierBase[normalised]
	if monthlyIncome > 0 {
		score += int(math.Round(savingsRiskWeight * monthlySavings / monthlyIncome))
	}
	return clampInt(score, 0, 100)
}

func routeRiskLevel(score int) string {
	switch {
	case score < lowRouteRiskLimit:
		return "low"
	case score < moderateRouteRiskMax:
		return "moderate"
	default:
		return "high"
	}
}

// validateRouteRequest rejects input shared by all archetypes before any
// computation and returns the resolved property price.
func validateRouteRequest(req domain.RouteRequest) (float64, error) {
	p := req.UserProfile
	if p.Age < MinBuyerAge || p.Age > MaxBuyerAge {
		return 0, apperrors.InvalidInput("age must be between %d and %d", MinBuyerAge, MaxBuyerAge)
	}
	if p.MonthlyIncome <= 0 || math.IsNaN(p.MonthlyIncome) || math.IsInf(p.MonthlyIncome, 0) {
		return 0, apperrors.InvalidInput("monthly income must be positive")
	}
	if p.ExistingEquity < 0 || math.IsNaN(p.ExistingEquity) || math.IsInf(p.ExistingEquity, 0) {
		return 0, apperrors.InvalidInput("existing equity must not be negative")
	}
	if p.FamilySize < 0 {
		return 0, apperrors.InvalidInput("family size must not be negative")
	}
	price, ok := req.SelectedProperty.ResolvePrice()
	if !ok {
		return 0, apperrors.InvalidInput("property needs a buying price, a similar-listing price or a price per square metre with area")
	}
	if math.IsNaN(price) || math.IsInf(price, 0) || price > MaxPropertyPrice {
		return 0, apperrors.InvalidInput("property price must be at most %.0f", MaxPropertyPrice)
	}
	return price, nil
}
