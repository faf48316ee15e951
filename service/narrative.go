package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"home-route-agent/apperrors"
	"home-route-agent/domain"
	"home-route-agent/llm"
	"home-route-agent/logger"
	"home-route-agent/metrics"
)

const (
	kindInsights    = "insights"
	kindTradeoffs   = "tradeoffs"
	kindActionSteps = "action_steps"
	kindLifestyle   = "lifestyle"
	kindFutureSelf  = "future_self"
	kindSummary     = "summary"

	maxFreeTextLength = 1200
)

var errNarrativeDisabled = errors.New("no text generator configured")

// NarrativeService decorates numeric routes with generated text. Every method
// answers: a failed, slow or malformed generation is replaced by templated
// text built from the same numbers.
type NarrativeService struct {
	generator llm.TextGenerator
	timeout   time.Duration
	logger    logger.Logger
}

// NewNarrativeService wraps generator; a nil generator always falls back.
func NewNarrativeService(generator llm.TextGenerator, timeout time.Duration, log logger.Logger) *NarrativeService {
	if timeout <= 0 {
		timeout = DefaultNarrativeTimeoutSeconds * time.Second
	}
	return &NarrativeService{
		generator: generator,
		timeout:   timeout,
		logger:    log.With(map[string]interface{}{"component": "narrative"}),
	}
}

func (s *NarrativeService) generate(ctx context.Context, kind, prompt string) (text string, err error) {
	if s.generator == nil {
		return "", apperrors.NarrativeUnavailable(kind, errNarrativeDisabled)
	}
	defer func() {
		if r := recover(); r != nil {
			text, err = "", apperrors.NarrativeUnavailable(kind, fmt.Errorf("generator panic: %v", r))
		}
	}()
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err = s.generator.Generate(ctx, prompt)
	if err != nil {
		return "", apperrors.NarrativeUnavailable(kind, err)
	}
	return text, nil
}

func (s *NarrativeService) fallback(label, kind string, err error) {
	metrics.NarrativeFallbacks.WithLabelValues(kind).Inc()
	if s.generator == nil {
		return
	}
	s.logger.WithError(err).Warn("narrative fallback used", map[string]interface{}{
		"archetype": label,
		"kind":      kind,
	})
}

func (s *NarrativeService) generateList(ctx context.Context, label, kind, prompt string) ([]string, error) {
	text, err := s.generate(ctx, kind, prompt)
	if err != nil {
		return nil, err
	}
	items, err := parseStringList(text)
	if err != nil {
		return nil, apperrors.NarrativeUnavailable(kind, err)
	}
	return items, nil
}

// EnrichInsights returns personalized insights for one route and whether the
// fallback was used.
func (s *NarrativeService) EnrichInsights(
	ctx context.Context,
	label string,
	profile domain.UserProfile,
	price, equity, income float64,
) ([]string, bool) {
	prompt := fmt.Sprintf(`Write personalized insights for a home buyer following the "%s" route.

BUYER:
- Age: %d
- Occupation: %s
- Household size: %d
- Target location: %s
- Monthly net income: %s
- Savings available for equity: %s

PROPERTY PRICE: %s

Return a JSON array of 3 short strings (max 25 words each). Quote the euro amounts exactly as given.`,
		label, profile.Age, orUnknown(profile.Occupation), profile.FamilySize, orUnknown(profile.TargetLocation),
		FormatEuro(income), FormatEuro(equity), FormatEuro(price))

	items, err := s.generateList(ctx, label, kindInsights, prompt)
	if err != nil {
		s.fallback(label, kindInsights, err)
		return fallbackInsights(label, profile, price, equity, income), true
	}
	return items, false
}

// EnrichTradeoffs returns the key tradeoffs of a route.
func (s *NarrativeService) EnrichTradeoffs(
	ctx context.Context,
	label string,
	horizonYears int,
	downPaymentPct float64,
	monthlySavings float64,
) ([]string, bool) {
	prompt := fmt.Sprintf(`List the key tradeoffs of the "%s" home buying route.

ROUTE:
- Years until purchase: %d
- Down payment: %.0f%% of the price
- Required monthly savings: %s

Return a JSON array of 3 short strings (max 25 words each).`,
		label, horizonYears, downPaymentPct, FormatEuro(monthlySavings))

	items, err := s.generateList(ctx, label, kindTradeoffs, prompt)
	if err != nil {
		s.fallback(label, kindTradeoffs, err)
		return fallbackTradeoffs(label, horizonYears, downPaymentPct, monthlySavings), true
	}
	return items, false
}

// EnrichActionSteps returns concrete next steps for a route.
func (s *NarrativeService) EnrichActionSteps(
	ctx context.Context,
	label string,
	horizonYears int,
	equityGap float64,
	monthlySavings float64,
) ([]string, bool) {
	prompt := fmt.Sprintf(`Give concrete action steps for the "%s" home buying route.

- Equity still missing: %s
- Monthly savings target: %s
- Years until purchase: %d

Return a JSON array of 4 imperative sentences (max 20 words each).`,
		label, FormatEuro(equityGap), FormatEuro(monthlySavings), horizonYears)

	items, err := s.generateList(ctx, label, kindActionSteps, prompt)
	if err != nil {
		s.fallback(label, kindActionSteps, err)
		return fallbackActionSteps(horizonYears, equityGap, monthlySavings), true
	}
	return items, false
}

// EnrichLifestyle returns the lifestyle impact and work-life balance texts.
func (s *NarrativeService) EnrichLifestyle(
	ctx context.Context,
	label string,
	monthlySavings float64,
	monthlyIncome float64,
) (string, string, bool) {
	prompt := fmt.Sprintf(`Describe how the "%s" home buying route affects daily life.

- Monthly savings target: %s
- Monthly net income: %s

Return a JSON object {"lifestyleImpact": "...", "workLifeBalance": "..."} with one or two sentences each.`,
		label, FormatEuro(monthlySavings), FormatEuro(monthlyIncome))

	text, err := s.generate(ctx, kindLifestyle, prompt)
	var l lifestyle
	if err == nil {
		l, err = parseLifestyle(text)
		if err != nil {
			err = apperrors.NarrativeUnavailable(kindLifestyle, err)
		}
	}
	if err != nil {
		s.fallback(label, kindLifestyle, err)
		impact, balance := fallbackLifestyle(monthlySavings, monthlyIncome)
		return impact, balance, true
	}
	return l.LifestyleImpact, l.WorkLifeBalance, false
}

// EnrichFutureSelf returns a short story told from the buyer's future self.
func (s *NarrativeService) EnrichFutureSelf(
	ctx context.Context,
	label string,
	profile domain.UserProfile,
	targetYear, horizonYears int,
	price float64,
) (string, bool) {
	prompt := fmt.Sprintf(`Write a three sentence letter from the buyer's future self in %d, after buying a %s home in %s via the "%s" route. The buyer is %d years old today and works as %s. Plain text only.`,
		targetYear, FormatEuro(price), orUnknown(profile.TargetLocation), label, profile.Age, orUnknown(profile.Occupation))

	text, err := s.generate(ctx, kindFutureSelf, prompt)
	if err == nil {
		text = truncate(cleanText(text), maxFreeTextLength)
		if text == "" {
			err = apperrors.NarrativeUnavailable(kindFutureSelf, errNoJSON)
		}
	}
	if err != nil {
		s.fallback(label, kindFutureSelf, err)
		return fallbackFutureSelf(profile, targetYear, horizonYears, price), true
	}
	return text, false
}

// EnrichSummary summarizes the generated routes. It never changes numbers.
func (s *NarrativeService) EnrichSummary(
	ctx context.Context,
	profile domain.UserProfile,
	routes []domain.Route,
	recommended domain.Route,
) string {
	var b strings.Builder
	for _, r := range routes {
		fmt.Fprintf(&b, "- %s: buy in %d, %s down payment, %s saved per month, %s monthly mortgage payment\n",
			r.Name, r.TargetPurchaseYear, FormatEuro(r.RequiredEquity), FormatEuro(r.MonthlySavingsRequired), FormatEuro(r.MonthlyPayment))
	}
	prompt := fmt.Sprintf(`Summarize these home buying routes for a %d year old buyer in two sentences and explain why "%s" is recommended.

ROUTES:
%s
Plain text only.`, profile.Age, recommended.Name, b.String())

	text, err := s.generate(ctx, kindSummary, prompt)
	if err == nil {
		text = truncate(cleanText(text), maxFreeTextLength)
		if text == "" {
			err = apperrors.NarrativeUnavailable(kindSummary, errNoJSON)
		}
	}
	if err != nil {
		s.fallback(recommended.Name, kindSummary, err)
		return fallbackSummary(routes, recommended)
	}
	return text
}

func orUnknown(v string) string {
	if strings.TrimSpace(v) == "" {
		return "not specified"
	}
	return v
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return strings.TrimSpace(string(runes[:limit])) + "…"
}
