package service

import (
	"fmt"

	"home-route-agent/domain"
)

func fallbackInsights(label string, profile domain.UserProfile, price, equity, income float64) []string {
	share := 0.0
	if price > 0 {
		share = equity / price
	}
	insights := []string{
		fmt.Sprintf("You already have %s saved, which covers %s of the %s purchase price.",
			FormatEuro(equity), FormatPercent(share), FormatEuro(price)),
		fmt.Sprintf("With a monthly income of %s, the %s route keeps your plan tied to what you earn today.",
			FormatEuro(income), label),
	}
	if profile.TargetLocation != "" {
		insights = append(insights, fmt.Sprintf("Track listings in %s regularly so you recognise a fair price when you are ready.", profile.TargetLocation))
	} else {
		insights = append(insights, "Track listings in your target area regularly so you recognise a fair price when you are ready.")
	}
	return insights
}

func fallbackTradeoffs(label string, horizonYears int, downPaymentPct, monthlySavings float64) []string {
	return []string{
		fmt.Sprintf("Saving %s every month for %d %s leaves less room for discretionary spending.",
			FormatEuro(monthlySavings), horizonYears, pluralYears(horizonYears)),
		fmt.Sprintf("A %.0f%% down payment changes both your loan size and the interest rate banks offer.", downPaymentPct),
		fmt.Sprintf("The %s route trades speed against financial cushion: rent and prices may move while you save.", label),
	}
}

func fallbackActionSteps(horizonYears int, equityGap, monthlySavings float64) []string {
	if equityGap <= 0 {
		return []string{
			"Your savings already cover the down payment for this route.",
			"Request mortgage offers from at least three banks and compare effective rates.",
			"Keep a reserve for notary, land registry and transfer tax costs.",
			"Get a financing confirmation before making an offer.",
		}
	}
	return []string{
		fmt.Sprintf("Set up a standing order of %s per month into a dedicated savings account.", FormatEuro(monthlySavings)),
		fmt.Sprintf("Close the remaining equity gap of %s within %d %s.", FormatEuro(equityGap), horizonYears, pluralYears(horizonYears)),
		"Review your budget every quarter and raise the savings rate with each pay rise.",
		"Talk to a mortgage broker six months before the planned purchase.",
	}
}

func fallbackLifestyle(monthlySavings, monthlyIncome float64) (string, string) {
	share := 0.0
	if monthlyIncome > 0 {
		share = monthlySavings / monthlyIncome
	}
	impact := fmt.Sprintf("Setting aside %s a month means about %s of your %s income goes to the down payment.",
		FormatEuro(monthlySavings), FormatPercent(share), FormatEuro(monthlyIncome))

	var balance string
	switch {
	case share >= 0.4:
		balance = "This pace is demanding; expect fewer holidays and consider additional income sources."
	case share >= 0.2:
		balance = "This pace is noticeable but manageable with a clear monthly budget."
	default:
		balance = "This pace leaves comfortable room for everyday life and leisure."
	}
	return impact, balance
}

func fallbackFutureSelf(profile domain.UserProfile, targetYear, horizonYears int, price float64) string {
	place := profile.TargetLocation
	if place == "" {
		place = "your new neighbourhood"
	}
	age := profile.Age + max(horizonYears, 0)
	return fmt.Sprintf("It is %d and you are %d. The keys to your %s home in %s are in your hand, and every month you saved made it happen.",
		targetYear, age, FormatEuro(price), place)
}

func fallbackSummary(routes []domain.Route, recommended domain.Route) string {
	if len(routes) == 0 {
		return ""
	}
	return fmt.Sprintf("We prepared %d routes to your home. The recommended %s route targets a purchase in %d with %s of equity and %s saved each month.",
		len(routes), recommended.Name, recommended.TargetPurchaseYear,
		FormatEuro(recommended.RequiredEquity), FormatEuro(recommended.MonthlySavingsRequired))
}

func pluralYears(n int) string {
	if n == 1 {
		return "year"
	}
	return "years"
}
