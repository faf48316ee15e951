package service

import (
	"fmt"
	"math"
	"time"

	"home-route-agent/apperrors"
	"home-route-agent/domain"
)

// ScheduleMilestones lays out checkpoints from start to the purchase date
// horizonYears later: a start marker, the 25/50/75% marks where the quarterly
// grid hits them exactly, and the purchase marker at 100%.
func ScheduleMilestones(start time.Time, horizonYears float64, targetEquity float64) ([]domain.Milestone, error) {
	if horizonYears <= 0 || math.IsNaN(horizonYears) || math.IsInf(horizonYears, 0) {
		return nil, apperrors.InvalidInput("milestone horizon must be positive")
	}
	if targetEquity < 0 {
		return nil, apperrors.InvalidInput("target equity must not be negative")
	}

	quarters := int(math.Ceil(horizonYears * 4))
	purchase := start.AddDate(0, int(math.Round(horizonYears*12)), 0)

	milestones := []domain.Milestone{
		newMilestone(start, "Journey Begins",
			fmt.Sprintf("Start saving toward a down payment of %s.", FormatEuro(targetEquity)),
			0, 0),
	}

	for i := 1; i < quarters; i++ {
		var percent int
		switch {
		case 4*i == quarters:
			percent = 25
		case 2*i == quarters:
			percent = 50
		case 4*i == 3*quarters:
			percent = 75
		default:
			continue
		}
		amount := math.Round(targetEquity * float64(percent) / 100)
		milestones = append(milestones, newMilestone(
			start.AddDate(0, 3*i, 0),
			fmt.Sprintf("%d%% of Equity Saved", percent),
			fmt.Sprintf("Reach %s saved, %d%% of your %s goal.", FormatEuro(amount), percent, FormatEuro(targetEquity)),
			amount, float64(percent),
		))
	}

	milestones = append(milestones, newMilestone(purchase, "Ready to Purchase",
		fmt.Sprintf("Your %s down payment is complete. Time to buy.", FormatEuro(targetEquity)),
		targetEquity, 100))

	return milestones, nil
}

func newMilestone(date time.Time, title, description string, amount, percent float64) domain.Milestone {
	return domain.Milestone{
		Date:             date,
		Quarter:          quarterLabel(date),
		Title:            title,
		Description:      description,
		AmountSaved:      &amount,
		EquityPercentage: &percent,
	}
}

func quarterLabel(t time.Time) string {
	return fmt.Sprintf("Q%d %d", (int(t.Month())-1)/3+1, t.Year())
}
