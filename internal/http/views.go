package http

import (
	"time"

	"nestegg/internal/core"
)

const dateLayout = "2006-01-02"

// goalView is the JSON shape of a goal with its derived fields. Amounts are
// decimal strings so clients never see float rounding.
type goalView struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	TargetAmount      string `json:"target_amount"`
	TargetDate        string `json:"target_date"`
	InitialAmount     string `json:"initial_amount"`
	MonthlyPledge     string `json:"monthly_pledge"`
	AnnualRatePercent string `json:"annual_rate_percent"`
	CreatedAt         string `json:"created_at"`

	CurrentTotal            string `json:"current_total"`
	ProgressPercent         string `json:"progress_percent"`
	RequiredMonthlyPayment  string `json:"required_monthly_payment"`
	ProjectedCompletionDate string `json:"projected_completion_date"`
	ProjectedTotal          string `json:"projected_total"`
	ProjectedInterest       string `json:"projected_interest"`
	Status                  string `json:"status"`
}

func newGoalView(g core.GoalWithCalculations) goalView {
	return goalView{
		ID:                g.Goal.ID.String(),
		Name:              g.Goal.Name,
		TargetAmount:      g.Goal.TargetAmount.String(),
		TargetDate:        g.Goal.TargetDate.Format(dateLayout),
		InitialAmount:     g.Goal.InitialAmount.String(),
		MonthlyPledge:     g.Goal.MonthlyPledge.String(),
		AnnualRatePercent: g.Goal.AnnualRatePercent.String(),
		CreatedAt:         g.Goal.CreatedAt.UTC().Format(time.RFC3339),

		CurrentTotal:            g.CurrentTotal.String(),
		ProgressPercent:         g.ProgressPercent.String(),
		RequiredMonthlyPayment:  g.RequiredMonthlyPayment.String(),
		ProjectedCompletionDate: g.ProjectedCompletionDate.Format(dateLayout),
		ProjectedTotal:          g.ProjectedTotal.String(),
		ProjectedInterest:       g.ProjectedInterest.String(),
		Status:                  string(g.Status),
	}
}

type contributionView struct {
	ID        string `json:"id"`
	GoalID    string `json:"goal_id"`
	Amount    string `json:"amount"`
	Date      string `json:"date"`
	Confirmed bool   `json:"confirmed"`
	CreatedAt string `json:"created_at"`
}

func newContributionView(c core.Contribution) contributionView {
	return contributionView{
		ID:        c.ID.String(),
		GoalID:    c.GoalID.String(),
		Amount:    c.Amount.String(),
		Date:      c.Date.Format(dateLayout),
		Confirmed: c.Confirmed,
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339),
	}
}
