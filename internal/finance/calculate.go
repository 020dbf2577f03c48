package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"nestegg/internal/core"
)

// Calculator bundles the projection functions behind a single entry point.
// The zero value is not usable; construct with NewCalculator.
type Calculator struct {
	toleranceRatio float64
}

// NewCalculator returns a calculator with the given on-track tolerance
// ratio. Pass 0 to use the default 10% of pledge.
func NewCalculator(toleranceRatio float64) *Calculator {
	if toleranceRatio <= 0 {
		toleranceRatio = DefaultToleranceRatio
	}
	return &Calculator{toleranceRatio: toleranceRatio}
}

// Calculate derives every computed field for a goal from its parameters and
// contribution history. It is a pure function of its arguments: calling it
// twice with the same inputs yields identical results, and nothing is
// cached or stored between calls.
func (c *Calculator) Calculate(g core.Goal, contributions []core.Contribution, now time.Time) core.GoalWithCalculations {
	currentTotal := CurrentTotalWithInterest(g.InitialAmount, contributions, g.AnnualRatePercent, g.CreatedAt, now)

	pledge := g.MonthlyPledge
	return core.GoalWithCalculations{
		Goal:                    g,
		CurrentTotal:            currentTotal,
		ProgressPercent:         progressPercent(currentTotal, g.TargetAmount),
		RequiredMonthlyPayment:  RequiredMonthlyPayment(g),
		ProjectedCompletionDate: core.DateOf(ProjectedCompletionDate(g, pledge, now)),
		ProjectedTotal:          ProjectedTotal(g, pledge, now),
		ProjectedInterest:       ProjectedInterest(g, pledge, now),
		Status:                  ClassifyStatus(g, currentTotal, now, c.toleranceRatio),
	}
}

var oneHundred = decimal.NewFromInt(100)

// progressPercent clamps current/target into [0, 100].
func progressPercent(current, target decimal.Decimal) decimal.Decimal {
	if !target.IsPositive() {
		return decimal.Zero
	}
	pct := current.Div(target).Mul(oneHundred).Round(2)
	if pct.IsNegative() {
		return decimal.Zero
	}
	if pct.GreaterThan(oneHundred) {
		return oneHundred
	}
	return pct
}
