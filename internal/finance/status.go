package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"nestegg/internal/core"
)

// DefaultToleranceRatio is the width of the on-track band as a fraction of
// the monthly pledge. Without a band, a contribution landing one day into
// the next processing window would flip a goal between ahead and behind on
// pure timing noise.
const DefaultToleranceRatio = 0.10

// ClassifyStatus classifies a goal against its pledge schedule. The result
// is recomputed fresh on every call; there are no persisted transitions.
//
// A goal is completed once its actual total reaches the target. Before the
// contribution start date it is always on track: no contribution was
// expected yet, so it cannot be behind. After that, the actual total is
// compared to initial + pledge * elapsed-months within a tolerance band of
// toleranceRatio * pledge on either side.
func ClassifyStatus(g core.Goal, currentTotal decimal.Decimal, now time.Time, toleranceRatio float64) core.GoalStatus {
	if currentTotal.GreaterThanOrEqual(g.TargetAmount) {
		return core.StatusCompleted
	}

	start := ContributionStartDate(g.CreatedAt)
	if now.Before(start) {
		return core.StatusOnTrack
	}

	monthsSinceStart := ElapsedPeriods(start, now)
	expected := g.InitialAmount.Add(g.MonthlyPledge.Mul(decimal.NewFromInt(int64(monthsSinceStart))))
	tolerance := g.MonthlyPledge.Mul(decimal.NewFromFloat(toleranceRatio))

	switch {
	case currentTotal.GreaterThan(expected.Add(tolerance)):
		return core.StatusAhead
	case currentTotal.LessThan(expected.Sub(tolerance)):
		return core.StatusBehind
	default:
		return core.StatusOnTrack
	}
}
