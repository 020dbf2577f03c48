package finance

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"nestegg/internal/core"
)

// maxProjectionMonths is the sanity ceiling for period searches. Results
// beyond 100 years collapse to the far-future sentinel.
const maxProjectionMonths = 1200

// FarFuture is the sentinel completion date for goals that are effectively
// unreachable under their current plan. Unreachable is a valid, representable
// outcome, not an error.
func FarFuture(now time.Time) time.Time {
	return now.AddDate(100, 0, 0)
}

// RequiredMonthlyPayment returns the level monthly contribution needed to
// reach the goal's target amount by its target date, rounded up to the
// cent. Rounding up can only overshoot, which is what guarantees that
// feeding the result back into ProjectedCompletionDate lands on or before
// the target date. Returns zero when the initial amount's own growth
// already covers the target.
func RequiredMonthlyPayment(g core.Goal) decimal.Decimal {
	start := ContributionStartDate(g.CreatedAt)
	periods := ContributionPeriods(start, g.TargetDate.Time)
	r := MonthlyRate(g.AnnualRatePercent.InexactFloat64())

	pmt := Payment(g.TargetAmount.InexactFloat64(), g.InitialAmount.InexactFloat64(), r, periods)
	if pmt <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(pmt).RoundCeil(2)
}

// ProjectedCompletionDate returns the date at which the goal is expected to
// reach its target under the given monthly contribution, threaded from
// "now" so the result is deterministic and testable.
//
// Already-met goals complete "now". Goals that cannot be reached (no
// contribution and no growth, or a period count past the sanity ceiling)
// return the far-future sentinel rather than an error.
func ProjectedCompletionDate(g core.Goal, monthlyContribution decimal.Decimal, now time.Time) time.Time {
	if g.InitialAmount.GreaterThanOrEqual(g.TargetAmount) {
		return now
	}

	r := MonthlyRate(g.AnnualRatePercent.InexactFloat64())
	pmt := monthlyContribution.InexactFloat64()
	if pmt <= 0 && r == 0 {
		return FarFuture(now)
	}

	periods := PeriodsNeeded(r, pmt, g.InitialAmount.InexactFloat64(), g.TargetAmount.InexactFloat64())
	if math.IsNaN(periods) || math.IsInf(periods, 0) || periods > maxProjectionMonths {
		return FarFuture(now)
	}

	// The start month counts as period 1, so the final contribution lands
	// ceil(periods)-1 months after the start date. Completion is the first
	// of that month.
	months := int(math.Ceil(periods)) - 1
	if months < 0 {
		months = 0
	}
	return ContributionStartDate(g.CreatedAt).AddDate(0, months, 0)
}

// ProjectedTotal returns the expected balance at asOf under the given
// monthly contribution: the initial amount grows passively from creation
// through the dead period before the contribution start date, then keeps
// compounding while the contribution stream accrues as an ordinary annuity.
//
// The result is uncapped. Display layers that want to clamp runaway
// projections against the target amount must do so themselves.
func ProjectedTotal(g core.Goal, monthlyContribution decimal.Decimal, asOf time.Time) decimal.Decimal {
	r := MonthlyRate(g.AnnualRatePercent.InexactFloat64())
	initial := g.InitialAmount.InexactFloat64()
	start := ContributionStartDate(g.CreatedAt)

	if asOf.Before(start) {
		// Still in the dead period: passive growth only.
		grown := FutureValue(initial, r, MonthsBetween(g.CreatedAt, asOf))
		return decimal.NewFromFloat(grown).Round(2)
	}

	atStart := FutureValue(initial, r, MonthsBetween(g.CreatedAt, start))
	grown := FutureValue(atStart, r, MonthsBetween(start, asOf))
	elapsed := ElapsedPeriods(start, asOf)
	total := grown + AnnuityFutureValue(monthlyContribution.InexactFloat64(), r, float64(elapsed))
	return decimal.NewFromFloat(total).Round(2)
}

// ProjectedInterest returns the growth portion of the projected balance at
// asOf: everything beyond the initial amount and the raw contributions
// themselves. Floored at zero.
func ProjectedInterest(g core.Goal, monthlyContribution decimal.Decimal, asOf time.Time) decimal.Decimal {
	total := ProjectedTotal(g, monthlyContribution, asOf)
	elapsed := ElapsedPeriods(ContributionStartDate(g.CreatedAt), asOf)
	contributed := monthlyContribution.Mul(decimal.NewFromInt(int64(elapsed)))
	interest := total.Sub(g.InitialAmount).Sub(contributed)
	if interest.IsNegative() {
		return decimal.Zero
	}
	return interest
}

// CurrentTotalWithInterest replays the goal's actual history: the running
// balance compounds across each gap between events, and each confirmed
// contribution is added at face value on the day it landed. A contribution
// never earns interest for time before it arrived. This is the
// historically-accurate counterpart of the forward-looking ProjectedTotal.
func CurrentTotalWithInterest(initialAmount decimal.Decimal, contributions []core.Contribution, annualRatePercent decimal.Decimal, createdAt, asOf time.Time) decimal.Decimal {
	r := MonthlyRate(annualRatePercent.InexactFloat64())

	confirmed := make([]core.Contribution, 0, len(contributions))
	for _, c := range contributions {
		if c.Confirmed && !c.Date.After(asOf) {
			confirmed = append(confirmed, c)
		}
	}
	sort.Slice(confirmed, func(i, j int) bool {
		return confirmed[i].Date.Before(confirmed[j].Date.Time)
	})

	balance := initialAmount.InexactFloat64()
	cursor := createdAt
	for _, c := range confirmed {
		balance = FutureValue(balance, r, MonthsBetween(cursor, c.Date.Time))
		balance += c.Amount.InexactFloat64()
		cursor = c.Date.Time
	}
	balance = FutureValue(balance, r, MonthsBetween(cursor, asOf))
	return decimal.NewFromFloat(balance).Round(2)
}
