package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"nestegg/internal/core"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// testGoal is the reference scenario: created mid-January 2024, so
// contributions start 2024-02-01 and there are 12 contribution periods
// through the 2025-01-01 target.
func testGoal() core.Goal {
	return core.Goal{
		ID:                uuid.New(),
		Name:              "Emergency fund",
		TargetAmount:      dec("10000"),
		TargetDate:        core.NewDate(2025, 1, 1),
		InitialAmount:     dec("1000"),
		MonthlyPledge:     dec("500"),
		AnnualRatePercent: dec("5"),
		CreatedAt:         time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
	}
}

func TestRequiredMonthlyPayment(t *testing.T) {
	t.Run("reference scenario", func(t *testing.T) {
		// 10000 = FV(1000, 5%/12, 12) + PMT * annuityFactor(5%/12, 12)
		// solves to roughly 728.80, rounded up to the cent.
		pmt := RequiredMonthlyPayment(testGoal())
		if pmt.LessThan(dec("728")) || pmt.GreaterThan(dec("730")) {
			t.Fatalf("expected payment near 728.80, got %s", pmt)
		}
		if !pmt.Equal(pmt.Round(2)) {
			t.Errorf("payment %s not rounded to cents", pmt)
		}
	})

	t.Run("zero rate splits the remainder evenly", func(t *testing.T) {
		g := testGoal()
		g.AnnualRatePercent = decimal.Zero
		// (10000 - 1000) / 12 = 750 exactly.
		if pmt := RequiredMonthlyPayment(g); !pmt.Equal(dec("750")) {
			t.Errorf("expected 750, got %s", pmt)
		}
	})

	t.Run("already funded requires nothing", func(t *testing.T) {
		g := testGoal()
		g.InitialAmount = dec("10000")
		if pmt := RequiredMonthlyPayment(g); !pmt.IsZero() {
			t.Errorf("expected 0, got %s", pmt)
		}
		g.InitialAmount = dec("25000")
		if pmt := RequiredMonthlyPayment(g); !pmt.IsZero() {
			t.Errorf("expected 0 for overfunded goal, got %s", pmt)
		}
	})

	t.Run("growth already covering target requires exactly zero", func(t *testing.T) {
		g := testGoal()
		g.InitialAmount = dec("9990")
		g.AnnualRatePercent = dec("10")
		// 9990 at 10% over a year sails past 10000; the payment must be
		// exactly zero, never negative.
		pmt := RequiredMonthlyPayment(g)
		if !pmt.IsZero() {
			t.Errorf("expected 0, got %s", pmt)
		}
	})
}

func TestProjectedCompletionDate(t *testing.T) {
	now := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)

	t.Run("round trip lands on or before the target date", func(t *testing.T) {
		g := testGoal()
		pmt := RequiredMonthlyPayment(g)
		completion := ProjectedCompletionDate(g, pmt, now)
		if completion.After(g.TargetDate.Time) {
			t.Errorf("completion %v is after target %v with required payment %s",
				completion, g.TargetDate.Time, pmt)
		}
	})

	t.Run("round trip across rates and horizons", func(t *testing.T) {
		rates := []string{"0", "2.5", "5", "12", "100"}
		targets := []core.Date{
			core.NewDate(2024, 3, 1),
			core.NewDate(2025, 1, 1),
			core.NewDate(2030, 6, 15),
		}
		for _, rate := range rates {
			for _, target := range targets {
				g := testGoal()
				g.AnnualRatePercent = dec(rate)
				g.TargetDate = target
				pmt := RequiredMonthlyPayment(g)
				completion := ProjectedCompletionDate(g, pmt, now)
				if completion.After(g.TargetDate.Time) {
					t.Errorf("rate %s target %v: completion %v after target (payment %s)",
						rate, target.Time, completion, pmt)
				}
			}
		}
	})

	t.Run("already met completes now", func(t *testing.T) {
		g := testGoal()
		g.InitialAmount = dec("10000")
		got := ProjectedCompletionDate(g, dec("500"), now)
		if !got.Equal(now) {
			t.Errorf("expected now (%v), got %v", now, got)
		}
	})

	t.Run("unreachable goal returns the far-future sentinel", func(t *testing.T) {
		g := testGoal()
		g.InitialAmount = dec("100")
		g.MonthlyPledge = decimal.Zero
		g.AnnualRatePercent = decimal.Zero
		got := ProjectedCompletionDate(g, decimal.Zero, now)
		if !got.Equal(FarFuture(now)) {
			t.Errorf("expected sentinel %v, got %v", FarFuture(now), got)
		}
	})

	t.Run("tiny payment beyond the ceiling returns the sentinel", func(t *testing.T) {
		g := testGoal()
		g.InitialAmount = decimal.Zero
		g.AnnualRatePercent = decimal.Zero
		// One cent a month toward 10000 needs a million months.
		got := ProjectedCompletionDate(g, dec("0.01"), now)
		if !got.Equal(FarFuture(now)) {
			t.Errorf("expected sentinel, got %v", got)
		}
	})

	t.Run("growth alone can complete", func(t *testing.T) {
		g := testGoal()
		g.InitialAmount = dec("9000")
		g.AnnualRatePercent = dec("12")
		got := ProjectedCompletionDate(g, decimal.Zero, now)
		if got.Equal(FarFuture(now)) {
			t.Fatalf("expected a finite completion date")
		}
		// ln(10000/9000)/ln(1.01) is just under 11 months.
		want := date(2024, 12, 1)
		if !got.Equal(want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("raising the contribution never delays completion", func(t *testing.T) {
		g := testGoal()
		prev := ProjectedCompletionDate(g, dec("100"), now)
		for _, pledge := range []string{"200", "400", "800", "1600"} {
			next := ProjectedCompletionDate(g, dec(pledge), now)
			if next.After(prev) {
				t.Errorf("pledge %s delayed completion from %v to %v", pledge, prev, next)
			}
			prev = next
		}
	})
}

func TestProjectedTotal(t *testing.T) {
	t.Run("zero rate accumulates linearly", func(t *testing.T) {
		g := testGoal()
		g.AnnualRatePercent = decimal.Zero
		// Six periods elapsed by 2024-07-01 (Feb through Jul).
		asOf := date(2024, 7, 1)
		got := ProjectedTotal(g, dec("500"), asOf)
		want := dec("4000") // 1000 + 6*500
		if !got.Equal(want) {
			t.Errorf("expected %s, got %s", want, got)
		}
	})

	t.Run("before contribution start only the initial amount grows", func(t *testing.T) {
		g := testGoal()
		g.AnnualRatePercent = decimal.Zero
		got := ProjectedTotal(g, dec("500"), date(2024, 1, 20))
		if !got.Equal(dec("1000")) {
			t.Errorf("expected 1000 during dead period, got %s", got)
		}
	})

	t.Run("interest makes the total exceed linear accumulation", func(t *testing.T) {
		g := testGoal()
		asOf := date(2025, 1, 1)
		withInterest := ProjectedTotal(g, dec("500"), asOf)
		linear := dec("1000").Add(dec("500").Mul(dec("12")))
		if !withInterest.GreaterThan(linear) {
			t.Errorf("expected %s > %s", withInterest, linear)
		}
	})

	t.Run("raising the contribution never lowers the total", func(t *testing.T) {
		g := testGoal()
		asOf := date(2024, 9, 1)
		prev := ProjectedTotal(g, dec("100"), asOf)
		for _, pledge := range []string{"200", "400", "800"} {
			next := ProjectedTotal(g, dec(pledge), asOf)
			if next.LessThan(prev) {
				t.Errorf("pledge %s lowered projected total from %s to %s", pledge, prev, next)
			}
			prev = next
		}
	})

	t.Run("deterministic across calls", func(t *testing.T) {
		g := testGoal()
		asOf := date(2024, 9, 1)
		first := ProjectedTotal(g, dec("500"), asOf)
		second := ProjectedTotal(g, dec("500"), asOf)
		if !first.Equal(second) {
			t.Errorf("projection not deterministic: %s vs %s", first, second)
		}
	})
}

func TestProjectedInterest(t *testing.T) {
	t.Run("zero rate earns nothing", func(t *testing.T) {
		g := testGoal()
		g.AnnualRatePercent = decimal.Zero
		got := ProjectedInterest(g, dec("500"), date(2024, 12, 1))
		if !got.IsZero() {
			t.Errorf("expected 0, got %s", got)
		}
	})

	t.Run("positive rate earns a positive amount", func(t *testing.T) {
		g := testGoal()
		got := ProjectedInterest(g, dec("500"), date(2025, 1, 1))
		if !got.IsPositive() {
			t.Errorf("expected positive interest, got %s", got)
		}
	})
}

func TestCurrentTotalWithInterest(t *testing.T) {
	createdAt := date(2024, 1, 15)
	gid := uuid.New()

	contrib := func(amount string, d core.Date, confirmed bool) core.Contribution {
		return core.Contribution{ID: uuid.New(), GoalID: gid, Amount: dec(amount), Date: d, Confirmed: confirmed}
	}

	t.Run("zero rate sums confirmed contributions", func(t *testing.T) {
		contribs := []core.Contribution{
			contrib("50", core.NewDate(2024, 2, 1), true),
			contrib("50", core.NewDate(2024, 3, 1), true),
			contrib("999", core.NewDate(2024, 3, 15), false), // unconfirmed
		}
		got := CurrentTotalWithInterest(dec("100"), contribs, decimal.Zero, createdAt, date(2024, 6, 1))
		if !got.Equal(dec("200")) {
			t.Errorf("expected 200, got %s", got)
		}
	})

	t.Run("contributions dated after asOf are excluded", func(t *testing.T) {
		contribs := []core.Contribution{
			contrib("50", core.NewDate(2024, 2, 1), true),
			contrib("70", core.NewDate(2024, 9, 1), true),
		}
		got := CurrentTotalWithInterest(dec("100"), contribs, decimal.Zero, createdAt, date(2024, 6, 1))
		if !got.Equal(dec("150")) {
			t.Errorf("expected 150, got %s", got)
		}
	})

	t.Run("balance compounds across event gaps", func(t *testing.T) {
		// 1000 at 12% nominal (1% monthly) for 12 months = 1126.83, plus
		// 100 contributed halfway growing 6 months = 106.15.
		contribs := []core.Contribution{
			contrib("100", core.NewDate(2024, 7, 1), true),
		}
		got := CurrentTotalWithInterest(dec("1000"), contribs, dec("12"), date(2024, 1, 1), date(2025, 1, 1))
		want := 1126.83 + 106.15
		if !almostEqual(got.InexactFloat64(), want, 0.05) {
			t.Errorf("expected ~%v, got %s", want, got)
		}
	})

	t.Run("unsorted input is handled", func(t *testing.T) {
		contribs := []core.Contribution{
			contrib("30", core.NewDate(2024, 5, 1), true),
			contrib("20", core.NewDate(2024, 2, 1), true),
		}
		got := CurrentTotalWithInterest(dec("100"), contribs, decimal.Zero, createdAt, date(2024, 6, 1))
		if !got.Equal(dec("150")) {
			t.Errorf("expected 150, got %s", got)
		}
	})
}
