package finance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"nestegg/internal/core"
)

func TestClassifyStatus(t *testing.T) {
	g := testGoal() // created 2024-01-15, start 2024-02-01, pledge 500, initial 1000

	t.Run("reaching the target completes regardless of schedule", func(t *testing.T) {
		got := ClassifyStatus(g, dec("10000"), date(2024, 3, 1), DefaultToleranceRatio)
		if got != core.StatusCompleted {
			t.Errorf("expected completed, got %s", got)
		}
		got = ClassifyStatus(g, dec("12000"), date(2024, 1, 16), DefaultToleranceRatio)
		if got != core.StatusCompleted {
			t.Errorf("expected completed before start too, got %s", got)
		}
	})

	t.Run("before the contribution start a goal cannot be behind", func(t *testing.T) {
		got := ClassifyStatus(g, decimal.Zero, date(2024, 1, 20), DefaultToleranceRatio)
		if got != core.StatusOnTrack {
			t.Errorf("expected on_track, got %s", got)
		}
	})

	// On 2024-02-01 one contribution period has opened, so the expected
	// total is 1000 + 500 = 1500 with a +-50 tolerance band.
	now := date(2024, 2, 1)
	tests := []struct {
		name    string
		current string
		want    core.GoalStatus
	}{
		{"exactly expected", "1500", core.StatusOnTrack},
		{"upper band edge stays on track", "1550", core.StatusOnTrack},
		{"just above upper band is ahead", "1550.01", core.StatusAhead},
		{"lower band edge stays on track", "1450", core.StatusOnTrack},
		{"just below lower band is behind", "1449.99", core.StatusBehind},
		{"far behind", "600", core.StatusBehind},
		{"far ahead", "5000", core.StatusAhead},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyStatus(g, dec(tt.current), now, DefaultToleranceRatio)
			if got != tt.want {
				t.Errorf("ClassifyStatus(current=%s) = %s, want %s", tt.current, got, tt.want)
			}
		})
	}

	t.Run("several periods in", func(t *testing.T) {
		// By 2024-07-10 six periods have opened: expected 1000 + 6*500 = 4000.
		later := date(2024, 7, 10)
		if got := ClassifyStatus(g, dec("4000"), later, DefaultToleranceRatio); got != core.StatusOnTrack {
			t.Errorf("expected on_track at expected total, got %s", got)
		}
		if got := ClassifyStatus(g, dec("3000"), later, DefaultToleranceRatio); got != core.StatusBehind {
			t.Errorf("expected behind, got %s", got)
		}
		if got := ClassifyStatus(g, dec("4500"), later, DefaultToleranceRatio); got != core.StatusAhead {
			t.Errorf("expected ahead, got %s", got)
		}
	})

	t.Run("custom tolerance widens the band", func(t *testing.T) {
		// With a 50% band, 1749 is still within 1500 +- 250.
		got := ClassifyStatus(g, dec("1749"), now, 0.5)
		if got != core.StatusOnTrack {
			t.Errorf("expected on_track with widened band, got %s", got)
		}
	})

	t.Run("zero pledge collapses the band", func(t *testing.T) {
		zg := g
		zg.MonthlyPledge = decimal.Zero
		// Expected total stays at the initial amount forever.
		if got := ClassifyStatus(zg, dec("1000"), now, DefaultToleranceRatio); got != core.StatusOnTrack {
			t.Errorf("expected on_track, got %s", got)
		}
		if got := ClassifyStatus(zg, dec("1200"), now, DefaultToleranceRatio); got != core.StatusAhead {
			t.Errorf("expected ahead, got %s", got)
		}
	})

	t.Run("evaluation is fresh every call", func(t *testing.T) {
		behind := ClassifyStatus(g, dec("600"), date(2024, 7, 10), DefaultToleranceRatio)
		if behind != core.StatusBehind {
			t.Fatalf("expected behind, got %s", behind)
		}
		// The same goal evaluated before the start date is on track again;
		// nothing sticks between evaluations.
		if got := ClassifyStatus(g, dec("600"), date(2024, 1, 20), DefaultToleranceRatio); got != core.StatusOnTrack {
			t.Errorf("expected on_track, got %s", got)
		}
	})
}

func TestClassifyStatusNowBoundary(t *testing.T) {
	g := testGoal()
	start := ContributionStartDate(g.CreatedAt)

	// One nanosecond before the start date the goal is in the pre-start
	// grace; at the start date the first expected contribution is due.
	preStart := start.Add(-time.Nanosecond)
	if got := ClassifyStatus(g, dec("1000"), preStart, DefaultToleranceRatio); got != core.StatusOnTrack {
		t.Errorf("expected on_track just before start, got %s", got)
	}
	if got := ClassifyStatus(g, dec("1000"), start, DefaultToleranceRatio); got != core.StatusBehind {
		t.Errorf("expected behind at start with no contribution, got %s", got)
	}
}
