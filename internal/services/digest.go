package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"nestegg/internal/core"
	"nestegg/internal/finance"
)

// DigestProcessor performs one status sweep across all goals and publishes
// an event for every goal that has fallen behind its pledge schedule. The
// worker drives it on a schedule; it holds no loop state of its own.
type DigestProcessor struct {
	service   *GoalService
	publisher StatusPublisher
}

func NewDigestProcessor(service *GoalService, publisher StatusPublisher) *DigestProcessor {
	return &DigestProcessor{
		service:   service,
		publisher: publisher,
	}
}

// Run sweeps every goal once. Publish failures are logged per goal and do
// not abort the sweep; only a failed goal listing is an error.
func (p *DigestProcessor) Run(ctx context.Context) error {
	goals, err := p.service.ListGoalsWithCalculations(ctx)
	if err != nil {
		return fmt.Errorf("digest sweep: %w", err)
	}

	behind := 0
	for _, g := range goals {
		if g.Status != core.StatusBehind {
			continue
		}
		behind++

		if p.publisher == nil {
			slog.WarnContext(ctx, "No publisher configured, skipping status event",
				"goal_id", g.Goal.ID)
			continue
		}

		shortfall := p.shortfall(g)
		if err := p.publisher.PublishGoalStatus(ctx, g.Goal.ID, g.Goal.Name, string(g.Status), shortfall.String()); err != nil {
			slog.ErrorContext(ctx, "Failed to publish goal status",
				"goal_id", g.Goal.ID, "error", err)
		}
	}

	slog.InfoContext(ctx, "Digest sweep completed",
		"goals", len(goals),
		"behind", behind)
	return nil
}

// shortfall is how far the actual total trails the pledge schedule.
func (p *DigestProcessor) shortfall(g core.GoalWithCalculations) decimal.Decimal {
	start := finance.ContributionStartDate(g.Goal.CreatedAt)
	elapsed := finance.ElapsedPeriods(start, p.service.now())
	expected := g.Goal.InitialAmount.Add(g.Goal.MonthlyPledge.Mul(decimal.NewFromInt(int64(elapsed))))
	short := expected.Sub(g.CurrentTotal)
	if short.IsNegative() {
		return decimal.Zero
	}
	return short.Round(2)
}
