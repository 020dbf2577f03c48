// Package services orchestrates goal operations across storage, the
// projection calculator and the message broker.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"nestegg/internal/core"
	"nestegg/internal/finance"
)

// GoalService is the application-level entry point for goal operations.
// Projection fields are recomputed on every read; the service never
// persists them.
type GoalService struct {
	store      GoalStore
	calculator *finance.Calculator
	now        func() time.Time
}

func NewGoalService(store GoalStore, calculator *finance.Calculator) *GoalService {
	return &GoalService{
		store:      store,
		calculator: calculator,
		now:        time.Now,
	}
}

// WithClock overrides the time source. Tests use it to pin "now".
func (s *GoalService) WithClock(now func() time.Time) *GoalService {
	s.now = now
	return s
}

// CreateGoalInput carries the user-supplied goal parameters.
type CreateGoalInput struct {
	Name              string
	TargetAmount      decimal.Decimal
	TargetDate        core.Date
	InitialAmount     decimal.Decimal
	MonthlyPledge     decimal.Decimal
	AnnualRatePercent decimal.Decimal
}

// CreateGoal validates the input, assigns identity and persists the goal.
func (s *GoalService) CreateGoal(ctx context.Context, in CreateGoalInput) (core.Goal, error) {
	g := core.Goal{
		ID:                uuid.New(),
		Name:              in.Name,
		TargetAmount:      in.TargetAmount,
		TargetDate:        in.TargetDate,
		InitialAmount:     in.InitialAmount,
		MonthlyPledge:     in.MonthlyPledge,
		AnnualRatePercent: in.AnnualRatePercent,
		CreatedAt:         s.now().UTC(),
	}
	if err := g.Validate(); err != nil {
		return core.Goal{}, err
	}

	if err := s.store.CreateGoal(ctx, g); err != nil {
		return core.Goal{}, fmt.Errorf("create goal: %w", err)
	}

	slog.InfoContext(ctx, "Goal created",
		"goal_id", g.ID,
		"goal_name", g.Name,
		"target_amount", g.TargetAmount,
		"target_date", g.TargetDate.Format("2006-01-02"))
	return g, nil
}

// GoalWithCalculations loads a goal and derives its projection fields.
func (s *GoalService) GoalWithCalculations(ctx context.Context, id uuid.UUID) (core.GoalWithCalculations, error) {
	g, err := s.store.GetGoal(ctx, id)
	if err != nil {
		return core.GoalWithCalculations{}, err
	}

	contributions, err := s.store.ListContributions(ctx, id)
	if err != nil {
		return core.GoalWithCalculations{}, fmt.Errorf("list contributions for goal %s: %w", id, err)
	}

	return s.calculator.Calculate(g, contributions, s.now()), nil
}

// ListGoalsWithCalculations derives projection fields for every goal.
func (s *GoalService) ListGoalsWithCalculations(ctx context.Context) ([]core.GoalWithCalculations, error) {
	goals, err := s.store.ListGoals(ctx)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}

	now := s.now()
	out := make([]core.GoalWithCalculations, 0, len(goals))
	for _, g := range goals {
		contributions, err := s.store.ListContributions(ctx, g.ID)
		if err != nil {
			return nil, fmt.Errorf("list contributions for goal %s: %w", g.ID, err)
		}
		out = append(out, s.calculator.Calculate(g, contributions, now))
	}
	return out, nil
}

// DeleteGoal removes a goal and its contribution history.
func (s *GoalService) DeleteGoal(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteGoal(ctx, id); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Goal deleted", "goal_id", id)
	return nil
}

// RecordContributionInput carries a logged payment toward a goal.
type RecordContributionInput struct {
	GoalID    uuid.UUID
	Amount    decimal.Decimal
	Date      core.Date
	Confirmed bool
}

// RecordContribution logs a contribution against a goal. Unconfirmed
// contributions are planned payments; they only count toward totals once
// confirmed.
func (s *GoalService) RecordContribution(ctx context.Context, in RecordContributionInput) (core.Contribution, error) {
	c := core.Contribution{
		ID:        uuid.New(),
		GoalID:    in.GoalID,
		Amount:    in.Amount,
		Date:      in.Date,
		Confirmed: in.Confirmed,
		CreatedAt: s.now().UTC(),
	}
	if err := c.Validate(); err != nil {
		return core.Contribution{}, err
	}

	if err := s.store.CreateContribution(ctx, c); err != nil {
		return core.Contribution{}, err
	}

	slog.InfoContext(ctx, "Contribution recorded",
		"contribution_id", c.ID,
		"goal_id", c.GoalID,
		"amount", c.Amount,
		"confirmed", c.Confirmed)
	return c, nil
}

// ConfirmContribution marks a planned contribution as actually paid.
func (s *GoalService) ConfirmContribution(ctx context.Context, id uuid.UUID) (core.Contribution, error) {
	c, err := s.store.ConfirmContribution(ctx, id)
	if err != nil {
		return core.Contribution{}, err
	}

	slog.InfoContext(ctx, "Contribution confirmed",
		"contribution_id", c.ID,
		"goal_id", c.GoalID,
		"amount", c.Amount)
	return c, nil
}

// Contributions lists a goal's contribution history ordered by date.
func (s *GoalService) Contributions(ctx context.Context, goalID uuid.UUID) ([]core.Contribution, error) {
	if _, err := s.store.GetGoal(ctx, goalID); err != nil {
		return nil, err
	}
	return s.store.ListContributions(ctx, goalID)
}

// Close releases the underlying store.
func (s *GoalService) Close() error {
	return s.store.Close()
}
