package services

import (
	"context"

	"github.com/google/uuid"

	"nestegg/internal/core"
)

// GoalStore is the persistence surface the service layer depends on. Both
// the SQLite repository and the in-memory store satisfy it.
type GoalStore interface {
	CreateGoal(ctx context.Context, g core.Goal) error
	GetGoal(ctx context.Context, id uuid.UUID) (core.Goal, error)
	ListGoals(ctx context.Context) ([]core.Goal, error)
	DeleteGoal(ctx context.Context, id uuid.UUID) error
	CreateContribution(ctx context.Context, c core.Contribution) error
	ConfirmContribution(ctx context.Context, id uuid.UUID) (core.Contribution, error)
	ListContributions(ctx context.Context, goalID uuid.UUID) ([]core.Contribution, error)
	Close() error
}

// StatusPublisher pushes goal status events to the message broker. Nil-able
// at the service level so the app still works without a broker configured.
type StatusPublisher interface {
	PublishGoalStatus(ctx context.Context, goalID uuid.UUID, goalName, status string, shortfall string) error
}
