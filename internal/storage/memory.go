package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"nestegg/internal/core"
)

// MemoryRepository is an in-memory store with the same behavior as the
// SQLite repository. It backs tests and local runs without a database file.
type MemoryRepository struct {
	mu            sync.RWMutex
	goals         map[uuid.UUID]core.Goal
	contributions map[uuid.UUID]core.Contribution
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		goals:         make(map[uuid.UUID]core.Goal),
		contributions: make(map[uuid.UUID]core.Contribution),
	}
}

func (m *MemoryRepository) Close() error { return nil }

func (m *MemoryRepository) CreateGoal(_ context.Context, g core.Goal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.goals[g.ID] = g
	return nil
}

func (m *MemoryRepository) GetGoal(_ context.Context, id uuid.UUID) (core.Goal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.goals[id]
	if !ok {
		return core.Goal{}, core.ErrGoalNotFound
	}
	return g, nil
}

func (m *MemoryRepository) ListGoals(_ context.Context) ([]core.Goal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	goals := make([]core.Goal, 0, len(m.goals))
	for _, g := range m.goals {
		goals = append(goals, g)
	}
	sort.Slice(goals, func(i, j int) bool {
		return goals[i].CreatedAt.Before(goals[j].CreatedAt)
	})
	return goals, nil
}

func (m *MemoryRepository) DeleteGoal(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.goals[id]; !ok {
		return core.ErrGoalNotFound
	}
	delete(m.goals, id)
	for cid, c := range m.contributions {
		if c.GoalID == id {
			delete(m.contributions, cid)
		}
	}
	return nil
}

func (m *MemoryRepository) CreateContribution(_ context.Context, c core.Contribution) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.goals[c.GoalID]; !ok {
		return core.ErrGoalNotFound
	}
	m.contributions[c.ID] = c
	return nil
}

func (m *MemoryRepository) ConfirmContribution(_ context.Context, id uuid.UUID) (core.Contribution, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.contributions[id]
	if !ok {
		return core.Contribution{}, core.ErrContributionNotFound
	}
	c.Confirmed = true
	m.contributions[id] = c
	return c, nil
}

func (m *MemoryRepository) ListContributions(_ context.Context, goalID uuid.UUID) ([]core.Contribution, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []core.Contribution
	for _, c := range m.contributions {
		if c.GoalID == goalID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date.Time)
	})
	return out, nil
}
