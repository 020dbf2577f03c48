package core

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func validGoal() Goal {
	return Goal{
		ID:                uuid.New(),
		Name:              "House deposit",
		TargetAmount:      dec("25000"),
		TargetDate:        NewDate(2026, 6, 1),
		InitialAmount:     dec("2000"),
		MonthlyPledge:     dec("400"),
		AnnualRatePercent: dec("3.5"),
		CreatedAt:         time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC),
	}
}

func TestGoalValidate(t *testing.T) {
	if err := validGoal().Validate(); err != nil {
		t.Fatalf("expected valid goal, got %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(*Goal)
		wantErr error
	}{
		{"empty name", func(g *Goal) { g.Name = "   " }, ErrEmptyName},
		{"zero target amount", func(g *Goal) { g.TargetAmount = decimal.Zero }, ErrInvalidTargetAmount},
		{"negative target amount", func(g *Goal) { g.TargetAmount = dec("-5") }, ErrInvalidTargetAmount},
		{"negative initial amount", func(g *Goal) { g.InitialAmount = dec("-1") }, ErrNegativeInitialAmount},
		{"negative pledge", func(g *Goal) { g.MonthlyPledge = dec("-100") }, ErrNegativePledge},
		{"rate above 100", func(g *Goal) { g.AnnualRatePercent = dec("101") }, ErrRateOutOfRange},
		{"negative rate", func(g *Goal) { g.AnnualRatePercent = dec("-1") }, ErrRateOutOfRange},
		{"zero target date", func(g *Goal) { g.TargetDate = Date{} }, ErrInvalidDate},
		{"target date before creation", func(g *Goal) { g.TargetDate = NewDate(2024, 1, 1) }, ErrInvalidTargetDate},
		{"target date equals creation day", func(g *Goal) {
			g.CreatedAt = time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
			g.TargetDate = NewDate(2024, 5, 10)
		}, ErrInvalidTargetDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := validGoal()
			tt.mutate(&g)
			err := g.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && err != tt.wantErr {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	t.Run("zero pledge and zero rate are valid inputs", func(t *testing.T) {
		// Mathematically unreachable goals are representable, not invalid.
		g := validGoal()
		g.MonthlyPledge = decimal.Zero
		g.AnnualRatePercent = decimal.Zero
		if err := g.Validate(); err != nil {
			t.Errorf("expected valid, got %v", err)
		}
	})
}

func TestContributionValidate(t *testing.T) {
	good := Contribution{
		ID:     uuid.New(),
		GoalID: uuid.New(),
		Amount: dec("150"),
		Date:   NewDate(2024, 6, 1),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected valid contribution, got %v", err)
	}

	bads := []Contribution{
		{ID: uuid.New(), Amount: dec("1"), Date: NewDate(2024, 6, 1)},                     // no goal
		{ID: uuid.New(), GoalID: uuid.New(), Amount: decimal.Zero, Date: NewDate(2024, 6, 1)}, // zero amount
		{ID: uuid.New(), GoalID: uuid.New(), Amount: dec("-1"), Date: NewDate(2024, 6, 1)},    // negative
		{ID: uuid.New(), GoalID: uuid.New(), Amount: dec("1")},                                // zero date
	}
	for i, c := range bads {
		if err := c.Validate(); err == nil {
			t.Errorf("case %d expected error", i)
		}
	}
}
