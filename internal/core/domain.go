package core

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusOnTrack   GoalStatus = "on_track"
	StatusAhead     GoalStatus = "ahead"
	StatusBehind    GoalStatus = "behind"
	StatusCompleted GoalStatus = "completed"
)

type (
	// GoalStatus classifies a goal's progress relative to its pledge
	// schedule. It is recomputed on every read, never stored.
	GoalStatus string

	Date struct {
		time.Time
	}

	// Goal holds the source-of-truth parameters of a savings goal.
	// Everything derived from them (required payment, completion date,
	// status) lives in GoalWithCalculations and is recomputed on demand.
	Goal struct {
		ID                uuid.UUID
		Name              string
		TargetAmount      decimal.Decimal
		TargetDate        Date
		InitialAmount     decimal.Decimal
		MonthlyPledge     decimal.Decimal
		AnnualRatePercent decimal.Decimal
		CreatedAt         time.Time
	}

	// Contribution is a single logged payment toward a goal. Only
	// confirmed contributions count toward actual totals.
	Contribution struct {
		ID        uuid.UUID
		GoalID    uuid.UUID
		Amount    decimal.Decimal
		Date      Date
		Confirmed bool
		CreatedAt time.Time
	}

	// GoalWithCalculations is a goal together with every derived value
	// the display layer needs.
	GoalWithCalculations struct {
		Goal                    Goal
		CurrentTotal            decimal.Decimal
		ProgressPercent         decimal.Decimal
		RequiredMonthlyPayment  decimal.Decimal
		ProjectedCompletionDate Date
		ProjectedTotal          decimal.Decimal
		ProjectedInterest       decimal.Decimal
		Status                  GoalStatus
	}
)

var (
	ErrEmptyName             = errors.New("empty goal name")
	ErrInvalidTargetAmount   = errors.New("target amount must be positive")
	ErrInvalidTargetDate     = errors.New("target date must be after creation date")
	ErrNegativeInitialAmount = errors.New("initial amount cannot be negative")
	ErrNegativePledge        = errors.New("monthly pledge cannot be negative")
	ErrRateOutOfRange        = errors.New("annual rate must be between 0 and 100")
	ErrInvalidContribution   = errors.New("contribution amount must be positive")
	ErrInvalidDate           = errors.New("invalid date")

	ErrGoalNotFound         = errors.New("goal not found")
	ErrContributionNotFound = errors.New("contribution not found")
)

// NewDate creates a new Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a timestamp to its calendar date in UTC.
func DateOf(t time.Time) Date {
	u := t.UTC()
	return NewDate(u.Year(), int(u.Month()), u.Day())
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month.
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year.
func (d Date) Year() int {
	return d.Time.Year()
}

var hundred = decimal.NewFromInt(100)

// Validate checks the goal parameters once at the boundary. The
// calculation functions assume a validated goal and do not re-check.
func (g Goal) Validate() error {
	if len(strings.TrimSpace(g.Name)) == 0 {
		return ErrEmptyName
	}
	if len(g.Name) > 200 {
		return errors.New("goal name too long (max 200 characters)")
	}
	if !g.TargetAmount.IsPositive() {
		return ErrInvalidTargetAmount
	}
	if g.InitialAmount.IsNegative() {
		return ErrNegativeInitialAmount
	}
	if g.MonthlyPledge.IsNegative() {
		return ErrNegativePledge
	}
	if g.AnnualRatePercent.IsNegative() || g.AnnualRatePercent.GreaterThan(hundred) {
		return ErrRateOutOfRange
	}
	if err := g.TargetDate.Validate(); err != nil {
		return err
	}
	if g.CreatedAt.IsZero() {
		return errors.New("creation timestamp cannot be zero")
	}
	if !g.TargetDate.After(g.CreatedAt) {
		return ErrInvalidTargetDate
	}
	return nil
}

func (c Contribution) Validate() error {
	if c.GoalID == uuid.Nil {
		return errors.New("contribution must reference a goal")
	}
	if !c.Amount.IsPositive() {
		return ErrInvalidContribution
	}
	if err := c.Date.Validate(); err != nil {
		return err
	}
	return nil
}
