// Package storage persists goals and contributions in SQLite. Only
// source-of-truth fields are stored; projection outputs are recomputed on
// every read and never written back.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"nestegg/internal/core"

	_ "modernc.org/sqlite"
)

const dateLayout = "2006-01-02"

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) CreateGoal(ctx context.Context, g core.Goal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO goals (id, name, target_amount, target_date, initial_amount, monthly_pledge, annual_rate_percent, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID.String(),
		g.Name,
		g.TargetAmount.String(),
		g.TargetDate.Format(dateLayout),
		g.InitialAmount.String(),
		g.MonthlyPledge.String(),
		g.AnnualRatePercent.String(),
		g.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert goal: %w", err)
	}

	slog.InfoContext(ctx, "Goal saved",
		"goal_id", g.ID,
		"goal_name", g.Name,
		"target_amount", g.TargetAmount)
	return nil
}

func (r *SQLiteRepository) GetGoal(ctx context.Context, id uuid.UUID) (core.Goal, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, target_amount, target_date, initial_amount, monthly_pledge, annual_rate_percent, created_at
		FROM goals WHERE id = ?`, id.String())

	g, err := scanGoal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Goal{}, core.ErrGoalNotFound
	}
	if err != nil {
		return core.Goal{}, fmt.Errorf("get goal %s: %w", id, err)
	}
	return g, nil
}

func (r *SQLiteRepository) ListGoals(ctx context.Context) ([]core.Goal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, target_amount, target_date, initial_amount, monthly_pledge, annual_rate_percent, created_at
		FROM goals ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var goals []core.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate goals: %w", err)
	}
	return goals, nil
}

func (r *SQLiteRepository) DeleteGoal(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("delete goal %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete goal %s: %w", id, err)
	}
	if affected == 0 {
		return core.ErrGoalNotFound
	}

	// Contributions cascade via the FK, but modernc sqlite connections
	// don't enforce them unless asked, so clean up explicitly.
	if _, err := r.db.ExecContext(ctx, `DELETE FROM contributions WHERE goal_id = ?`, id.String()); err != nil {
		return fmt.Errorf("delete contributions for goal %s: %w", id, err)
	}

	slog.InfoContext(ctx, "Goal deleted", "goal_id", id)
	return nil
}

func (r *SQLiteRepository) CreateContribution(ctx context.Context, c core.Contribution) error {
	// Contributions must reference an existing goal.
	if _, err := r.GetGoal(ctx, c.GoalID); err != nil {
		return err
	}

	confirmed := 0
	if c.Confirmed {
		confirmed = 1
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO contributions (id, goal_id, amount, date, confirmed, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID.String(),
		c.GoalID.String(),
		c.Amount.String(),
		c.Date.Format(dateLayout),
		confirmed,
		c.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert contribution: %w", err)
	}

	slog.InfoContext(ctx, "Contribution saved",
		"contribution_id", c.ID,
		"goal_id", c.GoalID,
		"amount", c.Amount,
		"confirmed", c.Confirmed)
	return nil
}

func (r *SQLiteRepository) ConfirmContribution(ctx context.Context, id uuid.UUID) (core.Contribution, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE contributions SET confirmed = 1 WHERE id = ?`, id.String())
	if err != nil {
		return core.Contribution{}, fmt.Errorf("confirm contribution %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return core.Contribution{}, fmt.Errorf("confirm contribution %s: %w", id, err)
	}
	if affected == 0 {
		return core.Contribution{}, core.ErrContributionNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, goal_id, amount, date, confirmed, created_at
		FROM contributions WHERE id = ?`, id.String())
	c, err := scanContribution(row)
	if err != nil {
		return core.Contribution{}, fmt.Errorf("reload contribution %s: %w", id, err)
	}
	return c, nil
}

func (r *SQLiteRepository) ListContributions(ctx context.Context, goalID uuid.UUID) ([]core.Contribution, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, goal_id, amount, date, confirmed, created_at
		FROM contributions WHERE goal_id = ? ORDER BY date, created_at`, goalID.String())
	if err != nil {
		return nil, fmt.Errorf("list contributions for goal %s: %w", goalID, err)
	}
	defer rows.Close()

	var contributions []core.Contribution
	for rows.Next() {
		c, err := scanContribution(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contribution: %w", err)
		}
		contributions = append(contributions, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contributions: %w", err)
	}
	return contributions, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGoal(row rowScanner) (core.Goal, error) {
	var (
		g                                core.Goal
		id, target, targetDate           string
		initial, pledge, rate, createdAt string
	)
	if err := row.Scan(&id, &g.Name, &target, &targetDate, &initial, &pledge, &rate, &createdAt); err != nil {
		return core.Goal{}, err
	}

	var err error
	if g.ID, err = uuid.Parse(id); err != nil {
		return core.Goal{}, fmt.Errorf("parse goal id: %w", err)
	}
	if g.TargetAmount, err = decimal.NewFromString(target); err != nil {
		return core.Goal{}, fmt.Errorf("parse target amount: %w", err)
	}
	if g.InitialAmount, err = decimal.NewFromString(initial); err != nil {
		return core.Goal{}, fmt.Errorf("parse initial amount: %w", err)
	}
	if g.MonthlyPledge, err = decimal.NewFromString(pledge); err != nil {
		return core.Goal{}, fmt.Errorf("parse monthly pledge: %w", err)
	}
	if g.AnnualRatePercent, err = decimal.NewFromString(rate); err != nil {
		return core.Goal{}, fmt.Errorf("parse annual rate: %w", err)
	}
	td, err := time.Parse(dateLayout, targetDate)
	if err != nil {
		return core.Goal{}, fmt.Errorf("parse target date: %w", err)
	}
	g.TargetDate = core.Date{Time: td}
	if g.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return core.Goal{}, fmt.Errorf("parse created at: %w", err)
	}
	return g, nil
}

func scanContribution(row rowScanner) (core.Contribution, error) {
	var (
		c                        core.Contribution
		id, goalID, amount, date string
		confirmed                int
		createdAt                string
	)
	if err := row.Scan(&id, &goalID, &amount, &date, &confirmed, &createdAt); err != nil {
		return core.Contribution{}, err
	}

	var err error
	if c.ID, err = uuid.Parse(id); err != nil {
		return core.Contribution{}, fmt.Errorf("parse contribution id: %w", err)
	}
	if c.GoalID, err = uuid.Parse(goalID); err != nil {
		return core.Contribution{}, fmt.Errorf("parse goal id: %w", err)
	}
	if c.Amount, err = decimal.NewFromString(amount); err != nil {
		return core.Contribution{}, fmt.Errorf("parse amount: %w", err)
	}
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return core.Contribution{}, fmt.Errorf("parse date: %w", err)
	}
	c.Date = core.Date{Time: d}
	c.Confirmed = confirmed != 0
	if c.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return core.Contribution{}, fmt.Errorf("parse created at: %w", err)
	}
	return c, nil
}
