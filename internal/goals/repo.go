package goals

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrGoalNotFound = errors.New("goal not found")

type Repo struct {
	Pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{Pool: pool}
}

const goalColumns = `id::text, user_id::text, goal_name, target_amount, current_amount, target_date,
	category, priority, monthly_contribution, auto_contribute, status, created_at, updated_at`

func scanGoal(row pgx.Row) (Goal, error) {
	var g Goal
	err := row.Scan(&g.ID, &g.UserID, &g.GoalName, &g.TargetAmount, &g.CurrentAmount, &g.TargetDate,
		&g.Category, &g.Priority, &g.MonthlyContribution, &g.AutoContribute, &g.Status, &g.CreatedAt, &g.UpdatedAt)
	return g, err
}

func (r *Repo) Create(ctx context.Context, userID string, in NewGoal) (Goal, error) {
	row := r.Pool.QueryRow(ctx,
		`INSERT INTO financial_goals
		   (user_id, goal_name, target_amount, current_amount, target_date, category, priority, monthly_contribution, auto_contribute, status)
		 VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, 'active')
		 RETURNING `+goalColumns,
		userID, in.GoalName, in.TargetAmount, in.CurrentAmount, in.TargetDate,
		in.Category, in.Priority, in.MonthlyContribution, in.AutoContribute,
	)
	return scanGoal(row)
}

func (r *Repo) Get(ctx context.Context, goalID string) (Goal, error) {
	row := r.Pool.QueryRow(ctx,
		`SELECT `+goalColumns+` FROM financial_goals WHERE id = $1::uuid`, goalID)
	g, err := scanGoal(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Goal{}, ErrGoalNotFound
	}
	return g, err
}

func (r *Repo) ListByUser(ctx context.Context, userID string) ([]Goal, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT `+goalColumns+`
		 FROM financial_goals
		 WHERE user_id = $1::uuid
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Goal, 0)
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// UpdateAmount sets the goal's current amount and status.
func (r *Repo) UpdateAmount(ctx context.Context, goalID string, currentAmount float64, status Status) error {
	_, err := r.Pool.Exec(ctx,
		`UPDATE financial_goals
		 SET current_amount = $2, status = $3, updated_at = now()
		 WHERE id = $1::uuid`,
		goalID, currentAmount, status,
	)
	return err
}

func (r *Repo) InsertContribution(ctx context.Context, goalID string, amount float64, typ ContributionType, note *string, at time.Time) error {
	_, err := r.Pool.Exec(ctx,
		`INSERT INTO goal_contributions (id, goal_id, amount, contribution_date, type, note)
		 VALUES ($1::uuid, $2::uuid, $3, $4, $5, $6)`,
		uuid.NewString(), goalID, amount, at, typ, note,
	)
	return err
}

// ListContributions returns a goal's contributions, newest first.
func (r *Repo) ListContributions(ctx context.Context, goalID string) ([]Contribution, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT id::text, goal_id::text, amount, contribution_date, type, note
		 FROM goal_contributions
		 WHERE goal_id = $1::uuid
		 ORDER BY contribution_date DESC`,
		goalID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Contribution, 0)
	for rows.Next() {
		var c Contribution
		if err := rows.Scan(&c.ID, &c.GoalID, &c.Amount, &c.Date, &c.Type, &c.Note); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
