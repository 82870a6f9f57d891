package alerts

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	Pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{Pool: pool}
}

// Upsert stores alerts keyed by their deterministic id.
func (r *Repo) Upsert(ctx context.Context, items []Alert) error {
	if len(items) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, a := range items {
		batch.Queue(
			`INSERT INTO budget_alerts
			   (id, user_id, category, current_spending, budget_limit, percentage, alert_type, message, is_read, created_at)
			 VALUES ($1, $2::uuid, $3, $4, $5, $6, $7, $8, $9, $10)
			 ON CONFLICT (id) DO UPDATE
			 SET current_spending = EXCLUDED.current_spending,
			     percentage = EXCLUDED.percentage,
			     alert_type = EXCLUDED.alert_type,
			     message = EXCLUDED.message`,
			a.ID, a.UserID, a.Category, a.CurrentSpending, a.BudgetLimit,
			a.Percentage, a.AlertType, a.Message, a.IsRead, a.CreatedAt,
		)
	}

	br := r.Pool.SendBatch(ctx, batch)
	defer br.Close()
	for range items {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repo) ListByUser(ctx context.Context, userID string, limit int) ([]Alert, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	rows, err := r.Pool.Query(ctx,
		`SELECT id, user_id::text, category, current_spending, budget_limit, percentage, alert_type, message, is_read, created_at
		 FROM budget_alerts
		 WHERE user_id = $1::uuid
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Alert, 0, limit)
	for rows.Next() {
		var a Alert
		if err := rows.Scan(&a.ID, &a.UserID, &a.Category, &a.CurrentSpending, &a.BudgetLimit,
			&a.Percentage, &a.AlertType, &a.Message, &a.IsRead, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *Repo) MarkRead(ctx context.Context, alertID string) error {
	_, err := r.Pool.Exec(ctx,
		`UPDATE budget_alerts SET is_read = TRUE WHERE id = $1`, alertID)
	return err
}

func (r *Repo) UnreadCount(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM budget_alerts WHERE user_id = $1::uuid AND NOT is_read`,
		userID,
	).Scan(&n)
	return n, err
}
