package transactions

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	Pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{Pool: pool}
}

// InsertBatch stores parsed transactions for a user in one round trip.
func (r *Repo) InsertBatch(ctx context.Context, userID string, txns []NewTransaction) error {
	if len(txns) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, t := range txns {
		category := t.Category
		if category == "" {
			category = "others"
		}
		batch.Queue(
			`INSERT INTO transactions (user_id, amount, category, description, transaction_date, type)
			 VALUES ($1::uuid, $2, $3, NULLIF($4,''), $5, $6)`,
			userID, t.Amount, category, t.Description, t.Date, t.Type,
		)
	}

	br := r.Pool.SendBatch(ctx, batch)
	defer br.Close()
	for range txns {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// ListLatest returns the most recent transactions for a user.
func (r *Repo) ListLatest(ctx context.Context, userID string, limit int) ([]Transaction, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	rows, err := r.Pool.Query(ctx,
		`SELECT id::text, user_id::text, amount, category, description, transaction_date, type, created_at
		 FROM transactions
		 WHERE user_id = $1::uuid
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// ListExpensesForMonth returns expense rows whose transaction_date falls in
// the calendar month containing ref.
func (r *Repo) ListExpensesForMonth(ctx context.Context, userID string, ref time.Time) ([]Transaction, error) {
	start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	rows, err := r.Pool.Query(ctx,
		`SELECT id::text, user_id::text, amount, category, description, transaction_date, type, created_at
		 FROM transactions
		 WHERE user_id = $1::uuid
		   AND type = 'expense'
		   AND transaction_date >= $2
		   AND transaction_date < $3`,
		userID, start, end,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// ListBetween returns all transactions (both types) in [from, to], ordered by
// transaction date ascending. Used by the trend analyzer.
func (r *Repo) ListBetween(ctx context.Context, userID string, from, to time.Time) ([]Transaction, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT id::text, user_id::text, amount, category, description, transaction_date, type, created_at
		 FROM transactions
		 WHERE user_id = $1::uuid
		   AND transaction_date >= $2
		   AND transaction_date <= $3
		 ORDER BY transaction_date ASC`,
		userID, from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func scanTransactions(rows pgx.Rows) ([]Transaction, error) {
	out := make([]Transaction, 0)
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Amount, &t.Category, &t.Description, &t.Date, &t.Type, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
