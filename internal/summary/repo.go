package summary

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	DB *pgxpool.Pool
}

type Summary struct {
	Month        string  `json:"month,omitempty"` // empty means all time
	TotalIncome  float64 `json:"total_income"`
	TotalExpense float64 `json:"total_expense"`
	Savings      float64 `json:"savings"`
	Currency     string  `json:"currency"`
}

// GetByUser sums income and expense rows, optionally restricted to a YYYY-MM
// month. Expense amounts are summed by absolute value; statement parses can
// carry them negative.
func (r Repo) GetByUser(ctx context.Context, userID string, month string) (Summary, error) {
	var income, expense float64

	if month != "" {
		err := r.DB.QueryRow(ctx, `
			SELECT
			  COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0)::float8,
			  COALESCE(SUM(ABS(amount)) FILTER (WHERE type = 'expense'), 0)::float8
			FROM transactions
			WHERE user_id = $1
			  AND to_char(transaction_date, 'YYYY-MM') = $2
		`, userID, month).Scan(&income, &expense)
		if err != nil {
			return Summary{}, err
		}
	} else {
		err := r.DB.QueryRow(ctx, `
			SELECT
			  COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0)::float8,
			  COALESCE(SUM(ABS(amount)) FILTER (WHERE type = 'expense'), 0)::float8
			FROM transactions
			WHERE user_id = $1
		`, userID).Scan(&income, &expense)
		if err != nil {
			return Summary{}, err
		}
	}

	return Summary{
		Month:        month,
		TotalIncome:  income,
		TotalExpense: expense,
		Savings:      income - expense,
		Currency:     "INR",
	}, nil
}
