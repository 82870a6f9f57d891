package analysis

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNoAnalysis means the user has not uploaded documents yet. Callers treat
// it as "nothing to report", not a failure.
var ErrNoAnalysis = errors.New("no analysis found")

const analysisType = "comprehensive_analysis"

type Repo struct {
	Pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{Pool: pool}
}

func (r *Repo) Insert(ctx context.Context, userID string, rec Recommendations) (string, error) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return "", err
	}

	var id string
	err = r.Pool.QueryRow(ctx,
		`INSERT INTO ai_analysis (user_id, analysis_type, recommendations)
		 VALUES ($1::uuid, $2, $3)
		 RETURNING id::text`,
		userID, analysisType, payload,
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

// Latest returns the newest comprehensive analysis for the user.
func (r *Repo) Latest(ctx context.Context, userID string) (*Recommendations, error) {
	var payload []byte
	err := r.Pool.QueryRow(ctx,
		`SELECT recommendations
		 FROM ai_analysis
		 WHERE user_id = $1::uuid AND analysis_type = $2
		 ORDER BY created_at DESC
		 LIMIT 1`,
		userID, analysisType,
	).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoAnalysis
	}
	if err != nil {
		return nil, err
	}

	var rec Recommendations
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// SpendingLimits returns the per-category monthly ceilings from the latest
// recommendation, keyed by category.
func (r *Repo) SpendingLimits(ctx context.Context, userID string) (map[string]float64, error) {
	rec, err := r.Latest(ctx, userID)
	if err != nil {
		return nil, err
	}
	return rec.BudgetAnalysis.SpendingLimits, nil
}
