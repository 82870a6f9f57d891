package trends

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/finsight-app/finsight-backend/internal/analysis"
	"github.com/finsight-app/finsight-backend/internal/transactions"
)

// defaultMonthsBack is the analysis window when the caller does not pick one.
const defaultMonthsBack = 6

// TransactionSource provides the transactions inside a date range.
type TransactionSource interface {
	ListBetween(ctx context.Context, userID string, from, to time.Time) ([]transactions.Transaction, error)
}

// LimitSource provides the latest per-category budget limits.
type LimitSource interface {
	SpendingLimits(ctx context.Context, userID string) (map[string]float64, error)
}

// Service computes historical spending trends. All reads degrade to empty
// results; trend widgets are advisory and must not break the dashboard.
type Service struct {
	txns   TransactionSource
	limits LimitSource
	log    zerolog.Logger
	now    func() time.Time
}

func NewService(txns TransactionSource, limits LimitSource, log zerolog.Logger) *Service {
	return &Service{txns: txns, limits: limits, log: log, now: time.Now}
}

// Monthly returns per-month aggregates for the trailing window.
func (s *Service) Monthly(ctx context.Context, userID string, monthsBack int) []MonthlySpending {
	if monthsBack <= 0 {
		monthsBack = defaultMonthsBack
	}
	end := s.now()
	start := end.AddDate(0, -monthsBack, 0)

	txns, err := s.txns.ListBetween(ctx, userID, start, end)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("trends: failed to load transactions")
		return []MonthlySpending{}
	}
	return BucketMonthly(txns)
}

// Categories returns the per-category trend series for the trailing window.
func (s *Service) Categories(ctx context.Context, userID string, monthsBack int) []TrendData {
	return CategoryTrends(s.Monthly(ctx, userID, monthsBack))
}

// Insights runs the pattern heuristics over the default window: seasonal
// highs, category spikes, savings shifts and budget deviation.
func (s *Service) Insights(ctx context.Context, userID string) []Insight {
	monthly := s.Monthly(ctx, userID, defaultMonthsBack)
	categoryTrends := CategoryTrends(monthly)

	out := make([]Insight, 0)
	if in := seasonalInsight(monthly); in != nil {
		out = append(out, *in)
	}
	out = append(out, categorySpikeInsights(categoryTrends)...)
	if in := savingsInsight(monthly); in != nil {
		out = append(out, *in)
	}

	limits, err := s.limits.SpendingLimits(ctx, userID)
	if err != nil {
		if !errors.Is(err, analysis.ErrNoAnalysis) {
			s.log.Error().Err(err).Str("user_id", userID).Msg("trends: failed to load budget limits")
		}
		return out
	}
	if in := budgetDeviationInsight(monthly, limits); in != nil {
		out = append(out, *in)
	}
	return out
}

// Forecast predicts next month's spend per category.
func (s *Service) Forecast(ctx context.Context, userID string) []Forecast {
	return ForecastFromTrends(s.Categories(ctx, userID, defaultMonthsBack))
}
