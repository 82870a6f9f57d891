package alerts

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/finsight-app/finsight-backend/internal/analysis"
	"github.com/finsight-app/finsight-backend/internal/transactions"
)

// TransactionSource provides the current month's expense rows.
type TransactionSource interface {
	ListExpensesForMonth(ctx context.Context, userID string, ref time.Time) ([]transactions.Transaction, error)
}

// LimitSource provides the latest per-category budget limits.
type LimitSource interface {
	SpendingLimits(ctx context.Context, userID string) (map[string]float64, error)
}

// Store persists alerts. Satisfied by *Repo.
type Store interface {
	Upsert(ctx context.Context, items []Alert) error
	ListByUser(ctx context.Context, userID string, limit int) ([]Alert, error)
	MarkRead(ctx context.Context, alertID string) error
	UnreadCount(ctx context.Context, userID string) (int, error)
}

// Service evaluates budget alerts. Read failures degrade to empty results;
// alerts are advisory, and the dashboard must keep rendering.
type Service struct {
	txns   TransactionSource
	limits LimitSource
	store  Store
	log    zerolog.Logger
	now    func() time.Time
}

func NewService(txns TransactionSource, limits LimitSource, store Store, log zerolog.Logger) *Service {
	return &Service{txns: txns, limits: limits, store: store, log: log, now: time.Now}
}

// Check evaluates the user's current-month spend against the latest limits
// and persists any alert at or past the warning threshold. Returns the newly
// qualifying alerts; on any upstream failure it returns an empty slice.
func (s *Service) Check(ctx context.Context, userID string) []Alert {
	now := s.now()

	expenses, err := s.txns.ListExpensesForMonth(ctx, userID, now)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("alerts: failed to load transactions")
		return []Alert{}
	}

	limits, err := s.limits.SpendingLimits(ctx, userID)
	if err != nil {
		if !errors.Is(err, analysis.ErrNoAnalysis) {
			s.log.Error().Err(err).Str("user_id", userID).Msg("alerts: failed to load budget limits")
		}
		return []Alert{}
	}

	spending := SpendingByCategory(expenses)

	out := make([]Alert, 0)
	for category, limit := range limits {
		if a := buildAlert(userID, category, spending[category], limit, now); a != nil {
			out = append(out, *a)
		}
	}

	if len(out) > 0 {
		if err := s.store.Upsert(ctx, out); err != nil {
			s.log.Error().Err(err).Str("user_id", userID).Msg("alerts: failed to store alerts")
		}
	}
	return out
}

// CheckCategory re-evaluates a single category, intended to run right after a
// new transaction lands. Returns nil when no limit exists or the spend is
// below the warning threshold.
func (s *Service) CheckCategory(ctx context.Context, userID, category string) *Alert {
	now := s.now()

	expenses, err := s.txns.ListExpensesForMonth(ctx, userID, now)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("alerts: failed to load transactions")
		return nil
	}

	limits, err := s.limits.SpendingLimits(ctx, userID)
	if err != nil {
		return nil
	}
	limit, ok := limits[category]
	if !ok {
		return nil
	}

	a := buildAlert(userID, category, SpendingByCategory(expenses)[category], limit, now)
	if a == nil {
		return nil
	}
	if err := s.store.Upsert(ctx, []Alert{*a}); err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("alerts: failed to store alert")
	}
	return a
}

// List returns recent alerts, newest first. Failures degrade to empty.
func (s *Service) List(ctx context.Context, userID string, limit int) []Alert {
	items, err := s.store.ListByUser(ctx, userID, limit)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("alerts: failed to list alerts")
		return []Alert{}
	}
	return items
}

func (s *Service) MarkRead(ctx context.Context, alertID string) error {
	return s.store.MarkRead(ctx, alertID)
}

// UnreadCount degrades to zero on failure.
func (s *Service) UnreadCount(ctx context.Context, userID string) int {
	n, err := s.store.UnreadCount(ctx, userID)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("alerts: failed to count unread")
		return 0
	}
	return n
}
