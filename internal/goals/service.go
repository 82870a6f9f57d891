package goals

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/finsight-app/finsight-backend/internal/money"
)

// stagnantAfter is how long a goal may go without contributions before the
// inactivity insight fires.
const stagnantAfter = 60 * 24 * time.Hour

const maxInsights = 5

// Store is the persistence surface the tracker needs. Satisfied by *Repo.
type Store interface {
	Create(ctx context.Context, userID string, in NewGoal) (Goal, error)
	Get(ctx context.Context, goalID string) (Goal, error)
	ListByUser(ctx context.Context, userID string) ([]Goal, error)
	UpdateAmount(ctx context.Context, goalID string, currentAmount float64, status Status) error
	InsertContribution(ctx context.Context, goalID string, amount float64, typ ContributionType, note *string, at time.Time) error
	ListContributions(ctx context.Context, goalID string) ([]Contribution, error)
}

type Service struct {
	store Store
	log   zerolog.Logger
	now   func() time.Time
}

func NewService(store Store, log zerolog.Logger) *Service {
	return &Service{store: store, log: log, now: time.Now}
}

func (s *Service) Create(ctx context.Context, userID string, in NewGoal) (Goal, error) {
	return s.store.Create(ctx, userID, in)
}

// List degrades to an empty slice on store failure.
func (s *Service) List(ctx context.Context, userID string) []Goal {
	goals, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("goals: failed to list goals")
		return []Goal{}
	}
	return goals
}

// RecordContribution adds amount to the goal and appends a ledger row. The
// goal update is the primary write: its failure fails the call. The ledger
// insert is secondary; if it fails the goal update stands and the gap is only
// logged. Crossing the target flips the goal to completed.
func (s *Service) RecordContribution(ctx context.Context, goalID string, amount float64, typ ContributionType, note *string) (Goal, error) {
	g, err := s.store.Get(ctx, goalID)
	if err != nil {
		return Goal{}, err
	}

	newAmount := g.CurrentAmount + amount
	status := g.Status
	if newAmount >= g.TargetAmount {
		status = StatusCompleted
	}

	if err := s.store.UpdateAmount(ctx, goalID, newAmount, status); err != nil {
		return Goal{}, fmt.Errorf("update goal: %w", err)
	}

	if err := s.store.InsertContribution(ctx, goalID, amount, typ, note, s.now()); err != nil {
		s.log.Error().Err(err).Str("goal_id", goalID).
			Msg("goals: contribution recorded against goal but ledger insert failed")
	}

	g.CurrentAmount = newAmount
	g.Status = status
	return g, nil
}

func (s *Service) Progress(ctx context.Context, goalID string) (*Progress, error) {
	g, err := s.store.Get(ctx, goalID)
	if err != nil {
		return nil, err
	}
	history, err := s.store.ListContributions(ctx, goalID)
	if err != nil {
		return nil, err
	}
	p := ComputeProgress(g, history, s.now())
	return &p, nil
}

// Insights walks the user's active goals in listing order and derives at most
// one pacing insight plus, independently, an inactivity insight per goal.
// The combined set is truncated at maxInsights without ranking.
func (s *Service) Insights(ctx context.Context, userID string) []Insight {
	goals, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("goals: failed to load goals for insights")
		return []Insight{}
	}

	now := s.now()
	insights := make([]Insight, 0)

	for _, g := range goals {
		if g.Status != StatusActive {
			continue
		}

		history, err := s.store.ListContributions(ctx, g.ID)
		if err != nil {
			s.log.Error().Err(err).Str("goal_id", g.ID).Msg("goals: failed to load contributions")
			continue
		}
		p := ComputeProgress(g, history, now)

		if in := pacingInsight(g, p); in != nil {
			insights = append(insights, *in)
		}
		if in := stagnationInsight(g, p, history, now); in != nil {
			insights = append(insights, *in)
		}
	}

	if len(insights) > maxInsights {
		insights = insights[:maxInsights]
	}
	return insights
}

func pacingInsight(g Goal, p Progress) *Insight {
	switch {
	case p.ProgressPercentage >= 100:
		return &Insight{
			GoalID:         g.ID,
			Type:           InsightOnTrack,
			Title:          "Goal Completed: " + g.GoalName,
			Message:        fmt.Sprintf("Congratulations! You've reached your target of %s.", money.FormatINR(g.TargetAmount)),
			Recommendation: "Consider setting a new financial goal or increasing your target for this goal.",
			Impact:         "positive",
		}
	case p.OnTrack && p.ProgressPercentage > 80:
		return &Insight{
			GoalID: g.ID,
			Type:   InsightOnTrack,
			Title:  "Almost There: " + g.GoalName,
			Message: fmt.Sprintf("You're %.0f%% of the way to your goal! Only %s remaining.",
				p.ProgressPercentage, money.FormatINR(p.RemainingAmount)),
			Recommendation: "Keep up the excellent progress! You're on track to meet your target.",
			Impact:         "positive",
		}
	case !p.OnTrack:
		return &Insight{
			GoalID: g.ID,
			Type:   InsightBehindSchedule,
			Title:  "Behind Schedule: " + g.GoalName,
			Message: fmt.Sprintf("You need to contribute %s monthly to reach your goal on time.",
				money.FormatINR(p.RequiredMonthlyContribution)),
			Recommendation: "Consider increasing your monthly contribution or extending your target date.",
			Impact:         "negative",
		}
	}
	return nil
}

func stagnationInsight(g Goal, p Progress, history []Contribution, now time.Time) *Insight {
	if p.ProgressPercentage >= 100 {
		return nil
	}
	cutoff := now.Add(-stagnantAfter)
	for _, c := range history {
		if !c.Date.Before(cutoff) {
			return nil
		}
	}
	return &Insight{
		GoalID:         g.ID,
		Type:           InsightAdjustmentNeeded,
		Title:          "Inactive Goal: " + g.GoalName,
		Message:        "No contributions made in the last 2 months.",
		Recommendation: "Consider making a contribution or adjusting your goal if priorities have changed.",
		Impact:         "negative",
	}
}

// Summary aggregates counts and overall progress over active goals only.
// A zero active target yields zero progress, never a division by zero.
func (s *Service) Summary(ctx context.Context, userID string) Summary {
	goals, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("goals: failed to load goals for summary")
		return Summary{}
	}

	var out Summary
	out.TotalGoals = len(goals)
	for _, g := range goals {
		switch g.Status {
		case StatusActive:
			out.ActiveGoals++
			out.TotalTargetAmount += g.TargetAmount
			out.TotalCurrentAmount += g.CurrentAmount
		case StatusCompleted:
			out.CompletedGoals++
		}
	}
	if out.TotalTargetAmount > 0 {
		out.OverallProgress = out.TotalCurrentAmount / out.TotalTargetAmount * 100
	}
	return out
}

// ProcessAutoContributions records the configured monthly contribution for
// each active auto-contribute goal and returns the total contributed. Meant
// to be invoked by an external scheduler.
func (s *Service) ProcessAutoContributions(ctx context.Context, userID string) float64 {
	goals, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("goals: failed to load goals for auto-contribution")
		return 0
	}

	note := "Auto-contribution"
	total := 0.0
	for _, g := range goals {
		if !g.AutoContribute || g.Status != StatusActive || g.MonthlyContribution <= 0 {
			continue
		}
		if _, err := s.RecordContribution(ctx, g.ID, g.MonthlyContribution, ContribAutomatic, &note); err != nil {
			s.log.Error().Err(err).Str("goal_id", g.ID).Msg("goals: auto-contribution failed")
			continue
		}
		total += g.MonthlyContribution
	}
	return total
}
