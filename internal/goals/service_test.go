package goals

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type memStore struct {
	goals         map[string]Goal
	contributions map[string][]Contribution

	listErr          error
	updateErr        error
	contributionErr  error
	contributionRows int
}

func newMemStore() *memStore {
	return &memStore{
		goals:         map[string]Goal{},
		contributions: map[string][]Contribution{},
	}
}

func (m *memStore) Create(_ context.Context, userID string, in NewGoal) (Goal, error) {
	g := Goal{
		ID:            "goal-" + in.GoalName,
		UserID:        userID,
		GoalName:      in.GoalName,
		TargetAmount:  in.TargetAmount,
		CurrentAmount: in.CurrentAmount,
		TargetDate:    in.TargetDate,
		Status:        StatusActive,
	}
	m.goals[g.ID] = g
	return g, nil
}

func (m *memStore) Get(_ context.Context, goalID string) (Goal, error) {
	g, ok := m.goals[goalID]
	if !ok {
		return Goal{}, ErrGoalNotFound
	}
	return g, nil
}

func (m *memStore) ListByUser(_ context.Context, userID string) ([]Goal, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []Goal
	for _, id := range sortedIDs(m.goals) {
		if m.goals[id].UserID == userID {
			out = append(out, m.goals[id])
		}
	}
	return out, nil
}

func (m *memStore) UpdateAmount(_ context.Context, goalID string, currentAmount float64, status Status) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	g := m.goals[goalID]
	g.CurrentAmount = currentAmount
	g.Status = status
	m.goals[goalID] = g
	return nil
}

func (m *memStore) InsertContribution(_ context.Context, goalID string, amount float64, typ ContributionType, note *string, at time.Time) error {
	if m.contributionErr != nil {
		return m.contributionErr
	}
	m.contributionRows++
	m.contributions[goalID] = append([]Contribution{{
		GoalID: goalID, Amount: amount, Type: typ, Note: note, Date: at,
	}}, m.contributions[goalID]...)
	return nil
}

func (m *memStore) ListContributions(_ context.Context, goalID string) ([]Contribution, error) {
	return m.contributions[goalID], nil
}

func sortedIDs(goals map[string]Goal) []string {
	ids := make([]string, 0, len(goals))
	for id := range goals {
		ids = append(ids, id)
	}
	for i := range ids {
		for j := i + 1; j < len(ids); j++ {
			if ids[j] < ids[i] {
				ids[i], ids[j] = ids[j], ids[i]
			}
		}
	}
	return ids
}

func newTestService(store Store) *Service {
	s := NewService(store, zerolog.Nop())
	s.now = func() time.Time { return now }
	return s
}

func TestRecordContributionCompletesGoal(t *testing.T) {
	store := newMemStore()
	store.goals["g1"] = Goal{ID: "g1", UserID: "u1", TargetAmount: 1000, CurrentAmount: 900, Status: StatusActive}
	svc := newTestService(store)

	g, err := svc.RecordContribution(context.Background(), "g1", 150, ContribManual, nil)
	if err != nil {
		t.Fatalf("RecordContribution: %v", err)
	}
	if g.CurrentAmount != 1050 {
		t.Errorf("current = %v, want 1050 (no clamping of the stored amount)", g.CurrentAmount)
	}
	if g.Status != StatusCompleted {
		t.Errorf("status = %q, want completed", g.Status)
	}
	if stored := store.goals["g1"]; stored.CurrentAmount != 1050 || stored.Status != StatusCompleted {
		t.Errorf("stored goal = %+v, want amount 1050 and completed", stored)
	}
	if store.contributionRows != 1 {
		t.Errorf("contribution rows = %d, want 1", store.contributionRows)
	}
}

func TestRecordContributionUpdateFailureFailsCall(t *testing.T) {
	store := newMemStore()
	store.goals["g1"] = Goal{ID: "g1", TargetAmount: 1000, CurrentAmount: 100, Status: StatusActive}
	store.updateErr = errors.New("db down")
	svc := newTestService(store)

	if _, err := svc.RecordContribution(context.Background(), "g1", 50, ContribManual, nil); err == nil {
		t.Fatal("expected error when the goal update fails")
	}
	if store.contributionRows != 0 {
		t.Errorf("contribution rows = %d, want 0 after failed goal update", store.contributionRows)
	}
}

func TestRecordContributionLedgerFailureTolerated(t *testing.T) {
	store := newMemStore()
	store.goals["g1"] = Goal{ID: "g1", TargetAmount: 1000, CurrentAmount: 100, Status: StatusActive}
	store.contributionErr = errors.New("db down")
	svc := newTestService(store)

	g, err := svc.RecordContribution(context.Background(), "g1", 50, ContribManual, nil)
	if err != nil {
		t.Fatalf("ledger failure must not fail the call: %v", err)
	}
	if g.CurrentAmount != 150 {
		t.Errorf("current = %v, want 150", g.CurrentAmount)
	}
}

func TestRecordContributionUnknownGoal(t *testing.T) {
	svc := newTestService(newMemStore())
	if _, err := svc.RecordContribution(context.Background(), "missing", 50, ContribManual, nil); !errors.Is(err, ErrGoalNotFound) {
		t.Errorf("err = %v, want ErrGoalNotFound", err)
	}
}

func TestSummaryCountsActiveOnly(t *testing.T) {
	store := newMemStore()
	store.goals["g1"] = Goal{ID: "g1", UserID: "u1", TargetAmount: 1000, CurrentAmount: 250, Status: StatusActive}
	store.goals["g2"] = Goal{ID: "g2", UserID: "u1", TargetAmount: 500, CurrentAmount: 500, Status: StatusCompleted}
	store.goals["g3"] = Goal{ID: "g3", UserID: "u1", TargetAmount: 3000, CurrentAmount: 750, Status: StatusActive}
	svc := newTestService(store)

	sum := svc.Summary(context.Background(), "u1")
	if sum.TotalGoals != 3 || sum.ActiveGoals != 2 || sum.CompletedGoals != 1 {
		t.Errorf("counts = %d/%d/%d, want 3/2/1", sum.TotalGoals, sum.ActiveGoals, sum.CompletedGoals)
	}
	if sum.TotalTargetAmount != 4000 || sum.TotalCurrentAmount != 1000 {
		t.Errorf("amounts = %v/%v, want 4000/1000 (completed goal excluded)", sum.TotalTargetAmount, sum.TotalCurrentAmount)
	}
	if sum.OverallProgress != 25 {
		t.Errorf("overall progress = %v, want 25", sum.OverallProgress)
	}
}

func TestSummaryNoActiveGoals(t *testing.T) {
	store := newMemStore()
	store.goals["g1"] = Goal{ID: "g1", UserID: "u1", TargetAmount: 500, CurrentAmount: 500, Status: StatusCompleted}
	svc := newTestService(store)

	sum := svc.Summary(context.Background(), "u1")
	if sum.OverallProgress != 0 {
		t.Errorf("overall progress = %v, want 0 with no active goals", sum.OverallProgress)
	}
}

func TestInsightsStagnantGoal(t *testing.T) {
	store := newMemStore()
	store.goals["g1"] = Goal{
		ID: "g1", UserID: "u1", GoalName: "Emergency Fund",
		TargetAmount: 10000, CurrentAmount: 4000,
		CreatedAt: now.AddDate(0, -6, 0), TargetDate: now.AddDate(0, 6, 0),
		Status: StatusActive,
	}
	store.contributions["g1"] = []Contribution{
		{GoalID: "g1", Amount: 500, Date: now.AddDate(0, -3, 0)},
	}
	svc := newTestService(store)

	insights := svc.Insights(context.Background(), "u1")

	var stagnant bool
	for _, in := range insights {
		if in.Type == InsightAdjustmentNeeded && strings.Contains(in.Title, "Inactive") {
			stagnant = true
		}
	}
	if !stagnant {
		t.Errorf("expected an inactivity insight for a goal with no recent contributions, got %+v", insights)
	}
}

func TestInsightsRecentContributionSuppressesStagnation(t *testing.T) {
	store := newMemStore()
	store.goals["g1"] = Goal{
		ID: "g1", UserID: "u1", GoalName: "Trip",
		TargetAmount: 1000, CurrentAmount: 900,
		CreatedAt: now.AddDate(0, -10, 0), TargetDate: now.AddDate(0, 2, 0),
		Status: StatusActive,
	}
	store.contributions["g1"] = []Contribution{
		{GoalID: "g1", Amount: 100, Date: now.AddDate(0, 0, -5)},
	}
	svc := newTestService(store)

	for _, in := range svc.Insights(context.Background(), "u1") {
		if in.Type == InsightAdjustmentNeeded {
			t.Errorf("unexpected inactivity insight with a contribution 5 days ago: %+v", in)
		}
	}
}

func TestInsightsCappedAtFive(t *testing.T) {
	store := newMemStore()
	// Eight behind-schedule goals with stale contributions: two insights each.
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		store.goals[id] = Goal{
			ID: id, UserID: "u1", GoalName: "Goal " + id,
			TargetAmount: 10000, CurrentAmount: 100,
			CreatedAt: now.AddDate(0, -11, 0), TargetDate: now.AddDate(0, 1, 0),
			Status: StatusActive,
		}
	}
	svc := newTestService(store)

	if got := svc.Insights(context.Background(), "u1"); len(got) != 5 {
		t.Errorf("insights = %d, want capped at 5", len(got))
	}
}

func TestInsightsSkipNonActiveGoals(t *testing.T) {
	store := newMemStore()
	store.goals["g1"] = Goal{
		ID: "g1", UserID: "u1", GoalName: "Paused",
		TargetAmount: 10000, CurrentAmount: 100,
		CreatedAt: now.AddDate(0, -11, 0), TargetDate: now.AddDate(0, 1, 0),
		Status: StatusPaused,
	}
	svc := newTestService(store)

	if got := svc.Insights(context.Background(), "u1"); len(got) != 0 {
		t.Errorf("insights = %+v, want none for non-active goals", got)
	}
}

func TestListDegradesToEmpty(t *testing.T) {
	store := newMemStore()
	store.listErr = errors.New("db down")
	svc := newTestService(store)

	if got := svc.List(context.Background(), "u1"); got == nil || len(got) != 0 {
		t.Errorf("List = %v, want empty non-nil slice on store failure", got)
	}
}

func TestProcessAutoContributions(t *testing.T) {
	store := newMemStore()
	store.goals["g1"] = Goal{ID: "g1", UserID: "u1", TargetAmount: 10000, CurrentAmount: 100,
		MonthlyContribution: 500, AutoContribute: true, Status: StatusActive}
	store.goals["g2"] = Goal{ID: "g2", UserID: "u1", TargetAmount: 10000, CurrentAmount: 100,
		MonthlyContribution: 300, AutoContribute: false, Status: StatusActive}
	store.goals["g3"] = Goal{ID: "g3", UserID: "u1", TargetAmount: 10000, CurrentAmount: 100,
		MonthlyContribution: 200, AutoContribute: true, Status: StatusPaused}
	svc := newTestService(store)

	total := svc.ProcessAutoContributions(context.Background(), "u1")
	if total != 500 {
		t.Errorf("total = %v, want 500 (only active auto-contribute goals)", total)
	}
	if store.goals["g1"].CurrentAmount != 600 {
		t.Errorf("g1 amount = %v, want 600", store.goals["g1"].CurrentAmount)
	}
	if store.goals["g2"].CurrentAmount != 100 || store.goals["g3"].CurrentAmount != 100 {
		t.Error("non-eligible goals must be untouched")
	}
}
