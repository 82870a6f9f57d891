package alerts

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/finsight-app/finsight-backend/internal/logger"
	"github.com/finsight-app/finsight-backend/internal/transactions"
)

type fakeTxns struct {
	rows []transactions.Transaction
	err  error
}

func (f *fakeTxns) ListExpensesForMonth(ctx context.Context, userID string, ref time.Time) ([]transactions.Transaction, error) {
	return f.rows, f.err
}

type fakeLimits struct {
	limits map[string]float64
	err    error
}

func (f *fakeLimits) SpendingLimits(ctx context.Context, userID string) (map[string]float64, error) {
	return f.limits, f.err
}

type fakeStore struct {
	upserted []Alert
	listed   []Alert
	read     []string
	unread   int
	err      error
}

func (f *fakeStore) Upsert(ctx context.Context, items []Alert) error {
	f.upserted = append(f.upserted, items...)
	return f.err
}

func (f *fakeStore) ListByUser(ctx context.Context, userID string, limit int) ([]Alert, error) {
	return f.listed, f.err
}

func (f *fakeStore) MarkRead(ctx context.Context, alertID string) error {
	f.read = append(f.read, alertID)
	return f.err
}

func (f *fakeStore) UnreadCount(ctx context.Context, userID string) (int, error) {
	return f.unread, f.err
}

func expense(category string, amount float64) transactions.Transaction {
	return transactions.Transaction{Category: category, Amount: amount, Type: transactions.TypeExpense}
}

func newTestService(txns *fakeTxns, limits *fakeLimits, store *fakeStore) *Service {
	svc := NewService(txns, limits, store, logger.NewWithWriter(&strings.Builder{}))
	svc.now = func() time.Time { return time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestClassifyThresholds(t *testing.T) {
	cases := []struct {
		percentage float64
		wantType   AlertType
		wantOK     bool
	}{
		{74.99, "", false},
		{75, TypeWarning, true},
		{89.99, TypeWarning, true},
		{90, TypeDanger, true},
		{99.99, TypeDanger, true},
		{100, TypeExceeded, true},
		{150, TypeExceeded, true},
		{0, "", false},
	}

	for _, c := range cases {
		gotType, ok := Classify(c.percentage)
		if ok != c.wantOK || gotType != c.wantType {
			t.Errorf("Classify(%v) = (%q, %v), want (%q, %v)", c.percentage, gotType, ok, c.wantType, c.wantOK)
		}
	}
}

func TestCheckEmitsAlertsPerCategory(t *testing.T) {
	txns := &fakeTxns{rows: []transactions.Transaction{
		expense("groceries", 8000),      // 80% -> warning
		expense("dining", 5500),         // 110% -> exceeded
		expense("shopping", 1000),       // 20% -> none
		expense("entertainment", -4600), // abs -> 92% -> danger
	}}
	limits := &fakeLimits{limits: map[string]float64{
		"groceries":     10000,
		"dining":        5000,
		"shopping":      5000,
		"entertainment": 5000,
	}}
	store := &fakeStore{}

	got := newTestService(txns, limits, store).Check(context.Background(), "user-1")

	byCategory := map[string]Alert{}
	for _, a := range got {
		byCategory[a.Category] = a
	}

	if len(got) != 3 {
		t.Fatalf("expected 3 alerts, got %d: %+v", len(got), got)
	}
	if byCategory["groceries"].AlertType != TypeWarning {
		t.Errorf("groceries alert = %q, want warning", byCategory["groceries"].AlertType)
	}
	if byCategory["dining"].AlertType != TypeExceeded {
		t.Errorf("dining alert = %q, want exceeded", byCategory["dining"].AlertType)
	}
	if byCategory["entertainment"].AlertType != TypeDanger {
		t.Errorf("entertainment alert = %q, want danger", byCategory["entertainment"].AlertType)
	}
	if len(store.upserted) != 3 {
		t.Errorf("expected 3 persisted alerts, got %d", len(store.upserted))
	}

	g := byCategory["groceries"]
	if g.Percentage != 80 {
		t.Errorf("groceries percentage = %v, want 80", g.Percentage)
	}
	if !strings.Contains(g.Message, "₹8,000") {
		t.Errorf("groceries message missing spend amount: %q", g.Message)
	}
}

func TestCheckSwallowsReadErrors(t *testing.T) {
	txns := &fakeTxns{err: errors.New("store down")}
	limits := &fakeLimits{limits: map[string]float64{"groceries": 100}}
	store := &fakeStore{}

	got := newTestService(txns, limits, store).Check(context.Background(), "user-1")
	if len(got) != 0 {
		t.Errorf("expected empty result on read failure, got %d alerts", len(got))
	}
	if len(store.upserted) != 0 {
		t.Errorf("nothing should be persisted on read failure")
	}
}

func TestCheckNoLimitsNoAlerts(t *testing.T) {
	txns := &fakeTxns{rows: []transactions.Transaction{expense("groceries", 99999)}}
	limits := &fakeLimits{err: errors.New("no analysis found")}
	store := &fakeStore{}

	got := newTestService(txns, limits, store).Check(context.Background(), "user-1")
	if len(got) != 0 {
		t.Errorf("expected no alerts without budget data, got %d", len(got))
	}
}

func TestCheckCategory(t *testing.T) {
	txns := &fakeTxns{rows: []transactions.Transaction{expense("dining", 4800)}}
	limits := &fakeLimits{limits: map[string]float64{"dining": 5000}}
	store := &fakeStore{}
	svc := newTestService(txns, limits, store)

	a := svc.CheckCategory(context.Background(), "user-1", "dining")
	if a == nil {
		t.Fatal("expected an alert at 96%")
	}
	if a.AlertType != TypeDanger {
		t.Errorf("alert type = %q, want danger", a.AlertType)
	}
	if len(store.upserted) != 1 {
		t.Errorf("expected persisted alert, got %d", len(store.upserted))
	}

	if got := svc.CheckCategory(context.Background(), "user-1", "groceries"); got != nil {
		t.Errorf("expected nil for category without a limit, got %+v", got)
	}
}

func TestAlertIdentityIsDeterministic(t *testing.T) {
	now := time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)
	a := buildAlert("user-1", "dining", 4800, 5000, now)
	if a == nil {
		t.Fatal("expected alert")
	}
	want := "user-1-dining-" + "1752580800000"
	if a.ID != want {
		t.Errorf("alert id = %q, want %q", a.ID, want)
	}
}
