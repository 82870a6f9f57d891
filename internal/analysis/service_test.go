package analysis

import (
	"context"
	"strings"
	"testing"

	"github.com/finsight-app/finsight-backend/internal/logger"
	"github.com/finsight-app/finsight-backend/internal/transactions"
)

type scriptedLLM struct {
	responses []string
	calls     int
}

func (s *scriptedLLM) Complete(ctx context.Context, prompt string) (string, error) {
	if s.calls >= len(s.responses) {
		t := s.responses[len(s.responses)-1]
		return t, nil
	}
	out := s.responses[s.calls]
	s.calls++
	return out, nil
}

type memStore struct {
	inserted []Recommendations
}

func (m *memStore) Insert(ctx context.Context, userID string, rec Recommendations) (string, error) {
	m.inserted = append(m.inserted, rec)
	return "analysis-1", nil
}

func (m *memStore) Latest(ctx context.Context, userID string) (*Recommendations, error) {
	if len(m.inserted) == 0 {
		return nil, ErrNoAnalysis
	}
	return &m.inserted[len(m.inserted)-1], nil
}

type memWriter struct {
	rows []transactions.NewTransaction
}

func (m *memWriter) InsertBatch(ctx context.Context, userID string, txns []transactions.NewTransaction) error {
	m.rows = append(m.rows, txns...)
	return nil
}

const txnJSON = "```json\n" + `{
  "totalIncome": 80000,
  "totalExpenses": 52000,
  "netSavings": 28000,
  "spendingCategories": {"groceries": {"amount": 12000, "percentage": 23}},
  "recurringExpenses": [],
  "monthlyAverages": {"income": 80000, "expenses": 52000, "savings": 28000},
  "transactions": [
    {"date": "2025-06-03", "description": "BigBasket", "amount": 2400, "category": "groceries", "type": "expense"},
    {"date": "2025-06-01", "description": "Salary", "amount": 80000, "category": "salary", "type": "income"},
    {"date": "bad-date", "description": "ignored", "amount": 1, "category": "others", "type": "expense"},
    {"date": "2025-06-04", "description": "ignored type", "amount": 1, "category": "others", "type": "transfer"}
  ]
}` + "\n```"

const budgetJSON = `{
  "recommendedBudget": {"needs": {"amount": 40000, "percentage": 50}, "wants": {"amount": 24000, "percentage": 30}, "savings": {"amount": 16000, "percentage": 20}},
  "spendingLimits": {"groceries": 15000, "dining": 6000},
  "savingsGoals": [],
  "budgetAdjustments": []
}`

const investJSON = `{
  "riskAssessment": {"riskProfile": "moderate", "riskScore": 6, "factors": ["stable income"]},
  "stockRecommendations": [],
  "mutualFundRecommendations": [],
  "portfolioDiversification": {"equity": 60, "debt": 25, "gold": 5, "realEstate": 5, "emergencyFund": 5}
}`

func TestAnalyzeStoresPayloadAndTransactions(t *testing.T) {
	llm := &scriptedLLM{responses: []string{txnJSON, budgetJSON, investJSON}}
	store := &memStore{}
	writer := &memWriter{}
	svc := NewService(llm, store, writer, logger.NewWithWriter(&strings.Builder{}))

	rec, err := svc.Analyze(context.Background(), "user-1", "statement text", "salary text")
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	if llm.calls != 3 {
		t.Errorf("expected 3 LLM calls, got %d", llm.calls)
	}
	if len(store.inserted) != 1 {
		t.Fatalf("expected 1 stored analysis, got %d", len(store.inserted))
	}
	if got := rec.BudgetAnalysis.SpendingLimits["groceries"]; got != 15000 {
		t.Errorf("groceries limit = %v, want 15000", got)
	}
	if rec.InvestmentAnalysis.RiskAssessment.RiskProfile != "moderate" {
		t.Errorf("risk profile = %q", rec.InvestmentAnalysis.RiskAssessment.RiskProfile)
	}

	// Rows with bad dates or unknown types are dropped, valid ones kept.
	if len(writer.rows) != 2 {
		t.Fatalf("expected 2 inserted transactions, got %d", len(writer.rows))
	}
	if writer.rows[0].Category != "groceries" || writer.rows[0].Type != transactions.TypeExpense {
		t.Errorf("unexpected first row: %+v", writer.rows[0])
	}
}

func TestStripFences(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"Here you go:\n{\"a\":1}\nEnjoy!", `{"a":1}`},
	}
	for _, c := range cases {
		if got := stripFences(c.in); got != c.want {
			t.Errorf("stripFences(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
