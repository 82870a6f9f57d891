package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/finsight-app/finsight-backend/internal/transactions"
)

// TransactionWriter persists transactions parsed out of a statement.
type TransactionWriter interface {
	InsertBatch(ctx context.Context, userID string, txns []transactions.NewTransaction) error
}

// Store persists and retrieves analysis payloads. Satisfied by *Repo.
type Store interface {
	Insert(ctx context.Context, userID string, rec Recommendations) (string, error)
	Latest(ctx context.Context, userID string) (*Recommendations, error)
}

type Service struct {
	llm  ChatClient
	repo Store
	txns TransactionWriter
	log  zerolog.Logger
}

func NewService(llm ChatClient, repo Store, txns TransactionWriter, log zerolog.Logger) *Service {
	return &Service{llm: llm, repo: repo, txns: txns, log: log}
}

// Analyze runs the three-stage document analysis: transaction extraction from
// the bank statement, budget recommendation from the extraction plus the
// salary slip, and investment recommendation from both. The stages are
// sequential because each feeds the next. The combined payload is stored and
// the extracted transactions are written to the transaction store.
func (s *Service) Analyze(ctx context.Context, userID, bankText, salaryText string) (*Recommendations, error) {
	txnRaw, err := s.llm.Complete(ctx, fmt.Sprintf(transactionPrompt, bankText))
	if err != nil {
		return nil, fmt.Errorf("transaction analysis: %w", err)
	}
	var txnAnalysis TransactionAnalysis
	if err := json.Unmarshal([]byte(stripFences(txnRaw)), &txnAnalysis); err != nil {
		return nil, fmt.Errorf("parse transaction analysis: %w", err)
	}

	budgetRaw, err := s.llm.Complete(ctx, fmt.Sprintf(budgetPrompt, stripFences(txnRaw), salaryText))
	if err != nil {
		return nil, fmt.Errorf("budget analysis: %w", err)
	}
	var budget BudgetAnalysis
	if err := json.Unmarshal([]byte(stripFences(budgetRaw)), &budget); err != nil {
		return nil, fmt.Errorf("parse budget analysis: %w", err)
	}

	investRaw, err := s.llm.Complete(ctx, fmt.Sprintf(investmentPrompt, stripFences(txnRaw), stripFences(budgetRaw)))
	if err != nil {
		return nil, fmt.Errorf("investment analysis: %w", err)
	}
	var invest InvestmentAnalysis
	if err := json.Unmarshal([]byte(stripFences(investRaw)), &invest); err != nil {
		return nil, fmt.Errorf("parse investment analysis: %w", err)
	}

	rec := Recommendations{
		TransactionAnalysis: txnAnalysis,
		BudgetAnalysis:      budget,
		InvestmentAnalysis:  invest,
		Timestamp:           time.Now().UTC(),
	}

	if _, err := s.repo.Insert(ctx, userID, rec); err != nil {
		return nil, fmt.Errorf("store analysis: %w", err)
	}

	if err := s.txns.InsertBatch(ctx, userID, toNewTransactions(txnAnalysis.Transactions)); err != nil {
		// The analysis itself is stored; missing transaction rows only degrade
		// the historical views.
		s.log.Error().Err(err).Str("user_id", userID).Msg("failed to store extracted transactions")
	}

	return &rec, nil
}

// Latest proxies the repo; a missing analysis surfaces as ErrNoAnalysis.
func (s *Service) Latest(ctx context.Context, userID string) (*Recommendations, error) {
	return s.repo.Latest(ctx, userID)
}

func toNewTransactions(parsed []ParsedTransaction) []transactions.NewTransaction {
	out := make([]transactions.NewTransaction, 0, len(parsed))
	for _, p := range parsed {
		if p.Type != transactions.TypeIncome && p.Type != transactions.TypeExpense {
			continue
		}
		date, err := time.Parse("2006-01-02", p.Date)
		if err != nil {
			continue
		}
		out = append(out, transactions.NewTransaction{
			Amount:      p.Amount,
			Category:    p.Category,
			Description: p.Description,
			Date:        date,
			Type:        p.Type,
		})
	}
	return out
}
