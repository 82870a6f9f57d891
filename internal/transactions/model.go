package transactions

import "time"

// Transaction is a dated, categorized, typed monetary record. Rows are
// immutable once inserted; document analysis is the only writer.
type Transaction struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	Amount      float64   `db:"amount" json:"amount"`
	Category    string    `db:"category" json:"category"`
	Description *string   `db:"description" json:"description,omitempty"`
	Date        time.Time `db:"transaction_date" json:"transaction_date"`
	Type        string    `db:"type" json:"type"` // "income" | "expense"
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// NewTransaction is an unsaved row, as produced by document analysis.
type NewTransaction struct {
	Amount      float64
	Category    string
	Description string
	Date        time.Time
	Type        string
}
