package alerts

import "time"

type AlertType string

const (
	TypeWarning  AlertType = "warning"  // >= 75% of limit
	TypeDanger   AlertType = "danger"   // >= 90% of limit
	TypeExceeded AlertType = "exceeded" // >= 100% of limit
)

const (
	warningThreshold  = 75.0
	dangerThreshold   = 90.0
	exceededThreshold = 100.0
)

// Alert is a persisted budget threshold crossing. Alerts are only ever
// created and marked read, never deleted.
type Alert struct {
	ID              string    `db:"id" json:"id"`
	UserID          string    `db:"user_id" json:"user_id"`
	Category        string    `db:"category" json:"category"`
	CurrentSpending float64   `db:"current_spending" json:"current_spending"`
	BudgetLimit     float64   `db:"budget_limit" json:"budget_limit"`
	Percentage      float64   `db:"percentage" json:"percentage"`
	AlertType       AlertType `db:"alert_type" json:"alert_type"`
	Message         string    `db:"message" json:"message"`
	IsRead          bool      `db:"is_read" json:"is_read"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}
