package alerts

import (
	"fmt"
	"math"
	"time"

	"github.com/finsight-app/finsight-backend/internal/money"
	"github.com/finsight-app/finsight-backend/internal/transactions"
)

// SpendingByCategory sums absolute expense amounts per category. Rows with an
// empty category are bucketed under "others".
func SpendingByCategory(txns []transactions.Transaction) map[string]float64 {
	out := make(map[string]float64, len(txns))
	for _, t := range txns {
		category := t.Category
		if category == "" {
			category = "others"
		}
		out[category] += math.Abs(t.Amount)
	}
	return out
}

// Classify maps a spend percentage to the highest satisfied threshold.
// Below the warning threshold there is no alert.
func Classify(percentage float64) (AlertType, bool) {
	switch {
	case percentage >= exceededThreshold:
		return TypeExceeded, true
	case percentage >= dangerThreshold:
		return TypeDanger, true
	case percentage >= warningThreshold:
		return TypeWarning, true
	default:
		return "", false
	}
}

// buildAlert assembles an alert for a category at or past the warning
// threshold; returns nil below it. The id is deterministic per
// user+category+timestamp so re-evaluations accumulate rather than collide.
func buildAlert(userID, category string, spending, limit float64, now time.Time) *Alert {
	if limit <= 0 {
		return nil
	}
	percentage := spending / limit * 100

	alertType, ok := Classify(percentage)
	if !ok {
		return nil
	}

	var message string
	switch alertType {
	case TypeExceeded:
		message = fmt.Sprintf("Budget exceeded for %s! You've spent %s (%.0f%% of your %s budget)",
			category, money.FormatINR(spending), percentage, money.FormatINR(limit))
	case TypeDanger:
		message = fmt.Sprintf("Almost at budget limit for %s! You've spent %s (%.0f%% of your %s budget)",
			category, money.FormatINR(spending), percentage, money.FormatINR(limit))
	default:
		message = fmt.Sprintf("Budget warning for %s: You've spent %s (%.0f%% of your %s budget)",
			category, money.FormatINR(spending), percentage, money.FormatINR(limit))
	}

	return &Alert{
		ID:              fmt.Sprintf("%s-%s-%d", userID, category, now.UnixMilli()),
		UserID:          userID,
		Category:        category,
		CurrentSpending: spending,
		BudgetLimit:     limit,
		Percentage:      percentage,
		AlertType:       alertType,
		Message:         message,
		IsRead:          false,
		CreatedAt:       now,
	}
}
