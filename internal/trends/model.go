package trends

// MonthlySpending aggregates one calendar month of a user's transactions.
// Months with no rows are absent, never zero-filled.
type MonthlySpending struct {
	Month            string             `json:"month"` // YYYY-MM
	TotalSpending    float64            `json:"total_spending"`
	CategorySpending map[string]float64 `json:"category_spending"`
	Income           float64            `json:"income"`
	Savings          float64            `json:"savings"`
}

type Direction string

const (
	TrendIncreasing Direction = "increasing"
	TrendDecreasing Direction = "decreasing"
	TrendStable     Direction = "stable"
)

// TrendData describes how one category's spend moved across the window.
// TrendPercentage is signed for stable, positive otherwise (decreasing
// reports the magnitude of the drop).
type TrendData struct {
	Category        string    `json:"category"`
	Months          []string  `json:"months"`
	Values          []float64 `json:"values"`
	Trend           Direction `json:"trend"`
	TrendPercentage float64   `json:"trend_percentage"`
	AverageMonthly  float64   `json:"average_monthly"`
}

type InsightType string

const (
	InsightSeasonal           InsightType = "seasonal"
	InsightCategorySpike      InsightType = "category_spike"
	InsightSavingsImprovement InsightType = "savings_improvement"
	InsightBudgetDeviation    InsightType = "budget_deviation"
)

type Insight struct {
	Type           InsightType `json:"type"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Impact         string      `json:"impact"` // positive | negative | neutral
	Recommendation string      `json:"recommendation"`
}

// Forecast is next month's predicted spend for one category.
type Forecast struct {
	Category        string  `json:"category"`
	PredictedAmount float64 `json:"predicted_amount"`
	Confidence      float64 `json:"confidence"`
}
