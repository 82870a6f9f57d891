package analysis

import "time"

// Recommendations is the combined payload stored in ai_analysis. The JSON
// field names mirror the stored document; the dashboard consumes it as-is.
type Recommendations struct {
	TransactionAnalysis TransactionAnalysis `json:"transactionAnalysis"`
	BudgetAnalysis      BudgetAnalysis      `json:"budgetAnalysis"`
	InvestmentAnalysis  InvestmentAnalysis  `json:"investmentAnalysis"`
	Timestamp           time.Time           `json:"timestamp"`
}

type TransactionAnalysis struct {
	TotalIncome        float64                      `json:"totalIncome"`
	TotalExpenses      float64                      `json:"totalExpenses"`
	NetSavings         float64                      `json:"netSavings"`
	SpendingCategories map[string]CategoryBreakdown `json:"spendingCategories"`
	RecurringExpenses  []RecurringExpense           `json:"recurringExpenses"`
	MonthlyAverages    MonthlyAverages              `json:"monthlyAverages"`
	Transactions       []ParsedTransaction          `json:"transactions"`
}

type CategoryBreakdown struct {
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

type RecurringExpense struct {
	Category  string  `json:"category"`
	Amount    float64 `json:"amount"`
	Frequency string  `json:"frequency"`
}

type MonthlyAverages struct {
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Savings  float64 `json:"savings"`
}

// ParsedTransaction is one statement line as extracted by the model.
type ParsedTransaction struct {
	Date        string  `json:"date"` // YYYY-MM-DD
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Type        string  `json:"type"` // "income" | "expense"
}

type BudgetAnalysis struct {
	RecommendedBudget RecommendedBudget  `json:"recommendedBudget"`
	SpendingLimits    map[string]float64 `json:"spendingLimits"`
	SavingsGoals      []SavingsGoal      `json:"savingsGoals"`
	BudgetAdjustments []BudgetAdjustment `json:"budgetAdjustments"`
}

type RecommendedBudget struct {
	Needs   BudgetSlice `json:"needs"`
	Wants   BudgetSlice `json:"wants"`
	Savings BudgetSlice `json:"savings"`
}

type BudgetSlice struct {
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

type SavingsGoal struct {
	Goal                string  `json:"goal"`
	TargetAmount        float64 `json:"targetAmount"`
	MonthlyContribution float64 `json:"monthlyContribution"`
	Timeline            string  `json:"timeline"`
}

type BudgetAdjustment struct {
	Category         string  `json:"category"`
	CurrentSpending  float64 `json:"currentSpending"`
	RecommendedLimit float64 `json:"recommendedLimit"`
	Suggestion       string  `json:"suggestion"`
}

type InvestmentAnalysis struct {
	RiskAssessment            RiskAssessment        `json:"riskAssessment"`
	StockRecommendations      []StockRecommendation `json:"stockRecommendations"`
	MutualFundRecommendations []FundRecommendation  `json:"mutualFundRecommendations"`
	PortfolioDiversification  map[string]float64    `json:"portfolioDiversification"`
}

type RiskAssessment struct {
	RiskProfile string   `json:"riskProfile"` // conservative | moderate | aggressive
	RiskScore   float64  `json:"riskScore"`
	Factors     []string `json:"factors"`
}

type StockRecommendation struct {
	Symbol     string  `json:"symbol"`
	Name       string  `json:"name"`
	Sector     string  `json:"sector"`
	Allocation float64 `json:"allocation"`
	Reasoning  string  `json:"reasoning"`
	RiskLevel  string  `json:"riskLevel"`
}

type FundRecommendation struct {
	Name           string  `json:"name"`
	Type           string  `json:"type"`
	Allocation     float64 `json:"allocation"`
	ExpectedReturn float64 `json:"expectedReturn"`
	RiskLevel      string  `json:"riskLevel"`
	Reasoning      string  `json:"reasoning"`
}
