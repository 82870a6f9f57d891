package trends

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/finsight-app/finsight-backend/internal/money"
)

const (
	seasonalFactor    = 1.2
	spikeIncreasePct  = 25.0
	spikeDecreasePct  = 15.0
	maxSpikeInsights  = 3
	savingsShiftPct   = 10.0
	budgetDeviatePct  = 15.0
	recentSavingsSpan = 3
)

// seasonalInsight fires when at least two months run more than 20% above the
// window average. Needs three months of data to mean anything.
func seasonalInsight(monthly []MonthlySpending) *Insight {
	if len(monthly) < 3 {
		return nil
	}

	total := 0.0
	for _, m := range monthly {
		total += m.TotalSpending
	}
	avg := total / float64(len(monthly))

	var high []MonthlySpending
	for _, m := range monthly {
		if m.TotalSpending > avg*seasonalFactor {
			high = append(high, m)
		}
	}
	if len(high) < 2 {
		return nil
	}

	names := make([]string, len(high))
	highTotal := 0.0
	for i, m := range high {
		names[i] = monthName(m.Month)
		highTotal += m.TotalSpending
	}
	increase := (highTotal/float64(len(high))/avg - 1) * 100

	return &Insight{
		Type:  InsightSeasonal,
		Title: "Seasonal Spending Pattern Detected",
		Description: fmt.Sprintf("Your spending tends to be higher in %s. Average increase: %.0f%%",
			strings.Join(names, ", "), increase),
		Impact:         "neutral",
		Recommendation: "Consider setting aside extra budget for these months or plan major purchases during lower-spending periods.",
	}
}

// categorySpikeInsights reports steep movers, at most three.
func categorySpikeInsights(trends []TrendData) []Insight {
	out := make([]Insight, 0)
	for _, t := range trends {
		switch {
		case t.Trend == TrendIncreasing && t.TrendPercentage > spikeIncreasePct:
			out = append(out, Insight{
				Type:  InsightCategorySpike,
				Title: capitalize(t.Category) + " Spending Increase",
				Description: fmt.Sprintf("Your %s spending has increased by %.0f%% over recent months.",
					t.Category, t.TrendPercentage),
				Impact: "negative",
				Recommendation: fmt.Sprintf("Review your %s expenses and consider setting stricter limits or finding alternatives.",
					t.Category),
			})
		case t.Trend == TrendDecreasing && t.TrendPercentage > spikeDecreasePct:
			out = append(out, Insight{
				Type:  InsightCategorySpike,
				Title: "Great Progress on " + capitalize(t.Category),
				Description: fmt.Sprintf("You've reduced your %s spending by %.0f%% - excellent work!",
					t.Category, t.TrendPercentage),
				Impact:         "positive",
				Recommendation: "Keep up the good work! Consider applying similar strategies to other spending categories.",
			})
		}
	}
	if len(out) > maxSpikeInsights {
		out = out[:maxSpikeInsights]
	}
	return out
}

// savingsInsight compares average savings over the last three months against
// the months before them.
func savingsInsight(monthly []MonthlySpending) *Insight {
	if len(monthly) < 3 {
		return nil
	}
	earlier := monthly[:len(monthly)-recentSavingsSpan]
	recent := monthly[len(monthly)-recentSavingsSpan:]
	if len(earlier) == 0 {
		return nil
	}

	recentAvg := 0.0
	for _, m := range recent {
		recentAvg += m.Savings
	}
	recentAvg /= float64(len(recent))

	earlierAvg := 0.0
	for _, m := range earlier {
		earlierAvg += m.Savings
	}
	earlierAvg /= float64(len(earlier))

	improvement := recentAvg - earlierAvg
	if earlierAvg == 0 {
		return nil
	}
	pct := improvement / math.Abs(earlierAvg) * 100
	if math.Abs(pct) <= savingsShiftPct {
		return nil
	}

	in := Insight{Type: InsightSavingsImprovement}
	if improvement > 0 {
		in.Title = "Savings Improvement!"
		in.Impact = "positive"
		in.Recommendation = "Great progress! Consider investing these extra savings for long-term growth."
	} else {
		in.Title = "Savings Decline Alert"
		in.Impact = "negative"
		in.Recommendation = "Review your recent expenses and identify areas where you can cut back to improve your savings rate."
	}
	verb := "increased"
	if improvement < 0 {
		verb = "decreased"
	}
	in.Description = fmt.Sprintf("Your monthly savings have %s by %s (%.0f%%) recently.",
		verb, money.FormatINR(math.Abs(improvement)), math.Abs(pct))
	return &in
}

// budgetDeviationInsight compares the latest month's spend against the sum of
// the recommended per-category limits.
func budgetDeviationInsight(monthly []MonthlySpending, limits map[string]float64) *Insight {
	if len(monthly) == 0 || len(limits) == 0 {
		return nil
	}

	totalBudget := 0.0
	for _, l := range limits {
		totalBudget += l
	}
	if totalBudget == 0 {
		return nil
	}

	recent := monthly[len(monthly)-1]
	deviation := (recent.TotalSpending - totalBudget) / totalBudget * 100
	if math.Abs(deviation) <= budgetDeviatePct {
		return nil
	}

	in := Insight{Type: InsightBudgetDeviation}
	if deviation > 0 {
		in.Title = "Budget Overspend Alert"
		in.Impact = "negative"
		in.Recommendation = "Review your spending categories and adjust your budget or spending habits for next month."
		in.Description = fmt.Sprintf("Last month you exceeded your budget by %.0f%% (%s).",
			deviation, money.FormatINR(recent.TotalSpending-totalBudget))
	} else {
		in.Title = "Under-Budget Success"
		in.Impact = "positive"
		in.Recommendation = "Excellent budget discipline! Consider allocating the surplus to savings or investments."
		in.Description = fmt.Sprintf("Last month you stayed under your budget by %.0f%% (%s).",
			math.Abs(deviation), money.FormatINR(totalBudget-recent.TotalSpending))
	}
	return &in
}

func monthName(yyyymm string) string {
	t, err := time.Parse("2006-01", yyyymm)
	if err != nil {
		return yyyymm
	}
	return t.Month().String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
