package trends

import (
	"math"
	"sort"

	"github.com/finsight-app/finsight-backend/internal/transactions"
)

// stableBand is the percentage change below which a trend counts as stable.
const stableBand = 5.0

// BucketMonthly groups transactions into per-month aggregates, sorted by
// month ascending. Amounts are taken by absolute value; expenses without a
// category fall into "others".
func BucketMonthly(txns []transactions.Transaction) []MonthlySpending {
	byMonth := map[string]*MonthlySpending{}

	for _, t := range txns {
		month := t.Date.Format("2006-01")
		m, ok := byMonth[month]
		if !ok {
			m = &MonthlySpending{Month: month, CategorySpending: map[string]float64{}}
			byMonth[month] = m
		}

		amount := math.Abs(t.Amount)
		switch t.Type {
		case transactions.TypeExpense:
			category := t.Category
			if category == "" {
				category = "others"
			}
			m.TotalSpending += amount
			m.CategorySpending[category] += amount
		case transactions.TypeIncome:
			m.Income += amount
		}
	}

	out := make([]MonthlySpending, 0, len(byMonth))
	for _, m := range byMonth {
		m.Savings = m.Income - m.TotalSpending
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// CategoryTrends derives a trend series per category seen anywhere in the
// window. A category missing from a month contributes a zero for that month.
// Sorted by average monthly spend, highest first.
func CategoryTrends(monthly []MonthlySpending) []TrendData {
	if len(monthly) == 0 {
		return []TrendData{}
	}

	categories := map[string]struct{}{}
	for _, m := range monthly {
		for c := range m.CategorySpending {
			categories[c] = struct{}{}
		}
	}

	months := make([]string, len(monthly))
	for i, m := range monthly {
		months[i] = m.Month
	}

	out := make([]TrendData, 0, len(categories))
	for category := range categories {
		values := make([]float64, len(monthly))
		sum := 0.0
		for i, m := range monthly {
			values[i] = m.CategorySpending[category]
			sum += values[i]
		}

		direction, pct := calculateTrend(values)
		out = append(out, TrendData{
			Category:        category,
			Months:          months,
			Values:          values,
			Trend:           direction,
			TrendPercentage: pct,
			AverageMonthly:  sum / float64(len(values)),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].AverageMonthly > out[j].AverageMonthly })
	return out
}

// calculateTrend compares the average of the first half of the series with
// the second half. Odd-length series share the midpoint between both halves.
func calculateTrend(values []float64) (Direction, float64) {
	if len(values) < 2 {
		return TrendStable, 0
	}

	mid := len(values) / 2
	firstAvg := mean(values[:len(values)-mid])
	secondAvg := mean(values[mid:])

	if firstAvg == 0 {
		return TrendStable, 0
	}
	change := (secondAvg - firstAvg) / firstAvg * 100

	switch {
	case math.Abs(change) < stableBand:
		return TrendStable, change
	case change > 0:
		return TrendIncreasing, change
	default:
		return TrendDecreasing, math.Abs(change)
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// ForecastFromTrends projects next month's spend per category from the
// trend window: the monthly average scaled along the trend direction,
// floored at zero. Stable categories predict at higher confidence.
func ForecastFromTrends(trends []TrendData) []Forecast {
	out := make([]Forecast, 0, len(trends))
	for _, t := range trends {
		predicted := t.AverageMonthly
		confidence := 0.8

		switch t.Trend {
		case TrendIncreasing:
			predicted *= 1 + t.TrendPercentage/100
			confidence = math.Min(0.9, 0.5+t.TrendPercentage/100)
		case TrendDecreasing:
			predicted *= 1 - t.TrendPercentage/100
			confidence = math.Min(0.9, 0.5+t.TrendPercentage/100)
		}

		out = append(out, Forecast{
			Category:        t.Category,
			PredictedAmount: math.Max(0, predicted),
			Confidence:      math.Round(confidence*100) / 100,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PredictedAmount > out[j].PredictedAmount })
	return out
}
