package reports

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/finsight-app/finsight-backend/internal/analysis"
	"github.com/finsight-app/finsight-backend/internal/auth"
	"github.com/finsight-app/finsight-backend/internal/transactions"
	"github.com/finsight-app/finsight-backend/internal/trends"
)

// TransactionSource provides the transactions inside a date range.
type TransactionSource interface {
	ListBetween(ctx context.Context, userID string, from, to time.Time) ([]transactions.Transaction, error)
}

// LimitSource provides the latest per-category budget limits.
type LimitSource interface {
	SpendingLimits(ctx context.Context, userID string) (map[string]float64, error)
}

type Handler struct {
	Txns   TransactionSource
	Limits LimitSource
}

func NewHandler(txns TransactionSource, limits LimitSource) *Handler {
	return &Handler{Txns: txns, Limits: limits}
}

type categoryRow struct {
	Category string
	Spent    float64
	Limit    float64 // 0 means no recommended limit
}

// MonthlyPDF renders the month's income, spending and per-category budget
// usage as a downloadable PDF. Defaults to the current month.
func (h *Handler) MonthlyPDF(c *fiber.Ctx) error {
	userID := auth.UserID(c)
	if userID == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	month := strings.TrimSpace(c.Query("month"))
	if month == "" {
		month = time.Now().UTC().Format("2006-01")
	}
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "month must be YYYY-MM")
	}
	end := start.AddDate(0, 1, 0)

	ctx := userContext(c)
	txns, err := h.Txns.ListBetween(ctx, userID, start, end)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load transactions: "+err.Error())
	}

	var monthly trends.MonthlySpending
	for _, m := range trends.BucketMonthly(txns) {
		if m.Month == month {
			monthly = m
		}
	}

	limits, err := h.Limits.SpendingLimits(ctx, userID)
	if err != nil && !errors.Is(err, analysis.ErrNoAnalysis) {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load budget limits: "+err.Error())
	}

	pdfBytes, err := buildMonthlyPDF(userID, month, monthly, categoryRows(monthly, limits))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "pdf build failed: "+err.Error())
	}

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="finsight-report-`+month+`.pdf"`)
	return c.Send(pdfBytes)
}

// categoryRows joins the month's spend with the recommended limits: every
// category with spend appears, plus untouched categories that have a limit.
func categoryRows(m trends.MonthlySpending, limits map[string]float64) []categoryRow {
	seen := map[string]bool{}
	rows := make([]categoryRow, 0, len(m.CategorySpending)+len(limits))

	for category, spent := range m.CategorySpending {
		rows = append(rows, categoryRow{Category: category, Spent: spent, Limit: limits[category]})
		seen[category] = true
	}
	for category, limit := range limits {
		if !seen[category] {
			rows = append(rows, categoryRow{Category: category, Limit: limit})
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Spent != rows[j].Spent {
			return rows[i].Spent > rows[j].Spent
		}
		return rows[i].Category < rows[j].Category
	})
	return rows
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
