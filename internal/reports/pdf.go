package reports

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/finsight-app/finsight-backend/internal/trends"
)

func buildMonthlyPDF(userID, month string, m trends.MonthlySpending, rows []categoryRow) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(14, 14, 14)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 48)
	pdf.SetTextColor(235, 235, 235)
	pdf.Text(25, 140, "FINSIGHT")

	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Monthly Financial Report")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(80, 80, 80)
	pdf.Cell(0, 6, "Month: "+month)
	pdf.Ln(5)
	pdf.Cell(0, 6, "User: "+maskID(userID))
	pdf.Ln(10)

	pdf.SetDrawColor(200, 200, 200)
	pdf.SetFillColor(248, 248, 248)
	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 11)

	sumW := []float64{62, 62, 62}
	pdf.CellFormat(sumW[0], 10, "Income (INR)", "1", 0, "C", true, 0, "")
	pdf.CellFormat(sumW[1], 10, "Spending (INR)", "1", 0, "C", true, 0, "")
	pdf.CellFormat(sumW[2], 10, "Savings (INR)", "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(sumW[0], 10, formatAmount(m.Income), "1", 0, "C", false, 0, "")
	pdf.CellFormat(sumW[1], 10, formatAmount(m.TotalSpending), "1", 0, "C", false, 0, "")
	pdf.CellFormat(sumW[2], 10, formatAmount(m.Savings), "1", 1, "C", false, 0, "")
	pdf.Ln(6)

	colW := []float64{66, 40, 40, 40}
	writeTableHeader := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(245, 245, 245)
		pdf.SetTextColor(20, 20, 20)
		pdf.CellFormat(colW[0], 8, "CATEGORY", "1", 0, "L", true, 0, "")
		pdf.CellFormat(colW[1], 8, "SPENT", "1", 0, "R", true, 0, "")
		pdf.CellFormat(colW[2], 8, "BUDGET", "1", 0, "R", true, 0, "")
		pdf.CellFormat(colW[3], 8, "USED", "1", 1, "C", true, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(30, 30, 30)
	}
	writeTableHeader()

	if len(rows) == 0 {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(0, 8, "No spending recorded for this month", "1", 1, "C", false, 0, "")
	}

	for _, row := range rows {
		if pdf.GetY() > 270 {
			pdf.AddPage()
			writeTableHeader()
		}

		budget := "-"
		used := "-"
		if row.Limit > 0 {
			budget = formatAmount(row.Limit)
			used = fmt.Sprintf("%.0f%%", row.Spent/row.Limit*100)
		}

		pdf.CellFormat(colW[0], 8, trimTo(row.Category, 60), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[1], 8, formatAmount(row.Spent), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colW[2], 8, budget, "1", 0, "R", false, 0, "")
		pdf.CellFormat(colW[3], 8, used, "1", 1, "C", false, 0, "")
	}

	pdf.SetY(-18)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 10, "Generated by FinSight - "+time.Now().UTC().Format(time.RFC3339), "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func maskID(id string) string {
	id = strings.TrimSpace(id)
	if len(id) <= 8 {
		return id
	}
	return id[:4] + "..." + id[len(id)-4:]
}

func trimTo(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "..."
}

// formatAmount renders a rupee amount with comma grouping and paise only
// when non-zero. The core PDF fonts have no rupee glyph, hence plain digits
// with an INR column label.
func formatAmount(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	whole := int64(v)
	paise := int64((v-float64(whole))*100 + 0.5)
	if paise >= 100 {
		whole++
		paise = 0
	}

	out := withCommas(whole)
	if paise > 0 {
		out = fmt.Sprintf("%s.%02d", out, paise)
	}
	return sign + out
}

func withCommas(n int64) string {
	str := fmt.Sprintf("%d", n)
	var b strings.Builder
	l := len(str)
	for i := 0; i < l; i++ {
		b.WriteByte(str[i])
		rem := l - i - 1
		if rem > 0 && rem%3 == 0 {
			b.WriteByte(',')
		}
	}
	return b.String()
}
