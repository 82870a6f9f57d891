package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/finsight-app/finsight-backend/internal/alerts"
	"github.com/finsight-app/finsight-backend/internal/analysis"
	"github.com/finsight-app/finsight-backend/internal/goals"
	handlers "github.com/finsight-app/finsight-backend/internal/http"
	"github.com/finsight-app/finsight-backend/internal/market"
	"github.com/finsight-app/finsight-backend/internal/reports"
	"github.com/finsight-app/finsight-backend/internal/summary"
	"github.com/finsight-app/finsight-backend/internal/transactions"
	"github.com/finsight-app/finsight-backend/internal/trends"
)

type Router struct {
	AuthHandler         *handlers.AuthHandler
	TransactionsHandler *transactions.Handler
	AnalysisHandler     *analysis.Handler
	AlertsHandler       *alerts.Handler
	GoalsHandler        *goals.Handler
	TrendsHandler       *trends.Handler
	MarketHandler       *market.Handler
	SummaryHandler      *summary.Handler
	ReportsHandler      *reports.Handler
	AuthMW              fiber.Handler
}

func (r *Router) RegisterRoutes(app *fiber.App) {
	if r.AuthHandler != nil {
		authLimit := RateLimitAuth()
		app.Post("/api/auth/signup", authLimit, r.AuthHandler.Signup)
		app.Post("/api/auth/login", authLimit, r.AuthHandler.Login)
		app.Get("/api/me", r.AuthMW, r.AuthHandler.Me)
	}

	if r.TransactionsHandler != nil {
		app.Get("/api/transactions", r.AuthMW, r.TransactionsHandler.ListLatest)
	}

	if r.AnalysisHandler != nil {
		// Auth must run first so the write limiter can key on user_id.
		app.Post("/api/analysis", r.AuthMW, RateLimitWrite(), r.AnalysisHandler.Analyze)
		app.Get("/api/analysis/latest", r.AuthMW, r.AnalysisHandler.Latest)
	}

	if r.AlertsHandler != nil {
		app.Get("/api/alerts", r.AuthMW, r.AlertsHandler.List)
		app.Get("/api/alerts/unread-count", r.AuthMW, r.AlertsHandler.UnreadCount)
		app.Post("/api/alerts/check", r.AuthMW, r.AlertsHandler.Check)
		app.Post("/api/alerts/:id/read", r.AuthMW, r.AlertsHandler.MarkRead)
	}

	if r.GoalsHandler != nil {
		app.Post("/api/goals", r.AuthMW, r.GoalsHandler.Create)
		app.Get("/api/goals", r.AuthMW, r.GoalsHandler.List)
		app.Get("/api/goals/insights", r.AuthMW, r.GoalsHandler.Insights)
		app.Get("/api/goals/summary", r.AuthMW, r.GoalsHandler.Summary)
		app.Post("/api/goals/auto-contribute", r.AuthMW, r.GoalsHandler.AutoContribute)
		app.Post("/api/goals/:id/contributions", r.AuthMW, r.GoalsHandler.Contribute)
		app.Get("/api/goals/:id/progress", r.AuthMW, r.GoalsHandler.Progress)
	}

	if r.TrendsHandler != nil {
		app.Get("/api/trends/monthly", r.AuthMW, r.TrendsHandler.Monthly)
		app.Get("/api/trends/categories", r.AuthMW, r.TrendsHandler.Categories)
		app.Get("/api/trends/insights", r.AuthMW, r.TrendsHandler.Insights)
		app.Get("/api/trends/forecast", r.AuthMW, r.TrendsHandler.Forecast)
	}

	if r.MarketHandler != nil {
		app.Get("/api/market/overview", r.AuthMW, r.MarketHandler.Overview)
	}

	if r.SummaryHandler != nil {
		app.Get("/api/summary", r.AuthMW, r.SummaryHandler.GetSummary)
	}

	if r.ReportsHandler != nil {
		app.Get("/api/reports/monthly", r.AuthMW, r.ReportsHandler.MonthlyPDF)
	}
}
