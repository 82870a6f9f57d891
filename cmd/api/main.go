package main

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/finsight-app/finsight-backend/internal/alerts"
	"github.com/finsight-app/finsight-backend/internal/analysis"
	"github.com/finsight-app/finsight-backend/internal/auth"
	"github.com/finsight-app/finsight-backend/internal/config"
	"github.com/finsight-app/finsight-backend/internal/goals"
	apphttp "github.com/finsight-app/finsight-backend/internal/http"
	"github.com/finsight-app/finsight-backend/internal/logger"
	"github.com/finsight-app/finsight-backend/internal/market"
	"github.com/finsight-app/finsight-backend/internal/reports"
	"github.com/finsight-app/finsight-backend/internal/router"
	"github.com/finsight-app/finsight-backend/internal/summary"
	"github.com/finsight-app/finsight-backend/internal/transactions"
	"github.com/finsight-app/finsight-backend/internal/trends"
)

func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create database pool")
	}
	defer pool.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "internal server error"

			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
				message = fiberErr.Message
			}

			return c.Status(code).JSON(fiber.Map{"error": message})
		},
	})

	app.Use(router.CorsMiddleware(cfg.Server.CORSOrigin))
	app.Use(requestLogger(log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	jwtSecret := []byte(cfg.Auth.JWTSecret)

	txnRepo := transactions.NewRepo(pool)
	analysisRepo := analysis.NewRepo(pool)
	alertsRepo := alerts.NewRepo(pool)
	goalsRepo := goals.NewRepo(pool)

	groq := analysis.NewGroqClient(cfg.Groq.APIKey, cfg.Groq.BaseURL, cfg.Groq.Model)
	analysisSvc := analysis.NewService(groq, analysisRepo, txnRepo, log)
	alertsSvc := alerts.NewService(txnRepo, analysisRepo, alertsRepo, log)
	goalsSvc := goals.NewService(goalsRepo, log)
	trendsSvc := trends.NewService(txnRepo, analysisRepo, log)
	marketSvc := market.NewService(cfg.Market, log)

	r := &router.Router{
		AuthHandler:         &apphttp.AuthHandler{DB: pool, JWTSecret: jwtSecret},
		TransactionsHandler: transactions.NewHandler(txnRepo),
		AnalysisHandler:     analysis.NewHandler(analysisSvc),
		AlertsHandler:       alerts.NewHandler(alertsSvc),
		GoalsHandler:        goals.NewHandler(goalsSvc),
		TrendsHandler:       trends.NewHandler(trendsSvc),
		MarketHandler:       market.NewHandler(marketSvc),
		SummaryHandler:      &summary.Handler{Repo: summary.Repo{DB: pool}},
		ReportsHandler:      reports.NewHandler(txnRepo, analysisRepo),
		AuthMW:              auth.FiberMiddleware(jwtSecret),
	}
	r.RegisterRoutes(app)

	log.Info().Str("port", cfg.Server.Port).Msg("listening")
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func requestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		c.SetUserContext(logger.WithContext(c.UserContext(), log))
		err := c.Next()

		log.Info().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("duration", time.Since(start)).
			Msg("request")
		return err
	}
}
