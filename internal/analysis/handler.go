package analysis

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/finsight-app/finsight-backend/internal/auth"
)

type Handler struct {
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

type analyzeRequest struct {
	BankStatement string `json:"bank_statement"`
	SalarySlip    string `json:"salary_slip"`
}

func (h *Handler) Analyze(c *fiber.Ctx) error {
	userID := auth.UserID(c)
	if userID == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req analyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if strings.TrimSpace(req.BankStatement) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "bank_statement required")
	}

	rec, err := h.Service.Analyze(userContext(c), userID, req.BankStatement, req.SalarySlip)
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "analysis failed: "+err.Error())
	}

	return c.JSON(fiber.Map{
		"message": "Financial analysis completed successfully.",
		"data":    rec,
	})
}

func (h *Handler) Latest(c *fiber.Ctx) error {
	userID := auth.UserID(c)
	if userID == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	rec, err := h.Service.Latest(userContext(c), userID)
	if errors.Is(err, ErrNoAnalysis) {
		return fiber.NewError(fiber.StatusNotFound, "no analysis found, upload your financial documents first")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch analysis: "+err.Error())
	}

	return c.JSON(fiber.Map{"data": rec})
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
