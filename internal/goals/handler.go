package goals

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/finsight-app/finsight-backend/internal/auth"
)

type Handler struct {
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

type createGoalRequest struct {
	GoalName            string  `json:"goal_name"`
	TargetAmount        float64 `json:"target_amount"`
	CurrentAmount       float64 `json:"current_amount"`
	TargetDate          string  `json:"target_date"` // YYYY-MM-DD
	Category            string  `json:"category"`
	Priority            string  `json:"priority"`
	MonthlyContribution float64 `json:"monthly_contribution"`
	AutoContribute      bool    `json:"auto_contribute"`
}

func (h *Handler) Create(c *fiber.Ctx) error {
	userID := auth.UserID(c)
	if userID == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req createGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	req.GoalName = strings.TrimSpace(req.GoalName)
	if req.GoalName == "" {
		return fiber.NewError(fiber.StatusBadRequest, "goal_name required")
	}
	if req.TargetAmount <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "target_amount must be greater than zero")
	}
	targetDate, err := time.Parse("2006-01-02", req.TargetDate)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "target_date must be YYYY-MM-DD")
	}

	category := req.Category
	if category == "" {
		category = "other"
	}
	priority := req.Priority
	if priority == "" {
		priority = "medium"
	}

	g, err := h.Service.Create(userContext(c), userID, NewGoal{
		GoalName:            req.GoalName,
		TargetAmount:        req.TargetAmount,
		CurrentAmount:       req.CurrentAmount,
		TargetDate:          targetDate,
		Category:            category,
		Priority:            priority,
		MonthlyContribution: req.MonthlyContribution,
		AutoContribute:      req.AutoContribute,
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create goal: "+err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(g)
}

func (h *Handler) List(c *fiber.Ctx) error {
	userID := auth.UserID(c)
	if userID == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(fiber.Map{"goals": h.Service.List(userContext(c), userID)})
}

type contributeRequest struct {
	Amount float64 `json:"amount"`
	Type   string  `json:"type"`
	Note   *string `json:"note"`
}

func (h *Handler) Contribute(c *fiber.Ctx) error {
	userID := auth.UserID(c)
	if userID == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	goalID := strings.TrimSpace(c.Params("id"))
	if goalID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "goal id required")
	}

	var req contributeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if req.Amount <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "amount must be greater than zero")
	}

	typ := ContributionType(req.Type)
	switch typ {
	case ContribManual, ContribAutomatic, ContribBonus:
	case "":
		typ = ContribManual
	default:
		return fiber.NewError(fiber.StatusBadRequest, "type must be manual, automatic or bonus")
	}

	g, err := h.Service.RecordContribution(userContext(c), goalID, req.Amount, typ, req.Note)
	if errors.Is(err, ErrGoalNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "goal not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to record contribution: "+err.Error())
	}
	return c.JSON(g)
}

func (h *Handler) Progress(c *fiber.Ctx) error {
	userID := auth.UserID(c)
	if userID == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	goalID := strings.TrimSpace(c.Params("id"))
	if goalID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "goal id required")
	}

	p, err := h.Service.Progress(userContext(c), goalID)
	if errors.Is(err, ErrGoalNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "goal not found")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to compute progress: "+err.Error())
	}
	return c.JSON(p)
}

func (h *Handler) Insights(c *fiber.Ctx) error {
	userID := auth.UserID(c)
	if userID == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(fiber.Map{"insights": h.Service.Insights(userContext(c), userID)})
}

func (h *Handler) Summary(c *fiber.Ctx) error {
	userID := auth.UserID(c)
	if userID == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(h.Service.Summary(userContext(c), userID))
}

// AutoContribute triggers auto-contribution processing for the caller. An
// external scheduler is expected to hit this monthly.
func (h *Handler) AutoContribute(c *fiber.Ctx) error {
	userID := auth.UserID(c)
	if userID == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	total := h.Service.ProcessAutoContributions(userContext(c), userID)
	return c.JSON(fiber.Map{"total_contributed": total})
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
