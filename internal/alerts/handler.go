package alerts

import (
	"context"
	"strconv"
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

func (h *Handler) List(c *fiber.Ctx) error {
	userID := auth.UserID(c)
	if userID == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	limit := 10
	if v := strings.TrimSpace(c.Query("limit")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	return c.JSON(fiber.Map{"alerts": h.Service.List(userContext(c), userID, limit)})
}

func (h *Handler) Check(c *fiber.Ctx) error {
	userID := auth.UserID(c)
	if userID == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	return c.JSON(fiber.Map{"alerts": h.Service.Check(userContext(c), userID)})
}

func (h *Handler) MarkRead(c *fiber.Ctx) error {
	userID := auth.UserID(c)
	if userID == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	alertID := strings.TrimSpace(c.Params("id"))
	if alertID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "alert id required")
	}

	if err := h.Service.MarkRead(userContext(c), alertID); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to mark alert read: "+err.Error())
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (h *Handler) UnreadCount(c *fiber.Ctx) error {
	userID := auth.UserID(c)
	if userID == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	return c.JSON(fiber.Map{"count": h.Service.UnreadCount(userContext(c), userID)})
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
