package summary

import (
	"context"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/finsight-app/finsight-backend/internal/auth"
)

var monthRe = regexp.MustCompile(`^\d{4}-\d{2}$`)

type Handler struct {
	Repo Repo
}

func (h Handler) GetSummary(c *fiber.Ctx) error {
	userID := auth.UserID(c)
	if userID == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	month := strings.TrimSpace(c.Query("month")) // YYYY-MM or empty for all time
	if month != "" && !monthRe.MatchString(month) {
		return fiber.NewError(fiber.StatusBadRequest, "month must be YYYY-MM")
	}

	s, err := h.Repo.GetByUser(userContext(c), userID, month)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch summary: "+err.Error())
	}

	return c.JSON(s)
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
