package market

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

// Overview always answers 200; provider trouble degrades to mock data.
func (h *Handler) Overview(c *fiber.Ctx) error {
	ctx := c.UserContext()
	if ctx == nil {
		ctx = context.Background()
	}
	return c.JSON(h.Service.Overview(ctx))
}
