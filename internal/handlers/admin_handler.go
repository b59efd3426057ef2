package handlers

import (
	"eventhub-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) Stats(c *fiber.Ctx) error {
	stats, err := h.statsSvc.Overview()
	if err != nil {
		return respondErr(c, err)
	}

	return utils.OK(c, stats)
}
