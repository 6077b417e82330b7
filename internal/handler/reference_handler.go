package handler

import (
	"github.com/gofiber/fiber/v2"

	"volunteer-match/internal/service/reference"
)

type ReferenceHandler struct {
	referenceService reference.Service
}

func NewReferenceHandler(referenceService reference.Service) *ReferenceHandler {
	return &ReferenceHandler{referenceService: referenceService}
}

func (h *ReferenceHandler) ListStates(c *fiber.Ctx) error {
	states, err := h.referenceService.ListStates(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(states)
}
