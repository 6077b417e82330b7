package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"volunteer-match/internal/domain"
	"volunteer-match/internal/middleware"
	"volunteer-match/internal/service/event"
)

// EventHandler serves /api/events. Successful responses wrap the result in
// {data}; failures go through the central error handler.
type EventHandler struct {
	eventService event.Service
}

func NewEventHandler(eventService event.Service) *EventHandler {
	return &EventHandler{eventService: eventService}
}

func (h *EventHandler) List(c *fiber.Ctx) error {
	events, err := h.eventService.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": events})
}

func (h *EventHandler) Create(c *fiber.Ctx) error {
	var input domain.EventInput
	if err := middleware.ParseAndValidate(c, &input); err != nil {
		return err
	}

	created, err := h.eventService.Create(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": created})
}

func (h *EventHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid event ID")
	}

	var input domain.EventInput
	if err := middleware.ParseAndValidate(c, &input); err != nil {
		return err
	}

	updated, err := h.eventService.Update(c.UserContext(), id, input)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return middleware.NotFound("Event not found")
		}
		return err
	}
	return c.JSON(fiber.Map{"data": updated})
}

func (h *EventHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid event ID")
	}

	if err := h.eventService.Delete(c.UserContext(), id); err != nil {
		switch {
		case errors.Is(err, domain.ErrEventNotFound):
			return middleware.NotFound("Event not found")
		case errors.Is(err, domain.ErrEventHasAssignments):
			return middleware.Conflict("Event has assignments")
		}
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"id": id}})
}
