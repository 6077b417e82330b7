package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"volunteer-match/internal/domain"
	"volunteer-match/internal/middleware"
	"volunteer-match/internal/service/matching"
)

type MatchingHandler struct {
	matchingService matching.Service
}

func NewMatchingHandler(matchingService matching.Service) *MatchingHandler {
	return &MatchingHandler{matchingService: matchingService}
}

func (h *MatchingHandler) ListVolunteers(c *fiber.Ctx) error {
	volunteers, err := h.matchingService.ListVolunteers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(volunteers)
}

func (h *MatchingHandler) ListEvents(c *fiber.Ctx) error {
	events, err := h.matchingService.ListEvents(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(events)
}

// RankForVolunteer serves GET /volunteer/:id?topN=N. A missing, negative or
// non-numeric topN returns every match.
func (h *MatchingHandler) RankForVolunteer(c *fiber.Ctx) error {
	volunteerID, err := volunteerParam(c, "id")
	if err != nil {
		return err
	}

	ranked, err := h.matchingService.RankForVolunteer(c.UserContext(), volunteerID, c.QueryInt("topN", 0))
	if err != nil {
		if errors.Is(err, domain.ErrVolunteerNotFound) {
			return middleware.NotFound("Volunteer not found")
		}
		return err
	}
	return c.JSON(ranked)
}

func (h *MatchingHandler) Assign(c *fiber.Ctx) error {
	var input domain.AssignInput
	if err := middleware.ParseAndValidate(c, &input); err != nil {
		return err
	}

	// Both ids passed the uuid rule above.
	volunteerID := uuid.MustParse(input.VolunteerID)
	eventID := uuid.MustParse(input.EventID)

	assignment, err := h.matchingService.Assign(c.UserContext(), volunteerID, eventID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrVolunteerNotFound):
			return middleware.NotFound("Volunteer not found")
		case errors.Is(err, domain.ErrEventNotFound):
			return middleware.NotFound("Event not found")
		}
		return err
	}

	return c.JSON(fiber.Map{
		"ok":         true,
		"assignment": assignment,
	})
}

func (h *MatchingHandler) ListAssignments(c *fiber.Ctx) error {
	volunteerID, err := volunteerParam(c, "id")
	if err != nil {
		return err
	}

	assignments, err := h.matchingService.ListAssignments(c.UserContext(), volunteerID)
	if err != nil {
		if errors.Is(err, domain.ErrVolunteerNotFound) {
			return middleware.NotFound("Volunteer not found")
		}
		return err
	}
	return c.JSON(assignments)
}
