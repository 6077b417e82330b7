package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"volunteer-match/internal/middleware"
	"volunteer-match/internal/service"
)

type Handlers struct {
	Auth         *AuthHandler
	Profile      *ProfileHandler
	Matching     *MatchingHandler
	Event        *EventHandler
	Notification *NotificationHandler
	Reference    *ReferenceHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		Profile:      NewProfileHandler(services.Profile),
		Matching:     NewMatchingHandler(services.Matching),
		Event:        NewEventHandler(services.Event),
		Notification: NewNotificationHandler(services.Notification),
		Reference:    NewReferenceHandler(services.Reference),
	}
}

func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true})
}

// volunteerParam parses a volunteer id from the path. No volunteer can have a
// malformed id, so that case is reported as not found.
func volunteerParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.NotFound("Volunteer not found")
	}
	return id, nil
}
