package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"volunteer-match/internal/domain"
	"volunteer-match/internal/middleware"
	"volunteer-match/internal/service/auth"
)

type RouteOptions struct {
	ProtectEventWrites bool
}

func SetupRoutes(app *fiber.App, h *Handlers, authService auth.Service, opts RouteOptions) {
	app.Get("/health", Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Get("/volunteers", h.Matching.ListVolunteers)
	app.Get("/events", h.Matching.ListEvents)
	app.Get("/volunteer/:id", h.Matching.RankForVolunteer)
	app.Get("/volunteer/:id/assignments", h.Matching.ListAssignments)
	app.Post("/assign", h.Matching.Assign)

	notifications := app.Group("/notifications")
	notifications.Get("/stream/:volunteerId", h.Notification.Stream)
	notifications.Get("/:volunteerId", h.Notification.List)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/refresh", h.Auth.RefreshToken)

	api := app.Group("/api")
	api.Get("/states", h.Reference.ListStates)

	events := api.Group("/events")
	events.Get("/", h.Event.List)
	writeGuard := []fiber.Handler{}
	if opts.ProtectEventWrites {
		writeGuard = append(writeGuard, middleware.AuthRequired(authService), middleware.RequireRole(domain.RoleAdmin))
	}
	events.Post("/", append(writeGuard, h.Event.Create)...)
	events.Put("/:id", append(writeGuard, h.Event.Update)...)
	events.Delete("/:id", append(writeGuard, h.Event.Delete)...)

	profile := api.Group("/profile", middleware.AuthRequired(authService))
	profile.Get("/", h.Profile.Get)
	profile.Put("/", h.Profile.Update)
	profile.Post("/avatar", h.Profile.UploadAvatar)
}
