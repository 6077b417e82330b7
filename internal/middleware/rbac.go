package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"volunteer-match/internal/domain"
)

// RequireRole must run after AuthRequired.
func RequireRole(roles ...domain.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetCurrentUserID(c) == uuid.Nil {
			return Unauthorized("User not found")
		}

		current := domain.UserRole(GetCurrentUserRole(c))
		for _, role := range roles {
			if current == role {
				return c.Next()
			}
		}
		return Forbidden("Insufficient permissions for this operation")
	}
}
