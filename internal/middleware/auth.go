package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"volunteer-match/internal/service/auth"
)

const (
	UserIDContextKey = "user_id"
	RoleContextKey   = "role"
)

func AuthRequired(authService auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return Unauthorized("Missing authorization header")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return Unauthorized("Invalid authorization header format")
		}

		claims, err := authService.ValidateAccessToken(parts[1])
		if err != nil {
			return Unauthorized("Invalid or expired token")
		}

		c.Locals(UserIDContextKey, claims.UserID)
		c.Locals(RoleContextKey, claims.Role)

		return c.Next()
	}
}

func GetCurrentUserID(c *fiber.Ctx) uuid.UUID {
	userID, ok := c.Locals(UserIDContextKey).(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return userID
}

func GetCurrentUserRole(c *fiber.Ctx) string {
	role, _ := c.Locals(RoleContextKey).(string)
	return role
}
