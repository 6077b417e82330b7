package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"volunteer-match/internal/domain"
	"volunteer-match/internal/middleware"
	"volunteer-match/internal/service/auth"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input domain.RegisterInput
	if err := middleware.ParseAndValidate(c, &input); err != nil {
		return err
	}

	user, tokens, err := h.authService.Register(c.UserContext(), input)
	if err != nil {
		if errors.Is(err, auth.ErrEmailExists) {
			return middleware.Conflict("Email already registered")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":         user,
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
		"expiresIn":    tokens.ExpiresIn,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input domain.LoginInput
	if err := middleware.ParseAndValidate(c, &input); err != nil {
		return err
	}

	user, tokens, err := h.authService.Login(c.UserContext(), input)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return middleware.Unauthorized("Invalid email or password")
		}
		return err
	}

	return c.JSON(fiber.Map{
		"user":         user,
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
		"expiresIn":    tokens.ExpiresIn,
	})
}

func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var input domain.RefreshInput
	if err := middleware.ParseAndValidate(c, &input); err != nil {
		return err
	}

	tokens, err := h.authService.Refresh(c.UserContext(), input.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			return middleware.Unauthorized("Invalid refresh token")
		}
		return err
	}

	return c.JSON(tokens)
}
