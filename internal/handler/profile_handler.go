package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"volunteer-match/internal/domain"
	"volunteer-match/internal/middleware"
	"volunteer-match/internal/service/profile"
)

type ProfileHandler struct {
	profileService profile.Service
}

func NewProfileHandler(profileService profile.Service) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	p, err := h.profileService.Get(c.UserContext(), middleware.GetCurrentUserID(c))
	if err != nil {
		return mapProfileError(err)
	}
	return c.JSON(p)
}

func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	var input domain.UpdateProfileInput
	if err := middleware.ParseAndValidate(c, &input); err != nil {
		return err
	}

	p, err := h.profileService.Update(c.UserContext(), middleware.GetCurrentUserID(c), input)
	if err != nil {
		return mapProfileError(err)
	}
	return c.JSON(p)
}

func (h *ProfileHandler) UploadAvatar(c *fiber.Ctx) error {
	file, err := c.FormFile("avatar")
	if err != nil {
		return middleware.BadRequest("Avatar file is required")
	}

	if file.Size > profile.MaxAvatarSize {
		return mapProfileError(profile.ErrAvatarTooLarge)
	}

	reader, err := file.Open()
	if err != nil {
		return middleware.BadRequest("Failed to read file")
	}
	defer reader.Close()

	p, err := h.profileService.UploadAvatar(c.UserContext(), middleware.GetCurrentUserID(c),
		file.Header.Get(fiber.HeaderContentType), file.Size, reader)
	if err != nil {
		return mapProfileError(err)
	}
	return c.JSON(p)
}

func mapProfileError(err error) error {
	switch {
	case errors.Is(err, domain.ErrVolunteerNotFound):
		return middleware.NotFound("Profile not found")
	case errors.Is(err, domain.ErrUnknownState):
		return middleware.BadRequest("Unknown state code")
	case errors.Is(err, profile.ErrAvatarTooLarge):
		return middleware.NewError(fiber.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, profile.ErrUnsupportedAvatar):
		return middleware.BadRequest(err.Error())
	case errors.Is(err, profile.ErrStorageUnavailable):
		return middleware.NewError(fiber.StatusServiceUnavailable, "Avatar uploads are not available")
	}
	return err
}
