package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Code    string       `json:"code"`
	Error   string       `json:"error"`
	TraceID string       `json:"trace_id,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
}

type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// ValidationError is returned by ParseAndValidate and rendered as a 400 with fields.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// NewErrorHandler renders every error returned by a handler. Errors that are
// not *fiber.Error or *ValidationError are logged and reported as opaque 500s.
func NewErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"
		errorCode := "INTERNAL_ERROR"
		traceID := uuid.New().String()[:8]

		var fields []FieldError
		var fe *fiber.Error
		var ve *ValidationError

		switch {
		case errors.As(err, &ve):
			code = fiber.StatusBadRequest
			errorCode = "VALIDATION_ERROR"
			message = ve.Error()
			fields = ve.Fields
		case errors.As(err, &fe):
			code = fe.Code
			message = fe.Message

			switch code {
			case fiber.StatusBadRequest:
				errorCode = "BAD_REQUEST"
			case fiber.StatusUnauthorized:
				errorCode = "UNAUTHORIZED"
			case fiber.StatusForbidden:
				errorCode = "FORBIDDEN"
			case fiber.StatusNotFound:
				errorCode = "NOT_FOUND"
			case fiber.StatusConflict:
				errorCode = "CONFLICT"
			case fiber.StatusRequestEntityTooLarge:
				errorCode = "PAYLOAD_TOO_LARGE"
			case fiber.StatusServiceUnavailable:
				errorCode = "UNAVAILABLE"
			}
		}

		if code >= fiber.StatusInternalServerError {
			log.Error("request failed",
				zap.String("trace_id", traceID),
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}

		return c.Status(code).JSON(ErrorResponse{
			Code:    errorCode,
			Error:   message,
			TraceID: traceID,
			Fields:  fields,
		})
	}
}

func NewError(code int, message string) *fiber.Error {
	return fiber.NewError(code, message)
}

func BadRequest(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusBadRequest, message)
}

func Unauthorized(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusUnauthorized, message)
}

func Forbidden(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusForbidden, message)
}

func NotFound(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusNotFound, message)
}

func Conflict(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusConflict, message)
}
