package middleware

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"volunteer-match/internal/pkg/metrics"
)

func skipInstrumentation(path string) bool {
	return path == "/health" || path == "/metrics"
}

// responseStatus predicts the status the error handler will write for err.
func responseStatus(c *fiber.Ctx, err error) int {
	var fe *fiber.Error
	var ve *ValidationError
	switch {
	case err == nil:
		return c.Response().StatusCode()
	case errors.As(err, &ve):
		return fiber.StatusBadRequest
	case errors.As(err, &fe):
		return fe.Code
	}
	return fiber.StatusInternalServerError
}

// RequestLogger logs one line per request after the handler chain has run.
func RequestLogger(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if skipInstrumentation(c.Path()) {
			return c.Next()
		}

		start := time.Now()
		err := c.Next()

		status := responseStatus(c, err)

		log.Info("request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.IP()),
		)
		return err
	}
}

// Metrics records request counts and latency labelled by the matched route
// pattern, so ids in the path do not explode label cardinality.
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if skipInstrumentation(c.Path()) {
			return c.Next()
		}

		start := time.Now()
		err := c.Next()

		status := responseStatus(c, err)

		route := c.Route().Path
		method := c.Method()
		metrics.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		metrics.HTTPDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		return err
	}
}
