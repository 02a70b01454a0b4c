package middleware

import (
	"time"

	"quiz-catalog/internal/logger"
	"quiz-catalog/internal/util"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequestIDKey is the fiber.Ctx locals key holding the request id.
const RequestIDKey = "requestID"

// requestIDHeader is the header the id is read from and echoed back on.
const requestIDHeader = "X-Request-Id"

// RequestLogger tags every request with a ULID (honoring an incoming
// X-Request-Id) and logs method, path, status and timing once the
// handler chain finishes.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		requestID := c.Get(requestIDHeader)
		if requestID == "" {
			requestID = util.NewULID()
		}
		c.Locals(RequestIDKey, requestID)
		c.Set(requestIDHeader, requestID)

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("request_id", requestID),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}
