package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// slowThreshold marks requests worth surfacing at warn level even when
// they succeed; an estimate that crawls is usually the upstream stalling.
const slowThreshold = 500 * time.Millisecond

// Logger logs one line per request. Fast successful requests log at debug
// so production output stays dominated by failures and slow calls.
func Logger(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		latency := time.Since(start)
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Duration("latency", latency),
		}
		if id, ok := c.Locals(RequestIDKey).(string); ok {
			fields = append(fields, zap.String("request_id", id))
		}

		switch {
		case status >= 500:
			log.Error("request", fields...)
		case status >= 400 || latency >= slowThreshold:
			log.Warn("request", fields...)
		default:
			log.Debug("request", fields...)
		}
		return err
	}
}
