package observability

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

// RequestLogger emits one structured log line per request and feeds the
// request counters.
func RequestLogger(logger *zap.Logger, metrics *Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		duration := time.Since(start)
		metrics.RecordRequest(c.Path(), c.Method(), status, duration)

		logger.Info("request",
			zap.String("request_id", requestIDFromCtx(c)),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("duration", duration),
		)
		return err
	}
}

func requestIDFromCtx(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok {
		return id
	}
	return ""
}
