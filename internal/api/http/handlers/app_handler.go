package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/auth-gateway/internal/api/dto"
)

// AppHandler serves the root greeting and the health probe.
type AppHandler struct{}

// NewAppHandler returns a new handler instance.
func NewAppHandler() *AppHandler {
	return &AppHandler{}
}

// Hello handles GET /api/.
func (h *AppHandler) Hello(c *fiber.Ctx) error {
	return c.SendString("Hello World!")
}

// Health handles GET /api/health. No dependency checks: the service must
// report healthy even when the provider is unconfigured.
func (h *AppHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{
		Status:    "OK",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
