package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/auth-gateway/internal/api/http/handlers"
	"github.com/spec-kit/auth-gateway/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	App   *handlers.AppHandler
	Auth  *handlers.AuthHandler
	Guard *auth.Middleware
}

// RegisterRoutes wires the HTTP surface. Routes without the guard are
// public; profile and signout require a bearer token.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	api := app.Group("/api")
	api.Get("/", cfg.App.Hello)
	api.Get("/health", cfg.App.Health)

	authGroup := api.Group("/auth")
	authGroup.Post("/signup", cfg.Auth.Signup)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/reset-password", cfg.Auth.ResetPassword)
	authGroup.Post("/confirm-register", cfg.Auth.ConfirmRegister)
	authGroup.Post("/resend-confirmation", cfg.Auth.ResendConfirmation)
	authGroup.Post("/refresh", cfg.Auth.Refresh)

	authGroup.Get("/profile", cfg.Guard.RequireBearer, cfg.Auth.Profile)
	authGroup.Post("/signout", cfg.Guard.RequireBearer, cfg.Auth.SignOut)
}
