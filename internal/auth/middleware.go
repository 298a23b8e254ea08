package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/auth-gateway/internal/domain"
	"github.com/spec-kit/auth-gateway/internal/service"
	apperrors "github.com/spec-kit/auth-gateway/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller: the user resolved from the
// provider plus the raw token that proved it.
type Principal struct {
	User        *domain.User
	AccessToken string
}

// Middleware validates bearer tokens and loads principals. Validation is a
// remote lookup against the provider; no token is parsed or verified
// locally.
type Middleware struct {
	auth *service.AuthService
}

// NewMiddleware constructs the guard.
func NewMiddleware(authService *service.AuthService) *Middleware {
	return &Middleware{auth: authService}
}

// RequireBearer enforces authentication for protected routes. It rejects
// before any handler logic runs; public routes simply skip this guard.
func (m *Middleware) RequireBearer(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("Authorization token is required")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return apperrors.NewUnauthorized("Authorization token is required")
	}

	user, err := m.auth.Profile(c.UserContext(), parts[1])
	if err != nil {
		return err
	}

	c.Locals(principalKey, &Principal{User: user, AccessToken: parts[1]})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
