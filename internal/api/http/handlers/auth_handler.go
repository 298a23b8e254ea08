package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/auth-gateway/internal/api/dto"
	"github.com/spec-kit/auth-gateway/internal/auth"
	"github.com/spec-kit/auth-gateway/internal/service"
	"github.com/spec-kit/auth-gateway/internal/validation"
	apperrors "github.com/spec-kit/auth-gateway/pkg/util"
)

// AuthHandler exposes the auth endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Signup handles POST /api/auth/signup.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := validation.ParseAndValidate(c.Body(), &req); err != nil {
		return err
	}

	user, err := h.auth.Signup(c.UserContext(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.SignupResponse{
		Message: "Registration successful. Please check your email to confirm your account.",
		User:    user,
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := validation.ParseAndValidate(c.Body(), &req); err != nil {
		return err
	}

	result, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.AuthResponse{User: result.User, Session: result.Session})
}

// ResetPassword handles POST /api/auth/reset-password.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := validation.ParseAndValidate(c.Body(), &req); err != nil {
		return err
	}

	if err := h.auth.ResetPassword(c.UserContext(), req.Email); err != nil {
		return err
	}

	return c.JSON(dto.MessageResponse{Message: "Password reset email sent successfully"})
}

// ConfirmRegister handles POST /api/auth/confirm-register.
func (h *AuthHandler) ConfirmRegister(c *fiber.Ctx) error {
	var req dto.ConfirmRegisterRequest
	if err := validation.ParseAndValidate(c.Body(), &req); err != nil {
		return err
	}

	result, err := h.auth.ConfirmRegister(c.UserContext(), req.Email, req.Token)
	if err != nil {
		return err
	}

	return c.JSON(dto.AuthResponse{User: result.User, Session: result.Session})
}

// ResendConfirmation handles POST /api/auth/resend-confirmation.
func (h *AuthHandler) ResendConfirmation(c *fiber.Ctx) error {
	var req dto.ResendConfirmationRequest
	if err := validation.ParseAndValidate(c.Body(), &req); err != nil {
		return err
	}

	if err := h.auth.ResendConfirmation(c.UserContext(), req.Email); err != nil {
		return err
	}

	return c.JSON(dto.MessageResponse{Message: "Confirmation email sent successfully"})
}

// Profile handles GET /api/auth/profile. The guard already resolved the
// user; a second provider lookup would be redundant.
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Invalid access token")
	}
	return c.JSON(principal.User)
}

// Refresh handles POST /api/auth/refresh.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshTokenRequest
	if err := validation.ParseAndValidate(c.Body(), &req); err != nil {
		return err
	}

	session, err := h.auth.RefreshToken(c.UserContext(), req.RefreshToken)
	if err != nil {
		return err
	}

	return c.JSON(dto.RefreshResponse{Session: session})
}

// SignOut handles POST /api/auth/signout.
func (h *AuthHandler) SignOut(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Authorization token is required")
	}

	if err := h.auth.SignOut(c.UserContext(), principal.AccessToken); err != nil {
		return err
	}

	return c.JSON(dto.MessageResponse{Message: "Signed out successfully"})
}
