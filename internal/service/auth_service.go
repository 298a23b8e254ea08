package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/auth-gateway/internal/config"
	"github.com/spec-kit/auth-gateway/internal/domain"
	"github.com/spec-kit/auth-gateway/internal/observability"
	"github.com/spec-kit/auth-gateway/internal/supabase"
	"github.com/spec-kit/auth-gateway/pkg/util"
)

// AuthProvider is the slice of the identity provider the service consumes.
// The real implementation is the supabase adapter; tests substitute fakes.
type AuthProvider interface {
	SignUp(ctx context.Context, params supabase.SignUpParams) (*domain.AuthResult, error)
	SignInWithPassword(ctx context.Context, email, password string) (*domain.AuthResult, error)
	ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error
	VerifyOTP(ctx context.Context, email, token string) (*domain.AuthResult, error)
	ResendSignupConfirmation(ctx context.Context, email string) error
	GetUser(ctx context.Context, accessToken string) (*domain.User, error)
	RefreshSession(ctx context.Context, refreshToken string) (*domain.Session, error)
	SignOut(ctx context.Context, accessToken string) error
}

// AuthService maps validated requests onto provider calls and provider
// results onto normalized responses. It holds no local state: users and
// sessions live entirely inside the provider.
type AuthService struct {
	provider    AuthProvider
	frontendURL string
	logger      *zap.Logger
	metrics     *observability.Metrics
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, provider AuthProvider, logger *zap.Logger, metrics *observability.Metrics) *AuthService {
	return &AuthService{
		provider:    provider,
		frontendURL: cfg.CORS.FrontendURL,
		logger:      logger,
		metrics:     metrics,
	}
}

// Signup registers a new account. A duplicate email is a conflict; any
// other provider rejection surfaces as a bad request with the provider's
// message.
func (s *AuthService) Signup(ctx context.Context, email, password, firstName, lastName string) (*domain.User, error) {
	s.logger.Info("attempting to register user", zap.String("email", email))

	result, err := s.provider.SignUp(ctx, supabase.SignUpParams{
		Email:     email,
		Password:  password,
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		var apiErr *supabase.APIError
		if errors.As(err, &apiErr) {
			s.logger.Error("signup error", zap.String("email", email), zap.Error(err))
			s.metrics.RecordProviderError("signup")
			if apiErr.IsAlreadyRegistered() {
				return nil, util.NewConflict("User with this email already exists")
			}
			return nil, util.NewBadRequest(apiErr.Message)
		}
		return nil, err
	}

	s.logger.Info("signup successful", zap.String("email", email))
	return result.User, nil
}

// Login authenticates with email and password. Every provider rejection
// collapses to unauthorized; the provider's reason is not relayed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	result, err := s.provider.SignInWithPassword(ctx, email, password)
	if err != nil {
		var apiErr *supabase.APIError
		if errors.As(err, &apiErr) {
			s.metrics.RecordProviderError("login")
			return nil, util.NewUnauthorized("Invalid credentials")
		}
		return nil, err
	}

	if result.User == nil || result.Session == nil {
		return nil, util.NewUnauthorized("Login failed")
	}
	return result, nil
}

// ResetPassword asks the provider to send a reset email linking back to the
// frontend.
func (s *AuthService) ResetPassword(ctx context.Context, email string) error {
	redirectTo := s.frontendURL + "/reset-password"

	if err := s.provider.ResetPasswordForEmail(ctx, email, redirectTo); err != nil {
		var apiErr *supabase.APIError
		if errors.As(err, &apiErr) {
			s.metrics.RecordProviderError("reset_password")
			return util.NewBadRequest(apiErr.Message)
		}
		return err
	}
	return nil
}

// ConfirmRegister verifies the emailed one-time signup code.
func (s *AuthService) ConfirmRegister(ctx context.Context, email, token string) (*domain.AuthResult, error) {
	result, err := s.provider.VerifyOTP(ctx, email, token)
	if err != nil {
		var apiErr *supabase.APIError
		if errors.As(err, &apiErr) {
			s.metrics.RecordProviderError("confirm_register")
			return nil, util.NewBadRequest("Invalid or expired confirmation token")
		}
		return nil, err
	}

	if result.User == nil || result.Session == nil {
		return nil, util.NewBadRequest("Email confirmation failed")
	}
	return result, nil
}

// ResendConfirmation re-sends the signup confirmation email.
func (s *AuthService) ResendConfirmation(ctx context.Context, email string) error {
	if err := s.provider.ResendSignupConfirmation(ctx, email); err != nil {
		var apiErr *supabase.APIError
		if errors.As(err, &apiErr) {
			s.metrics.RecordProviderError("resend_confirmation")
			return util.NewBadRequest(apiErr.Message)
		}
		return err
	}
	return nil
}

// Profile resolves the account behind an access token via remote lookup.
func (s *AuthService) Profile(ctx context.Context, accessToken string) (*domain.User, error) {
	user, err := s.provider.GetUser(ctx, accessToken)
	if err != nil {
		var apiErr *supabase.APIError
		if errors.As(err, &apiErr) {
			s.metrics.RecordProviderError("profile")
			return nil, util.NewUnauthorized("Invalid access token")
		}
		return nil, err
	}
	if user == nil {
		return nil, util.NewUnauthorized("Invalid access token")
	}
	return user, nil
}

// RefreshToken exchanges a refresh token for a new session.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error) {
	session, err := s.provider.RefreshSession(ctx, refreshToken)
	if err != nil {
		var apiErr *supabase.APIError
		if errors.As(err, &apiErr) {
			s.metrics.RecordProviderError("refresh")
			return nil, util.NewUnauthorized("Invalid refresh token")
		}
		return nil, err
	}
	if session == nil {
		return nil, util.NewUnauthorized("Invalid refresh token")
	}
	return session, nil
}

// SignOut invalidates the session behind the access token.
func (s *AuthService) SignOut(ctx context.Context, accessToken string) error {
	if err := s.provider.SignOut(ctx, accessToken); err != nil {
		var apiErr *supabase.APIError
		if errors.As(err, &apiErr) {
			s.metrics.RecordProviderError("signout")
			return util.NewBadRequest("Sign out failed")
		}
		return err
	}
	return nil
}
