package supabase

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/auth-gateway/internal/config"
	"github.com/spec-kit/auth-gateway/internal/domain"
)

// ErrNotConfigured signals a request made while the provider client never
// initialized. Individual auth requests fail instead of the process.
var ErrNotConfigured = errors.New("supabase client is not initialized, check SUPABASE_URL and SUPABASE_ANON_KEY")

// Sentinel values shipped in .env templates. Matching either means the
// deployment was never pointed at a real project.
var placeholderValues = []string{
	"your_supabase_url_here",
	"your_supabase_anon_key_here",
	"https://your-project-ref.supabase.co",
}

// Service owns the lazily-usable provider client. The process must boot
// even with missing credentials so that health checks keep working; a
// missing or placeholder configuration leaves the service uninitialized
// and every auth request failing with ErrNotConfigured.
type Service struct {
	client *Client
	logger *zap.Logger
}

// NewService builds the service, tolerating absent configuration.
func NewService(cfg config.SupabaseConfig, logger *zap.Logger) *Service {
	s := &Service{logger: logger}

	if cfg.URL == "" || cfg.AnonKey == "" || isPlaceholder(cfg.URL) || isPlaceholder(cfg.AnonKey) {
		logger.Warn("supabase url or key is not properly configured, check your .env file")
		return s
	}

	client, err := NewClient(cfg.URL, cfg.AnonKey)
	if err != nil {
		logger.Error("failed to initialize supabase client", zap.Error(err))
		return s
	}

	s.client = client
	logger.Info("supabase client initialized successfully")
	return s
}

func isPlaceholder(value string) bool {
	for _, sentinel := range placeholderValues {
		if strings.Contains(value, sentinel) || value == sentinel {
			return true
		}
	}
	return false
}

// Configured reports whether the provider client is usable.
func (s *Service) Configured() bool {
	return s.client != nil
}

// getClient returns the provider client or a configuration error.
func (s *Service) getClient() (*Client, error) {
	if s.client == nil {
		return nil, ErrNotConfigured
	}
	return s.client, nil
}

func (s *Service) SignUp(ctx context.Context, params SignUpParams) (*domain.AuthResult, error) {
	client, err := s.getClient()
	if err != nil {
		return nil, err
	}
	return client.SignUp(ctx, params)
}

func (s *Service) SignInWithPassword(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	client, err := s.getClient()
	if err != nil {
		return nil, err
	}
	return client.SignInWithPassword(ctx, email, password)
}

func (s *Service) ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error {
	client, err := s.getClient()
	if err != nil {
		return err
	}
	return client.ResetPasswordForEmail(ctx, email, redirectTo)
}

func (s *Service) VerifyOTP(ctx context.Context, email, token string) (*domain.AuthResult, error) {
	client, err := s.getClient()
	if err != nil {
		return nil, err
	}
	return client.VerifyOTP(ctx, email, token)
}

func (s *Service) ResendSignupConfirmation(ctx context.Context, email string) error {
	client, err := s.getClient()
	if err != nil {
		return err
	}
	return client.ResendSignupConfirmation(ctx, email)
}

func (s *Service) GetUser(ctx context.Context, accessToken string) (*domain.User, error) {
	client, err := s.getClient()
	if err != nil {
		return nil, err
	}
	return client.GetUser(ctx, accessToken)
}

func (s *Service) RefreshSession(ctx context.Context, refreshToken string) (*domain.Session, error) {
	client, err := s.getClient()
	if err != nil {
		return nil, err
	}
	return client.RefreshSession(ctx, refreshToken)
}

func (s *Service) SignOut(ctx context.Context, accessToken string) error {
	client, err := s.getClient()
	if err != nil {
		return err
	}
	return client.SignOut(ctx, accessToken)
}
