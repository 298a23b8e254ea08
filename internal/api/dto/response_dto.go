package dto

import "github.com/spec-kit/auth-gateway/internal/domain"

// MessageResponse is the plain confirmation envelope.
type MessageResponse struct {
	Message string `json:"message"`
}

// SignupResponse is returned on successful registration. User may be absent
// when the provider withholds it until email confirmation.
type SignupResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user,omitempty"`
}

// AuthResponse pairs the authenticated user with its session.
type AuthResponse struct {
	User    *domain.User    `json:"user"`
	Session *domain.Session `json:"session"`
}

// RefreshResponse carries the renewed session.
type RefreshResponse struct {
	Session *domain.Session `json:"session"`
}

// HealthResponse reports liveness.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// ErrorResponse is the error envelope for every failed request. Message is
// a string, or a list of field messages for validation failures.
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    any    `json:"message"`
	Error      string `json:"error"`
}
