package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/spec-kit/auth-gateway/internal/domain"
)

// APIError is a failure reported by the provider's auth API. Classification
// of provider failures happens here, at the adapter boundary; callers
// branch on the typed error instead of re-inspecting raw responses.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("supabase: %s (%s)", e.Message, e.Code)
	}
	return fmt.Sprintf("supabase: %s", e.Message)
}

// IsAlreadyRegistered reports whether the failure is a duplicate signup.
// The error code is preferred; the message substring is what older GoTrue
// versions expose.
func (e *APIError) IsAlreadyRegistered() bool {
	return e.Code == "user_already_exists" || strings.Contains(e.Message, "already registered")
}

// Client talks to the provider's GoTrue REST API. It is immutable after
// construction and safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient validates the project URL and returns a ready client.
func NewClient(rawURL, apiKey string) (*Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse supabase url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("supabase url %q missing scheme or host", rawURL)
	}

	return &Client{
		baseURL:    strings.TrimRight(rawURL, "/") + "/auth/v1",
		apiKey:     apiKey,
		httpClient: http.DefaultClient,
	}, nil
}

// SignUpParams carries the registration payload. Names are forwarded as
// provider user metadata.
type SignUpParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// authPayload covers both shapes GoTrue responds with: a bare user object
// when email confirmation is pending, or a session object embedding the
// user once a session exists.
type authPayload struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"`
	TokenType    string       `json:"token_type"`
	User         *domain.User `json:"user"`

	ID               string               `json:"id"`
	Email            string               `json:"email"`
	EmailConfirmedAt string               `json:"email_confirmed_at"`
	UserMetadata     *domain.UserMetadata `json:"user_metadata"`
	CreatedAt        string               `json:"created_at"`
	UpdatedAt        string               `json:"updated_at"`
}

func (p *authPayload) toResult() *domain.AuthResult {
	res := &domain.AuthResult{User: p.User}
	if p.AccessToken != "" {
		res.Session = &domain.Session{
			AccessToken:  p.AccessToken,
			RefreshToken: p.RefreshToken,
			ExpiresIn:    p.ExpiresIn,
			TokenType:    p.TokenType,
		}
	}
	if res.User == nil && p.ID != "" {
		res.User = &domain.User{
			ID:               p.ID,
			Email:            p.Email,
			EmailConfirmedAt: p.EmailConfirmedAt,
			UserMetadata:     p.UserMetadata,
			CreatedAt:        p.CreatedAt,
			UpdatedAt:        p.UpdatedAt,
		}
	}
	return res
}

// SignUp creates an account with optional name metadata.
func (c *Client) SignUp(ctx context.Context, params SignUpParams) (*domain.AuthResult, error) {
	body := map[string]any{
		"email":    params.Email,
		"password": params.Password,
		"data": map[string]any{
			"first_name": params.FirstName,
			"last_name":  params.LastName,
		},
	}

	var payload authPayload
	if err := c.do(ctx, http.MethodPost, "/signup", "", body, &payload); err != nil {
		return nil, err
	}
	return payload.toResult(), nil
}

// SignInWithPassword exchanges credentials for a session.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	body := map[string]any{"email": email, "password": password}

	var payload authPayload
	if err := c.do(ctx, http.MethodPost, "/token?grant_type=password", "", body, &payload); err != nil {
		return nil, err
	}
	return payload.toResult(), nil
}

// ResetPasswordForEmail triggers the provider's reset email flow.
func (c *Client) ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error {
	path := "/recover"
	if redirectTo != "" {
		path += "?redirect_to=" + url.QueryEscape(redirectTo)
	}
	return c.do(ctx, http.MethodPost, path, "", map[string]any{"email": email}, nil)
}

// VerifyOTP confirms a signup with the emailed one-time code.
func (c *Client) VerifyOTP(ctx context.Context, email, token string) (*domain.AuthResult, error) {
	body := map[string]any{"type": "signup", "email": email, "token": token}

	var payload authPayload
	if err := c.do(ctx, http.MethodPost, "/verify", "", body, &payload); err != nil {
		return nil, err
	}
	return payload.toResult(), nil
}

// ResendSignupConfirmation re-sends the confirmation email.
func (c *Client) ResendSignupConfirmation(ctx context.Context, email string) error {
	body := map[string]any{"type": "signup", "email": email}
	return c.do(ctx, http.MethodPost, "/resend", "", body, nil)
}

// GetUser resolves the account behind an access token.
func (c *Client) GetUser(ctx context.Context, accessToken string) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodGet, "/user", accessToken, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// RefreshSession exchanges a refresh token for a new session.
func (c *Client) RefreshSession(ctx context.Context, refreshToken string) (*domain.Session, error) {
	body := map[string]any{"refresh_token": refreshToken}

	var payload authPayload
	if err := c.do(ctx, http.MethodPost, "/token?grant_type=refresh_token", "", body, &payload); err != nil {
		return nil, err
	}
	result := payload.toResult()
	return result.Session, nil
}

// SignOut invalidates the session behind the access token. The token itself
// establishes the session context; the provider revokes it server-side.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	return c.do(ctx, http.MethodPost, "/logout", accessToken, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path, bearer string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	} else {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("supabase request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return parseAPIError(resp.StatusCode, raw)
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// parseAPIError normalizes the several error body shapes GoTrue emits.
func parseAPIError(status int, raw []byte) error {
	var body struct {
		ErrorCode        string `json:"error_code"`
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	_ = json.Unmarshal(raw, &body)

	message := body.Msg
	if message == "" {
		message = body.Message
	}
	if message == "" {
		message = body.ErrorDescription
	}
	if message == "" {
		message = body.Error
	}
	if message == "" {
		message = http.StatusText(status)
	}

	return &APIError{Status: status, Code: body.ErrorCode, Message: message}
}
