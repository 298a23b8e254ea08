package supabase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSignUpPendingConfirmationReturnsUserOnly(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/signup" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("apikey") != "anon-key" {
			t.Fatalf("missing apikey header")
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		data, ok := body["data"].(map[string]any)
		if !ok || data["first_name"] != "Ada" || data["last_name"] != "Lovelace" {
			t.Fatalf("metadata not forwarded: %v", body)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":         "user-1",
			"email":      "a@b.com",
			"created_at": "2024-01-01T00:00:00Z",
			"updated_at": "2024-01-01T00:00:00Z",
		})
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "anon-key")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	result, err := client.SignUp(context.Background(), SignUpParams{
		Email: "a@b.com", Password: "secret1", FirstName: "Ada", LastName: "Lovelace",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if result.User == nil || result.User.ID != "user-1" {
		t.Fatalf("expected user-1, got %+v", result.User)
	}
	if result.Session != nil {
		t.Fatal("expected no session before confirmation")
	}
}

func TestSignInWithPasswordReturnsUserAndSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/token" || r.URL.Query().Get("grant_type") != "password" {
			t.Fatalf("unexpected request %s?%s", r.URL.Path, r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "at",
			"refresh_token": "rt",
			"expires_in":    3600,
			"token_type":    "bearer",
			"user":          map[string]any{"id": "user-1", "email": "a@b.com"},
		})
	}))
	defer server.Close()

	client, _ := NewClient(server.URL, "anon-key")
	result, err := client.SignInWithPassword(context.Background(), "a@b.com", "secret1")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if result.User == nil || result.User.ID != "user-1" {
		t.Fatalf("expected embedded user, got %+v", result.User)
	}
	if result.Session == nil || result.Session.AccessToken != "at" || result.Session.ExpiresIn != 3600 {
		t.Fatalf("unexpected session %+v", result.Session)
	}
}

func TestErrorBodyBecomesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{
			"code":       422,
			"error_code": "user_already_exists",
			"msg":        "User already registered",
		})
	}))
	defer server.Close()

	client, _ := NewClient(server.URL, "anon-key")
	_, err := client.SignUp(context.Background(), SignUpParams{Email: "a@b.com", Password: "secret1"})

	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusUnprocessableEntity || apiErr.Code != "user_already_exists" {
		t.Fatalf("unexpected error %+v", apiErr)
	}
	if !apiErr.IsAlreadyRegistered() {
		t.Fatal("expected duplicate-signup classification")
	}
}

func TestLegacyErrorBodyParsed(t *testing.T) {
	err := parseAPIError(400, []byte(`{"error":"invalid_grant","error_description":"Invalid login credentials"}`))
	apiErr := err.(*APIError)
	if apiErr.Message != "Invalid login credentials" {
		t.Fatalf("unexpected message %q", apiErr.Message)
	}
	if apiErr.IsAlreadyRegistered() {
		t.Fatal("should not classify as duplicate signup")
	}
}

func TestGetUserSendsBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/user" || r.Method != http.MethodGet {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer access-token" {
			t.Fatalf("unexpected authorization %q", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"id": "user-1", "email": "a@b.com"})
	}))
	defer server.Close()

	client, _ := NewClient(server.URL, "anon-key")
	user, err := client.GetUser(context.Background(), "access-token")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if user.ID != "user-1" {
		t.Fatalf("unexpected user %+v", user)
	}
}

func TestResetPasswordForEmailSendsRedirect(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/recover" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("redirect_to") != "https://app.example.com/reset-password" {
			t.Fatalf("unexpected redirect_to %q", r.URL.Query().Get("redirect_to"))
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("{}"))
	}))
	defer server.Close()

	client, _ := NewClient(server.URL, "anon-key")
	if err := client.ResetPasswordForEmail(context.Background(), "a@b.com", "https://app.example.com/reset-password"); err != nil {
		t.Fatalf("recover: %v", err)
	}
}

func TestRefreshSessionReturnsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("grant_type") != "refresh_token" {
			t.Fatalf("unexpected grant type %q", r.URL.Query().Get("grant_type"))
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "new-at",
			"refresh_token": "new-rt",
			"expires_in":    3600,
			"token_type":    "bearer",
		})
	}))
	defer server.Close()

	client, _ := NewClient(server.URL, "anon-key")
	session, err := client.RefreshSession(context.Background(), "rt")
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if session == nil || session.AccessToken != "new-at" {
		t.Fatalf("unexpected session %+v", session)
	}
}

func TestSignOutPostsLogoutWithToken(t *testing.T) {
	var called bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if r.URL.Path != "/auth/v1/logout" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer access-token" {
			t.Fatalf("unexpected authorization %q", r.Header.Get("Authorization"))
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client, _ := NewClient(server.URL, "anon-key")
	if err := client.SignOut(context.Background(), "access-token"); err != nil {
		t.Fatalf("sign out: %v", err)
	}
	if !called {
		t.Fatal("logout endpoint not called")
	}
}

func TestNewClientRejectsMalformedURL(t *testing.T) {
	if _, err := NewClient("not-a-url", "key"); err == nil {
		t.Fatal("expected error for URL without scheme")
	}
	if _, err := NewClient("http://\x7f", "key"); err == nil {
		t.Fatal("expected error for unparsable URL")
	}
}
