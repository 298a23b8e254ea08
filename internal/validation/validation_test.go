package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/spec-kit/auth-gateway/internal/api/dto"
	"github.com/spec-kit/auth-gateway/pkg/util"
)

func details(t *testing.T, err error) []string {
	t.Helper()
	var domainErr *util.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected DomainError, got %v", err)
	}
	if domainErr.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", domainErr.StatusCode)
	}
	return domainErr.Details
}

func TestValidPayloadPasses(t *testing.T) {
	var req dto.RegisterRequest
	body := []byte(`{"email":"a@b.com","password":"secret1","firstName":"Ada"}`)
	if err := ParseAndValidate(body, &req); err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}
	if req.Email != "a@b.com" || req.FirstName != "Ada" {
		t.Fatalf("payload not decoded: %+v", req)
	}
}

func TestInvalidEmailRejected(t *testing.T) {
	var req dto.LoginRequest
	err := ParseAndValidate([]byte(`{"email":"not-an-email","password":"secret1"}`), &req)
	got := details(t, err)
	if len(got) != 1 || got[0] != "email must be an email" {
		t.Fatalf("unexpected details %v", got)
	}
}

func TestMissingFieldsEnumerated(t *testing.T) {
	var req dto.LoginRequest
	err := ParseAndValidate([]byte(`{}`), &req)
	got := details(t, err)
	if len(got) != 2 {
		t.Fatalf("expected 2 field messages, got %v", got)
	}
	joined := strings.Join(got, "; ")
	if !strings.Contains(joined, "email should not be empty") || !strings.Contains(joined, "password should not be empty") {
		t.Fatalf("unexpected details %v", got)
	}
}

func TestShortPasswordRejected(t *testing.T) {
	var req dto.RegisterRequest
	err := ParseAndValidate([]byte(`{"email":"a@b.com","password":"abc"}`), &req)
	got := details(t, err)
	if len(got) != 1 || got[0] != "password must be longer than or equal to 6 characters" {
		t.Fatalf("unexpected details %v", got)
	}
}

func TestUnknownFieldRejected(t *testing.T) {
	var req dto.LoginRequest
	err := ParseAndValidate([]byte(`{"email":"a@b.com","password":"secret1","admin":true}`), &req)
	got := details(t, err)
	if len(got) != 1 || got[0] != "property admin should not exist" {
		t.Fatalf("unexpected details %v", got)
	}
}

func TestMalformedJSONRejected(t *testing.T) {
	var req dto.LoginRequest
	err := ParseAndValidate([]byte(`{"email":`), &req)
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	details(t, err)
}

func TestOptionalNamesMayBeAbsent(t *testing.T) {
	var req dto.RegisterRequest
	if err := ParseAndValidate([]byte(`{"email":"a@b.com","password":"secret1"}`), &req); err != nil {
		t.Fatalf("optional fields should be allowed to be absent: %v", err)
	}
}

func TestRefreshTokenRequired(t *testing.T) {
	var req dto.RefreshTokenRequest
	err := ParseAndValidate([]byte(`{"refreshToken":""}`), &req)
	got := details(t, err)
	if len(got) != 1 || got[0] != "refreshToken should not be empty" {
		t.Fatalf("unexpected details %v", got)
	}
}
