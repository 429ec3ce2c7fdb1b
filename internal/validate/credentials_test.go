package validate

import (
	"errors"
	"testing"

	"github.com/buglane-dev/buglane/internal/apperrors"
	"golang.org/x/crypto/bcrypt"
)

func wantCode(t *testing.T, err error, code string) {
	t.Helper()

	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperrors.Error, got %v", err)
	}
	if appErr.Code != code {
		t.Errorf("got code %q, want %q", appErr.Code, code)
	}
}

func TestParseCredentials(t *testing.T) {
	t.Parallel()

	creds, err := ParseCredentials(CredentialsInput{
		Username: "alice",
		Email:    "  Alice@Example.COM ",
		Password: "hunter22!",
	})
	if err != nil {
		t.Fatalf("ParseCredentials: %v", err)
	}

	if creds.Email != "alice@example.com" {
		t.Errorf("email not normalized: %q", creds.Email)
	}
	if creds.Role != "User" {
		t.Errorf("role should default to User, got %q", creds.Role)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte("hunter22!")); err != nil {
		t.Errorf("stored hash does not match the password: %v", err)
	}
}

func TestParseCredentialsRole(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		role interface{}
		want string
	}{
		{"absent", nil, "User"},
		{"non-string", 42, "User"},
		{"blank", "   ", "User"},
		{"admin", "Admin", "Admin"},
		{"freeform", "Manager", "Manager"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			creds, err := ParseCredentials(CredentialsInput{
				Username: "alice",
				Email:    "alice@example.com",
				Password: "password1",
				Role:     tc.role,
			})
			if err != nil {
				t.Fatalf("ParseCredentials: %v", err)
			}
			if creds.Role != tc.want {
				t.Errorf("got role %q, want %q", creds.Role, tc.want)
			}
		})
	}
}

func TestParseCredentialsRejects(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   CredentialsInput
		code string
	}{
		{"missing username", CredentialsInput{Email: "a@b.co", Password: "password1"}, apperrors.CodeMissingFields},
		{"missing email", CredentialsInput{Username: "alice", Password: "password1"}, apperrors.CodeMissingFields},
		{"missing password", CredentialsInput{Username: "alice", Email: "a@b.co"}, apperrors.CodeMissingFields},
		{"username not a string", CredentialsInput{Username: 7, Email: "a@b.co", Password: "password1"}, apperrors.CodeInvalidFieldType},
		{"email not a string", CredentialsInput{Username: "alice", Email: true, Password: "password1"}, apperrors.CodeInvalidFieldType},
		{"password not a string", CredentialsInput{Username: "alice", Email: "a@b.co", Password: 12345678}, apperrors.CodeInvalidFieldType},
		{"blank username", CredentialsInput{Username: "  ", Email: "a@b.co", Password: "password1"}, apperrors.CodeEmptyField},
		{"no at sign", CredentialsInput{Username: "alice", Email: "a.b.co", Password: "password1"}, apperrors.CodeInvalidEmail},
		{"no domain dot", CredentialsInput{Username: "alice", Email: "a@bco", Password: "password1"}, apperrors.CodeInvalidEmail},
		{"space in email", CredentialsInput{Username: "alice", Email: "a @b.co", Password: "password1"}, apperrors.CodeInvalidEmail},
		{"short password", CredentialsInput{Username: "alice", Email: "a@b.co", Password: "seven77"}, apperrors.CodeWeakPassword},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseCredentials(tc.in)
			if err == nil {
				t.Fatal("expected an error")
			}
			wantCode(t, err, tc.code)
		})
	}
}

func TestCheckPasswordBoundary(t *testing.T) {
	t.Parallel()

	if err := CheckPassword("12345678"); err != nil {
		t.Errorf("8-character password should be accepted: %v", err)
	}
	if err := CheckPassword("1234567"); err == nil {
		t.Error("7-character password should be rejected")
	}
}
