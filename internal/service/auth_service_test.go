package service

import (
	"context"
	"errors"
	"testing"
)

func TestNormalizeEmail(t *testing.T) {
	email, err := normalizeEmail("  User@Example.COM ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if email != "user@example.com" {
		t.Fatalf("expected lower-cased trimmed email, got %q", email)
	}

	for _, bad := range []string{"", "not-an-email", "a@", "@b.com", "a b@c.com"} {
		if _, err := normalizeEmail(bad); !errors.Is(err, ErrBadEmail) {
			t.Errorf("expected ErrBadEmail for %q, got %v", bad, err)
		}
	}
}

// Validation failures must short-circuit before the repository is touched,
// so a nil repository is fine here.
func TestSignUpValidation(t *testing.T) {
	s := NewAuthService(nil)
	ctx := context.Background()

	if _, err := s.SignUp(ctx, "nonsense", "long-enough-password"); !errors.Is(err, ErrBadEmail) {
		t.Fatalf("expected ErrBadEmail, got %v", err)
	}
	if _, err := s.SignUp(ctx, "a@b.com", "short"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

func TestSignInBadEmailMasked(t *testing.T) {
	s := NewAuthService(nil)

	// a malformed email must fail exactly like a wrong password
	if _, err := s.SignIn(context.Background(), "nonsense", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
