package service

import (
	"errors"
	"testing"
	"time"

	"todo_backend/internal/domain"
)

func newCodecService(secret string) *SessionService {
	// redis is only needed by Issue/Validate/Revoke; the token codec is
	// exercised directly
	return NewSessionService(nil, secret, 168*time.Hour, 24*time.Hour)
}

func TestTokenRoundTrip(t *testing.T) {
	s := newCodecService("test-secret")

	now := time.Now().Truncate(time.Second)
	sess := &domain.Session{
		SID:       "1b671a64-40d5-491e-99b0-da01ff1f3341",
		UserID:    42,
		Email:     "user@example.com",
		IssuedAt:  now,
		ExpiresAt: now.Add(168 * time.Hour),
	}

	token, err := s.signToken(sess)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	got, err := s.parseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if got.SID != sess.SID || got.UserID != sess.UserID || got.Email != sess.Email {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if !got.ExpiresAt.Equal(sess.ExpiresAt) {
		t.Fatalf("expiry mismatch: want %v got %v", sess.ExpiresAt, got.ExpiresAt)
	}
}

func TestParseTokenRejectsTampering(t *testing.T) {
	s := newCodecService("test-secret")

	sess := &domain.Session{
		SID:       "sid",
		UserID:    1,
		Email:     "a@b.com",
		IssuedAt:  time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	token, err := s.signToken(sess)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := s.parseToken(token + "x"); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("expected ErrSessionInvalid for tampered token, got %v", err)
	}

	other := newCodecService("different-secret")
	if _, err := other.parseToken(token); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("expected ErrSessionInvalid for wrong secret, got %v", err)
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	s := newCodecService("test-secret")

	sess := &domain.Session{
		SID:       "sid",
		UserID:    1,
		Email:     "a@b.com",
		IssuedAt:  time.Now().Add(-2 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	token, err := s.signToken(sess)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := s.parseToken(token); !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("expected ErrSessionInvalid for expired token, got %v", err)
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	s := newCodecService("test-secret")

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		if _, err := s.parseToken(tok); !errors.Is(err, ErrSessionInvalid) {
			t.Errorf("expected ErrSessionInvalid for %q, got %v", tok, err)
		}
	}
}
