package domain

import "time"

// Session is the authenticated identity resolved from a session token.
// SID identifies the token itself so a single sign-out can revoke it.
type Session struct {
	SID       string
	UserID    int64
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
