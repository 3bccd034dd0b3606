package service

import (
	"context"
	"errors"
	"time"

	"todo_backend/internal/domain"
	"todo_backend/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
)

// ErrSessionInvalid is returned for malformed, expired and revoked tokens
// alike.
var ErrSessionInvalid = errors.New("invalid or expired session")

const sessionKeyPrefix = "session:"

// SessionService issues and validates session tokens. A session is a signed
// JWT whose sid must also be registered in Redis; deleting the Redis key
// revokes the session regardless of the token's expiry.
type SessionService struct {
	redis         *redis.Client
	secret        []byte
	lifetime      time.Duration
	refreshWindow time.Duration
}

func NewSessionService(client *redis.Client, secret string, lifetime, refreshWindow time.Duration) *SessionService {
	return &SessionService{
		redis:         client,
		secret:        []byte(secret),
		lifetime:      lifetime,
		refreshWindow: refreshWindow,
	}
}

func (s *SessionService) signToken(sess *domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"sid":   sess.SID,
		"sub":   sess.UserID,
		"email": sess.Email,
		"iat":   sess.IssuedAt.Unix(),
		"nbf":   sess.IssuedAt.Unix(),
		"exp":   sess.ExpiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *SessionService) parseToken(tokenString string) (*domain.Session, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrSessionInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrSessionInvalid
	}

	sid, _ := claims["sid"].(string)
	email, _ := claims["email"].(string)
	sub, subOK := claims["sub"].(float64)
	iat, _ := claims["iat"].(float64)
	exp, expOK := claims["exp"].(float64)
	if sid == "" || !subOK || !expOK {
		return nil, ErrSessionInvalid
	}

	return &domain.Session{
		SID:       sid,
		UserID:    int64(sub),
		Email:     email,
		IssuedAt:  time.Unix(int64(iat), 0),
		ExpiresAt: time.Unix(int64(exp), 0),
	}, nil
}

// Issue creates a session for the user: a fresh sid registered in Redis
// with the configured lifetime, returned as a signed token.
func (s *SessionService) Issue(ctx context.Context, user *domain.User) (string, *domain.Session, error) {
	now := time.Now()
	sess := &domain.Session{
		SID:       uuid.NewString(),
		UserID:    user.ID,
		Email:     user.Email,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.lifetime),
	}

	token, err := s.signToken(sess)
	if err != nil {
		return "", nil, err
	}

	key := sessionKeyPrefix + sess.SID
	if err := s.redis.HSet(ctx, key, "user_id", sess.UserID, "email", sess.Email).Err(); err != nil {
		return "", nil, err
	}
	if err := s.redis.Expire(ctx, key, s.lifetime).Err(); err != nil {
		return "", nil, err
	}
	return token, sess, nil
}

// Validate checks the token signature and expiry, then requires the sid to
// still be registered in Redis. When the session is inside the refresh
// window a replacement token is issued, the old sid is revoked, and the new
// token is returned alongside the session for the caller to forward.
func (s *SessionService) Validate(ctx context.Context, tokenString string) (*domain.Session, string, error) {
	sess, err := s.parseToken(tokenString)
	if err != nil {
		return nil, "", err
	}

	key := sessionKeyPrefix + sess.SID
	exists, err := s.redis.Exists(ctx, key).Result()
	if err != nil {
		return nil, "", err
	}
	if exists == 0 {
		return nil, "", ErrSessionInvalid
	}

	if time.Until(sess.ExpiresAt) < s.refreshWindow {
		refreshed, newSess, err := s.Issue(ctx, &domain.User{ID: sess.UserID, Email: sess.Email})
		if err != nil {
			// refresh is best-effort; the current session is still good
			logger.Warn("session refresh failed", "sid", sess.SID, "error", err)
			return sess, "", nil
		}
		if err := s.Revoke(ctx, sess.SID); err != nil {
			logger.Warn("stale session revoke failed", "sid", sess.SID, "error", err)
		}
		return newSess, refreshed, nil
	}

	return sess, "", nil
}

// Revoke deletes the session registration; the token is dead from then on.
func (s *SessionService) Revoke(ctx context.Context, sid string) error {
	return s.redis.Del(ctx, sessionKeyPrefix+sid).Err()
}
