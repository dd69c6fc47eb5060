// Package auth implements the admin session gate: a credential check issuing
// short-lived JWTs carried in an HttpOnly cookie. The rest of the system only
// sees the resulting capability flag; no engine call checks auth itself.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CookieName is the session cookie holding the signed token.
const CookieName = "admin_session"

// SessionTTL bounds how long an admin session stays valid.
const SessionTTL = 24 * time.Hour

// ErrNotConfigured indicates admin credentials are missing from the
// environment; every login fails until they are set.
var ErrNotConfigured = errors.New("admin credentials are not configured")

// ErrInvalidCredentials indicates a failed username/password check.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service verifies admin credentials and signs session tokens.
type Service struct {
	username string
	password string
	secret   []byte
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires the session gate. The signing secret falls back to the
// admin password when none is provided, matching the legacy deployment.
func NewService(username, password, secret string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if secret == "" {
		secret = password
	}
	return &Service{
		username: username,
		password: password,
		secret:   []byte(secret),
		logger:   logger,
		now:      time.Now,
	}
}

// Enabled reports whether credentials are configured at all.
func (s *Service) Enabled() bool {
	return s.username != "" && s.password != ""
}

// Login checks the credentials and returns a signed session token.
func (s *Service) Login(username, password string) (string, error) {
	if !s.Enabled() {
		return "", ErrNotConfigured
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	if !userOK || !passOK {
		s.logger.Warn("rejected admin login attempt", zap.String("username", username))
		return "", ErrInvalidCredentials
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return token, nil
}

// Verify reports whether the token is a valid, unexpired admin session.
func (s *Service) Verify(token string) bool {
	if !s.Enabled() || token == "" {
		return false
	}

	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return false
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	return ok && claims.Subject == "admin"
}
