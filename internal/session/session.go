// Package session issues and verifies the bearer tokens that gate the
// records API and the client matcher's polling loop.
package session

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrExpired is returned when a token's expiry has passed.
var ErrExpired = errors.New("session token expired")

// Manager signs and verifies HS256 session tokens whose subject is the
// user id.
type Manager struct {
	secret []byte
}

// NewManager creates a Manager with the given signing secret.
func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret)}
}

// Issue creates a signed token for the user, valid for ttl from now.
func (m *Manager) Issue(userID uint, ttl time.Duration, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify validates the token signature and expiry and returns the user id.
func (m *Manager) Verify(token string) (uint, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrExpired
		}
		return 0, fmt.Errorf("parse session token: %w", err)
	}
	if !parsed.Valid {
		return 0, fmt.Errorf("invalid session token")
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("session token subject %q: %w", claims.Subject, err)
	}
	return uint(id), nil
}

// TokenExpired reports, without verifying the signature, whether the token's
// expiry is at or before now. The client matcher uses this to stop polling
// when its session ends; malformed tokens count as expired. Tokens carrying
// no expiry never expire.
func TokenExpired(token string, now time.Time) bool {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !now.Before(claims.ExpiresAt.Time)
}
