// Package auth issues and verifies the signed bearer credentials that
// authenticate a session: a short-lived access token and a long-lived refresh
// token, each signed with its own secret.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/cliptube/backend/internal/models"
)

// ErrInvalidToken indicates a token with a bad signature, wrong type, or
// expired lifetime.
var ErrInvalidToken = errors.New("invalid token")

// TokenManager signs and verifies access/refresh token pairs.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration

	nowFunc func() time.Time
}

// NewTokenManager constructs a TokenManager from the provided secrets and TTLs.
func NewTokenManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	if accessSecret == "" || refreshSecret == "" {
		panic("auth: token secrets must not be empty")
	}
	return &TokenManager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		nowFunc:       func() time.Time { return time.Now().UTC() },
	}
}

// WithNowFunc overrides the time source, for tests.
func (m *TokenManager) WithNowFunc(now func() time.Time) {
	m.nowFunc = now
}

// Issue creates a new access/refresh pair for the provided user identifier.
// Every pair carries a fresh token id, so rotation always produces a refresh
// token distinct from the one it replaces.
func (m *TokenManager) Issue(userID string) (models.TokenPair, error) {
	if userID == "" {
		return models.TokenPair{}, errors.New("user id must be provided")
	}

	now := m.nowFunc()
	accessExpiry := now.Add(m.accessTTL)
	refreshExpiry := now.Add(m.refreshTTL)

	access, err := m.sign(userID, now, accessExpiry, m.accessSecret)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("sign access token: %w", err)
	}

	refresh, err := m.sign(userID, now, refreshExpiry, m.refreshSecret)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("sign refresh token: %w", err)
	}

	return models.TokenPair{
		AccessToken:      access,
		AccessExpiresAt:  accessExpiry,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExpiry,
	}, nil
}

// VerifyAccess validates an access token and returns the subject user id.
func (m *TokenManager) VerifyAccess(token string) (string, error) {
	return m.verify(token, m.accessSecret)
}

// VerifyRefresh validates a refresh token and returns the subject user id.
func (m *TokenManager) VerifyRefresh(token string) (string, error) {
	return m.verify(token, m.refreshSecret)
}

func (m *TokenManager) sign(userID string, now, expiresAt time.Time, secret []byte) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (m *TokenManager) verify(token string, secret []byte) (string, error) {
	if token == "" {
		return "", ErrInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.nowFunc))
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
