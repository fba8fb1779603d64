// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenPair is what a successful register, login or refresh hands back.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64 // seconds until AccessToken expires
}

// TokenClaims identifies the user behind a verified token.
type TokenClaims struct {
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// TokenService issues and verifies session tokens.
// A refresh token is single use: rotating it consumes it.
type TokenService interface {
	GenerateTokenPair(ctx context.Context, userID uuid.UUID, email string) (*TokenPair, error)

	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)

	// RotateRefreshToken consumes a refresh token and issues a fresh pair for its owner.
	// Replayed, revoked, expired or forged tokens fail with an error wrapping
	// domainerror.ErrInvalidToken.
	RotateRefreshToken(ctx context.Context, token string) (*TokenPair, error)

	// RevokeRefreshToken ends a session. Unknown tokens are ignored.
	RevokeRefreshToken(ctx context.Context, token string) error
}
