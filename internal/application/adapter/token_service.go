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
	// ExpiresIn is the access token lifetime in seconds.
	ExpiresIn int64
}

// TokenClaims identifies the user behind a validated token.
type TokenClaims struct {
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// TokenService issues and checks session tokens. Validation errors wrap
// domainerror.ErrExpiredToken or domainerror.ErrInvalidToken.
type TokenService interface {
	// GenerateTokenPair issues a pair and stores the refresh token.
	// rememberMe extends both lifetimes.
	GenerateTokenPair(ctx context.Context, userID uuid.UUID, email string, rememberMe bool) (*TokenPair, error)

	// ValidateAccessToken rejects refresh tokens.
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)

	// ValidateRefreshToken rejects access tokens. It does not check revocation,
	// see IsRefreshTokenValid.
	ValidateRefreshToken(ctx context.Context, token string) (*TokenClaims, error)

	// InvalidateRefreshToken revokes a single refresh token (logout, rotation).
	InvalidateRefreshToken(ctx context.Context, token string) error

	// InvalidateAllUserTokens revokes every refresh token of the user (account deletion).
	InvalidateAllUserTokens(ctx context.Context, userID uuid.UUID) error

	// IsRefreshTokenValid reports whether the token is stored, unrevoked and unexpired.
	IsRefreshTokenValid(ctx context.Context, token string) (bool, error)
}
