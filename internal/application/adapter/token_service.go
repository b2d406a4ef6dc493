// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionToken is a signed bearer token bound to one session.
type SessionToken struct {
	Token     string
	ExpiresAt time.Time
}

// TokenClaims represents the claims contained in a session token.
type TokenClaims struct {
	SessionID uuid.UUID
	ExpiresAt time.Time
}

// TokenService defines the interface for session token operations.
type TokenService interface {
	// GenerateSessionToken signs a token for the given session.
	GenerateSessionToken(ctx context.Context, sessionID uuid.UUID) (*SessionToken, error)

	// ValidateSessionToken validates a token and returns its claims.
	ValidateSessionToken(ctx context.Context, token string) (*TokenClaims, error)
}
