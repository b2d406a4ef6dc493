package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	id := uuid.New()

	token, err := svc.GenerateSessionToken(context.Background(), id)
	require.NoError(t, err)
	assert.NotEmpty(t, token.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt, 5*time.Second)

	claims, err := svc.ValidateSessionToken(context.Background(), token.Token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.SessionID)
}

func TestTokenService_RejectsOtherSecret(t *testing.T) {
	token, err := NewTokenService("one", time.Hour).GenerateSessionToken(context.Background(), uuid.New())
	require.NoError(t, err)

	_, err = NewTokenService("two", time.Hour).ValidateSessionToken(context.Background(), token.Token)
	assert.Error(t, err)
}

func TestTokenService_RejectsExpiredToken(t *testing.T) {
	svc := NewTokenService("secret", time.Minute).(*tokenService)
	issued := time.Now().Add(-time.Hour)
	svc.now = func() time.Time { return issued }

	token, err := svc.GenerateSessionToken(context.Background(), uuid.New())
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateSessionToken(context.Background(), token.Token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTokenService_RejectsWrongTokenType(t *testing.T) {
	now := time.Now()
	claims := CustomClaims{
		SessionID: uuid.NewString(),
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			Issuer:    tokenIssuer,
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewTokenService("secret", time.Hour).ValidateSessionToken(context.Background(), signed)
	assert.ErrorContains(t, err, "expected session token")
}

func TestTokenService_RejectsGarbage(t *testing.T) {
	_, err := NewTokenService("secret", time.Hour).ValidateSessionToken(context.Background(), "not-a-token")
	assert.Error(t, err)
}
