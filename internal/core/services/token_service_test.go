package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/primex-app/primex_backend/internal/apperrors"
	"github.com/primex-app/primex_backend/internal/core/services"
	"github.com/primex-app/primex_backend/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService() *config.Config {
	return &config.Config{
		JWTSecret:         "test-secret-key-that-is-long-enough",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "primex-test",
	}
}

func TestTokenRoundTrip(t *testing.T) {
	svc := services.NewTokenService(newTestTokenService())
	ctx := context.Background()

	token, expiry, err := svc.GenerateAccessToken(ctx, 42)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiry, 5*time.Second)

	userID, err := svc.ValidateAccessToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	svc := services.NewTokenService(newTestTokenService())
	ctx := context.Background()

	token, _, err := svc.GenerateAccessToken(ctx, 42)
	require.NoError(t, err)

	otherCfg := newTestTokenService()
	otherCfg.JWTSecret = "a-completely-different-secret"
	other := services.NewTokenService(otherCfg)

	_, err = other.ValidateAccessToken(ctx, token)
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestValidateAccessToken_Garbage(t *testing.T) {
	svc := services.NewTokenService(newTestTokenService())

	_, err := svc.ValidateAccessToken(context.Background(), "not-a-token")
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
