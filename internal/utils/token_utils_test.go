package utils_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/primex-app/primex_backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	secret := "test-secret"
	token, err := utils.GenerateJWT("42", secret, time.Hour, "primex-backend")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := utils.ParseAndValidateJWT(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "primex-backend", claims.Issuer)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestParseJWT_WrongSecret(t *testing.T) {
	token, err := utils.GenerateJWT("42", "right-secret", time.Hour, "primex-backend")
	require.NoError(t, err)

	_, err = utils.ParseAndValidateJWT(token, "wrong-secret")
	require.Error(t, err)
}

func TestParseJWT_Expired(t *testing.T) {
	token, err := utils.GenerateJWT("42", "secret", -time.Minute, "primex-backend")
	require.NoError(t, err)

	_, err = utils.ParseAndValidateJWT(token, "secret")
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseJWT_Garbage(t *testing.T) {
	_, err := utils.ParseAndValidateJWT("not-a-token", "secret")
	require.Error(t, err)
}
