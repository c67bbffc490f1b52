package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewAuthService("test-secret", time.Hour, zap.NewNop())

	token, err := svc.GenerateToken("u1", "user@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, "u1", claims.UserID)
	require.Equal(t, "user@example.com", claims.Email)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := NewAuthService("secret-a", time.Hour, zap.NewNop()).GenerateToken("u1", "user@example.com")
	require.NoError(t, err)

	_, err = NewAuthService("secret-b", time.Hour, zap.NewNop()).ValidateToken(token)
	require.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	svc := NewAuthService("test-secret", -time.Minute, zap.NewNop())

	token, err := svc.GenerateToken("u1", "user@example.com")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := NewAuthService("test-secret", time.Hour, zap.NewNop())

	_, err := svc.ValidateToken("not.a.token")
	require.Error(t, err)
}
