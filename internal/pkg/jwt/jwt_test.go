package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udev-hq/intern-portal-backend/internal/domain/user"
)

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", "15m", "168h")

	token, expiresAt, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotZero(t, expiresAt)

	userID, err := svc.DecodeRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestDecodeRefreshTokenRejectsAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret", "15m", "168h")

	token, _, err := svc.GenerateAccessToken("user-1", "u@example.com", user.RoleEmployee, nil)
	require.NoError(t, err)

	_, err = svc.DecodeRefreshToken(token)
	assert.Error(t, err)
}

func TestDecodeRefreshTokenRejectsGarbage(t *testing.T) {
	svc := NewJWTService("test-secret", "15m", "168h")

	_, err := svc.DecodeRefreshToken("not-a-token")
	assert.Error(t, err)
}

func TestDecodeRefreshTokenRejectsForeignSignature(t *testing.T) {
	issuer := NewJWTService("other-secret", "15m", "168h")
	verifier := NewJWTService("test-secret", "15m", "168h")

	token, _, err := issuer.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	_, err = verifier.DecodeRefreshToken(token)
	assert.Error(t, err)
}
