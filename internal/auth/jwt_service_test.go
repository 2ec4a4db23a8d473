package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, 24*time.Hour)

	token, err := svc.GenerateAccessToken("a@x", "admin")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Empty(t, claims.ID)
}

func TestJWTService_RefreshTokenCarriesID(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour, 24*time.Hour)

	id, token, err := svc.GenerateRefreshToken("a@x", "member")
	require.NoError(t, err)

	extracted, err := svc.ExtractTokenID(token)
	require.NoError(t, err)
	assert.Equal(t, id, extracted)
}

func TestJWTService_RejectsForeignSignature(t *testing.T) {
	issuer := NewJWTService("one", time.Hour, time.Hour)
	verifier := NewJWTService("two", time.Hour, time.Hour)

	token, err := issuer.GenerateAccessToken("a@x", "member")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpired(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute, time.Hour)

	token, err := svc.GenerateAccessToken("a@x", "member")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}
