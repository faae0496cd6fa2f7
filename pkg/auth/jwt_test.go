package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)
	accountID := uuid.New()

	token, expiresAt, err := svc.GenerateAccessToken(accountID, "ana@example.com")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, accountID.String(), claims["account_id"])
	assert.Equal(t, "ana@example.com", claims["email"])
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)
	token, _, err := svc.GenerateAccessToken(uuid.New(), "ana@example.com")
	require.NoError(t, err)

	other := NewJWTService("different", time.Hour)
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	svc := NewJWTService("secret", -time.Minute)
	token, _, err := svc.GenerateAccessToken(uuid.New(), "ana@example.com")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)
	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
