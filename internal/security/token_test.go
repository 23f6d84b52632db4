package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret-test-secret-test-secret", 60)

	token, err := tm.GenerateAccessToken(42, "owner@test.com", true, false)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "owner@test.com", claims.Email)
	assert.True(t, claims.Verified)
	assert.False(t, claims.Admin)
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret-test-secret-test-secret", 60)
	other := NewTokenManager("another-secret-another-secret-12345", 60)

	token, err := tm.GenerateAccessToken(42, "owner@test.com", true, false)
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	tm := NewTokenManager("test-secret-test-secret-test-secret", 60).(*tokenManager)
	tm.expiry = -1 // already expired at issue time

	token, err := tm.GenerateAccessToken(42, "owner@test.com", true, false)
	require.NoError(t, err)

	_, err = tm.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret-test-secret-test-secret", 60)
	_, err := tm.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
