package jwt

import (
	"testing"
	"time"

	"nearest-blood-locator/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{Secret: "unit-test-secret", AccessExpiry: time.Hour})
}

func TestGenerateAndValidate(t *testing.T) {
	s := newTestService()
	userID := uuid.New()

	token, tokenID, err := s.GenerateAccessToken(userID, "citybank", "bank")
	require.NoError(t, err)
	require.NotEmpty(t, tokenID)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "citybank", claims.Username)
	assert.Equal(t, "bank", claims.Role)
	assert.Equal(t, tokenID, claims.TokenID)
}

func TestValidate_Rejects(t *testing.T) {
	s := newTestService()

	t.Run("other secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{Secret: "someone-else", AccessExpiry: time.Hour})
		token, _, err := other.GenerateAccessToken(uuid.New(), "x", "donor")
		require.NoError(t, err)
		_, err = s.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		past := newTestService()
		past.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, _, err := past.GenerateAccessToken(uuid.New(), "x", "donor")
		require.NoError(t, err)
		_, err = s.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("missing role", func(t *testing.T) {
		token, _, err := s.GenerateAccessToken(uuid.New(), "x", "")
		require.NoError(t, err)
		_, err = s.ValidateToken(token)
		assert.Error(t, err)
	})
}
