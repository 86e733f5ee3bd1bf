package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaiveerRaikhy/beacs/internal/config"
)

func testJWTService(expiration time.Duration) *JWTService {
	return NewJWTService(&config.JWTConfig{Secret: "test-secret", Expiration: expiration})
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := testJWTService(time.Hour)

	token, err := svc.GenerateToken("mentor-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "mentor-1", claims.GetUserID())
}

func TestJWTService_ValidateErrors(t *testing.T) {
	svc := testJWTService(time.Hour)

	t.Run("empty token", func(t *testing.T) {
		_, err := svc.ValidateToken("")
		require.Error(t, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.jwt")
		require.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService(&config.JWTConfig{Secret: "other-secret", Expiration: time.Hour})
		token, err := other.GenerateToken("mentor-1")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := testJWTService(-time.Hour)
		token, err := expired.GenerateToken("mentor-1")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expired")
	})
}
