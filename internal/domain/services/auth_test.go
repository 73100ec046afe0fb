package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cyberguard-lab/internal/config"
	"cyberguard-lab/internal/domain/models"
	"cyberguard-lab/pkg/logger"
)

func newTestAuthService(expiration time.Duration) *AuthService {
	return NewAuthService(nil, nil, config.JWTConfig{
		Secret:     "test-secret-key",
		Expiration: expiration,
		Issuer:     "cyberguard-lab",
	}, logger.NewDefault())
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	svc := newTestAuthService(time.Hour)
	user := &models.User{Email: "analyst@example.com", Role: models.RoleAnalyst}

	token, err := svc.issueToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, "analyst@example.com", claims.Email)
	assert.Equal(t, models.RoleAnalyst, claims.Role)
	assert.True(t, claims.Role.IsStaff())
}

func TestAuthService_VerifyToken_Rejections(t *testing.T) {
	svc := newTestAuthService(time.Hour)
	user := &models.User{Email: "user@example.com", Role: models.RoleUser}

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.VerifyToken("not.a.token")
		assert.Error(t, err)
	})

	t.Run("wrong signing secret", func(t *testing.T) {
		other := newTestAuthService(time.Hour)
		other.secret = []byte("different-secret")

		token, err := other.issueToken(user)
		require.NoError(t, err)

		_, err = svc.VerifyToken(token)
		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := newTestAuthService(-time.Minute)

		token, err := expired.issueToken(user)
		require.NoError(t, err)

		_, err = svc.VerifyToken(token)
		assert.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		foreign := newTestAuthService(time.Hour)
		foreign.issuer = "someone-else"

		token, err := foreign.issueToken(user)
		require.NoError(t, err)

		_, err = svc.VerifyToken(token)
		assert.Error(t, err)
	})
}

func TestRole_IsStaff(t *testing.T) {
	assert.False(t, models.RoleUser.IsStaff())
	assert.True(t, models.RoleAnalyst.IsStaff())
	assert.True(t, models.RoleAdmin.IsStaff())
}
