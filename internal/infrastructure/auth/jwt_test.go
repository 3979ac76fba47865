package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scentlab/crm-backend/internal/infrastructure/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars-long",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 168 * time.Hour,
		Issuer:                 "crm-backend-test",
		MaxRefreshCount:        3,
	}
}

func testSubject() TokenSubject {
	return TokenSubject{
		UserID:      uuid.New(),
		Username:    "manager",
		RoleID:      uuid.New(),
		Permissions: []string{"clients.view_all", "orders.create"},
	}
}

func TestJWTService_GenerateTokenPair(t *testing.T) {
	svc := NewJWTService(testJWTConfig())
	subject := testSubject()

	pair, err := svc.GenerateTokenPair(subject)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.True(t, pair.ExpiresAt.After(time.Now()))
}

func TestJWTService_ValidateAccessToken(t *testing.T) {
	svc := NewJWTService(testJWTConfig())
	subject := testSubject()

	pair, err := svc.GenerateTokenPair(subject)
	require.NoError(t, err)

	t.Run("valid access token", func(t *testing.T) {
		claims, err := svc.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, subject.UserID.String(), claims.UserID)
		assert.Equal(t, "manager", claims.Username)
		assert.Equal(t, AccessToken, claims.TokenType)
		assert.True(t, claims.HasPermission("clients.view_all"))
		assert.False(t, claims.HasPermission("clients.delete"))
	})

	t.Run("refresh token rejected as access token", func(t *testing.T) {
		_, err := svc.ValidateAccessToken(pair.RefreshToken)
		assert.Error(t, err)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token signed with another secret rejected", func(t *testing.T) {
		otherCfg := testJWTConfig()
		otherCfg.Secret = "another-secret-key-at-least-32-chars"
		other := NewJWTService(otherCfg)
		otherPair, err := other.GenerateTokenPair(subject)
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(otherPair.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestJWTService_ValidateAccessToken_Expired(t *testing.T) {
	cfg := testJWTConfig()
	cfg.AccessTokenExpiration = -time.Minute
	svc := NewJWTService(cfg)

	pair, err := svc.GenerateTokenPair(testSubject())
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_RefreshTokenPair(t *testing.T) {
	svc := NewJWTService(testJWTConfig())
	subject := testSubject()

	pair, err := svc.GenerateTokenPair(subject)
	require.NoError(t, err)

	t.Run("rotation carries fresh permissions", func(t *testing.T) {
		newPair, err := svc.RefreshTokenPair(pair.RefreshToken, []string{"clients.view_own"})
		require.NoError(t, err)

		claims, err := svc.ValidateAccessToken(newPair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, []string{"clients.view_own"}, claims.Permissions)

		refreshClaims, err := svc.ValidateRefreshToken(newPair.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, 1, refreshClaims.RefreshCount)
	})

	t.Run("max refresh count enforced", func(t *testing.T) {
		current := pair.RefreshToken
		var err error
		for i := 0; i < 3; i++ {
			var next *TokenPair
			next, err = svc.RefreshTokenPair(current, nil)
			require.NoError(t, err)
			current = next.RefreshToken
		}
		_, err = svc.RefreshTokenPair(current, nil)
		assert.ErrorIs(t, err, ErrMaxRefreshExceeded)
	})

	t.Run("access token cannot be used for refresh", func(t *testing.T) {
		_, err := svc.RefreshTokenPair(pair.AccessToken, nil)
		assert.Error(t, err)
	})
}

func TestClaims_PartnerUUID(t *testing.T) {
	svc := NewJWTService(testJWTConfig())
	partnerID := uuid.New()
	subject := testSubject()
	subject.PartnerID = &partnerID

	pair, err := svc.GenerateTokenPair(subject)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	got, err := claims.PartnerUUID()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, partnerID, *got)
}
