package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/scentlab/crm-backend/internal/domain/identity"
	"github.com/scentlab/crm-backend/internal/infrastructure/auth"
	"github.com/scentlab/crm-backend/internal/infrastructure/cache"
	"github.com/scentlab/crm-backend/internal/infrastructure/config"
)

func newTestAuthService(t *testing.T) (*AuthService, *fakeUserRepo, *fakeRoleRepo) {
	userRepo := newFakeUserRepo()
	roleRepo := newFakeRoleRepo()

	resolver := NewPermissionResolver(roleRepo, cache.NewInMemoryPermissionCache(time.Minute), zap.NewNop())
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars!",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "crm-test",
		MaxRefreshCount:        5,
	})

	svc := NewAuthService(userRepo, resolver, jwtService, cache.NewInMemoryTokenBlacklist(), zap.NewNop())
	return svc, userRepo, roleRepo
}

func seedUserWithRole(t *testing.T, userRepo *fakeUserRepo, roleRepo *fakeRoleRepo, username string, keys ...string) *identity.User {
	role, err := identity.NewRole(username+"-role", "")
	require.NoError(t, err)
	for _, key := range keys {
		perm, err := identity.ParsePermission(key, "")
		require.NoError(t, err)
		require.NoError(t, role.Grant(perm))
	}
	require.NoError(t, roleRepo.Save(context.Background(), role))

	user, err := identity.NewUser(username, "correct-horse-1", role.ID)
	require.NoError(t, err)
	require.NoError(t, userRepo.Save(context.Background(), user))

	return user
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials return tokens with permissions", func(t *testing.T) {
		svc, userRepo, roleRepo := newTestAuthService(t)
		user := seedUserWithRole(t, userRepo, roleRepo, "manager", "clients.view_all", "orders.create")

		result, err := svc.Login(ctx, LoginInput{Username: "manager", Password: "correct-horse-1"})

		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		assert.Equal(t, "Bearer", result.TokenType)
		assert.Equal(t, user.ID, result.User.ID)
		assert.ElementsMatch(t, []string{"clients.view_all", "orders.create"}, result.User.Permissions)

		stored, err := userRepo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.NotNil(t, stored.LastLoginAt)
	})

	t.Run("wrong password is rejected without detail", func(t *testing.T) {
		svc, userRepo, roleRepo := newTestAuthService(t)
		seedUserWithRole(t, userRepo, roleRepo, "manager")

		_, err := svc.Login(ctx, LoginInput{Username: "manager", Password: "wrong"})
		assert.EqualError(t, err, "Invalid username or password")
	})

	t.Run("unknown username is rejected with the same message", func(t *testing.T) {
		svc, _, _ := newTestAuthService(t)

		_, err := svc.Login(ctx, LoginInput{Username: "ghost", Password: "whatever1"})
		assert.EqualError(t, err, "Invalid username or password")
	})

	t.Run("deactivated account cannot log in", func(t *testing.T) {
		svc, userRepo, roleRepo := newTestAuthService(t)
		user := seedUserWithRole(t, userRepo, roleRepo, "manager")
		require.NoError(t, user.Deactivate())
		require.NoError(t, userRepo.Save(ctx, user))

		_, err := svc.Login(ctx, LoginInput{Username: "manager", Password: "correct-horse-1"})
		assert.EqualError(t, err, "Account has been deactivated")
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()
	svc, userRepo, roleRepo := newTestAuthService(t)
	user := seedUserWithRole(t, userRepo, roleRepo, "manager", "clients.view_own")

	login, err := svc.Login(ctx, LoginInput{Username: "manager", Password: "correct-horse-1"})
	require.NoError(t, err)

	t.Run("rotation returns a fresh pair", func(t *testing.T) {
		result, err := svc.Refresh(ctx, RefreshInput{RefreshToken: login.RefreshToken})
		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEqual(t, login.RefreshToken, result.RefreshToken)
	})

	t.Run("consumed refresh token is dead", func(t *testing.T) {
		_, err := svc.Refresh(ctx, RefreshInput{RefreshToken: login.RefreshToken})
		assert.EqualError(t, err, "Refresh token has been revoked")
	})

	t.Run("deactivated user cannot refresh", func(t *testing.T) {
		fresh, err := svc.Login(ctx, LoginInput{Username: "manager", Password: "correct-horse-1"})
		require.NoError(t, err)

		stored, err := userRepo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		require.NoError(t, stored.Deactivate())
		require.NoError(t, userRepo.Save(ctx, stored))

		_, err = svc.Refresh(ctx, RefreshInput{RefreshToken: fresh.RefreshToken})
		assert.EqualError(t, err, "Account is no longer active")
	})

	t.Run("garbage token is invalid", func(t *testing.T) {
		_, err := svc.Refresh(ctx, RefreshInput{RefreshToken: "not-a-token"})
		assert.EqualError(t, err, "Invalid token")
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	svc, userRepo, roleRepo := newTestAuthService(t)
	user := seedUserWithRole(t, userRepo, roleRepo, "manager")

	err := svc.ChangePassword(ctx, ChangePasswordInput{
		UserID:      user.ID,
		OldPassword: "correct-horse-1",
		NewPassword: "new-password-9",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginInput{Username: "manager", Password: "new-password-9"})
	assert.NoError(t, err)

	err = svc.ChangePassword(ctx, ChangePasswordInput{
		UserID:      user.ID,
		OldPassword: "correct-horse-1",
		NewPassword: "another-pass-3",
	})
	assert.EqualError(t, err, "Current password is incorrect")
}
