package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	roleID := uuid.New()

	t.Run("creates active user with hashed password", func(t *testing.T) {
		user, err := NewUser("Olga.M", "secret1234", roleID)
		require.NoError(t, err)

		assert.Equal(t, "olga.m", user.Username)
		assert.True(t, user.IsActive)
		assert.Equal(t, roleID, user.RoleID)
		assert.NotEqual(t, "secret1234", user.PasswordHash)
		assert.True(t, user.VerifyPassword("secret1234"))
		assert.False(t, user.VerifyPassword("wrong"))
	})

	t.Run("rejects empty username", func(t *testing.T) {
		_, err := NewUser("", "secret1234", roleID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be empty")
	})

	t.Run("rejects short username", func(t *testing.T) {
		_, err := NewUser("ab", "secret1234", roleID)
		assert.Error(t, err)
	})

	t.Run("rejects invalid username characters", func(t *testing.T) {
		_, err := NewUser("olga m", "secret1234", roleID)
		assert.Error(t, err)
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := NewUser("olga", "short", roleID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 8 characters")
	})

	t.Run("rejects nil role", func(t *testing.T) {
		_, err := NewUser("olga", "secret1234", uuid.Nil)
		assert.Error(t, err)
	})
}

func TestUserPartnerBinding(t *testing.T) {
	user, err := NewUser("partner1", "secret1234", uuid.New())
	require.NoError(t, err)

	t.Run("binds to partner", func(t *testing.T) {
		partnerID := uuid.New()
		require.NoError(t, user.BindToPartner(partnerID))
		assert.True(t, user.IsPartnerBound())
		assert.Equal(t, partnerID, *user.PartnerID)
	})

	t.Run("rejects nil partner", func(t *testing.T) {
		assert.Error(t, user.BindToPartner(uuid.Nil))
	})

	t.Run("unbinds from partner", func(t *testing.T) {
		user.UnbindFromPartner()
		assert.False(t, user.IsPartnerBound())
	})
}

func TestUserPassword(t *testing.T) {
	user, err := NewUser("olga", "secret1234", uuid.New())
	require.NoError(t, err)

	t.Run("changes password with correct old password", func(t *testing.T) {
		require.NoError(t, user.ChangePassword("secret1234", "newsecret99"))
		assert.True(t, user.VerifyPassword("newsecret99"))
		assert.False(t, user.VerifyPassword("secret1234"))
	})

	t.Run("rejects wrong old password", func(t *testing.T) {
		err := user.ChangePassword("wrong", "another123")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "incorrect")
	})
}

func TestUserActivation(t *testing.T) {
	user, err := NewUser("olga", "secret1234", uuid.New())
	require.NoError(t, err)

	t.Run("deactivates active user", func(t *testing.T) {
		require.NoError(t, user.Deactivate())
		assert.False(t, user.IsActive)
		assert.False(t, user.CanLogin())
	})

	t.Run("deactivating twice fails", func(t *testing.T) {
		assert.Error(t, user.Deactivate())
	})

	t.Run("activates deactivated user", func(t *testing.T) {
		require.NoError(t, user.Activate())
		assert.True(t, user.CanLogin())
	})

	t.Run("activating twice fails", func(t *testing.T) {
		assert.Error(t, user.Activate())
	})
}

func TestUserRecordLogin(t *testing.T) {
	user, err := NewUser("olga", "secret1234", uuid.New())
	require.NoError(t, err)

	assert.Nil(t, user.LastLoginAt)
	user.RecordLoginSuccess()
	assert.NotNil(t, user.LastLoginAt)
}
