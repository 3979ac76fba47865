package crm

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scentlab/crm-backend/internal/domain/shared"
)

func TestNewClient(t *testing.T) {
	creator := uuid.New()

	t.Run("creates client owned by creator", func(t *testing.T) {
		client, err := NewClient("Anna", creator)
		require.NoError(t, err)

		assert.Equal(t, "Anna", client.Name)
		assert.Equal(t, SourceManual, client.Source)
		require.NotNil(t, client.OwnerUserID)
		assert.Equal(t, creator, *client.OwnerUserID)
		assert.Equal(t, creator, *client.CreatedByUserID)
	})

	t.Run("trims whitespace", func(t *testing.T) {
		client, err := NewClient("  Anna  ", creator)
		require.NoError(t, err)
		assert.Equal(t, "Anna", client.Name)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewClient("   ", creator)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be empty")
	})
}

func TestClientContacts(t *testing.T) {
	client, err := NewClient("Anna", uuid.New())
	require.NoError(t, err)

	t.Run("accepts valid phone", func(t *testing.T) {
		require.NoError(t, client.SetPhone("+7 (900) 123-45-67"))
		assert.Equal(t, "+7 (900) 123-45-67", client.Phone)
	})

	t.Run("rejects invalid phone", func(t *testing.T) {
		assert.Error(t, client.SetPhone("abc"))
	})

	t.Run("normalizes email", func(t *testing.T) {
		require.NoError(t, client.SetEmail("Anna@Example.COM"))
		assert.Equal(t, "anna@example.com", client.Email)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		assert.Error(t, client.SetEmail("not-an-email"))
	})

	t.Run("strips leading at from handles", func(t *testing.T) {
		client.SetContacts("@anna_tg", "@anna_ig")
		assert.Equal(t, "anna_tg", client.Telegram)
		assert.Equal(t, "anna_ig", client.Instagram)
	})

	t.Run("clearing phone is allowed", func(t *testing.T) {
		require.NoError(t, client.SetPhone(""))
		assert.Empty(t, client.Phone)
	})
}

func TestClientOwnership(t *testing.T) {
	creator := uuid.New()
	client, err := NewClient("Anna", creator)
	require.NoError(t, err)

	t.Run("reassigns to another user", func(t *testing.T) {
		other := uuid.New()
		require.NoError(t, client.AssignToUser(other))
		assert.Equal(t, other, *client.OwnerUserID)
	})

	t.Run("rejects nil user", func(t *testing.T) {
		assert.Error(t, client.AssignToUser(uuid.Nil))
	})

	t.Run("assigns to partner", func(t *testing.T) {
		partnerID := uuid.New()
		require.NoError(t, client.AssignToPartner(partnerID))
		assert.Equal(t, partnerID, *client.OwnerPartnerID)
	})
}

func TestClientIsVisibleTo(t *testing.T) {
	owner := uuid.New()
	partnerID := uuid.New()

	client, err := NewClient("Anna", owner)
	require.NoError(t, err)
	require.NoError(t, client.AssignToPartner(partnerID))

	t.Run("unrestricted scope sees everything", func(t *testing.T) {
		assert.True(t, client.IsVisibleTo(shared.UnrestrictedScope()))
	})

	t.Run("owner sees own client", func(t *testing.T) {
		assert.True(t, client.IsVisibleTo(shared.OwnScope(owner, nil)))
	})

	t.Run("partner user sees partner client", func(t *testing.T) {
		assert.True(t, client.IsVisibleTo(shared.OwnScope(uuid.New(), &partnerID)))
	})

	t.Run("stranger sees nothing", func(t *testing.T) {
		assert.False(t, client.IsVisibleTo(shared.OwnScope(uuid.New(), nil)))
	})

	t.Run("creator still sees reassigned client", func(t *testing.T) {
		require.NoError(t, client.AssignToUser(uuid.New()))
		assert.True(t, client.IsVisibleTo(shared.OwnScope(owner, nil)))
	})
}

func TestClientFullName(t *testing.T) {
	client, err := NewClient("Anna", uuid.New())
	require.NoError(t, err)

	assert.Equal(t, "Anna", client.FullName())

	require.NoError(t, client.SetLastName("Petrova"))
	assert.Equal(t, "Anna Petrova", client.FullName())
}
