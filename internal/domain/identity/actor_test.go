package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scentlab/crm-backend/internal/domain/shared"
)

func TestActor_ScopeFor(t *testing.T) {
	userID := uuid.New()
	partnerID := uuid.New()

	t.Run("view_all yields unrestricted scope", func(t *testing.T) {
		actor := Actor{UserID: userID, Permissions: []string{"clients.view_all"}}

		scope, err := actor.ScopeFor(ResourceClients)
		require.NoError(t, err)
		assert.True(t, scope.All)
	})

	t.Run("view_own yields owned scope with partner", func(t *testing.T) {
		actor := Actor{
			UserID:      userID,
			PartnerID:   &partnerID,
			Permissions: []string{"clients.view_own"},
		}

		scope, err := actor.ScopeFor(ResourceClients)
		require.NoError(t, err)
		assert.False(t, scope.All)
		assert.Equal(t, userID, scope.UserID)
		require.NotNil(t, scope.PartnerID)
		assert.Equal(t, partnerID, *scope.PartnerID)
	})

	t.Run("view_all wins over view_own", func(t *testing.T) {
		actor := Actor{
			UserID:      userID,
			Permissions: []string{"orders.view_own", "orders.view_all"},
		}

		scope, err := actor.ScopeFor(ResourceOrders)
		require.NoError(t, err)
		assert.True(t, scope.All)
	})

	t.Run("no view key forbids access", func(t *testing.T) {
		actor := Actor{UserID: userID, Permissions: []string{"clients.create"}}

		_, err := actor.ScopeFor(ResourceOrders)
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}

func TestActor_Require(t *testing.T) {
	actor := Actor{UserID: uuid.New(), Permissions: []string{"orders.create"}}

	assert.NoError(t, actor.Require("orders.create"))
	assert.ErrorIs(t, actor.Require("orders.delete"), shared.ErrForbidden)
	assert.True(t, actor.HasAny("orders.delete", "orders.create"))
	assert.False(t, actor.HasAny("roles.manage"))
}
