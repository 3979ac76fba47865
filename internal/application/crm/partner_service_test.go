package crm

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/scentlab/crm-backend/internal/domain/crm"
	"github.com/scentlab/crm-backend/internal/domain/identity"
	"github.com/scentlab/crm-backend/internal/domain/shared"
	"github.com/scentlab/crm-backend/internal/domain/shared/valueobject"
)

func newTestPartnerService() (*PartnerService, *fakePartnerRepo, *fakeMarkupRepo) {
	partnerRepo := newFakePartnerRepo()
	markupRepo := newFakeMarkupRepo()
	return NewPartnerService(partnerRepo, markupRepo, zap.NewNop()), partnerRepo, markupRepo
}

func pct(v float64) valueobject.Percent {
	return valueobject.NewPercentFromFloat(v)
}

func TestPartnerService_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestPartnerService()
	admin := managerActor("partners.create", "partners.view_all")

	partner, err := svc.Create(ctx, admin, CreatePartnerInput{
		Name:     "Scent Boutique",
		Type:     crm.PartnerTypeShop,
		Telegram: "@scentshop",
	})
	require.NoError(t, err)
	assert.Equal(t, crm.PartnerStatusActive, partner.Status)
	assert.Equal(t, "scentshop", partner.Telegram)

	t.Run("duplicate name is rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, admin, CreatePartnerInput{Name: "Scent Boutique"})
		assert.EqualError(t, err, "Partner name is already taken")
	})

	t.Run("partner-bound user reads own partner without view_all", func(t *testing.T) {
		self := identity.Actor{UserID: uuid.New(), PartnerID: &partner.ID}
		found, err := svc.Get(ctx, self, partner.ID)
		require.NoError(t, err)
		assert.Equal(t, partner.ID, found.ID)
	})

	t.Run("foreign partner read is forbidden", func(t *testing.T) {
		otherID := uuid.New()
		self := identity.Actor{UserID: uuid.New(), PartnerID: &otherID}
		_, err := svc.Get(ctx, self, partner.ID)
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}

func TestPartnerService_MarkupPolicy(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestPartnerService()
	admin := managerActor("partners.create", "partners.edit", "partners.view_all")

	partner, err := svc.Create(ctx, admin, CreatePartnerInput{Name: "Reseller"})
	require.NoError(t, err)

	updated, err := svc.SetMarkupPolicy(ctx, admin, partner.ID, MarkupPolicyInput{
		AdminMarkup:   pct(5),
		DefaultMarkup: pct(15),
		MaxMarkup:     pct(50),
	})
	require.NoError(t, err)
	assert.True(t, updated.DefaultMarkup.Equals(pct(15)))

	t.Run("default above max is rejected", func(t *testing.T) {
		_, err := svc.SetMarkupPolicy(ctx, admin, partner.ID, MarkupPolicyInput{
			AdminMarkup:   pct(5),
			DefaultMarkup: pct(60),
			MaxMarkup:     pct(50),
		})
		assert.EqualError(t, err, "Default markup cannot exceed the maximum markup")
	})
}

func TestPartnerService_ClientMarkupOverride(t *testing.T) {
	ctx := context.Background()
	svc, _, markupRepo := newTestPartnerService()
	admin := managerActor("partners.create", "partners.edit", "partners.view_all")

	partner, err := svc.Create(ctx, admin, CreatePartnerInput{Name: "Reseller"})
	require.NoError(t, err)
	clientID := uuid.New()

	override, err := svc.SetClientMarkup(ctx, admin, partner.ID, clientID, pct(25))
	require.NoError(t, err)
	assert.True(t, override.Markup.Equals(pct(25)))

	t.Run("second set updates in place", func(t *testing.T) {
		updated, err := svc.SetClientMarkup(ctx, admin, partner.ID, clientID, pct(30))
		require.NoError(t, err)
		assert.Equal(t, override.ID, updated.ID)
		assert.True(t, updated.Markup.Equals(pct(30)))

		all, err := svc.ListClientMarkups(ctx, admin, partner.ID)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("remove drops the override", func(t *testing.T) {
		require.NoError(t, svc.RemoveClientMarkup(ctx, admin, partner.ID, clientID))

		_, err := markupRepo.FindByPartnerAndClient(ctx, partner.ID, clientID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("unknown partner fails", func(t *testing.T) {
		_, err := svc.SetClientMarkup(ctx, admin, uuid.New(), clientID, pct(10))
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
