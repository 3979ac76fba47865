package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/scentlab/crm-backend/internal/domain/shared"
)

func TestReleaseService_PublishFlow(t *testing.T) {
	ctx := context.Background()
	repo := newFakeReleaseRepo()
	svc := NewReleaseService(repo, zap.NewNop())
	manager := actorWith("releases.manage", "releases.view_all")

	note, err := svc.Create(ctx, manager, CreateReleaseNoteInput{
		Version: "2.4.0",
		Title:   "Spring catalog refresh",
		Changes: "- 12 new fragrances",
	})
	require.NoError(t, err)
	assert.False(t, note.IsPublished)

	t.Run("duplicate version is rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, manager, CreateReleaseNoteInput{Version: "2.4.0", Title: "Again"})
		assert.EqualError(t, err, "A release note with this version already exists")
	})

	t.Run("partner publication requires publish first", func(t *testing.T) {
		_, err := svc.PublishToPartners(ctx, manager, note.ID, PublishToPartnersInput{})
		assert.EqualError(t, err, "Publish the release note before exposing it to partners")
	})

	published, err := svc.Publish(ctx, manager, note.ID)
	require.NoError(t, err)
	assert.True(t, published.IsPublished)

	t.Run("internal viewer sees published notes", func(t *testing.T) {
		page, err := svc.List(ctx, actorWith("releases.view_all"), shared.DefaultFilter())
		require.NoError(t, err)
		assert.Len(t, page.Items, 1)
	})

	t.Run("partner viewer sees nothing before partner publication", func(t *testing.T) {
		page, err := svc.List(ctx, actorWith("releases.view_own"), shared.DefaultFilter())
		require.NoError(t, err)
		assert.Empty(t, page.Items)
	})
}

func TestReleaseService_PartnerViewCap(t *testing.T) {
	ctx := context.Background()
	repo := newFakeReleaseRepo()
	svc := NewReleaseService(repo, zap.NewNop())
	manager := actorWith("releases.manage", "releases.view_all")
	partner := actorWith("releases.view_own")

	note, err := svc.Create(ctx, manager, CreateReleaseNoteInput{Version: "2.5.0", Title: "Limited drop"})
	require.NoError(t, err)
	_, err = svc.Publish(ctx, manager, note.ID)
	require.NoError(t, err)

	maxViews := 2
	_, err = svc.PublishToPartners(ctx, manager, note.ID, PublishToPartnersInput{MaxViews: &maxViews})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		got, err := svc.Get(ctx, partner, note.ID)
		require.NoError(t, err)
		assert.Equal(t, "Limited drop", got.Title)
	}

	t.Run("third partner view is gone", func(t *testing.T) {
		_, err := svc.Get(ctx, partner, note.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("exhausted note drops from partner listing", func(t *testing.T) {
		page, err := svc.List(ctx, partner, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Empty(t, page.Items)
	})

	t.Run("managers still see it", func(t *testing.T) {
		got, err := svc.Get(ctx, manager, note.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, got.PartnerViewCount)
	})
}

func TestReleaseService_Unpublish(t *testing.T) {
	ctx := context.Background()
	repo := newFakeReleaseRepo()
	svc := NewReleaseService(repo, zap.NewNop())
	manager := actorWith("releases.manage")

	note, err := svc.Create(ctx, manager, CreateReleaseNoteInput{Version: "2.6.0", Title: "Rollback"})
	require.NoError(t, err)
	_, err = svc.Publish(ctx, manager, note.ID)
	require.NoError(t, err)
	_, err = svc.PublishToPartners(ctx, manager, note.ID, PublishToPartnersInput{})
	require.NoError(t, err)

	hidden, err := svc.Unpublish(ctx, manager, note.ID)
	require.NoError(t, err)
	assert.False(t, hidden.IsPublished)
	assert.False(t, hidden.IsPublishedToPartners)
}
