package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/scentlab/crm-backend/internal/domain/catalog"
	"github.com/scentlab/crm-backend/internal/domain/shared"
)

func TestPriceProductService_Import(t *testing.T) {
	ctx := context.Background()
	repo := newFakePriceProductRepo()
	importRepo := newFakePriceImportRepo()
	svc := NewPriceProductService(repo, importRepo, zap.NewNop())
	manager := actorWith("prices.manage", "prices.view_all")

	batch := ImportPriceListInput{
		Source: "supplier-feed",
		Rows: []UpsertPriceProductInput{
			{ExternalArticle: "ART-1", Brand: "Dior", Name: "Sauvage", PurchasePrice: rub(4000), PartnerPrice: rub(5200), InStock: true},
			{ExternalArticle: "ART-2", Brand: "Chanel", Name: "Bleu", PurchasePrice: rub(5000), PartnerPrice: rub(6500), InStock: true},
			{ExternalArticle: "", Brand: "Broken", Name: "Row"},
		},
	}

	result, err := svc.Import(ctx, manager, batch)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 0, result.Updated)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "External article cannot be empty", result.Failed[0].Reason)

	t.Run("batch leaves an audit record", func(t *testing.T) {
		record, err := importRepo.FindByID(ctx, result.ImportID)
		require.NoError(t, err)
		assert.Equal(t, "supplier-feed", record.Source)
		assert.Equal(t, catalog.ImportCompleted, record.Status)
		assert.Equal(t, 3, record.TotalRows)
		assert.Equal(t, 2, record.CreatedRows)
		assert.Equal(t, 1, record.FailedRows())
		require.Len(t, record.Failures, 1)
		assert.Equal(t, "External article cannot be empty", record.Failures[0].Reason)
		require.NotNil(t, record.CompletedAt)
	})

	t.Run("second import updates in place", func(t *testing.T) {
		again, err := svc.Import(ctx, manager, ImportPriceListInput{
			Rows: []UpsertPriceProductInput{
				{ExternalArticle: "ART-1", Brand: "Dior", Name: "Sauvage", PurchasePrice: rub(4100), PartnerPrice: rub(5300), InStock: false},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, 0, again.Created)
		assert.Equal(t, 1, again.Updated)

		product, err := repo.FindByExternalArticle(ctx, "ART-1")
		require.NoError(t, err)
		assert.True(t, product.PurchasePrice.Equals(rub(4100)))
		assert.False(t, product.InStock)
	})

	t.Run("import without manage key is forbidden", func(t *testing.T) {
		_, err := svc.Import(ctx, actorWith("prices.view_all"), batch)
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("empty batch is rejected", func(t *testing.T) {
		_, err := svc.Import(ctx, manager, ImportPriceListInput{Source: "manual"})
		require.Error(t, err)
	})
}

func TestPriceProductService_ImportHistory(t *testing.T) {
	ctx := context.Background()
	repo := newFakePriceProductRepo()
	importRepo := newFakePriceImportRepo()
	svc := NewPriceProductService(repo, importRepo, zap.NewNop())
	manager := actorWith("prices.manage")

	result, err := svc.Import(ctx, manager, ImportPriceListInput{
		Source: "manual",
		Rows: []UpsertPriceProductInput{
			{ExternalArticle: "ART-5", Brand: "Tom Ford", Name: "Oud Wood", PurchasePrice: rub(9000), PartnerPrice: rub(11500), InStock: true},
		},
	})
	require.NoError(t, err)

	page, err := svc.ListImports(ctx, manager, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, result.ImportID, page.Items[0].ID)

	record, err := svc.GetImport(ctx, manager, result.ImportID)
	require.NoError(t, err)
	assert.Equal(t, manager.UserID, record.ImportedBy)

	t.Run("history requires manage key", func(t *testing.T) {
		_, err := svc.ListImports(ctx, actorWith("prices.view_all"), shared.DefaultFilter())
		assert.ErrorIs(t, err, shared.ErrForbidden)

		_, err = svc.GetImport(ctx, actorWith("prices.view_all"), result.ImportID)
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}

func TestPriceProductService_ListAndStock(t *testing.T) {
	ctx := context.Background()
	repo := newFakePriceProductRepo()
	svc := NewPriceProductService(repo, newFakePriceImportRepo(), zap.NewNop())
	manager := actorWith("prices.manage", "prices.view_all")

	product, _, err := svc.Upsert(ctx, manager, UpsertPriceProductInput{
		ExternalArticle: "ART-9",
		Brand:           "Guerlain",
		Name:            "Shalimar",
		PurchasePrice:   rub(3000),
		PartnerPrice:    rub(4200),
		InStock:         true,
	})
	require.NoError(t, err)

	page, err := svc.List(ctx, actorWith("prices.view_own"), ListPriceProductsInput{Filter: shared.DefaultFilter()})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)

	t.Run("stock toggle", func(t *testing.T) {
		updated, err := svc.SetStock(ctx, manager, product.ID, false)
		require.NoError(t, err)
		assert.False(t, updated.InStock)
	})

	t.Run("deactivated products drop from active listing", func(t *testing.T) {
		require.NoError(t, svc.Deactivate(ctx, manager, product.ID))

		page, err := svc.List(ctx, manager, ListPriceProductsInput{OnlyActive: true, Filter: shared.DefaultFilter()})
		require.NoError(t, err)
		assert.Empty(t, page.Items)
	})
}
