package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/scentlab/crm-backend/internal/domain/shared"
)

// FragranceRepository defines persistence operations for fragrances
type FragranceRepository interface {
	shared.Repository[Fragrance]
	Search(ctx context.Context, query string, filter shared.Filter) ([]Fragrance, error)
}

// PriceProductRepository defines persistence operations for price-list products
type PriceProductRepository interface {
	shared.Repository[PriceProduct]
	FindByExternalArticle(ctx context.Context, article string) (*PriceProduct, error)
	Search(ctx context.Context, query string, filter shared.Filter) ([]PriceProduct, error)
}

// CatalogItemRepository defines persistence operations for storefront items
type CatalogItemRepository interface {
	shared.Repository[CatalogItem]
	FindVisible(ctx context.Context, filter shared.Filter) ([]CatalogItem, error)
}

// PartnerPriceRepository stores per-partner fragrance price agreements
type PartnerPriceRepository interface {
	FindByPartnerAndFragrance(ctx context.Context, partnerID, fragranceID uuid.UUID) (*PartnerPrice, error)
	FindByPartner(ctx context.Context, partnerID uuid.UUID) ([]PartnerPrice, error)
	Save(ctx context.Context, price *PartnerPrice) error
	Delete(ctx context.Context, partnerID, fragranceID uuid.UUID) error
}

// ReleaseNoteRepository defines persistence operations for release notes
type ReleaseNoteRepository interface {
	shared.Repository[ReleaseNote]
	FindByVersion(ctx context.Context, version string) (*ReleaseNote, error)
	FindPublished(ctx context.Context, filter shared.Filter) ([]ReleaseNote, error)
}

// PriceImportRepository stores price-list import audit records
type PriceImportRepository interface {
	shared.Repository[PriceImport]
}
