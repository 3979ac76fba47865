package catalog

import (
	"github.com/google/uuid"

	"github.com/scentlab/crm-backend/internal/domain/shared"
	"github.com/scentlab/crm-backend/internal/domain/shared/valueobject"
)

// CreateFragranceInput carries data for creating an in-house fragrance
type CreateFragranceInput struct {
	Brand       string
	Name        string
	Description string
	VolumeML    int
	BaseCost    valueobject.Money
	RetailPrice valueobject.Money
}

// UpdateFragranceInput carries partial fragrance changes
type UpdateFragranceInput struct {
	Brand       *string
	Name        *string
	Description *string
	VolumeML    *int
	BaseCost    *valueobject.Money
	RetailPrice *valueobject.Money
}

// ListFragrancesInput controls fragrance listing
type ListFragrancesInput struct {
	Search          string
	IncludeArchived bool
	Filter          shared.Filter
}

// UpsertPriceProductInput carries one supplier price-list row.
// Rows are keyed by the supplier's external article: an existing row is
// updated in place, a new article creates a product.
type UpsertPriceProductInput struct {
	ExternalArticle string
	Brand           string
	Name            string
	VolumeML        int
	PurchasePrice   valueobject.Money
	PartnerPrice    valueobject.Money
	InStock         bool
}

// ImportPriceListInput carries one import batch. Source names where the
// rows came from, for the audit trail.
type ImportPriceListInput struct {
	Source string
	Rows   []UpsertPriceProductInput
}

// ImportResult summarizes a price-list import
type ImportResult struct {
	ImportID uuid.UUID
	Created  int
	Updated  int
	Failed   []ImportFailure
}

// ImportFailure records one rejected import row
type ImportFailure struct {
	ExternalArticle string
	Reason          string
}

// ListPriceProductsInput controls price-list product listing
type ListPriceProductsInput struct {
	Search      string
	OnlyActive  bool
	OnlyInStock bool
	Filter      shared.Filter
}

// CreateCatalogItemInput carries data for a storefront entry
type CreateCatalogItemInput struct {
	Brand          string
	Name           string
	Description    string
	ImageURL       string
	PriceProductID *uuid.UUID
	SortOrder      int
}

// UpdateCatalogItemInput carries partial storefront entry changes
type UpdateCatalogItemInput struct {
	Brand              *string
	Name               *string
	Description        *string
	ImageURL           *string
	SortOrder          *int
	IsVisible          *bool
	InStock            *bool
	PriceProductID     *uuid.UUID
	UnlinkPriceProduct bool
}

// CreateReleaseNoteInput carries data for a new release note
type CreateReleaseNoteInput struct {
	Version     string
	Title       string
	Description string
	Changes     string
}

// UpdateReleaseNoteInput carries partial release note changes
type UpdateReleaseNoteInput struct {
	Title       *string
	Description *string
	Changes     *string
}

// PublishToPartnersInput controls partner exposure of a release note.
// A nil MaxViews means unlimited partner views.
type PublishToPartnersInput struct {
	MaxViews *int
}

// SetPartnerPriceInput carries a per-partner fragrance price agreement
type SetPartnerPriceInput struct {
	PurchasePrice          valueobject.Money
	RecommendedClientPrice valueobject.Money
}

// PriceSearchInput controls a price search.
// PartnerID and ClientID select the markup context for the preview
// price: with a partner the partner's total markup for that client is
// applied, otherwise the base client price is returned as-is.
type PriceSearchInput struct {
	Query     string
	PartnerID *uuid.UUID
	ClientID  *uuid.UUID
	Filter    shared.Filter
}

// PriceSearchResult is one row of a price search across fragrances
// and price-list products
type PriceSearchResult struct {
	Kind        string
	ID          uuid.UUID
	Brand       string
	Name        string
	DisplayName string
	VolumeML    int
	InStock     bool
	BasePrice   valueobject.Money
	ClientPrice valueobject.Money
}

// Result kinds for price search rows
const (
	KindFragrance    = "fragrance"
	KindPriceProduct = "price_product"
)
