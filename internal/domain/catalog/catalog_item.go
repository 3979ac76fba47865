package catalog

import (
	"strings"

	"github.com/google/uuid"

	"github.com/scentlab/crm-backend/internal/domain/shared"
)

// CatalogItem is a curated storefront entry shown to clients and partners.
// Pricing comes from the linked price-list product.
type CatalogItem struct {
	shared.BaseAggregateRoot
	Brand          string
	Name           string
	Description    string
	ImageURL       string
	PriceProductID *uuid.UUID
	IsVisible      bool
	InStock        bool
	SortOrder      int
}

// NewCatalogItem creates a storefront entry
func NewCatalogItem(brand, name string) (*CatalogItem, error) {
	brand = strings.TrimSpace(brand)
	name = strings.TrimSpace(name)
	if brand == "" {
		return nil, shared.NewDomainError("INVALID_BRAND", "Brand cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}

	return &CatalogItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Brand:             brand,
		Name:              name,
		IsVisible:         true,
		InStock:           true,
	}, nil
}

// LinkPriceProduct attaches the price-list product that prices this item
func (i *CatalogItem) LinkPriceProduct(priceProductID uuid.UUID) error {
	if priceProductID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRICE_PRODUCT_ID", "Price product ID cannot be empty")
	}

	i.PriceProductID = &priceProductID
	i.Touch()
	i.IncrementVersion()

	return nil
}

// UnlinkPriceProduct detaches the price source
func (i *CatalogItem) UnlinkPriceProduct() {
	i.PriceProductID = nil
	i.Touch()
	i.IncrementVersion()
}

// SetPresentation updates display fields
func (i *CatalogItem) SetPresentation(description, imageURL string, sortOrder int) {
	i.Description = description
	i.ImageURL = strings.TrimSpace(imageURL)
	i.SortOrder = sortOrder
	i.Touch()
	i.IncrementVersion()
}

// SetVisibility toggles storefront visibility
func (i *CatalogItem) SetVisibility(visible bool) {
	i.IsVisible = visible
	i.Touch()
	i.IncrementVersion()
}

// SetStock updates availability
func (i *CatalogItem) SetStock(inStock bool) {
	i.InStock = inStock
	i.Touch()
	i.IncrementVersion()
}

// HasPriceSource returns true when the item can be priced
func (i *CatalogItem) HasPriceSource() bool {
	return i.PriceProductID != nil
}

// DisplayName returns "Brand Name" for listings
func (i *CatalogItem) DisplayName() string {
	return i.Brand + " " + i.Name
}
