package catalog

import (
	"strings"

	"github.com/scentlab/crm-backend/internal/domain/shared"
	"github.com/scentlab/crm-backend/internal/domain/shared/valueobject"
)

// Fragrance is an in-house catalog product with its own cost and retail price
type Fragrance struct {
	shared.BaseAggregateRoot
	Name        string
	Brand       string
	Description string
	VolumeML    int
	BaseCost    valueobject.Money
	RetailPrice valueobject.Money
	IsActive    bool
}

// NewFragrance creates a new fragrance with required fields
func NewFragrance(brand, name string) (*Fragrance, error) {
	brand = strings.TrimSpace(brand)
	name = strings.TrimSpace(name)
	if brand == "" {
		return nil, shared.NewDomainError("INVALID_BRAND", "Brand cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Fragrance name cannot be empty")
	}

	return &Fragrance{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Brand:             brand,
		Name:              name,
		BaseCost:          valueobject.ZeroRUB(),
		RetailPrice:       valueobject.ZeroRUB(),
		IsActive:          true,
	}, nil
}

// SetPrices sets the purchase cost and retail price
func (f *Fragrance) SetPrices(baseCost, retailPrice valueobject.Money) error {
	if baseCost.IsNegative() || retailPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Prices cannot be negative")
	}

	f.BaseCost = baseCost
	f.RetailPrice = retailPrice
	f.Touch()
	f.IncrementVersion()

	return nil
}

// SetDescription updates the descriptive fields
func (f *Fragrance) SetDescription(description string, volumeML int) error {
	if volumeML < 0 {
		return shared.NewDomainError("INVALID_VOLUME", "Volume cannot be negative")
	}

	f.Description = description
	f.VolumeML = volumeML
	f.Touch()
	f.IncrementVersion()

	return nil
}

// Archive hides the fragrance from the catalog
func (f *Fragrance) Archive() {
	f.IsActive = false
	f.Touch()
	f.IncrementVersion()
}

// Restore brings an archived fragrance back
func (f *Fragrance) Restore() {
	f.IsActive = true
	f.Touch()
	f.IncrementVersion()
}

// DisplayName returns "Brand Name" for listings
func (f *Fragrance) DisplayName() string {
	return f.Brand + " " + f.Name
}
