package catalog

import (
	"strings"

	"github.com/scentlab/crm-backend/internal/domain/shared"
	"github.com/scentlab/crm-backend/internal/domain/shared/valueobject"
)

// PriceProduct is a row imported from a supplier price list.
// PurchasePrice is what the shop pays, PartnerPrice is the base price
// partners buy at before markup.
type PriceProduct struct {
	shared.BaseAggregateRoot
	ExternalArticle string
	Brand           string
	Name            string
	VolumeML        int
	PurchasePrice   valueobject.Money
	PartnerPrice    valueobject.Money
	IsActive        bool
	InStock         bool
}

// NewPriceProduct creates a price-list product keyed by supplier article
func NewPriceProduct(externalArticle, brand, name string) (*PriceProduct, error) {
	externalArticle = strings.TrimSpace(externalArticle)
	if externalArticle == "" {
		return nil, shared.NewDomainError("INVALID_ARTICLE", "External article cannot be empty")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}

	return &PriceProduct{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ExternalArticle:   externalArticle,
		Brand:             strings.TrimSpace(brand),
		Name:              name,
		PurchasePrice:     valueobject.ZeroRUB(),
		PartnerPrice:      valueobject.ZeroRUB(),
		IsActive:          true,
		InStock:           true,
	}, nil
}

// SetPrices sets the purchase and partner base prices
func (p *PriceProduct) SetPrices(purchase, partner valueobject.Money) error {
	if purchase.IsNegative() || partner.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Prices cannot be negative")
	}

	p.PurchasePrice = purchase
	p.PartnerPrice = partner
	p.Touch()
	p.IncrementVersion()

	return nil
}

// SetStock updates availability flags
func (p *PriceProduct) SetStock(inStock bool) {
	p.InStock = inStock
	p.Touch()
	p.IncrementVersion()
}

// Deactivate removes the product from active price lists
func (p *PriceProduct) Deactivate() {
	p.IsActive = false
	p.Touch()
	p.IncrementVersion()
}

// Activate returns the product to active price lists
func (p *PriceProduct) Activate() {
	p.IsActive = true
	p.Touch()
	p.IncrementVersion()
}

// DisplayName returns "Brand Name" for listings
func (p *PriceProduct) DisplayName() string {
	if p.Brand == "" {
		return p.Name
	}
	return p.Brand + " " + p.Name
}
