package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/scentlab/crm-backend/internal/domain/shared"
	"github.com/scentlab/crm-backend/internal/domain/shared/valueobject"
)

// PartnerPrice is a per-partner price agreement for a fragrance.
// When present it overrides the fragrance's base cost and retail price
// in partner pricing.
type PartnerPrice struct {
	ID                     uuid.UUID
	PartnerID              uuid.UUID
	FragranceID            uuid.UUID
	PurchasePrice          valueobject.Money
	RecommendedClientPrice valueobject.Money
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// NewPartnerPrice creates a partner price agreement
func NewPartnerPrice(partnerID, fragranceID uuid.UUID, purchase, recommended valueobject.Money) (*PartnerPrice, error) {
	if partnerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PARTNER_ID", "Partner ID cannot be empty")
	}
	if fragranceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_FRAGRANCE_ID", "Fragrance ID cannot be empty")
	}
	if purchase.IsNegative() || recommended.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Prices cannot be negative")
	}

	now := time.Now()
	return &PartnerPrice{
		ID:                     uuid.New(),
		PartnerID:              partnerID,
		FragranceID:            fragranceID,
		PurchasePrice:          purchase,
		RecommendedClientPrice: recommended,
		CreatedAt:              now,
		UpdatedAt:              now,
	}, nil
}

// SetPrices updates the agreement
func (p *PartnerPrice) SetPrices(purchase, recommended valueobject.Money) error {
	if purchase.IsNegative() || recommended.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Prices cannot be negative")
	}

	p.PurchasePrice = purchase
	p.RecommendedClientPrice = recommended
	p.UpdatedAt = time.Now()

	return nil
}
