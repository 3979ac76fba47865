package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/scentlab/crm-backend/internal/domain/catalog"
	"github.com/scentlab/crm-backend/internal/domain/crm"
	"github.com/scentlab/crm-backend/internal/domain/identity"
	"github.com/scentlab/crm-backend/internal/domain/pricing"
	"github.com/scentlab/crm-backend/internal/domain/shared"
	"github.com/scentlab/crm-backend/internal/domain/shared/valueobject"
)

// PriceResolver turns catalog products into base prices for the pricing
// engine. For partner sales a per-partner fragrance agreement overrides
// the fragrance's own prices, and the markup is the partner's total
// markup for the client in question.
type PriceResolver struct {
	partnerPriceRepo catalog.PartnerPriceRepository
	partnerRepo      crm.PartnerRepository
	markupRepo       crm.PartnerClientMarkupRepository
}

// NewPriceResolver creates a price resolver
func NewPriceResolver(
	partnerPriceRepo catalog.PartnerPriceRepository,
	partnerRepo crm.PartnerRepository,
	markupRepo crm.PartnerClientMarkupRepository,
) *PriceResolver {
	return &PriceResolver{
		partnerPriceRepo: partnerPriceRepo,
		partnerRepo:      partnerRepo,
		markupRepo:       markupRepo,
	}
}

// MarkupFor resolves the total markup for a sale.
// Without a partner the markup is zero: internal sales use catalog
// prices as-is. With a partner the admin markup plus the partner's
// effective markup for the client applies.
func (r *PriceResolver) MarkupFor(ctx context.Context, partnerID, clientID *uuid.UUID) (valueobject.Percent, error) {
	if partnerID == nil {
		return valueobject.ZeroPercent(), nil
	}

	partner, err := r.partnerRepo.FindByID(ctx, *partnerID)
	if err != nil {
		return valueobject.ZeroPercent(), err
	}

	var override *crm.PartnerClientMarkup
	if clientID != nil {
		override, err = r.markupRepo.FindByPartnerAndClient(ctx, *partnerID, *clientID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return valueobject.ZeroPercent(), err
		}
	}

	return partner.TotalMarkup(override), nil
}

// FragranceBase resolves the cost and client base price for a fragrance.
// With a partner context a price agreement takes precedence over the
// fragrance's base cost and retail price.
func (r *PriceResolver) FragranceBase(ctx context.Context, fragrance *catalog.Fragrance, partnerID *uuid.UUID) (pricing.BasePrice, error) {
	if partnerID != nil {
		agreement, err := r.partnerPriceRepo.FindByPartnerAndFragrance(ctx, *partnerID, fragrance.ID)
		switch {
		case err == nil:
			return pricing.BasePrice{
				Cost:        agreement.PurchasePrice,
				ClientPrice: agreement.RecommendedClientPrice,
			}, nil
		case !errors.Is(err, shared.ErrNotFound):
			return pricing.BasePrice{}, err
		}
	}

	return pricing.BasePrice{
		Cost:        fragrance.BaseCost,
		ClientPrice: fragrance.RetailPrice,
	}, nil
}

// PriceProductBase resolves the cost and client base price for a
// price-list product. Partners buy at the partner price, internal sales
// cost the purchase price; the partner price is the client base either way.
func (r *PriceResolver) PriceProductBase(product *catalog.PriceProduct, forPartner bool) pricing.BasePrice {
	cost := product.PurchasePrice
	if forPartner {
		cost = product.PartnerPrice
	}
	return pricing.BasePrice{
		Cost:        cost,
		ClientPrice: product.PartnerPrice,
	}
}

// PriceService searches products with price previews and manages
// per-partner fragrance price agreements
type PriceService struct {
	fragranceRepo    catalog.FragranceRepository
	productRepo      catalog.PriceProductRepository
	partnerPriceRepo catalog.PartnerPriceRepository
	resolver         *PriceResolver
	logger           *zap.Logger
}

// NewPriceService creates a new price service
func NewPriceService(
	fragranceRepo catalog.FragranceRepository,
	productRepo catalog.PriceProductRepository,
	partnerPriceRepo catalog.PartnerPriceRepository,
	resolver *PriceResolver,
	logger *zap.Logger,
) *PriceService {
	return &PriceService{
		fragranceRepo:    fragranceRepo,
		productRepo:      productRepo,
		partnerPriceRepo: partnerPriceRepo,
		resolver:         resolver,
		logger:           logger,
	}
}

// Search finds fragrances and price-list products matching the query
// and previews the client price in the requested markup context.
// Partner-bound actors always search in their own partner context.
func (s *PriceService) Search(ctx context.Context, actor identity.Actor, input PriceSearchInput) ([]PriceSearchResult, error) {
	if err := requirePriceView(actor); err != nil {
		return nil, err
	}

	partnerID := input.PartnerID
	if actor.PartnerID != nil {
		partnerID = actor.PartnerID
	} else if partnerID != nil && !actor.HasAny("prices.view_all", "prices.manage") {
		return nil, shared.ErrForbidden
	}

	markup, err := s.resolver.MarkupFor(ctx, partnerID, input.ClientID)
	if err != nil {
		return nil, err
	}

	filter := input.Filter
	if filter.Filters == nil {
		filter.Filters = make(map[string]interface{})
	}
	filter.Filters["is_active"] = true

	fragrances, err := s.fragranceRepo.Search(ctx, input.Query, filter)
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.Search(ctx, input.Query, filter)
	if err != nil {
		return nil, err
	}

	results := make([]PriceSearchResult, 0, len(fragrances)+len(products))
	for i := range fragrances {
		f := &fragrances[i]
		base, err := s.resolver.FragranceBase(ctx, f, partnerID)
		if err != nil {
			return nil, err
		}
		results = append(results, PriceSearchResult{
			Kind:        KindFragrance,
			ID:          f.ID,
			Brand:       f.Brand,
			Name:        f.Name,
			DisplayName: f.DisplayName(),
			VolumeML:    f.VolumeML,
			InStock:     f.IsActive,
			BasePrice:   base.ClientPrice,
			ClientPrice: pricing.ClientPrice(base.ClientPrice, markup),
		})
	}
	for i := range products {
		p := &products[i]
		base := s.resolver.PriceProductBase(p, partnerID != nil)
		results = append(results, PriceSearchResult{
			Kind:        KindPriceProduct,
			ID:          p.ID,
			Brand:       p.Brand,
			Name:        p.Name,
			DisplayName: p.DisplayName(),
			VolumeML:    p.VolumeML,
			InStock:     p.InStock,
			BasePrice:   base.ClientPrice,
			ClientPrice: pricing.ClientPrice(base.ClientPrice, markup),
		})
	}

	return results, nil
}

// SetPartnerPrice creates or updates a fragrance price agreement
func (s *PriceService) SetPartnerPrice(ctx context.Context, actor identity.Actor, partnerID, fragranceID uuid.UUID, input SetPartnerPriceInput) (*catalog.PartnerPrice, error) {
	if err := actor.Require("prices.manage"); err != nil {
		return nil, err
	}
	if _, err := s.fragranceRepo.FindByID(ctx, fragranceID); err != nil {
		return nil, err
	}

	agreement, err := s.partnerPriceRepo.FindByPartnerAndFragrance(ctx, partnerID, fragranceID)
	switch {
	case err == nil:
		if err := agreement.SetPrices(input.PurchasePrice, input.RecommendedClientPrice); err != nil {
			return nil, err
		}
	case errors.Is(err, shared.ErrNotFound):
		agreement, err = catalog.NewPartnerPrice(partnerID, fragranceID, input.PurchasePrice, input.RecommendedClientPrice)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := s.partnerPriceRepo.Save(ctx, agreement); err != nil {
		return nil, err
	}

	s.logger.Info("Partner price agreement set",
		zap.String("partner_id", partnerID.String()),
		zap.String("fragrance_id", fragranceID.String()))

	return agreement, nil
}

// ListPartnerPrices returns a partner's fragrance price agreements.
// Partner-bound users may list their own.
func (s *PriceService) ListPartnerPrices(ctx context.Context, actor identity.Actor, partnerID uuid.UUID) ([]catalog.PartnerPrice, error) {
	if !actor.HasAny("prices.view_all", "prices.manage") {
		if actor.PartnerID == nil || *actor.PartnerID != partnerID {
			return nil, shared.ErrForbidden
		}
	}
	return s.partnerPriceRepo.FindByPartner(ctx, partnerID)
}

// RemovePartnerPrice drops a fragrance price agreement
func (s *PriceService) RemovePartnerPrice(ctx context.Context, actor identity.Actor, partnerID, fragranceID uuid.UUID) error {
	if err := actor.Require("prices.manage"); err != nil {
		return err
	}

	if _, err := s.partnerPriceRepo.FindByPartnerAndFragrance(ctx, partnerID, fragranceID); err != nil {
		return err
	}
	return s.partnerPriceRepo.Delete(ctx, partnerID, fragranceID)
}
