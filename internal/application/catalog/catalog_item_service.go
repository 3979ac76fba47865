package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/scentlab/crm-backend/internal/domain/catalog"
	"github.com/scentlab/crm-backend/internal/domain/crm"
	"github.com/scentlab/crm-backend/internal/domain/identity"
	"github.com/scentlab/crm-backend/internal/domain/shared"
)

// CatalogItemService manages the curated storefront.
// Managers see every entry; partner users see only visible entries and
// only while their partner account has catalog access.
type CatalogItemService struct {
	itemRepo    catalog.CatalogItemRepository
	productRepo catalog.PriceProductRepository
	partnerRepo crm.PartnerRepository
	logger      *zap.Logger
}

// NewCatalogItemService creates a new catalog item service
func NewCatalogItemService(
	itemRepo catalog.CatalogItemRepository,
	productRepo catalog.PriceProductRepository,
	partnerRepo crm.PartnerRepository,
	logger *zap.Logger,
) *CatalogItemService {
	return &CatalogItemService{
		itemRepo:    itemRepo,
		productRepo: productRepo,
		partnerRepo: partnerRepo,
		logger:      logger,
	}
}

// List returns storefront entries visible to the actor
func (s *CatalogItemService) List(ctx context.Context, actor identity.Actor, filter shared.Filter) (shared.Paginated[catalog.CatalogItem], error) {
	if actor.HasAny("catalog.view_all", "catalog.manage") {
		items, err := s.itemRepo.FindAll(ctx, filter)
		if err != nil {
			return shared.Paginated[catalog.CatalogItem]{}, err
		}
		total, err := s.itemRepo.Count(ctx, filter)
		if err != nil {
			return shared.Paginated[catalog.CatalogItem]{}, err
		}
		return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
	}

	if err := s.authorizePartnerView(ctx, actor); err != nil {
		return shared.Paginated[catalog.CatalogItem]{}, err
	}

	items, err := s.itemRepo.FindVisible(ctx, filter)
	if err != nil {
		return shared.Paginated[catalog.CatalogItem]{}, err
	}
	return shared.NewPaginated(items, int64(len(items)), filter.Page, filter.PageSize), nil
}

// Get returns a single storefront entry visible to the actor
func (s *CatalogItemService) Get(ctx context.Context, actor identity.Actor, id uuid.UUID) (*catalog.CatalogItem, error) {
	if actor.HasAny("catalog.view_all", "catalog.manage") {
		return s.itemRepo.FindByID(ctx, id)
	}

	if err := s.authorizePartnerView(ctx, actor); err != nil {
		return nil, err
	}

	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !item.IsVisible {
		return nil, shared.ErrNotFound
	}
	return item, nil
}

// authorizePartnerView admits actors with a view_own key; partner-bound
// actors additionally need their partner's catalog access flag.
func (s *CatalogItemService) authorizePartnerView(ctx context.Context, actor identity.Actor) error {
	if !actor.Has("catalog.view_own") {
		return shared.ErrForbidden
	}
	if actor.PartnerID == nil {
		return nil
	}

	partner, err := s.partnerRepo.FindByID(ctx, *actor.PartnerID)
	if err != nil {
		return err
	}
	if !partner.CanAccessCatalog {
		return shared.ErrForbidden
	}
	return nil
}

// Create adds a storefront entry
func (s *CatalogItemService) Create(ctx context.Context, actor identity.Actor, input CreateCatalogItemInput) (*catalog.CatalogItem, error) {
	if err := actor.Require("catalog.manage"); err != nil {
		return nil, err
	}

	item, err := catalog.NewCatalogItem(input.Brand, input.Name)
	if err != nil {
		return nil, err
	}
	item.SetPresentation(input.Description, input.ImageURL, input.SortOrder)

	if input.PriceProductID != nil {
		if _, err := s.productRepo.FindByID(ctx, *input.PriceProductID); err != nil {
			return nil, shared.NewDomainError("INVALID_PRICE_PRODUCT_ID", "Linked price product does not exist")
		}
		if err := item.LinkPriceProduct(*input.PriceProductID); err != nil {
			return nil, err
		}
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("Catalog item created",
		zap.String("item_id", item.ID.String()),
		zap.String("name", item.DisplayName()))

	return item, nil
}

// Update applies partial changes to a storefront entry
func (s *CatalogItemService) Update(ctx context.Context, actor identity.Actor, id uuid.UUID, input UpdateCatalogItemInput) (*catalog.CatalogItem, error) {
	if err := actor.Require("catalog.manage"); err != nil {
		return nil, err
	}

	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Brand != nil {
		item.Brand = *input.Brand
	}
	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Description != nil || input.ImageURL != nil || input.SortOrder != nil {
		description, imageURL, sortOrder := item.Description, item.ImageURL, item.SortOrder
		if input.Description != nil {
			description = *input.Description
		}
		if input.ImageURL != nil {
			imageURL = *input.ImageURL
		}
		if input.SortOrder != nil {
			sortOrder = *input.SortOrder
		}
		item.SetPresentation(description, imageURL, sortOrder)
	}
	if input.IsVisible != nil {
		item.SetVisibility(*input.IsVisible)
	}
	if input.InStock != nil {
		item.SetStock(*input.InStock)
	}
	switch {
	case input.UnlinkPriceProduct:
		item.UnlinkPriceProduct()
	case input.PriceProductID != nil:
		if _, err := s.productRepo.FindByID(ctx, *input.PriceProductID); err != nil {
			return nil, shared.NewDomainError("INVALID_PRICE_PRODUCT_ID", "Linked price product does not exist")
		}
		if err := item.LinkPriceProduct(*input.PriceProductID); err != nil {
			return nil, err
		}
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// Delete removes a storefront entry
func (s *CatalogItemService) Delete(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	if err := actor.Require("catalog.manage"); err != nil {
		return err
	}

	if _, err := s.itemRepo.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.itemRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Catalog item deleted", zap.String("item_id", id.String()))
	return nil
}
