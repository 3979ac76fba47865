package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/scentlab/crm-backend/internal/domain/catalog"
	"github.com/scentlab/crm-backend/internal/domain/identity"
	"github.com/scentlab/crm-backend/internal/domain/shared"
)

// PriceProductService manages supplier price-list products.
// Imports upsert rows keyed by the supplier's external article.
type PriceProductService struct {
	productRepo catalog.PriceProductRepository
	importRepo  catalog.PriceImportRepository
	logger      *zap.Logger
}

// NewPriceProductService creates a new price product service
func NewPriceProductService(
	productRepo catalog.PriceProductRepository,
	importRepo catalog.PriceImportRepository,
	logger *zap.Logger,
) *PriceProductService {
	return &PriceProductService{
		productRepo: productRepo,
		importRepo:  importRepo,
		logger:      logger,
	}
}

// List returns price-list products matching the input
func (s *PriceProductService) List(ctx context.Context, actor identity.Actor, input ListPriceProductsInput) (shared.Paginated[catalog.PriceProduct], error) {
	if err := requirePriceView(actor); err != nil {
		return shared.Paginated[catalog.PriceProduct]{}, err
	}

	filter := input.Filter
	if filter.Filters == nil {
		filter.Filters = make(map[string]interface{})
	}
	if input.OnlyActive {
		filter.Filters["is_active"] = true
	}
	if input.OnlyInStock {
		filter.Filters["in_stock"] = true
	}

	var (
		products []catalog.PriceProduct
		err      error
	)
	if input.Search != "" {
		products, err = s.productRepo.Search(ctx, input.Search, filter)
	} else {
		products, err = s.productRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return shared.Paginated[catalog.PriceProduct]{}, err
	}

	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[catalog.PriceProduct]{}, err
	}

	return shared.NewPaginated(products, total, filter.Page, filter.PageSize), nil
}

// Get returns a single price-list product
func (s *PriceProductService) Get(ctx context.Context, actor identity.Actor, id uuid.UUID) (*catalog.PriceProduct, error) {
	if err := requirePriceView(actor); err != nil {
		return nil, err
	}
	return s.productRepo.FindByID(ctx, id)
}

// Upsert creates or updates one price-list row by external article
func (s *PriceProductService) Upsert(ctx context.Context, actor identity.Actor, input UpsertPriceProductInput) (*catalog.PriceProduct, bool, error) {
	if err := actor.Require("prices.manage"); err != nil {
		return nil, false, err
	}
	return s.upsertRow(ctx, input)
}

// Import upserts a batch of price-list rows. Rows that fail validation
// are collected in the result instead of aborting the batch. Every batch
// leaves an audit record.
func (s *PriceProductService) Import(ctx context.Context, actor identity.Actor, input ImportPriceListInput) (ImportResult, error) {
	if err := actor.Require("prices.manage"); err != nil {
		return ImportResult{}, err
	}

	record, err := catalog.NewPriceImport(input.Source, len(input.Rows), actor.UserID)
	if err != nil {
		return ImportResult{}, err
	}

	var result ImportResult
	for _, row := range input.Rows {
		_, created, err := s.upsertRow(ctx, row)
		if err != nil {
			result.Failed = append(result.Failed, ImportFailure{
				ExternalArticle: row.ExternalArticle,
				Reason:          err.Error(),
			})
			continue
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}

	failures := make([]catalog.PriceImportFailure, len(result.Failed))
	for i, f := range result.Failed {
		failures[i] = catalog.PriceImportFailure{ExternalArticle: f.ExternalArticle, Reason: f.Reason}
	}
	if err := record.Complete(result.Created, result.Updated, failures); err != nil {
		return ImportResult{}, err
	}
	if err := s.importRepo.Save(ctx, record); err != nil {
		// A lost audit row must not undo an applied import
		s.logger.Warn("Failed to save price import record", zap.Error(err))
	}
	result.ImportID = record.ID

	s.logger.Info("Price list imported",
		zap.String("import_id", record.ID.String()),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("failed", len(result.Failed)))

	return result, nil
}

// ListImports returns price-list import audit records
func (s *PriceProductService) ListImports(ctx context.Context, actor identity.Actor, filter shared.Filter) (shared.Paginated[catalog.PriceImport], error) {
	if err := actor.Require("prices.manage"); err != nil {
		return shared.Paginated[catalog.PriceImport]{}, err
	}

	imports, err := s.importRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[catalog.PriceImport]{}, err
	}
	total, err := s.importRepo.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[catalog.PriceImport]{}, err
	}
	return shared.NewPaginated(imports, total, filter.Page, filter.PageSize), nil
}

// GetImport returns one import audit record with its rejected rows
func (s *PriceProductService) GetImport(ctx context.Context, actor identity.Actor, id uuid.UUID) (*catalog.PriceImport, error) {
	if err := actor.Require("prices.manage"); err != nil {
		return nil, err
	}
	return s.importRepo.FindByID(ctx, id)
}

func (s *PriceProductService) upsertRow(ctx context.Context, input UpsertPriceProductInput) (*catalog.PriceProduct, bool, error) {
	product, err := s.productRepo.FindByExternalArticle(ctx, input.ExternalArticle)
	created := false
	switch {
	case err == nil:
		product.Brand = input.Brand
		product.Name = input.Name
		product.VolumeML = input.VolumeML
		product.Activate()
	case errors.Is(err, shared.ErrNotFound):
		product, err = catalog.NewPriceProduct(input.ExternalArticle, input.Brand, input.Name)
		if err != nil {
			return nil, false, err
		}
		product.VolumeML = input.VolumeML
		created = true
	default:
		return nil, false, err
	}

	if err := product.SetPrices(normalizeRUB(input.PurchasePrice), normalizeRUB(input.PartnerPrice)); err != nil {
		return nil, false, err
	}
	product.SetStock(input.InStock)

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, false, err
	}

	return product, created, nil
}

// SetStock updates a product's availability
func (s *PriceProductService) SetStock(ctx context.Context, actor identity.Actor, id uuid.UUID, inStock bool) (*catalog.PriceProduct, error) {
	if err := actor.Require("prices.manage"); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.SetStock(inStock)
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// Deactivate removes a product from active price lists
func (s *PriceProductService) Deactivate(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	if err := actor.Require("prices.manage"); err != nil {
		return err
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	product.Deactivate()
	return s.productRepo.Save(ctx, product)
}

func requirePriceView(actor identity.Actor) error {
	if actor.HasAny("prices.view_all", "prices.view_own", "prices.manage") {
		return nil
	}
	return shared.ErrForbidden
}
