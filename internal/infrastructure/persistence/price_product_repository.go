package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/scentlab/crm-backend/internal/domain/catalog"
	"github.com/scentlab/crm-backend/internal/domain/shared"
	"github.com/scentlab/crm-backend/internal/infrastructure/persistence/models"
)

// GormPriceProductRepository implements PriceProductRepository using GORM
type GormPriceProductRepository struct {
	db *gorm.DB
}

// NewGormPriceProductRepository creates a new GormPriceProductRepository
func NewGormPriceProductRepository(db *gorm.DB) *GormPriceProductRepository {
	return &GormPriceProductRepository{db: db}
}

// FindByID finds a price-list product by its ID
func (r *GormPriceProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.PriceProduct, error) {
	var model models.PriceProductModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByExternalArticle finds a product by its supplier article
func (r *GormPriceProductRepository) FindByExternalArticle(ctx context.Context, article string) (*catalog.PriceProduct, error) {
	var model models.PriceProductModel
	if err := r.db.WithContext(ctx).
		Where("external_article = ?", strings.TrimSpace(article)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all products matching the filter
func (r *GormPriceProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.PriceProduct, error) {
	var productModels []models.PriceProductModel
	query := r.db.WithContext(ctx).Model(&models.PriceProductModel{})
	query = r.applySearch(query, filter)
	query = applyPagination(query, filter, map[string]bool{
		"brand":      true,
		"name":       true,
		"created_at": true,
	}, "brand ASC, name ASC")

	if err := query.Find(&productModels).Error; err != nil {
		return nil, err
	}

	products := make([]catalog.PriceProduct, len(productModels))
	for i, model := range productModels {
		products[i] = *model.ToDomain()
	}
	return products, nil
}

// Search finds products whose brand, name or article matches the query
func (r *GormPriceProductRepository) Search(ctx context.Context, query string, filter shared.Filter) ([]catalog.PriceProduct, error) {
	filter.Search = query
	return r.FindAll(ctx, filter)
}

// Save creates or updates a product
func (r *GormPriceProductRepository) Save(ctx context.Context, product *catalog.PriceProduct) error {
	model := models.PriceProductModelFromDomain(product)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a product
func (r *GormPriceProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PriceProductModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts products matching the filter
func (r *GormPriceProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.PriceProductModel{})
	query = r.applySearch(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormPriceProductRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(brand) LIKE ? OR LOWER(name) LIKE ? OR LOWER(external_article) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	for key, value := range filter.Filters {
		switch key {
		case "is_active":
			query = query.Where("is_active = ?", value)
		case "in_stock":
			query = query.Where("in_stock = ?", value)
		case "brand":
			query = query.Where("brand = ?", value)
		}
	}
	return query
}

// Ensure GormPriceProductRepository implements PriceProductRepository
var _ catalog.PriceProductRepository = (*GormPriceProductRepository)(nil)
