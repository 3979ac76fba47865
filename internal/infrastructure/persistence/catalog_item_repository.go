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

// GormCatalogItemRepository implements CatalogItemRepository using GORM
type GormCatalogItemRepository struct {
	db *gorm.DB
}

// NewGormCatalogItemRepository creates a new GormCatalogItemRepository
func NewGormCatalogItemRepository(db *gorm.DB) *GormCatalogItemRepository {
	return &GormCatalogItemRepository{db: db}
}

// FindByID finds a storefront item by its ID
func (r *GormCatalogItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.CatalogItem, error) {
	var model models.CatalogItemModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all items matching the filter
func (r *GormCatalogItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.CatalogItem, error) {
	var itemModels []models.CatalogItemModel
	query := r.db.WithContext(ctx).Model(&models.CatalogItemModel{})
	query = r.applySearch(query, filter)
	query = applyPagination(query, filter, map[string]bool{
		"brand":      true,
		"name":       true,
		"sort_order": true,
		"created_at": true,
	}, "sort_order ASC, brand ASC, name ASC")

	if err := query.Find(&itemModels).Error; err != nil {
		return nil, err
	}

	items := make([]catalog.CatalogItem, len(itemModels))
	for i, model := range itemModels {
		items[i] = *model.ToDomain()
	}
	return items, nil
}

// FindVisible lists only items shown on the storefront
func (r *GormCatalogItemRepository) FindVisible(ctx context.Context, filter shared.Filter) ([]catalog.CatalogItem, error) {
	if filter.Filters == nil {
		filter.Filters = make(map[string]interface{})
	}
	filter.Filters["is_visible"] = true
	return r.FindAll(ctx, filter)
}

// Save creates or updates an item
func (r *GormCatalogItemRepository) Save(ctx context.Context, item *catalog.CatalogItem) error {
	model := models.CatalogItemModelFromDomain(item)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes an item
func (r *GormCatalogItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CatalogItemModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts items matching the filter
func (r *GormCatalogItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.CatalogItemModel{})
	query = r.applySearch(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormCatalogItemRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(brand) LIKE ? OR LOWER(name) LIKE ?", pattern, pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "is_visible":
			query = query.Where("is_visible = ?", value)
		case "in_stock":
			query = query.Where("in_stock = ?", value)
		case "brand":
			query = query.Where("brand = ?", value)
		}
	}
	return query
}

// Ensure GormCatalogItemRepository implements CatalogItemRepository
var _ catalog.CatalogItemRepository = (*GormCatalogItemRepository)(nil)
