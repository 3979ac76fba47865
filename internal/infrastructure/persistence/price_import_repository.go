package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/scentlab/crm-backend/internal/domain/catalog"
	"github.com/scentlab/crm-backend/internal/domain/shared"
	"github.com/scentlab/crm-backend/internal/infrastructure/persistence/models"
)

// GormPriceImportRepository implements PriceImportRepository using GORM
type GormPriceImportRepository struct {
	db *gorm.DB
}

// NewGormPriceImportRepository creates a new GormPriceImportRepository
func NewGormPriceImportRepository(db *gorm.DB) *GormPriceImportRepository {
	return &GormPriceImportRepository{db: db}
}

// FindByID finds an import record by its ID
func (r *GormPriceImportRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.PriceImport, error) {
	var model models.PriceImportModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindAll finds import records matching the filter, newest first by default
func (r *GormPriceImportRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.PriceImport, error) {
	var importModels []models.PriceImportModel
	query := r.db.WithContext(ctx).Model(&models.PriceImportModel{})
	query = r.applyFilters(query, filter)
	query = applyPagination(query, filter, map[string]bool{
		"created_at": true,
		"status":     true,
	}, "created_at DESC")

	if err := query.Find(&importModels).Error; err != nil {
		return nil, err
	}

	imports := make([]catalog.PriceImport, len(importModels))
	for i, model := range importModels {
		imp, err := model.ToDomain()
		if err != nil {
			return nil, err
		}
		imports[i] = *imp
	}
	return imports, nil
}

// Save creates or updates an import record
func (r *GormPriceImportRepository) Save(ctx context.Context, imp *catalog.PriceImport) error {
	model := &models.PriceImportModel{}
	if err := model.FromDomain(imp); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes an import record
func (r *GormPriceImportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PriceImportModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts import records matching the filter
func (r *GormPriceImportRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.PriceImportModel{})
	query = r.applyFilters(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormPriceImportRepository) applyFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "imported_by":
			query = query.Where("imported_by = ?", value)
		}
	}
	return query
}

// Ensure GormPriceImportRepository implements PriceImportRepository
var _ catalog.PriceImportRepository = (*GormPriceImportRepository)(nil)
