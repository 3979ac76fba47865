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

// GormFragranceRepository implements FragranceRepository using GORM
type GormFragranceRepository struct {
	db *gorm.DB
}

// NewGormFragranceRepository creates a new GormFragranceRepository
func NewGormFragranceRepository(db *gorm.DB) *GormFragranceRepository {
	return &GormFragranceRepository{db: db}
}

// FindByID finds a fragrance by its ID
func (r *GormFragranceRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Fragrance, error) {
	var model models.FragranceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all fragrances matching the filter
func (r *GormFragranceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Fragrance, error) {
	var fragranceModels []models.FragranceModel
	query := r.db.WithContext(ctx).Model(&models.FragranceModel{})
	query = r.applySearch(query, filter)
	query = applyPagination(query, filter, map[string]bool{
		"brand":      true,
		"name":       true,
		"created_at": true,
	}, "brand ASC, name ASC")

	if err := query.Find(&fragranceModels).Error; err != nil {
		return nil, err
	}

	fragrances := make([]catalog.Fragrance, len(fragranceModels))
	for i, model := range fragranceModels {
		fragrances[i] = *model.ToDomain()
	}
	return fragrances, nil
}

// Search finds fragrances whose brand or name matches the query
func (r *GormFragranceRepository) Search(ctx context.Context, query string, filter shared.Filter) ([]catalog.Fragrance, error) {
	filter.Search = query
	return r.FindAll(ctx, filter)
}

// Save creates or updates a fragrance
func (r *GormFragranceRepository) Save(ctx context.Context, fragrance *catalog.Fragrance) error {
	model := models.FragranceModelFromDomain(fragrance)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a fragrance
func (r *GormFragranceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.FragranceModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts fragrances matching the filter
func (r *GormFragranceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.FragranceModel{})
	query = r.applySearch(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormFragranceRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(brand) LIKE ? OR LOWER(name) LIKE ?", pattern, pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "is_active":
			query = query.Where("is_active = ?", value)
		case "brand":
			query = query.Where("brand = ?", value)
		}
	}
	return query
}

// Ensure GormFragranceRepository implements FragranceRepository
var _ catalog.FragranceRepository = (*GormFragranceRepository)(nil)
