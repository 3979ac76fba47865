package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/scentlab/crm-backend/internal/domain/crm"
	"github.com/scentlab/crm-backend/internal/domain/shared"
	"github.com/scentlab/crm-backend/internal/infrastructure/persistence/models"
)

// GormPartnerRepository implements PartnerRepository using GORM
type GormPartnerRepository struct {
	db *gorm.DB
}

// NewGormPartnerRepository creates a new GormPartnerRepository
func NewGormPartnerRepository(db *gorm.DB) *GormPartnerRepository {
	return &GormPartnerRepository{db: db}
}

// FindByID finds a partner by its ID
func (r *GormPartnerRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Partner, error) {
	var model models.PartnerModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByName finds a partner by exact name
func (r *GormPartnerRepository) FindByName(ctx context.Context, name string) (*crm.Partner, error) {
	var model models.PartnerModel
	if err := r.db.WithContext(ctx).
		Where("name = ?", strings.TrimSpace(name)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all partners matching the filter
func (r *GormPartnerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]crm.Partner, error) {
	var partnerModels []models.PartnerModel
	query := r.db.WithContext(ctx).Model(&models.PartnerModel{})
	query = r.applySearch(query, filter)
	query = applyPagination(query, filter, map[string]bool{
		"name":       true,
		"created_at": true,
	}, "name ASC")

	if err := query.Find(&partnerModels).Error; err != nil {
		return nil, err
	}

	partners := make([]crm.Partner, len(partnerModels))
	for i, model := range partnerModels {
		partners[i] = *model.ToDomain()
	}
	return partners, nil
}

// Save creates or updates a partner
func (r *GormPartnerRepository) Save(ctx context.Context, partner *crm.Partner) error {
	model := models.PartnerModelFromDomain(partner)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock updates a partner only when the stored version matches
func (r *GormPartnerRepository) SaveWithLock(ctx context.Context, partner *crm.Partner, expectedVersion int) error {
	model := models.PartnerModelFromDomain(partner)
	result := r.db.WithContext(ctx).
		Model(&models.PartnerModel{}).
		Where("id = ? AND version = ?", partner.ID, expectedVersion).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete deletes a partner
func (r *GormPartnerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PartnerModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts partners matching the filter
func (r *GormPartnerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.PartnerModel{})
	query = r.applySearch(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormPartnerRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(contact_name) LIKE ? OR LOWER(telegram) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "type":
			query = query.Where("type = ?", value)
		}
	}
	return query
}

// Ensure GormPartnerRepository implements PartnerRepository
var _ crm.PartnerRepository = (*GormPartnerRepository)(nil)
