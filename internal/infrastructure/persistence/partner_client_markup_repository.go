package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/scentlab/crm-backend/internal/domain/crm"
	"github.com/scentlab/crm-backend/internal/domain/shared"
	"github.com/scentlab/crm-backend/internal/infrastructure/persistence/models"
)

// GormPartnerClientMarkupRepository stores per-client markup overrides
type GormPartnerClientMarkupRepository struct {
	db *gorm.DB
}

// NewGormPartnerClientMarkupRepository creates a new override repository
func NewGormPartnerClientMarkupRepository(db *gorm.DB) *GormPartnerClientMarkupRepository {
	return &GormPartnerClientMarkupRepository{db: db}
}

// FindByPartnerAndClient finds the override for a partner/client pair
func (r *GormPartnerClientMarkupRepository) FindByPartnerAndClient(ctx context.Context, partnerID, clientID uuid.UUID) (*crm.PartnerClientMarkup, error) {
	var model models.PartnerClientMarkupModel
	if err := r.db.WithContext(ctx).
		Where("partner_id = ? AND client_id = ?", partnerID, clientID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPartner lists all overrides for a partner
func (r *GormPartnerClientMarkupRepository) FindByPartner(ctx context.Context, partnerID uuid.UUID) ([]crm.PartnerClientMarkup, error) {
	var rows []models.PartnerClientMarkupModel
	if err := r.db.WithContext(ctx).
		Where("partner_id = ?", partnerID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	overrides := make([]crm.PartnerClientMarkup, len(rows))
	for i, row := range rows {
		overrides[i] = *row.ToDomain()
	}
	return overrides, nil
}

// Save creates or updates an override
func (r *GormPartnerClientMarkupRepository) Save(ctx context.Context, markup *crm.PartnerClientMarkup) error {
	model := models.PartnerClientMarkupModelFromDomain(markup)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes the override for a partner/client pair
func (r *GormPartnerClientMarkupRepository) Delete(ctx context.Context, partnerID, clientID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&models.PartnerClientMarkupModel{}, "partner_id = ? AND client_id = ?", partnerID, clientID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormPartnerClientMarkupRepository implements PartnerClientMarkupRepository
var _ crm.PartnerClientMarkupRepository = (*GormPartnerClientMarkupRepository)(nil)
