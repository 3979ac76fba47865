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

// GormPartnerPriceRepository stores per-partner fragrance price agreements
type GormPartnerPriceRepository struct {
	db *gorm.DB
}

// NewGormPartnerPriceRepository creates a new GormPartnerPriceRepository
func NewGormPartnerPriceRepository(db *gorm.DB) *GormPartnerPriceRepository {
	return &GormPartnerPriceRepository{db: db}
}

// FindByPartnerAndFragrance finds the agreement for a partner/fragrance pair
func (r *GormPartnerPriceRepository) FindByPartnerAndFragrance(ctx context.Context, partnerID, fragranceID uuid.UUID) (*catalog.PartnerPrice, error) {
	var model models.PartnerPriceModel
	if err := r.db.WithContext(ctx).
		Where("partner_id = ? AND fragrance_id = ?", partnerID, fragranceID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPartner lists all agreements for a partner
func (r *GormPartnerPriceRepository) FindByPartner(ctx context.Context, partnerID uuid.UUID) ([]catalog.PartnerPrice, error) {
	var rows []models.PartnerPriceModel
	if err := r.db.WithContext(ctx).
		Where("partner_id = ?", partnerID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	prices := make([]catalog.PartnerPrice, len(rows))
	for i, row := range rows {
		prices[i] = *row.ToDomain()
	}
	return prices, nil
}

// Save creates or updates an agreement
func (r *GormPartnerPriceRepository) Save(ctx context.Context, price *catalog.PartnerPrice) error {
	model := models.PartnerPriceModelFromDomain(price)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes the agreement for a partner/fragrance pair
func (r *GormPartnerPriceRepository) Delete(ctx context.Context, partnerID, fragranceID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&models.PartnerPriceModel{}, "partner_id = ? AND fragrance_id = ?", partnerID, fragranceID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormPartnerPriceRepository implements PartnerPriceRepository
var _ catalog.PartnerPriceRepository = (*GormPartnerPriceRepository)(nil)
