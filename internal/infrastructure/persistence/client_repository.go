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

// GormClientRepository implements ClientRepository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// FindByID finds a client by its ID without visibility checks
func (r *GormClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Client, error) {
	var model models.ClientModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDScoped finds a client by ID within an ownership scope.
// A row outside the scope is reported as not found.
func (r *GormClientRepository) FindByIDScoped(ctx context.Context, scope shared.OwnershipScope, id uuid.UUID) (*crm.Client, error) {
	var model models.ClientModel
	query := clientScope(r.db.WithContext(ctx).Where("id = ?", id), scope)
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all clients matching the filter
func (r *GormClientRepository) FindAll(ctx context.Context, filter shared.Filter) ([]crm.Client, error) {
	return r.FindAllScoped(ctx, shared.UnrestrictedScope(), filter)
}

// FindAllScoped finds clients visible under the scope, filtered and paginated
func (r *GormClientRepository) FindAllScoped(ctx context.Context, scope shared.OwnershipScope, filter shared.Filter) ([]crm.Client, error) {
	var clientModels []models.ClientModel
	query := clientScope(r.db.WithContext(ctx).Model(&models.ClientModel{}), scope)
	query = r.applySearch(query, filter)
	query = applyPagination(query, filter, map[string]bool{
		"name":       true,
		"city":       true,
		"created_at": true,
	}, "created_at DESC")

	if err := query.Find(&clientModels).Error; err != nil {
		return nil, err
	}

	clients := make([]crm.Client, len(clientModels))
	for i, model := range clientModels {
		clients[i] = *model.ToDomain()
	}
	return clients, nil
}

// Save creates or updates a client
func (r *GormClientRepository) Save(ctx context.Context, client *crm.Client) error {
	model := models.ClientModelFromDomain(client)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock updates a client only when the stored version matches
// the expected one, preventing lost updates.
func (r *GormClientRepository) SaveWithLock(ctx context.Context, client *crm.Client, expectedVersion int) error {
	model := models.ClientModelFromDomain(client)
	result := r.db.WithContext(ctx).
		Model(&models.ClientModel{}).
		Where("id = ? AND version = ?", client.ID, expectedVersion).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete deletes a client
func (r *GormClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ClientModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts clients matching the filter
func (r *GormClientRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return r.CountScoped(ctx, shared.UnrestrictedScope(), filter)
}

// CountScoped counts clients visible under the scope
func (r *GormClientRepository) CountScoped(ctx context.Context, scope shared.OwnershipScope, filter shared.Filter) (int64, error) {
	var count int64
	query := clientScope(r.db.WithContext(ctx).Model(&models.ClientModel{}), scope)
	query = r.applySearch(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormClientRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(phone) LIKE ? OR LOWER(email) LIKE ? OR LOWER(telegram) LIKE ?",
			pattern, pattern, pattern, pattern, pattern,
		)
	}
	for key, value := range filter.Filters {
		switch key {
		case "city":
			query = query.Where("city = ?", value)
		case "source":
			query = query.Where("source = ?", value)
		case "owner_user_id":
			query = query.Where("owner_user_id = ?", value)
		case "owner_partner_id":
			query = query.Where("owner_partner_id = ?", value)
		}
	}
	return query
}

// Ensure GormClientRepository implements ClientRepository
var _ crm.ClientRepository = (*GormClientRepository)(nil)
