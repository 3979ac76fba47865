package persistence

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/scentlab/crm-backend/internal/domain/order"
	"github.com/scentlab/crm-backend/internal/domain/shared"
	"github.com/scentlab/crm-backend/internal/infrastructure/persistence/models"
)

const orderNumberPrefix = "ORD-"

// GormOrderRepository implements the order Repository using GORM.
// The aggregate is stored across orders and order_items; saves rewrite
// the item rows so the stored lines always match the aggregate.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID loads an order with its items by ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDScoped loads an order by ID within an ownership scope.
// A row outside the scope is reported as not found.
func (r *GormOrderRepository) FindByIDScoped(ctx context.Context, scope shared.OwnershipScope, id uuid.UUID) (*order.Order, error) {
	var model models.OrderModel
	query := orderScope(r.db.WithContext(ctx).Where("id = ?", id), scope)
	if err := query.Preload("Items").First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber loads an order with its items by order number
func (r *GormOrderRepository) FindByNumber(ctx context.Context, number string) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("number = ?", strings.TrimSpace(number)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all orders matching the filter
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	return r.FindAllScoped(ctx, shared.UnrestrictedScope(), filter)
}

// FindAllScoped finds orders visible under the scope, items included
func (r *GormOrderRepository) FindAllScoped(ctx context.Context, scope shared.OwnershipScope, filter shared.Filter) ([]order.Order, error) {
	var orderModels []models.OrderModel
	query := orderScope(r.db.WithContext(ctx).Model(&models.OrderModel{}), scope)
	query = r.applyFilters(query, filter)
	query = applyPagination(query, filter, map[string]bool{
		"number":     true,
		"status":     true,
		"created_at": true,
	}, "created_at DESC")

	if err := query.Preload("Items").Find(&orderModels).Error; err != nil {
		return nil, err
	}

	orders := make([]order.Order, len(orderModels))
	for i, model := range orderModels {
		orders[i] = *model.ToDomain()
	}
	return orders, nil
}

// Save persists the order and rewrites its item rows
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveOrder(tx, o, nil)
	})
}

// SaveWithLock persists the order only when the stored version matches
// the expected one, preventing lost updates.
func (r *GormOrderRepository) SaveWithLock(ctx context.Context, o *order.Order, expectedVersion int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveOrder(tx, o, &expectedVersion)
	})
}

func saveOrder(tx *gorm.DB, o *order.Order, expectedVersion *int) error {
	model := models.OrderModelFromDomain(o)
	items := model.Items
	model.Items = nil

	if expectedVersion != nil {
		result := tx.Model(&models.OrderModel{}).
			Where("id = ? AND version = ?", o.ID, *expectedVersion).
			Updates(model)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}
	} else {
		if err := tx.Save(model).Error; err != nil {
			return err
		}
	}

	if err := tx.Delete(&models.OrderItemModel{}, "order_id = ?", o.ID).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return tx.Create(&items).Error
}

// Delete deletes an order and its items
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.OrderItemModel{}, "order_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.OrderModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return r.CountScoped(ctx, shared.UnrestrictedScope(), filter)
}

// CountScoped counts orders visible under the scope
func (r *GormOrderRepository) CountScoped(ctx context.Context, scope shared.OwnershipScope, filter shared.Filter) (int64, error) {
	var count int64
	query := orderScope(r.db.WithContext(ctx).Model(&models.OrderModel{}), scope)
	query = r.applyFilters(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// NextNumber allocates the next sequential order number, e.g. ORD-00042
func (r *GormOrderRepository) NextNumber(ctx context.Context) (string, error) {
	var lastNumber string
	err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("number LIKE ?", orderNumberPrefix+"%").
		Order("number DESC").
		Limit(1).
		Pluck("number", &lastNumber).Error
	if err != nil {
		return "", err
	}

	next := 1
	if lastNumber != "" {
		seq, err := strconv.Atoi(strings.TrimPrefix(lastNumber, orderNumberPrefix))
		if err == nil {
			next = seq + 1
		}
	}
	return fmt.Sprintf("%s%05d", orderNumberPrefix, next), nil
}

func (r *GormOrderRepository) applyFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(number) LIKE ? OR LOWER(comment) LIKE ?", pattern, pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "client_id":
			query = query.Where("client_id = ?", value)
		case "partner_id":
			query = query.Where("partner_id = ?", value)
		}
	}
	return query
}

// Ensure GormOrderRepository implements the order Repository
var _ order.Repository = (*GormOrderRepository)(nil)
