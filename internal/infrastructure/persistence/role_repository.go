package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/scentlab/crm-backend/internal/domain/identity"
	"github.com/scentlab/crm-backend/internal/domain/shared"
	"github.com/scentlab/crm-backend/internal/infrastructure/persistence/models"
)

// GormRoleRepository implements RoleRepository using GORM.
// Saving a role rewrites its role_permissions rows in one transaction.
type GormRoleRepository struct {
	db *gorm.DB
}

// NewGormRoleRepository creates a new GormRoleRepository
func NewGormRoleRepository(db *gorm.DB) *GormRoleRepository {
	return &GormRoleRepository{db: db}
}

// FindByID finds a role with its permissions by ID
func (r *GormRoleRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Role, error) {
	var model models.RoleModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	role := model.ToDomain()
	if err := r.loadPermissions(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// FindByName finds a role with its permissions by name
func (r *GormRoleRepository) FindByName(ctx context.Context, name string) (*identity.Role, error) {
	var model models.RoleModel
	if err := r.db.WithContext(ctx).
		Where("name = ?", strings.TrimSpace(name)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	role := model.ToDomain()
	if err := r.loadPermissions(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// FindAll finds all roles matching the filter, permissions included
func (r *GormRoleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Role, error) {
	var roleModels []models.RoleModel
	query := r.db.WithContext(ctx).Model(&models.RoleModel{})
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}
	query = applyPagination(query, filter, map[string]bool{
		"name":       true,
		"created_at": true,
	}, "name ASC")

	if err := query.Find(&roleModels).Error; err != nil {
		return nil, err
	}

	roles := make([]identity.Role, len(roleModels))
	for i, model := range roleModels {
		role := model.ToDomain()
		if err := r.loadPermissions(ctx, role); err != nil {
			return nil, err
		}
		roles[i] = *role
	}
	return roles, nil
}

// FindPermissionKeys returns only the granted permission keys for a role
func (r *GormRoleRepository) FindPermissionKeys(ctx context.Context, roleID uuid.UUID) ([]string, error) {
	var keys []string
	if err := r.db.WithContext(ctx).
		Model(&models.RolePermissionModel{}).
		Where("role_id = ?", roleID).
		Order("permission_key ASC").
		Pluck("permission_key", &keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}

// Save persists the role and replaces its permission rows
func (r *GormRoleRepository) Save(ctx context.Context, role *identity.Role) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.RoleModelFromDomain(role)
		if err := tx.Save(model).Error; err != nil {
			return err
		}

		if err := tx.Delete(&models.RolePermissionModel{}, "role_id = ?", role.ID).Error; err != nil {
			return err
		}

		if len(role.Permissions) == 0 {
			return nil
		}

		rows := make([]models.RolePermissionModel, len(role.Permissions))
		for i, p := range role.Permissions {
			rows[i] = models.RolePermissionModel{
				RoleID:        role.ID,
				PermissionKey: p.Key,
				Label:         p.Label,
				CreatedAt:     time.Now(),
			}
		}
		return tx.Create(&rows).Error
	})
}

// Delete removes a role and its permission rows
func (r *GormRoleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.RolePermissionModel{}, "role_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.RoleModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts roles matching the filter
func (r *GormRoleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.RoleModel{})
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormRoleRepository) loadPermissions(ctx context.Context, role *identity.Role) error {
	var rows []models.RolePermissionModel
	if err := r.db.WithContext(ctx).
		Where("role_id = ?", role.ID).
		Order("permission_key ASC").
		Find(&rows).Error; err != nil {
		return err
	}

	perms := make([]identity.Permission, 0, len(rows))
	for _, row := range rows {
		perm, err := row.ToDomain()
		if err != nil {
			// Skip malformed rows rather than failing the whole load
			continue
		}
		perms = append(perms, perm)
	}
	role.Permissions = perms
	return nil
}

// Ensure GormRoleRepository implements RoleRepository
var _ identity.RoleRepository = (*GormRoleRepository)(nil)
