package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/scentlab/crm-backend/internal/domain/identity"
	"github.com/scentlab/crm-backend/internal/domain/shared"
)

// RoleService handles role administration.
// Every permission change invalidates the role's cached permission set
// so running sessions pick it up on their next token rotation.
type RoleService struct {
	roleRepo identity.RoleRepository
	resolver *PermissionResolver
	logger   *zap.Logger
}

// NewRoleService creates a new role service
func NewRoleService(roleRepo identity.RoleRepository, resolver *PermissionResolver, logger *zap.Logger) *RoleService {
	return &RoleService{
		roleRepo: roleRepo,
		resolver: resolver,
		logger:   logger,
	}
}

// Create creates a role with an optional initial permission set
func (s *RoleService) Create(ctx context.Context, input CreateRoleInput) (*identity.Role, error) {
	if _, err := s.roleRepo.FindByName(ctx, input.Name); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Role name is already taken")
	}

	role, err := identity.NewRole(input.Name, input.Description)
	if err != nil {
		return nil, err
	}

	if len(input.Permissions) > 0 {
		perms, err := parsePermissions(input.Permissions)
		if err != nil {
			return nil, err
		}
		role.SetPermissions(perms)
	}

	if err := s.roleRepo.Save(ctx, role); err != nil {
		return nil, err
	}

	s.logger.Info("Role created",
		zap.String("role_id", role.ID.String()),
		zap.String("name", role.Name))

	return role, nil
}

// Get returns a role by id including its permissions
func (s *RoleService) Get(ctx context.Context, id uuid.UUID) (*identity.Role, error) {
	return s.roleRepo.FindByID(ctx, id)
}

// List returns roles matching the filter together with the total count
func (s *RoleService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[identity.Role], error) {
	roles, err := s.roleRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[identity.Role]{}, err
	}
	total, err := s.roleRepo.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[identity.Role]{}, err
	}
	return shared.NewPaginated(roles, total, filter.Page, filter.PageSize), nil
}

// Update renames or re-describes a role
func (s *RoleService) Update(ctx context.Context, id uuid.UUID, input UpdateRoleInput) (*identity.Role, error) {
	role, err := s.roleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if err := role.Rename(*input.Name); err != nil {
			return nil, err
		}
	}
	if input.Description != nil {
		role.SetDescription(*input.Description)
	}

	if err := s.roleRepo.Save(ctx, role); err != nil {
		return nil, err
	}

	return role, nil
}

// SetPermissions replaces a role's permission set
func (s *RoleService) SetPermissions(ctx context.Context, id uuid.UUID, keys []string) (*identity.Role, error) {
	role, err := s.roleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	perms, err := parsePermissions(keys)
	if err != nil {
		return nil, err
	}
	role.SetPermissions(perms)

	if err := s.roleRepo.Save(ctx, role); err != nil {
		return nil, err
	}

	s.resolver.Invalidate(ctx, role.ID)
	s.logger.Info("Role permissions replaced",
		zap.String("role_id", role.ID.String()),
		zap.Int("count", len(perms)))

	return role, nil
}

// Grant adds a single permission to a role
func (s *RoleService) Grant(ctx context.Context, id uuid.UUID, key string) (*identity.Role, error) {
	role, err := s.roleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	perm, err := identity.ParsePermission(key, "")
	if err != nil {
		return nil, err
	}
	if err := role.Grant(perm); err != nil {
		return nil, err
	}

	if err := s.roleRepo.Save(ctx, role); err != nil {
		return nil, err
	}

	s.resolver.Invalidate(ctx, role.ID)
	return role, nil
}

// Revoke removes a single permission from a role
func (s *RoleService) Revoke(ctx context.Context, id uuid.UUID, key string) (*identity.Role, error) {
	role, err := s.roleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := role.Revoke(key); err != nil {
		return nil, err
	}

	if err := s.roleRepo.Save(ctx, role); err != nil {
		return nil, err
	}

	s.resolver.Invalidate(ctx, role.ID)
	return role, nil
}

// Delete removes a non-system role
func (s *RoleService) Delete(ctx context.Context, id uuid.UUID) error {
	role, err := s.roleRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !role.CanDelete() {
		return shared.NewDomainError("INVALID_STATE", "System roles cannot be deleted")
	}

	if err := s.roleRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.resolver.Invalidate(ctx, id)
	s.logger.Info("Role deleted", zap.String("role_id", id.String()))
	return nil
}

func parsePermissions(keys []string) ([]identity.Permission, error) {
	perms := make([]identity.Permission, 0, len(keys))
	for _, key := range keys {
		perm, err := identity.ParsePermission(key, "")
		if err != nil {
			return nil, err
		}
		perms = append(perms, perm)
	}
	return perms, nil
}
