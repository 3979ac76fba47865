package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/scentlab/crm-backend/internal/domain/identity"
	"github.com/scentlab/crm-backend/internal/infrastructure/cache"
)

// PermissionResolver resolves the permission keys granted to a role,
// caching results per role id. A cache failure never fails the request;
// the resolver falls through to the repository.
type PermissionResolver struct {
	roleRepo identity.RoleRepository
	cache    cache.PermissionCache
	logger   *zap.Logger
}

// NewPermissionResolver creates a permission resolver
func NewPermissionResolver(roleRepo identity.RoleRepository, permCache cache.PermissionCache, logger *zap.Logger) *PermissionResolver {
	return &PermissionResolver{
		roleRepo: roleRepo,
		cache:    permCache,
		logger:   logger,
	}
}

// Resolve returns the permission keys for a role
func (r *PermissionResolver) Resolve(ctx context.Context, roleID uuid.UUID) ([]string, error) {
	keys, hit, err := r.cache.Get(ctx, roleID)
	if err != nil {
		r.logger.Warn("Permission cache read failed",
			zap.String("role_id", roleID.String()),
			zap.Error(err))
	}
	if hit {
		return keys, nil
	}

	keys, err = r.roleRepo.FindPermissionKeys(ctx, roleID)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, roleID, keys); err != nil {
		r.logger.Warn("Permission cache write failed",
			zap.String("role_id", roleID.String()),
			zap.Error(err))
	}

	return keys, nil
}

// ResolveActor builds the acting identity for a user
func (r *PermissionResolver) ResolveActor(ctx context.Context, user *identity.User) (identity.Actor, error) {
	keys, err := r.Resolve(ctx, user.RoleID)
	if err != nil {
		return identity.Actor{}, err
	}
	return identity.Actor{
		UserID:      user.ID,
		PartnerID:   user.PartnerID,
		Permissions: keys,
	}, nil
}

// Invalidate drops the cached keys for a role.
// Called whenever a role's permission set changes.
func (r *PermissionResolver) Invalidate(ctx context.Context, roleID uuid.UUID) {
	if err := r.cache.Invalidate(ctx, roleID); err != nil {
		r.logger.Warn("Permission cache invalidation failed",
			zap.String("role_id", roleID.String()),
			zap.Error(err))
	}
}
