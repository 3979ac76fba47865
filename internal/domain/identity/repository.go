package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/scentlab/crm-backend/internal/domain/shared"
)

// UserRepository defines persistence operations for users
type UserRepository interface {
	shared.Repository[User]
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByPartner(ctx context.Context, partnerID uuid.UUID) ([]User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// RoleRepository defines persistence operations for roles and their permissions
type RoleRepository interface {
	shared.Repository[Role]
	FindByName(ctx context.Context, name string) (*Role, error)
	FindPermissionKeys(ctx context.Context, roleID uuid.UUID) ([]string, error)
}
