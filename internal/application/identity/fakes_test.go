package identity

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/scentlab/crm-backend/internal/domain/identity"
	"github.com/scentlab/crm-backend/internal/domain/shared"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*identity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*identity.User)}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.User, error) {
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeUserRepo) FindAll(_ context.Context, _ shared.Filter) ([]identity.User, error) {
	out := make([]identity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) Save(_ context.Context, user *identity.User) error {
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*identity.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	for _, u := range r.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeUserRepo) FindByPartner(_ context.Context, partnerID uuid.UUID) ([]identity.User, error) {
	out := make([]identity.User, 0)
	for _, u := range r.users {
		if u.PartnerID != nil && *u.PartnerID == partnerID {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.FindByUsername(ctx, username)
	return err == nil, nil
}

type fakeRoleRepo struct {
	roles       map[uuid.UUID]*identity.Role
	keyRequests int
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{roles: make(map[uuid.UUID]*identity.Role)}
}

func (r *fakeRoleRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.Role, error) {
	if role, ok := r.roles[id]; ok {
		copied := *role
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeRoleRepo) FindAll(_ context.Context, _ shared.Filter) ([]identity.Role, error) {
	out := make([]identity.Role, 0, len(r.roles))
	for _, role := range r.roles {
		out = append(out, *role)
	}
	return out, nil
}

func (r *fakeRoleRepo) Save(_ context.Context, role *identity.Role) error {
	copied := *role
	r.roles[role.ID] = &copied
	return nil
}

func (r *fakeRoleRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.roles, id)
	return nil
}

func (r *fakeRoleRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.roles)), nil
}

func (r *fakeRoleRepo) FindByName(_ context.Context, name string) (*identity.Role, error) {
	for _, role := range r.roles {
		if role.Name == name {
			copied := *role
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeRoleRepo) FindPermissionKeys(_ context.Context, roleID uuid.UUID) ([]string, error) {
	r.keyRequests++
	role, ok := r.roles[roleID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return role.PermissionKeys(), nil
}
