package dto

import (
	"time"

	"github.com/google/uuid"

	appidentity "github.com/scentlab/crm-backend/internal/application/identity"
	"github.com/scentlab/crm-backend/internal/domain/identity"
)

// CreateUserRequest is the user creation payload
type CreateUserRequest struct {
	Username    string     `json:"username" binding:"required"`
	Password    string     `json:"password" binding:"required"`
	DisplayName string     `json:"display_name"`
	RoleID      uuid.UUID  `json:"role_id" binding:"required"`
	PartnerID   *uuid.UUID `json:"partner_id"`
}

// ToInput converts the request into an application input
func (r CreateUserRequest) ToInput() appidentity.CreateUserInput {
	return appidentity.CreateUserInput{
		Username:    r.Username,
		Password:    r.Password,
		DisplayName: r.DisplayName,
		RoleID:      r.RoleID,
		PartnerID:   r.PartnerID,
	}
}

// UpdateUserRequest is the partial user update payload.
// Setting clear_partner unbinds the user from their partner.
type UpdateUserRequest struct {
	DisplayName  *string    `json:"display_name"`
	RoleID       *uuid.UUID `json:"role_id"`
	PartnerID    *uuid.UUID `json:"partner_id"`
	ClearPartner bool       `json:"clear_partner"`
	IsActive     *bool      `json:"is_active"`
}

// ToInput converts the request into an application input
func (r UpdateUserRequest) ToInput() appidentity.UpdateUserInput {
	return appidentity.UpdateUserInput{
		DisplayName:  r.DisplayName,
		RoleID:       r.RoleID,
		PartnerID:    r.PartnerID,
		ClearPartner: r.ClearPartner,
		IsActive:     r.IsActive,
	}
}

// ResetPasswordRequest is the admin password reset payload
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required"`
}

// UserResponse is the API representation of a user account
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	DisplayName string     `json:"display_name,omitempty"`
	RoleID      uuid.UUID  `json:"role_id"`
	PartnerID   *uuid.UUID `json:"partner_id,omitempty"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// NewUserResponse maps a domain user
func NewUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		RoleID:      u.RoleID,
		PartnerID:   u.PartnerID,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

// NewUserListResponse maps a slice of domain users
func NewUserListResponse(users []identity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}

// CreateRoleRequest is the role creation payload
type CreateRoleRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}

// ToInput converts the request into an application input
func (r CreateRoleRequest) ToInput() appidentity.CreateRoleInput {
	return appidentity.CreateRoleInput{
		Name:        r.Name,
		Description: r.Description,
		Permissions: r.Permissions,
	}
}

// UpdateRoleRequest is the partial role update payload
type UpdateRoleRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// ToInput converts the request into an application input
func (r UpdateRoleRequest) ToInput() appidentity.UpdateRoleInput {
	return appidentity.UpdateRoleInput{
		Name:        r.Name,
		Description: r.Description,
	}
}

// SetPermissionsRequest replaces a role's permission set
type SetPermissionsRequest struct {
	Permissions []string `json:"permissions" binding:"required"`
}

// PermissionRequest grants or revokes a single permission key
type PermissionRequest struct {
	Permission string `json:"permission" binding:"required"`
}

// RoleResponse is the API representation of a role
type RoleResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsSystem    bool      `json:"is_system"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewRoleResponse maps a domain role with its permission keys
func NewRoleResponse(role *identity.Role) RoleResponse {
	return RoleResponse{
		ID:          role.ID,
		Name:        role.Name,
		Description: role.Description,
		IsSystem:    role.IsSystem,
		Permissions: role.PermissionKeys(),
		CreatedAt:   role.CreatedAt,
	}
}

// NewRoleListResponse maps a slice of domain roles
func NewRoleListResponse(roles []identity.Role) []RoleResponse {
	out := make([]RoleResponse, 0, len(roles))
	for i := range roles {
		out = append(out, NewRoleResponse(&roles[i]))
	}
	return out
}
