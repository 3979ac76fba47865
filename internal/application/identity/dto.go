package identity

import (
	"time"

	"github.com/google/uuid"
)

// LoginInput contains the input for user login
type LoginInput struct {
	Username string
	Password string
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	TokenType    string
	User         UserInfo
}

// UserInfo contains basic user information returned after login
type UserInfo struct {
	ID          uuid.UUID
	Username    string
	DisplayName string
	RoleID      uuid.UUID
	PartnerID   *uuid.UUID
	Permissions []string
}

// RefreshInput contains the input for token refresh
type RefreshInput struct {
	RefreshToken string
}

// RefreshResult contains the result of a token refresh
type RefreshResult struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	TokenType    string
}

// LogoutInput contains the tokens to revoke on logout
type LogoutInput struct {
	AccessTokenID string
	AccessExpiry  time.Time
	RefreshToken  string
}

// ChangePasswordInput contains the input for password change
type ChangePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}

// CreateUserInput contains the input for user creation
type CreateUserInput struct {
	Username    string
	Password    string
	DisplayName string
	RoleID      uuid.UUID
	PartnerID   *uuid.UUID
}

// UpdateUserInput contains the updatable user fields.
// Nil pointers leave the corresponding field unchanged.
type UpdateUserInput struct {
	DisplayName  *string
	RoleID       *uuid.UUID
	PartnerID    *uuid.UUID
	ClearPartner bool
	IsActive     *bool
}

// ResetPasswordInput contains the input for an admin password reset
type ResetPasswordInput struct {
	UserID      uuid.UUID
	NewPassword string
}

// CreateRoleInput contains the input for role creation
type CreateRoleInput struct {
	Name        string
	Description string
	Permissions []string
}

// UpdateRoleInput contains the updatable role fields
type UpdateRoleInput struct {
	Name        *string
	Description *string
}
