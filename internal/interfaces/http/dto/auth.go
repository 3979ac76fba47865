package dto

import (
	"time"

	"github.com/google/uuid"

	appidentity "github.com/scentlab/crm-backend/internal/application/identity"
)

// LoginRequest is the login payload
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest is the token refresh payload
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest optionally carries the refresh token to revoke alongside
// the access token from the Authorization header
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ChangePasswordRequest is the password change payload
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// TokenResponse carries an issued token pair
type TokenResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	TokenType    string    `json:"token_type"`
}

// UserInfoResponse is the authenticated user's profile
type UserInfoResponse struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	DisplayName string     `json:"display_name"`
	RoleID      uuid.UUID  `json:"role_id"`
	PartnerID   *uuid.UUID `json:"partner_id,omitempty"`
	Permissions []string   `json:"permissions"`
}

// LoginResponse is returned on a successful login
type LoginResponse struct {
	TokenResponse
	User UserInfoResponse `json:"user"`
}

// NewUserInfoResponse maps the application user info
func NewUserInfoResponse(info appidentity.UserInfo) UserInfoResponse {
	return UserInfoResponse{
		ID:          info.ID,
		Username:    info.Username,
		DisplayName: info.DisplayName,
		RoleID:      info.RoleID,
		PartnerID:   info.PartnerID,
		Permissions: info.Permissions,
	}
}

// NewLoginResponse maps a login result
func NewLoginResponse(result *appidentity.LoginResult) LoginResponse {
	return LoginResponse{
		TokenResponse: TokenResponse{
			AccessToken:  result.AccessToken,
			RefreshToken: result.RefreshToken,
			ExpiresAt:    result.ExpiresAt,
			TokenType:    result.TokenType,
		},
		User: NewUserInfoResponse(result.User),
	}
}

// NewRefreshResponse maps a refresh result
func NewRefreshResponse(result *appidentity.RefreshResult) TokenResponse {
	return TokenResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		ExpiresAt:    result.ExpiresAt,
		TokenType:    result.TokenType,
	}
}
