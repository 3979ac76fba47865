package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/scentlab/crm-backend/internal/infrastructure/config"
)

// TokenType distinguishes access and refresh tokens
type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
	ErrInvalidTokenType   = errors.New("invalid token type")
	ErrInvalidClaims      = errors.New("invalid token claims")
	ErrTokenNotYetValid   = errors.New("token not yet valid")
	ErrMaxRefreshExceeded = errors.New("maximum refresh count exceeded")
)

// Claims represents the JWT claims carried by CRM tokens.
// Permission keys are embedded so the HTTP layer can authorize
// without a database round trip on every request.
type Claims struct {
	jwt.RegisteredClaims
	UserID       string    `json:"user_id"`
	Username     string    `json:"username"`
	RoleID       string    `json:"role_id"`
	PartnerID    string    `json:"partner_id,omitempty"`
	Permissions  []string  `json:"permissions,omitempty"`
	TokenType    TokenType `json:"token_type"`
	RefreshCount int       `json:"refresh_count,omitempty"`
}

// TokenPair holds an access token and its companion refresh token
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	TokenType    string    `json:"token_type"`
}

// TokenSubject carries the identity data baked into a token pair
type TokenSubject struct {
	UserID      uuid.UUID
	Username    string
	RoleID      uuid.UUID
	PartnerID   *uuid.UUID
	Permissions []string
}

// JWTService issues and validates HS256-signed token pairs
type JWTService struct {
	secret          []byte
	refreshSecret   []byte
	accessDuration  time.Duration
	refreshDuration time.Duration
	issuer          string
	maxRefreshCount int
}

// NewJWTService creates a JWT service from configuration
func NewJWTService(cfg config.JWTConfig) *JWTService {
	refreshSecret := cfg.RefreshSecret
	if refreshSecret == "" {
		refreshSecret = cfg.Secret
	}
	return &JWTService{
		secret:          []byte(cfg.Secret),
		refreshSecret:   []byte(refreshSecret),
		accessDuration:  cfg.AccessTokenExpiration,
		refreshDuration: cfg.RefreshTokenExpiration,
		issuer:          cfg.Issuer,
		maxRefreshCount: cfg.MaxRefreshCount,
	}
}

// GenerateTokenPair creates a fresh access/refresh token pair for a user
func (s *JWTService) GenerateTokenPair(subject TokenSubject) (*TokenPair, error) {
	return s.generateTokenPair(subject, 0)
}

func (s *JWTService) generateTokenPair(subject TokenSubject, refreshCount int) (*TokenPair, error) {
	now := time.Now()
	accessExpiry := now.Add(s.accessDuration)

	partnerID := ""
	if subject.PartnerID != nil {
		partnerID = subject.PartnerID.String()
	}

	accessClaims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject.UserID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(accessExpiry),
			ID:        uuid.NewString(),
		},
		UserID:      subject.UserID.String(),
		Username:    subject.Username,
		RoleID:      subject.RoleID.String(),
		PartnerID:   partnerID,
		Permissions: subject.Permissions,
		TokenType:   AccessToken,
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshClaims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject.UserID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshDuration)),
			ID:        uuid.NewString(),
		},
		UserID:       subject.UserID.String(),
		Username:     subject.Username,
		RoleID:       subject.RoleID.String(),
		PartnerID:    partnerID,
		TokenType:    RefreshToken,
		RefreshCount: refreshCount,
	}

	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(s.refreshSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    accessExpiry,
		TokenType:    "Bearer",
	}, nil
}

// ValidateAccessToken parses and validates an access token
func (s *JWTService) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.validateToken(tokenString, s.secret, AccessToken)
}

// ValidateRefreshToken parses and validates a refresh token
func (s *JWTService) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return s.validateToken(tokenString, s.refreshSecret, RefreshToken)
}

func (s *JWTService) validateToken(tokenString string, secret []byte, expectedType TokenType) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return nil, ErrTokenNotYetValid
		default:
			return nil, ErrInvalidToken
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}

	if claims.TokenType != expectedType {
		return nil, ErrInvalidTokenType
	}

	if claims.UserID == "" {
		return nil, ErrInvalidClaims
	}
	if _, err := uuid.Parse(claims.UserID); err != nil {
		return nil, ErrInvalidClaims
	}

	return claims, nil
}

// RefreshTokenPair validates a refresh token and issues a new pair.
// The caller passes the fresh permission set so a rotated token picks up
// role changes made since the previous issue.
func (s *JWTService) RefreshTokenPair(refreshToken string, permissions []string) (*TokenPair, error) {
	claims, err := s.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	if s.maxRefreshCount > 0 && claims.RefreshCount >= s.maxRefreshCount {
		return nil, ErrMaxRefreshExceeded
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidClaims
	}
	roleID, err := uuid.Parse(claims.RoleID)
	if err != nil {
		return nil, ErrInvalidClaims
	}

	var partnerID *uuid.UUID
	if claims.PartnerID != "" {
		id, err := uuid.Parse(claims.PartnerID)
		if err != nil {
			return nil, ErrInvalidClaims
		}
		partnerID = &id
	}

	subject := TokenSubject{
		UserID:      userID,
		Username:    claims.Username,
		RoleID:      roleID,
		PartnerID:   partnerID,
		Permissions: permissions,
	}

	return s.generateTokenPair(subject, claims.RefreshCount+1)
}

// HasPermission reports whether the claims carry the given permission key
func (c *Claims) HasPermission(key string) bool {
	for _, p := range c.Permissions {
		if p == key {
			return true
		}
	}
	return false
}

// HasAnyPermission reports whether the claims carry at least one of the keys
func (c *Claims) HasAnyPermission(keys ...string) bool {
	for _, key := range keys {
		if c.HasPermission(key) {
			return true
		}
	}
	return false
}

// UserUUID returns the user id as a parsed UUID
func (c *Claims) UserUUID() (uuid.UUID, error) {
	return uuid.Parse(c.UserID)
}

// PartnerUUID returns the partner binding, or nil when the user is staff
func (c *Claims) PartnerUUID() (*uuid.UUID, error) {
	if c.PartnerID == "" {
		return nil, nil
	}
	id, err := uuid.Parse(c.PartnerID)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
