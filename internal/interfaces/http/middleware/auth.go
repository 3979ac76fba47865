package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/scentlab/crm-backend/internal/domain/identity"
	"github.com/scentlab/crm-backend/internal/infrastructure/auth"
	"github.com/scentlab/crm-backend/internal/infrastructure/cache"
	"github.com/scentlab/crm-backend/internal/interfaces/http/dto"
)

// Context keys set by the auth middleware
const (
	ContextKeyClaims = "auth_claims"
	ContextKeyActor  = "auth_actor"
)

// AuthConfig configures the JWT authentication middleware
type AuthConfig struct {
	JWTService *auth.JWTService
	Blacklist  cache.TokenBlacklist
	// SkipPaths are exact request paths that bypass authentication
	SkipPaths []string
	Logger    *zap.Logger
}

// Auth returns a middleware that validates Bearer access tokens,
// rejects revoked tokens and stores the caller's claims and actor in
// the request context.
func Auth(cfg AuthConfig) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthorized(c, dto.CodeUnauthorized, "Missing or malformed Authorization header")
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(token)
		if err != nil {
			code := dto.CodeUnauthorized
			message := "Invalid access token"
			if err == auth.ErrExpiredToken {
				code = "TOKEN_EXPIRED"
				message = "Access token has expired"
			}
			abortUnauthorized(c, code, message)
			return
		}

		if cfg.Blacklist != nil {
			revoked, err := cfg.Blacklist.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				// Blacklist outage must not lock everyone out
				logger.Warn("Token blacklist lookup failed", zap.Error(err))
			}
			if revoked {
				abortUnauthorized(c, "TOKEN_INVALID", "Token has been revoked")
				return
			}
		}

		actor, err := actorFromClaims(claims)
		if err != nil {
			abortUnauthorized(c, "TOKEN_INVALID", "Invalid identity in token")
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Set(ContextKeyActor, actor)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func actorFromClaims(claims *auth.Claims) (identity.Actor, error) {
	userID, err := claims.UserUUID()
	if err != nil {
		return identity.Actor{}, err
	}
	partnerID, err := claims.PartnerUUID()
	if err != nil {
		return identity.Actor{}, err
	}
	return identity.Actor{
		UserID:      userID,
		PartnerID:   partnerID,
		Permissions: claims.Permissions,
	}, nil
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, message))
}

// GetClaims returns the validated claims stored by the auth middleware
func GetClaims(c *gin.Context) (*auth.Claims, bool) {
	value, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok
}

// GetActor returns the authenticated actor stored by the auth middleware
func GetActor(c *gin.Context) (identity.Actor, bool) {
	value, exists := c.Get(ContextKeyActor)
	if !exists {
		return identity.Actor{}, false
	}
	actor, ok := value.(identity.Actor)
	return actor, ok
}
