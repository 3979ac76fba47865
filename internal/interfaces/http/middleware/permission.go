package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scentlab/crm-backend/internal/interfaces/http/dto"
)

// RequirePermission aborts with 403 unless the actor holds the key.
// Must run after the auth middleware.
func RequirePermission(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			abortUnauthorized(c, dto.CodeUnauthorized, "Authentication required")
			return
		}
		if !actor.Has(key) {
			abortForbidden(c)
			return
		}
		c.Next()
	}
}

// RequireAnyPermission aborts with 403 unless the actor holds at least
// one of the keys
func RequireAnyPermission(keys ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			abortUnauthorized(c, dto.CodeUnauthorized, "Authentication required")
			return
		}
		if !actor.HasAny(keys...) {
			abortForbidden(c)
			return
		}
		c.Next()
	}
}

func abortForbidden(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden,
		dto.NewErrorResponse(dto.CodeForbidden, "Insufficient permissions"))
}
