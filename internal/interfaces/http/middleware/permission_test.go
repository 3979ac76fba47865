package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/scentlab/crm-backend/internal/domain/identity"
)

func setActor(permissions ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyActor, identity.Actor{
			UserID:      uuid.New(),
			Permissions: permissions,
		})
		c.Next()
	}
}

func TestRequirePermission(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		permissions []string
		wantStatus  int
	}{
		{"granted", []string{"users.manage"}, http.StatusOK},
		{"denied", []string{"clients.view_own"}, http.StatusForbidden},
		{"no permissions", nil, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(setActor(tt.permissions...))
			r.GET("/", RequirePermission("users.manage"), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRequirePermissionWithoutActor(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", RequirePermission("users.manage"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAnyPermission(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(setActor("orders.view_own"))
	r.GET("/", RequireAnyPermission("orders.view_all", "orders.view_own"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
