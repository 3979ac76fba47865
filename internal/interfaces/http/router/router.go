package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/scentlab/crm-backend/internal/infrastructure/auth"
	"github.com/scentlab/crm-backend/internal/infrastructure/cache"
	"github.com/scentlab/crm-backend/internal/infrastructure/config"
	"github.com/scentlab/crm-backend/internal/infrastructure/logger"
	"github.com/scentlab/crm-backend/internal/interfaces/http/dto"
	"github.com/scentlab/crm-backend/internal/interfaces/http/handler"
	"github.com/scentlab/crm-backend/internal/interfaces/http/middleware"
)

// Handlers groups all HTTP handlers wired into the router
type Handlers struct {
	Health      *handler.HealthHandler
	Auth        *handler.AuthHandler
	Client      *handler.ClientHandler
	Partner     *handler.PartnerHandler
	Fragrance   *handler.FragranceHandler
	Price       *handler.PriceHandler
	CatalogItem *handler.CatalogItemHandler
	Order       *handler.OrderHandler
	Release     *handler.ReleaseHandler
	User        *handler.UserHandler
	Role        *handler.RoleHandler
}

// Deps carries the infrastructure the router needs besides handlers
type Deps struct {
	Config     *config.Config
	JWTService *auth.JWTService
	Blacklist  cache.TokenBlacklist
	Logger     *zap.Logger
}

// New builds the gin engine with all middleware and routes
func New(h Handlers, deps Deps) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	dto.RegisterValidators()

	r := gin.New()
	if len(deps.Config.HTTP.TrustedProxies) > 0 {
		_ = r.SetTrustedProxies(deps.Config.HTTP.TrustedProxies)
	}

	r.Use(middleware.RequestID())
	r.Use(logger.GinMiddleware(deps.Logger))
	r.Use(logger.Recovery(deps.Logger))
	r.Use(middleware.SecureHeaders())
	r.Use(middleware.CORS(deps.Config.HTTP))
	r.Use(middleware.BodyLimit(deps.Config.HTTP.MaxBodySize))

	r.GET("/health", h.Health.Health)
	r.GET("/ready", h.Health.Ready)

	v1 := r.Group("/api/v1")
	if deps.Config.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(
			deps.Config.HTTP.RateLimitRequests,
			deps.Config.HTTP.RateLimitWindow,
		)
		v1.Use(middleware.RateLimit(limiter))
	}

	// Credential endpoints stay outside the auth middleware and get a
	// tighter rate limit against brute force.
	public := v1.Group("/auth")
	if deps.Config.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(
			deps.Config.HTTP.AuthRateLimitRequests,
			deps.Config.HTTP.AuthRateLimitWindow,
		)
		public.Use(middleware.RateLimit(authLimiter))
	}
	public.POST("/login", h.Auth.Login)
	public.POST("/refresh", h.Auth.Refresh)

	protected := v1.Group("")
	protected.Use(middleware.Auth(middleware.AuthConfig{
		JWTService: deps.JWTService,
		Blacklist:  deps.Blacklist,
		Logger:     deps.Logger,
	}))

	authRoutes := protected.Group("/auth")
	{
		authRoutes.POST("/logout", h.Auth.Logout)
		authRoutes.GET("/me", h.Auth.Me)
		authRoutes.POST("/change-password", h.Auth.ChangePassword)
	}
	protected.GET("/me", h.Auth.Me)

	clients := protected.Group("/clients")
	{
		clients.GET("", h.Client.List)
		clients.POST("", h.Client.Create)
		clients.GET("/:id", h.Client.Get)
		clients.PUT("/:id", h.Client.Update)
		clients.PATCH("/:id", h.Client.Update)
		clients.DELETE("/:id", h.Client.Delete)
	}

	partners := protected.Group("/partners")
	{
		partners.GET("", h.Partner.List)
		partners.POST("", h.Partner.Create)
		partners.GET("/:id", h.Partner.Get)
		partners.PATCH("/:id", h.Partner.Update)
		partners.DELETE("/:id", h.Partner.Delete)
		partners.PUT("/:id/markup", h.Partner.SetMarkupPolicy)
		partners.GET("/:id/client-markups", h.Partner.ListClientMarkups)
		partners.PUT("/:id/client-markups/:clientId", h.Partner.SetClientMarkup)
		partners.DELETE("/:id/client-markups/:clientId", h.Partner.RemoveClientMarkup)
		partners.GET("/:id/prices", h.Price.ListPartnerPrices)
		partners.PUT("/:id/prices/:fragranceId", h.Price.SetPartnerPrice)
		partners.DELETE("/:id/prices/:fragranceId", h.Price.RemovePartnerPrice)
	}

	fragrances := protected.Group("/fragrances")
	{
		fragrances.GET("", h.Fragrance.List)
		fragrances.POST("", h.Fragrance.Create)
		fragrances.GET("/:id", h.Fragrance.Get)
		fragrances.PATCH("/:id", h.Fragrance.Update)
		fragrances.DELETE("/:id", h.Fragrance.Delete)
		fragrances.POST("/:id/archive", h.Fragrance.Archive)
		fragrances.POST("/:id/restore", h.Fragrance.Restore)
	}

	priceProducts := protected.Group("/price-products")
	{
		priceProducts.GET("", h.Price.ListProducts)
		priceProducts.GET("/:id", h.Price.GetProduct)
		priceProducts.POST("/import", h.Price.Import)
		priceProducts.PUT("/:id/stock", h.Price.SetStock)
		priceProducts.DELETE("/:id", h.Price.DeactivateProduct)
	}

	protected.GET("/price-imports", h.Price.ListImports)
	protected.GET("/price-imports/:id", h.Price.GetImport)

	protected.GET("/price/search", h.Price.Search)

	catalogItems := protected.Group("/catalog-items")
	{
		catalogItems.GET("", h.CatalogItem.List)
		catalogItems.POST("", h.CatalogItem.Create)
		catalogItems.GET("/:id", h.CatalogItem.Get)
		catalogItems.PATCH("/:id", h.CatalogItem.Update)
		catalogItems.DELETE("/:id", h.CatalogItem.Delete)
	}

	orders := protected.Group("/orders")
	{
		orders.GET("", h.Order.List)
		orders.POST("", h.Order.Create)
		orders.GET("/:id", h.Order.Get)
		orders.PATCH("/:id", h.Order.Update)
		orders.DELETE("/:id", h.Order.Delete)
		orders.POST("/:id/status", h.Order.ChangeStatus)
		orders.POST("/:id/items", h.Order.AddItem)
		orders.PATCH("/:id/items/:itemId", h.Order.UpdateItem)
		orders.DELETE("/:id/items/:itemId", h.Order.RemoveItem)
	}

	releases := protected.Group("/releases")
	{
		releases.GET("", h.Release.List)
		releases.POST("", h.Release.Create)
		releases.GET("/:id", h.Release.Get)
		releases.PATCH("/:id", h.Release.Update)
		releases.DELETE("/:id", h.Release.Delete)
		releases.POST("/:id/publish", h.Release.Publish)
		releases.POST("/:id/unpublish", h.Release.Unpublish)
		releases.POST("/:id/publish-partners", h.Release.PublishToPartners)
	}

	users := protected.Group("/users", middleware.RequirePermission("users.manage"))
	{
		users.GET("", h.User.List)
		users.POST("", h.User.Create)
		users.GET("/:id", h.User.Get)
		users.PATCH("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Delete)
		users.POST("/:id/reset-password", h.User.ResetPassword)
	}

	roles := protected.Group("/roles", middleware.RequirePermission("roles.manage"))
	{
		roles.GET("", h.Role.List)
		roles.POST("", h.Role.Create)
		roles.GET("/:id", h.Role.Get)
		roles.PATCH("/:id", h.Role.Update)
		roles.DELETE("/:id", h.Role.Delete)
		roles.PUT("/:id/permissions", h.Role.SetPermissions)
		roles.POST("/:id/permissions", h.Role.Grant)
		roles.DELETE("/:id/permissions/:key", h.Role.Revoke)
	}

	return r
}
