package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	appcatalog "github.com/scentlab/crm-backend/internal/application/catalog"
	appcrm "github.com/scentlab/crm-backend/internal/application/crm"
	appidentity "github.com/scentlab/crm-backend/internal/application/identity"
	apporder "github.com/scentlab/crm-backend/internal/application/order"
	"github.com/scentlab/crm-backend/internal/infrastructure/auth"
	"github.com/scentlab/crm-backend/internal/infrastructure/cache"
	"github.com/scentlab/crm-backend/internal/infrastructure/config"
	"github.com/scentlab/crm-backend/internal/infrastructure/logger"
	"github.com/scentlab/crm-backend/internal/infrastructure/persistence"
	"github.com/scentlab/crm-backend/internal/interfaces/http/handler"
	"github.com/scentlab/crm-backend/internal/interfaces/http/router"
)

const version = "1.0.0"

const permissionCacheTTL = 5 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting CRM backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	cacheFactory := cache.NewFactory(cfg.Redis, log)
	if err := cacheFactory.Connect(); err != nil {
		log.Warn("Redis unavailable, falling back to in-memory caches", zap.Error(err))
	} else {
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	}
	defer func() {
		if err := cacheFactory.Close(); err != nil {
			log.Error("Error closing Redis client", zap.Error(err))
		}
	}()

	// Repositories
	clientRepo := persistence.NewGormClientRepository(db.DB)
	partnerRepo := persistence.NewGormPartnerRepository(db.DB)
	markupRepo := persistence.NewGormPartnerClientMarkupRepository(db.DB)
	fragranceRepo := persistence.NewGormFragranceRepository(db.DB)
	priceProductRepo := persistence.NewGormPriceProductRepository(db.DB)
	priceImportRepo := persistence.NewGormPriceImportRepository(db.DB)
	catalogItemRepo := persistence.NewGormCatalogItemRepository(db.DB)
	partnerPriceRepo := persistence.NewGormPartnerPriceRepository(db.DB)
	releaseNoteRepo := persistence.NewGormReleaseNoteRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	roleRepo := persistence.NewGormRoleRepository(db.DB)

	// Infrastructure services
	jwtService := auth.NewJWTService(cfg.JWT)
	blacklist := cacheFactory.TokenBlacklist()
	permCache := cacheFactory.PermissionCache(permissionCacheTTL)

	// Application services
	permissionResolver := appidentity.NewPermissionResolver(roleRepo, permCache, log)
	priceResolver := appcatalog.NewPriceResolver(partnerPriceRepo, partnerRepo, markupRepo)

	authService := appidentity.NewAuthService(userRepo, permissionResolver, jwtService, blacklist, log)
	userService := appidentity.NewUserService(userRepo, roleRepo, log)
	roleService := appidentity.NewRoleService(roleRepo, permissionResolver, log)

	clientService := appcrm.NewClientService(clientRepo, log)
	partnerService := appcrm.NewPartnerService(partnerRepo, markupRepo, log)

	fragranceService := appcatalog.NewFragranceService(fragranceRepo, log)
	priceProductService := appcatalog.NewPriceProductService(priceProductRepo, priceImportRepo, log)
	priceService := appcatalog.NewPriceService(fragranceRepo, priceProductRepo, partnerPriceRepo, priceResolver, log)
	catalogItemService := appcatalog.NewCatalogItemService(catalogItemRepo, priceProductRepo, partnerRepo, log)
	releaseService := appcatalog.NewReleaseService(releaseNoteRepo, log)

	orderService := apporder.NewOrderService(
		orderRepo, clientRepo, fragranceRepo, priceProductRepo, catalogItemRepo, priceResolver, log,
	)

	// HTTP layer
	handlers := router.Handlers{
		Health:      handler.NewHealthHandler(version, db.Ping),
		Auth:        handler.NewAuthHandler(authService, log),
		Client:      handler.NewClientHandler(clientService, log),
		Partner:     handler.NewPartnerHandler(partnerService, log),
		Fragrance:   handler.NewFragranceHandler(fragranceService, log),
		Price:       handler.NewPriceHandler(priceProductService, priceService, log),
		CatalogItem: handler.NewCatalogItemHandler(catalogItemService, log),
		Order:       handler.NewOrderHandler(orderService, log),
		Release:     handler.NewReleaseHandler(releaseService, log),
		User:        handler.NewUserHandler(userService, log),
		Role:        handler.NewRoleHandler(roleService, log),
	}

	engine := router.New(handlers, router.Deps{
		Config:     cfg,
		JWTService: jwtService,
		Blacklist:  blacklist,
		Logger:     log,
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}
