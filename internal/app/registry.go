package app

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hubb-assist/internal/auth"
	"hubb-assist/internal/config"
	"hubb-assist/internal/messaging/kafka"
	"hubb-assist/internal/middleware"
	"hubb-assist/internal/tenant"
	"hubb-assist/internal/token"
	"hubb-assist/internal/user"
	"hubb-assist/internal/viacep"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	tenantRepo := tenant.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)

	// --- Infrastructure clients ---
	issuer := token.NewIssuer(cfg.JWT)
	cepClient := viacep.NewClient(cfg.ViaCEPURL, rdb, logger)

	// --- Services ---
	userService := user.NewService(gormDB, userRepo, tenantRepo, outboxRepo, logger)
	tenantService := tenant.NewService(
		gormDB, tenantRepo, userService, cepClient, outboxRepo,
		tenant.Defaults{
			MaxUsers:     cfg.Tenancy.DefaultMaxUsers,
			TrialDays:    cfg.Tenancy.TrialDays,
			MaxStorageGB: cfg.Tenancy.DefaultStorageGB,
		},
		logger,
	)
	authService := auth.NewService(issuer, userRepo, userService, tenantRepo, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, cfg, logger)
	tenantHandler := tenant.NewHandlerWithRedis(tenantService, rdb, logger)
	userHandler := user.NewHandler(userService, logger)

	// --- Route guards ---
	loader := principalLoader{users: userRepo}
	gate := tenantGate{tenants: tenantRepo}

	// --- Routes ---
	metrics := middleware.NewHTTPMetrics()
	router.Use(middleware.RequestID())
	router.Use(metrics.Handler())
	router.GET("/metrics", gin.WrapH(metrics.Exporter()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, issuer, loader, logger)
		tenant.RegisterRoutes(api, tenantHandler, issuer, loader,
			user.Names(user.SuperAdminOnly), rdb, logger)
		user.RegisterRoutes(api, userHandler, issuer, loader, gate, logger)
	}

	return nil
}
