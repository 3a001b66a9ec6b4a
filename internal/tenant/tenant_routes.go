package tenant

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"hubb-assist/internal/middleware"
)

// RegisterRoutes wires both surfaces of the registry: the public onboarding
// flow and the SUPER_ADMIN management endpoints.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	verifier middleware.TokenVerifier,
	loader middleware.PrincipalLoader,
	superAdmin []string,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	onboarding := r.Group("/onboarding")
	onboarding.Use(middleware.RateLimitByIP(1, 5))
	{
		onboarding.POST("/step1", handler.OnboardingStep1)
		onboarding.POST("/step2", handler.OnboardingStep2)
		onboarding.POST("/complete",
			middleware.Idempotency(rdb),
			handler.CompleteOnboarding,
		)
	}

	tenants := r.Group("/tenants")
	tenants.Use(middleware.RequireAuth(verifier, loader))
	tenants.Use(middleware.ContextLogger(logger))
	tenants.Use(middleware.RequireRoles(superAdmin...))
	{
		tenants.GET("",
			middleware.RateLimitByUser(3, 10),
			handler.List,
		)
		tenants.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			handler.GetByID,
		)
		tenants.GET("/:id/stats",
			middleware.RateLimitByUser(3, 10),
			handler.Stats,
		)
		tenants.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			handler.Update,
		)
		tenants.DELETE("/:id",
			middleware.RateLimitByUser(0.2, 1),
			handler.Deactivate,
		)
		tenants.POST("/:id/activate",
			middleware.RateLimitByUser(0.2, 1),
			handler.Activate,
		)
	}
}
