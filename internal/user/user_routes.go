package user

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hubb-assist/internal/middleware"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	verifier middleware.TokenVerifier,
	loader middleware.PrincipalLoader,
	gate middleware.TenantGate,
	logger *zap.Logger,
) {
	users := r.Group("/users")
	users.Use(middleware.RequireAuth(verifier, loader))
	users.Use(middleware.RequireTenant(gate))
	users.Use(middleware.ContextLogger(logger))
	{
		users.GET("/me",
			middleware.RateLimitByUser(5, 20),
			handler.Me,
		)

		admin := Names(AdminTier)

		users.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RequireRoles(admin...),
			handler.List,
		)

		users.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RequireRoles(admin...),
			handler.GetByID,
		)

		users.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RequireRoles(admin...),
			handler.Create,
		)

		users.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RequireRoles(admin...),
			handler.Update,
		)

		users.PUT("/:id/password",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RequireRoles(admin...),
			handler.UpdatePassword,
		)

		users.DELETE("/:id",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RequireRoles(admin...),
			handler.Deactivate,
		)

		users.POST("/:id/activate",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RequireRoles(admin...),
			handler.Activate,
		)
	}
}
