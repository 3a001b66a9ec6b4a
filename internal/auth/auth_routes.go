package auth

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
	logger *zap.Logger,
) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimitByIP(0.5, 5), handler.Login)
		auth.POST("/register", middleware.RateLimitByIP(0.1, 2), handler.Register)
		auth.POST("/refresh", middleware.RateLimitByIP(1, 5), handler.Refresh)
		auth.POST("/forgot-password", middleware.RateLimitByIP(0.1, 2), handler.ForgotPassword)
		auth.POST("/reset-password", middleware.RateLimitByIP(0.1, 2), handler.ResetPassword)

		authed := auth.Group("")
		authed.Use(middleware.RequireAuth(verifier, loader))
		authed.Use(middleware.ContextLogger(logger))
		{
			authed.GET("/me", middleware.RateLimitByUser(2, 5), handler.Me)
			authed.POST("/logout", middleware.RateLimitByUser(2, 5), handler.Logout)
			authed.POST("/change-password", middleware.RateLimitByUser(0.2, 2), handler.ChangePassword)
		}
	}
}
