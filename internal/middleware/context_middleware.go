package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hubb-assist/internal/shared/contextutil"
)

// ContextLogger attaches a request-scoped logger carrying request, user and
// tenant identifiers. Place it after RequestID and RequireAuth so both are
// already resolved.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		reqLogger := logger.With(
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.Uint("user_id", contextutil.GetUserID(ctx)),
			zap.Uint("tenant_id", contextutil.GetTenantID(ctx)),
		)

		ctx = contextutil.WithLogger(ctx, reqLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
