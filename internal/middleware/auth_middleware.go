package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hubb-assist/internal/shared/apperror"
	"hubb-assist/internal/shared/contextutil"
	"hubb-assist/internal/shared/response"
	"hubb-assist/internal/token"
)

// Principal is the authenticated identity attached to a request. Role and
// activity status come from the database, never from token claims.
type Principal struct {
	UserID   uint
	TenantID uint
	Email    string
	Role     string
}

// PrincipalLoader resolves the (tenant, user) pair of a verified access token
// to a live account. Implementations return apperror values for unknown or
// deactivated accounts.
type PrincipalLoader interface {
	LoadPrincipal(ctx context.Context, tenantID, userID uint) (Principal, error)
}

// TenantGate answers whether a tenant may be served at all.
type TenantGate interface {
	AuthorizeTenant(ctx context.Context, tenantID uint) error
}

type TokenVerifier interface {
	Verify(tokenString string, expected token.Kind) (*token.Claims, error)
}

// RequireAuth verifies the bearer token, loads the account it names and
// stores the principal in both the gin and request contexts.
func RequireAuth(verifier TokenVerifier, loader PrincipalLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}
		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}
		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Token not found", nil)
			c.Abort()
			return
		}

		claims, err := verifier.Verify(tokenString, token.KindAccess)
		if err != nil {
			response.FromError(c, err)
			c.Abort()
			return
		}

		principal, err := loader.LoadPrincipal(c.Request.Context(), claims.TenantID, claims.UserID)
		if err != nil {
			response.FromError(c, err)
			c.Abort()
			return
		}

		c.Set("user_id", principal.UserID)
		c.Set("tenant_id", principal.TenantID)
		c.Set("role", principal.Role)

		ctx := c.Request.Context()
		ctx = contextutil.WithUserID(ctx, principal.UserID)
		ctx = contextutil.WithTenantID(ctx, principal.TenantID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireTenant rejects requests whose tenant is suspended or cancelled.
// It must run after RequireAuth.
func RequireTenant(gate TenantGate) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := contextutil.GetTenantID(c.Request.Context())
		if tenantID == 0 {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Tenant not resolved", nil)
			c.Abort()
			return
		}
		if err := gate.AuthorizeTenant(c.Request.Context(), tenantID); err != nil {
			response.FromError(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRoles allows only the listed roles past. It must run after
// RequireAuth.
func RequireRoles(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		for _, r := range allowed {
			if role == r {
				c.Next()
				return
			}
		}
		response.Error(c, http.StatusForbidden, apperror.CodeForbidden, "Insufficient permissions", nil)
		c.Abort()
	}
}
