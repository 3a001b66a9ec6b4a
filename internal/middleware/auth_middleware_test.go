package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"hubb-assist/internal/config"
	"hubb-assist/internal/middleware"
	"hubb-assist/internal/shared/apperror"
	"hubb-assist/internal/shared/contextutil"
	"hubb-assist/internal/token"
)

type stubLoader struct {
	principal middleware.Principal
	err       error
}

func (s *stubLoader) LoadPrincipal(_ context.Context, _, _ uint) (middleware.Principal, error) {
	return s.principal, s.err
}

type stubGate struct {
	err error
}

func (s *stubGate) AuthorizeTenant(_ context.Context, _ uint) error {
	return s.err
}

func testIssuer() *token.Issuer {
	return token.NewIssuer(config.JWT{
		Secret:     "test-secret",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 24 * time.Hour,
		ResetTTL:   24 * time.Hour,
	})
}

func authedRouter(verifier middleware.TokenVerifier, loader middleware.PrincipalLoader, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{middleware.RequireAuth(verifier, loader)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		ctx := c.Request.Context()
		c.JSON(http.StatusOK, gin.H{
			"user_id":   contextutil.GetUserID(ctx),
			"tenant_id": contextutil.GetTenantID(ctx),
			"role":      c.GetString("role"),
		})
	})
	r.GET("/protected", handlers...)
	return r
}

func TestRequireAuth(t *testing.T) {
	issuer := testIssuer()

	t.Run("bearer token populates principal and context", func(t *testing.T) {
		loader := &stubLoader{principal: middleware.Principal{
			UserID: 42, TenantID: 7, Email: "ana@clinic.com", Role: "DENTISTA",
		}}
		r := authedRouter(issuer, loader)

		accessToken, err := issuer.IssueAccess(42, 7, "DENTISTA")
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+accessToken)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":42`)
		assert.Contains(t, w.Body.String(), `"tenant_id":7`)
		assert.Contains(t, w.Body.String(), `"role":"DENTISTA"`)
	})

	t.Run("cookie works when the header is absent", func(t *testing.T) {
		loader := &stubLoader{principal: middleware.Principal{UserID: 42, TenantID: 7, Role: "DENTISTA"}}
		r := authedRouter(issuer, loader)

		accessToken, err := issuer.IssueAccess(42, 7, "DENTISTA")
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: accessToken})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("no token at all", func(t *testing.T) {
		r := authedRouter(issuer, &stubLoader{})

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Token not found")
	})

	t.Run("refresh token cannot open a protected route", func(t *testing.T) {
		r := authedRouter(issuer, &stubLoader{})

		refreshToken, err := issuer.IssueRefresh(42, 7)
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+refreshToken)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token for a vanished account", func(t *testing.T) {
		loader := &stubLoader{err: apperror.ErrUnauthorized}
		r := authedRouter(issuer, loader)

		accessToken, err := issuer.IssueAccess(42, 7, "DENTISTA")
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+accessToken)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireRoles(t *testing.T) {
	issuer := testIssuer()

	protectedCall := func(role string, allowed ...string) *httptest.ResponseRecorder {
		loader := &stubLoader{principal: middleware.Principal{UserID: 42, TenantID: 7, Role: role}}
		r := authedRouter(issuer, loader, middleware.RequireRoles(allowed...))

		accessToken, _ := issuer.IssueAccess(42, 7, role)
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+accessToken)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("listed role passes", func(t *testing.T) {
		w := protectedCall("DONO_CLINICA", "SUPER_ADMIN", "ADMIN_MASTER", "DONO_CLINICA")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("role checks come from the database load, not the claim", func(t *testing.T) {
		// Claim says SUPER_ADMIN but the loaded account is an assistant.
		loader := &stubLoader{principal: middleware.Principal{UserID: 42, TenantID: 7, Role: "ASSISTENTE"}}
		r := authedRouter(testIssuer(), loader, middleware.RequireRoles("SUPER_ADMIN"))

		accessToken, _ := testIssuer().IssueAccess(42, 7, "SUPER_ADMIN")
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+accessToken)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("unlisted role is refused", func(t *testing.T) {
		w := protectedCall("PACIENTE", "SUPER_ADMIN")
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "Insufficient permissions")
	})
}

func TestRequireTenant(t *testing.T) {
	issuer := testIssuer()

	t.Run("suspended tenant is turned away", func(t *testing.T) {
		loader := &stubLoader{principal: middleware.Principal{UserID: 42, TenantID: 7, Role: "DENTISTA"}}
		gate := &stubGate{err: apperror.ErrForbidden}
		r := authedRouter(issuer, loader, middleware.RequireTenant(gate))

		accessToken, _ := issuer.IssueAccess(42, 7, "DENTISTA")
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+accessToken)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("healthy tenant passes", func(t *testing.T) {
		loader := &stubLoader{principal: middleware.Principal{UserID: 42, TenantID: 7, Role: "DENTISTA"}}
		r := authedRouter(issuer, loader, middleware.RequireTenant(&stubGate{}))

		accessToken, _ := issuer.IssueAccess(42, 7, "DENTISTA")
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+accessToken)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
