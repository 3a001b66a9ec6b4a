package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"hubb-assist/internal/auth"
	autherrors "hubb-assist/internal/auth/errors"
	"hubb-assist/internal/config"
	"hubb-assist/internal/user"
)

type fakeAuthService struct {
	LoginFn                func(ctx context.Context, email, slug, password string) (auth.TokenResponse, error)
	RegisterFn             func(ctx context.Context, req auth.RegisterRequest) (user.UserResponse, error)
	RefreshFn              func(ctx context.Context, refreshToken string) (auth.TokenResponse, error)
	LogoutFn               func(ctx context.Context, userID uint) error
	GetMeFn                func(ctx context.Context, tenantID, userID uint) (auth.MeResponse, error)
	ChangePasswordFn       func(ctx context.Context, tenantID, userID uint, current, next string) error
	RequestPasswordResetFn func(ctx context.Context, email, slug string) error
	ResetPasswordFn        func(ctx context.Context, resetToken, newPassword string) error
}

func (f *fakeAuthService) Login(ctx context.Context, email, slug, password string) (auth.TokenResponse, error) {
	return f.LoginFn(ctx, email, slug, password)
}
func (f *fakeAuthService) Register(ctx context.Context, req auth.RegisterRequest) (user.UserResponse, error) {
	return f.RegisterFn(ctx, req)
}
func (f *fakeAuthService) Refresh(ctx context.Context, refreshToken string) (auth.TokenResponse, error) {
	return f.RefreshFn(ctx, refreshToken)
}
func (f *fakeAuthService) Logout(ctx context.Context, userID uint) error {
	return f.LogoutFn(ctx, userID)
}
func (f *fakeAuthService) GetMe(ctx context.Context, tenantID, userID uint) (auth.MeResponse, error) {
	return f.GetMeFn(ctx, tenantID, userID)
}
func (f *fakeAuthService) ChangePassword(ctx context.Context, tenantID, userID uint, current, next string) error {
	return f.ChangePasswordFn(ctx, tenantID, userID, current, next)
}
func (f *fakeAuthService) RequestPasswordReset(ctx context.Context, email, slug string) error {
	return f.RequestPasswordResetFn(ctx, email, slug)
}
func (f *fakeAuthService) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	return f.ResetPasswordFn(ctx, resetToken, newPassword)
}

func testConfig() *config.Config {
	return &config.Config{
		Env: "test",
		JWT: config.JWT{
			Secret:     "test-secret",
			AccessTTL:  15 * time.Minute,
			RefreshTTL: 24 * time.Hour,
			ResetTTL:   24 * time.Hour,
		},
	}
}

func setupAuthRouter(svc auth.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := auth.NewHandler(svc, testConfig())
	r.POST("/login", h.Login)
	r.POST("/register", h.Register)
	r.POST("/refresh", h.Refresh)
	r.POST("/forgot-password", h.ForgotPassword)
	r.POST("/reset-password", h.ResetPassword)
	return r
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("splits the identifier on the last separator", func(t *testing.T) {
		var gotEmail, gotSlug string
		svc := &fakeAuthService{
			LoginFn: func(_ context.Context, email, slug, password string) (auth.TokenResponse, error) {
				gotEmail, gotSlug = email, slug
				assert.Equal(t, "secret1", password)
				return auth.TokenResponse{AccessToken: "aaa", RefreshToken: "rrr", TokenType: "bearer"}, nil
			},
		}
		r := setupAuthRouter(svc)

		body := `{"username":"ana@clinic.com@sorriso","password":"secret1"}`
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ana@clinic.com", gotEmail)
		assert.Equal(t, "sorriso", gotSlug)
	})

	t.Run("accepts email and tenant_slug as separate fields", func(t *testing.T) {
		var gotEmail, gotSlug string
		svc := &fakeAuthService{
			LoginFn: func(_ context.Context, email, slug, password string) (auth.TokenResponse, error) {
				gotEmail, gotSlug = email, slug
				assert.Equal(t, "secret1", password)
				return auth.TokenResponse{AccessToken: "aaa", RefreshToken: "rrr", TokenType: "bearer"}, nil
			},
		}
		r := setupAuthRouter(svc)

		body := `{"email":"ana@clinic.com","tenant_slug":"sorriso","password":"secret1"}`
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ana@clinic.com", gotEmail)
		assert.Equal(t, "sorriso", gotSlug)
	})

	t.Run("split fields without a slug never reach the service", func(t *testing.T) {
		svc := &fakeAuthService{
			LoginFn: func(_ context.Context, _, _, _ string) (auth.TokenResponse, error) {
				t.Fatal("service must not be called")
				return auth.TokenResponse{}, nil
			},
		}
		r := setupAuthRouter(svc)

		body := `{"email":"ana@clinic.com","password":"secret1"}`
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("accepts the OAuth2 form shape", func(t *testing.T) {
		svc := &fakeAuthService{
			LoginFn: func(_ context.Context, email, slug, password string) (auth.TokenResponse, error) {
				assert.Equal(t, "ana@clinic.com", email)
				assert.Equal(t, "sorriso", slug)
				return auth.TokenResponse{AccessToken: "aaa", RefreshToken: "rrr", TokenType: "bearer"}, nil
			},
		}
		r := setupAuthRouter(svc)

		form := url.Values{"username": {"ana@clinic.com@sorriso"}, "password": {"secret1"}}
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("sets session cookies on success", func(t *testing.T) {
		svc := &fakeAuthService{
			LoginFn: func(_ context.Context, _, _, _ string) (auth.TokenResponse, error) {
				return auth.TokenResponse{AccessToken: "aaa", RefreshToken: "rrr", TokenType: "bearer"}, nil
			},
		}
		r := setupAuthRouter(svc)

		body := `{"username":"ana@clinic.com@sorriso","password":"secret1"}`
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		cookies := w.Result().Cookies()
		names := map[string]string{}
		for _, c := range cookies {
			names[c.Name] = c.Value
			assert.True(t, c.HttpOnly)
		}
		assert.Equal(t, "aaa", names["access_token"])
		assert.Equal(t, "rrr", names["refresh_token"])
	})

	t.Run("identifier without a clinic slug never reaches the service", func(t *testing.T) {
		svc := &fakeAuthService{
			LoginFn: func(_ context.Context, _, _, _ string) (auth.TokenResponse, error) {
				t.Fatal("service must not be called")
				return auth.TokenResponse{}, nil
			},
		}
		r := setupAuthRouter(svc)

		body := `{"username":"ana@clinic.com","password":"secret1"}`
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("service failure maps through the error envelope", func(t *testing.T) {
		svc := &fakeAuthService{
			LoginFn: func(_ context.Context, _, _, _ string) (auth.TokenResponse, error) {
				return auth.TokenResponse{}, autherrors.ErrInvalidCredentials
			},
		}
		r := setupAuthRouter(svc)

		body := `{"username":"ana@clinic.com@sorriso","password":"wrong-1"}`
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var envelope struct {
			Ok    bool `json:"ok"`
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
		assert.False(t, envelope.Ok)
		assert.Equal(t, "Incorrect email or password", envelope.Error.Message)
	})
}

func TestAuthHandler_Refresh(t *testing.T) {
	t.Run("falls back to the cookie when the body is empty", func(t *testing.T) {
		svc := &fakeAuthService{
			RefreshFn: func(_ context.Context, refreshToken string) (auth.TokenResponse, error) {
				assert.Equal(t, "cookie-token", refreshToken)
				return auth.TokenResponse{AccessToken: "aaa", RefreshToken: "rrr", TokenType: "bearer"}, nil
			},
		}
		r := setupAuthRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/refresh", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "cookie-token"})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAuthHandler_ForgotPassword(t *testing.T) {
	t.Run("answers 200 whether or not the account exists", func(t *testing.T) {
		svc := &fakeAuthService{
			RequestPasswordResetFn: func(_ context.Context, email, slug string) error {
				assert.Equal(t, "ghost@clinic.com", email)
				assert.Equal(t, "sorriso", slug)
				return nil
			},
		}
		r := setupAuthRouter(svc)

		body := `{"email":"ghost@clinic.com","tenant_slug":"sorriso"}`
		req := httptest.NewRequest(http.MethodPost, "/forgot-password", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "If the account exists")
	})
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &fakeAuthService{
			RegisterFn: func(_ context.Context, req auth.RegisterRequest) (user.UserResponse, error) {
				assert.Equal(t, "sorriso", req.TenantSlug)
				return user.UserResponse{ID: 43, Email: req.Email, Role: user.DefaultRole}, nil
			},
		}
		r := setupAuthRouter(svc)

		body := `{"tenant_slug":"sorriso","email":"novo@clinic.com","full_name":"Novo Assistente","password":"senha123"}`
		req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})
}
