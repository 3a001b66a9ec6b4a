package tenant_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"hubb-assist/internal/middleware"
	"hubb-assist/internal/tenant"
	tenanterrors "hubb-assist/internal/tenant/errors"
)

type fakeTenantService struct {
	tenant.Service

	OnboardingStep1Fn    func(ctx context.Context, req tenant.OnboardingStep1Request) (tenant.OnboardingStep1Response, error)
	OnboardingStep2Fn    func(ctx context.Context, req tenant.OnboardingStep2Request) (tenant.OnboardingStep2Response, error)
	CompleteOnboardingFn func(ctx context.Context, req tenant.OnboardingStep3Request) (tenant.OnboardingCompleteResponse, error)
	StatsFn              func(ctx context.Context, id uint) (tenant.TenantStats, error)
}

func (f *fakeTenantService) OnboardingStep1(ctx context.Context, req tenant.OnboardingStep1Request) (tenant.OnboardingStep1Response, error) {
	return f.OnboardingStep1Fn(ctx, req)
}
func (f *fakeTenantService) OnboardingStep2(ctx context.Context, req tenant.OnboardingStep2Request) (tenant.OnboardingStep2Response, error) {
	return f.OnboardingStep2Fn(ctx, req)
}
func (f *fakeTenantService) CompleteOnboarding(ctx context.Context, req tenant.OnboardingStep3Request) (tenant.OnboardingCompleteResponse, error) {
	return f.CompleteOnboardingFn(ctx, req)
}
func (f *fakeTenantService) Stats(ctx context.Context, id uint) (tenant.TenantStats, error) {
	return f.StatsFn(ctx, id)
}

func setupTenantRouter(svc tenant.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := tenant.NewHandler(svc)
	r.POST("/onboarding/step1", h.OnboardingStep1)
	r.POST("/onboarding/complete", h.CompleteOnboarding)
	r.GET("/tenants/:id/stats", h.Stats)
	return r
}

func TestTenantHandler_OnboardingStep1(t *testing.T) {
	t.Run("valid company passes through", func(t *testing.T) {
		svc := &fakeTenantService{
			OnboardingStep1Fn: func(_ context.Context, req tenant.OnboardingStep1Request) (tenant.OnboardingStep1Response, error) {
				assert.Equal(t, "Clinica Sorriso", req.CompanyName)
				return tenant.OnboardingStep1Response{Valid: true, NextStep: "step2", Slug: "clinica-sorriso-abc123"}, nil
			},
		}
		r := setupTenantRouter(svc)

		body := `{"company_name":"Clinica Sorriso","cnpj":"11.222.333/0001-81","email":"contato@sorriso.com","phone":"11 4002-8922"}`
		req := httptest.NewRequest(http.MethodPost, "/onboarding/step1", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"next_step":"step2"`)
	})

	t.Run("missing company name fails binding", func(t *testing.T) {
		svc := &fakeTenantService{
			OnboardingStep1Fn: func(_ context.Context, _ tenant.OnboardingStep1Request) (tenant.OnboardingStep1Response, error) {
				t.Fatal("service must not be called")
				return tenant.OnboardingStep1Response{}, nil
			},
		}
		r := setupTenantRouter(svc)

		body := `{"email":"contato@sorriso.com","phone":"11 4002-8922"}`
		req := httptest.NewRequest(http.MethodPost, "/onboarding/step1", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTenantHandler_CompleteOnboarding(t *testing.T) {
	validBody := `{
		"company_name":"Clinica Sorriso",
		"cnpj":"11.222.333/0001-81",
		"email":"contato@sorriso.com",
		"phone":"11 4002-8922",
		"cep":"01310-100",
		"street":"Avenida Paulista",
		"number":"1000",
		"neighborhood":"Bela Vista",
		"city":"Sao Paulo",
		"state":"SP",
		"owner_full_name":"Dono Silva",
		"owner_email":"dono@sorriso.com",
		"owner_password":"senha123"
	}`

	t.Run("created", func(t *testing.T) {
		svc := &fakeTenantService{
			CompleteOnboardingFn: func(_ context.Context, req tenant.OnboardingStep3Request) (tenant.OnboardingCompleteResponse, error) {
				assert.Equal(t, "dono@sorriso.com", req.OwnerEmail)
				return tenant.OnboardingCompleteResponse{
					Tenant:  tenant.TenantResponse{ID: 7, Slug: "clinica-sorriso-abc123"},
					OwnerID: 1,
					Message: "Onboarding completed",
				}, nil
			},
		}
		r := setupTenantRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/onboarding/complete", strings.NewReader(validBody))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"owner_id":1`)
	})

	t.Run("taken slug maps to conflict", func(t *testing.T) {
		svc := &fakeTenantService{
			CompleteOnboardingFn: func(_ context.Context, _ tenant.OnboardingStep3Request) (tenant.OnboardingCompleteResponse, error) {
				return tenant.OnboardingCompleteResponse{}, tenanterrors.ErrSlugTaken
			},
		}
		r := setupTenantRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/onboarding/complete", strings.NewReader(validBody))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func setupOnboardingRouter(svc tenant.Service, rdb *redis.Client) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := tenant.NewHandlerWithRedis(svc, rdb)
	r.POST("/onboarding/complete", middleware.Idempotency(rdb), h.CompleteOnboarding)
	return r
}

func TestTenantHandler_CompleteOnboardingIdempotency(t *testing.T) {
	body := `{
		"company_name":"Clinica Sorriso",
		"cnpj":"11.222.333/0001-81",
		"email":"contato@sorriso.com",
		"phone":"11 4002-8922",
		"cep":"01310-100",
		"street":"Avenida Paulista",
		"number":"1000",
		"neighborhood":"Bela Vista",
		"city":"Sao Paulo",
		"state":"SP",
		"owner_full_name":"Dono Silva",
		"owner_email":"dono@sorriso.com",
		"owner_password":"senha123"
	}`

	// httptest requests always arrive from 192.0.2.1.
	const cacheKey = "idemp:/onboarding/complete:192.0.2.1:key-1"
	const lockKey = cacheKey + ":lock"

	completed := tenant.OnboardingCompleteResponse{
		Tenant:  tenant.TenantResponse{ID: 7, Slug: "sorriso"},
		OwnerID: 1,
		Message: "Onboarding completed",
	}

	post := func(r *gin.Engine) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/onboarding/complete", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Idempotency-Key", "key-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("first completion caches the response and releases the lock", func(t *testing.T) {
		payload, err := json.Marshal(completed)
		assert.NoError(t, err)

		rdb, redisMock := redismock.NewClientMock()
		redisMock.ExpectGet(cacheKey).RedisNil()
		redisMock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)
		redisMock.ExpectSet(cacheKey, payload, 24*time.Hour).SetVal("OK")
		redisMock.ExpectDel(lockKey).SetVal(1)

		svc := &fakeTenantService{
			CompleteOnboardingFn: func(_ context.Context, _ tenant.OnboardingStep3Request) (tenant.OnboardingCompleteResponse, error) {
				return completed, nil
			},
		}

		w := post(setupOnboardingRouter(svc, rdb))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("retry after completion replays the cached response", func(t *testing.T) {
		payload, err := json.Marshal(completed)
		assert.NoError(t, err)

		rdb, redisMock := redismock.NewClientMock()
		redisMock.ExpectGet(cacheKey).SetVal(string(payload))

		svc := &fakeTenantService{
			CompleteOnboardingFn: func(_ context.Context, _ tenant.OnboardingStep3Request) (tenant.OnboardingCompleteResponse, error) {
				t.Fatal("service must not run again")
				return tenant.OnboardingCompleteResponse{}, nil
			},
		}

		w := post(setupOnboardingRouter(svc, rdb))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"owner_id":1`)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("duplicate while the first attempt is in flight", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		redisMock.ExpectGet(cacheKey).RedisNil()
		redisMock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(false)

		svc := &fakeTenantService{
			CompleteOnboardingFn: func(_ context.Context, _ tenant.OnboardingStep3Request) (tenant.OnboardingCompleteResponse, error) {
				t.Fatal("service must not run while locked")
				return tenant.OnboardingCompleteResponse{}, nil
			},
		}

		w := post(setupOnboardingRouter(svc, rdb))

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "PROCESSING")
	})

	t.Run("failed completion releases the lock without caching", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		redisMock.ExpectGet(cacheKey).RedisNil()
		redisMock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)
		redisMock.ExpectDel(lockKey).SetVal(1)

		svc := &fakeTenantService{
			CompleteOnboardingFn: func(_ context.Context, _ tenant.OnboardingStep3Request) (tenant.OnboardingCompleteResponse, error) {
				return tenant.OnboardingCompleteResponse{}, tenanterrors.ErrSlugTaken
			},
		}

		w := post(setupOnboardingRouter(svc, rdb))

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})
}

func TestTenantHandler_Stats(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		svc := &fakeTenantService{
			StatsFn: func(_ context.Context, _ uint) (tenant.TenantStats, error) {
				t.Fatal("service must not be called")
				return tenant.TenantStats{}, nil
			},
		}
		r := setupTenantRouter(svc)

		req := httptest.NewRequest(http.MethodGet, "/tenants/zero/stats", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("success", func(t *testing.T) {
		svc := &fakeTenantService{
			StatsFn: func(_ context.Context, id uint) (tenant.TenantStats, error) {
				assert.Equal(t, uint(7), id)
				return tenant.TenantStats{TenantID: 7, TotalUsers: 4, ActiveUsers: 3}, nil
			},
		}
		r := setupTenantRouter(svc)

		req := httptest.NewRequest(http.MethodGet, "/tenants/7/stats", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"active_users":3`)
	})
}
