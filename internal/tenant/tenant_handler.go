package tenant

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"hubb-assist/internal/shared/apperror"
	"hubb-assist/internal/shared/response"
)

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("tenant.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("tenant.handler")
	}
	return &Handler{service: service, logger: l}
}

// NewHandlerWithRedis also lets the onboarding submit handler keep its
// idempotency promise: cache the response and release the in-flight lock.
func NewHandlerWithRedis(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	h := NewHandler(service, logger...)
	h.rdb = rdb
	return h
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	appErr := apperror.From(err)
	h.logger.Warn("tenant request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", appErr.HTTPStatus),
		zap.String("code", appErr.Code),
		zap.String("message", appErr.Message),
	)
	response.FromError(c, err)
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "invalid tenant id", nil)
		return 0, false
	}
	return uint(id), true
}

func (h *Handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	filter := ListFilter{
		Search: strings.TrimSpace(c.Query("search")),
		Status: Status(strings.TrimSpace(c.Query("status"))),
		Plan:   Plan(strings.TrimSpace(c.Query("plan"))),
		Page:   page,
		Limit:  limit,
	}

	tenants, total, err := h.service.List(ctx, filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, page, limit)
	response.Success(c, http.StatusOK, tenants, &meta)
}

func (h *Handler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update tenant validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "invalid input", err.Error())
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Deactivate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), id); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deactivated": true}, nil)
}

func (h *Handler) Activate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Activate(c.Request.Context(), id); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"activated": true}, nil)
}

func (h *Handler) Stats(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	resp, err := h.service.Stats(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) OnboardingStep1(c *gin.Context) {
	var req OnboardingStep1Request
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http onboarding step1 validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "invalid input", err.Error())
		return
	}

	resp, err := h.service.OnboardingStep1(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) OnboardingStep2(c *gin.Context) {
	var req OnboardingStep2Request
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http onboarding step2 validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "invalid input", err.Error())
		return
	}

	resp, err := h.service.OnboardingStep2(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CompleteOnboarding(c *gin.Context) {
	if h.rdb != nil {
		if lockKey := c.GetString("idempotency_lock_key"); lockKey != "" {
			defer h.rdb.Del(c.Request.Context(), lockKey)
		}
	}

	var req OnboardingStep3Request
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http onboarding step3 validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "invalid input", err.Error())
		return
	}

	resp, err := h.service.CompleteOnboarding(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if h.rdb != nil {
		if cacheKey := c.GetString("idempotency_cache_key"); cacheKey != "" {
			if payload, marshalErr := json.Marshal(resp); marshalErr == nil {
				if err := h.rdb.Set(c.Request.Context(), cacheKey, payload, 24*time.Hour).Err(); err != nil {
					h.logger.Warn("idempotency cache write failed", zap.Error(err))
				}
			}
		}
	}

	response.Success(c, http.StatusCreated, resp, nil)
}
