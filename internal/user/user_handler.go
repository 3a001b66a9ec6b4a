package user

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hubb-assist/internal/shared/apperror"
	"hubb-assist/internal/shared/contextutil"
	"hubb-assist/internal/shared/response"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("user.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	appErr := apperror.From(err)
	h.logger.Warn("user request failed",
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
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "invalid user id", nil)
		return 0, false
	}
	return uint(id), true
}

func (h *Handler) List(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := contextutil.GetTenantID(ctx)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	filter := ListFilter{
		Search: strings.TrimSpace(c.Query("search")),
		Role:   Role(strings.TrimSpace(c.Query("role"))),
		Page:   page,
		Limit:  limit,
	}
	if raw := c.Query("is_active"); raw != "" {
		active := raw == "true"
		filter.IsActive = &active
	}

	users, total, err := h.service.List(ctx, tenantID, filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, page, limit)
	response.Success(c, http.StatusOK, users, &meta)
}

func (h *Handler) GetByID(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := parseID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetByID(ctx, contextutil.GetTenantID(ctx), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// Me returns the authenticated user's own profile.
func (h *Handler) Me(c *gin.Context) {
	ctx := c.Request.Context()
	resp, err := h.service.GetByID(ctx, contextutil.GetTenantID(ctx), contextutil.GetUserID(ctx))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := contextutil.GetTenantID(ctx)

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create user validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "invalid input", err.Error())
		return
	}

	resp, err := h.service.Create(ctx, tenantID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update user validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "invalid input", err.Error())
		return
	}

	resp, err := h.service.Update(ctx, contextutil.GetTenantID(ctx), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdatePassword(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "invalid input", err.Error())
		return
	}

	if err := h.service.UpdatePassword(ctx, contextutil.GetTenantID(ctx), id, req.NewPassword); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": true}, nil)
}

func (h *Handler) Deactivate(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := parseID(c)
	if !ok {
		return
	}

	err := h.service.Deactivate(ctx, contextutil.GetTenantID(ctx), id, contextutil.GetUserID(ctx))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deactivated": true}, nil)
}

func (h *Handler) Activate(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Activate(ctx, contextutil.GetTenantID(ctx), id); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"activated": true}, nil)
}
