package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	autherrors "hubb-assist/internal/auth/errors"
	"hubb-assist/internal/config"
	"hubb-assist/internal/shared/apperror"
	"hubb-assist/internal/shared/contextutil"
	"hubb-assist/internal/shared/response"
)

type Handler struct {
	service Service
	cfg     *config.Config
	logger  *zap.Logger
}

func NewHandler(service Service, cfg *config.Config, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("auth.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.handler")
	}
	return &Handler{service: service, cfg: cfg, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	appErr := apperror.From(err)
	h.logger.Warn("auth request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", appErr.HTTPStatus),
		zap.String("code", appErr.Code),
	)
	response.FromError(c, err)
}

// splitIdentifier breaks "email@clinic-slug" on the LAST separator, because
// the email part contains one of its own.
func splitIdentifier(identifier string) (email, slug string, ok bool) {
	i := strings.LastIndex(identifier, "@")
	if i <= 0 || i == len(identifier)-1 {
		return "", "", false
	}
	email, slug = identifier[:i], identifier[i+1:]
	if !strings.Contains(email, "@") {
		return "", "", false
	}
	return email, slug, true
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "invalid input", err.Error())
		return
	}

	email, slug := req.Email, req.TenantSlug
	if req.Username != "" {
		var ok bool
		if email, slug, ok = splitIdentifier(req.Username); !ok {
			response.FromError(c, autherrors.ErrBadIdentifier)
			return
		}
	} else if email == "" || slug == "" {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "invalid input", "either username or email and tenant_slug are required")
		return
	}

	resp, err := h.service.Login(c.Request.Context(), email, slug, req.Password)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.setSessionCookies(c, resp.AccessToken, resp.RefreshToken)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "invalid input", err.Error())
		return
	}

	resp, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Web clients carry the token in a cookie instead of the body.
		if cookie, cerr := c.Cookie("refresh_token"); cerr == nil && cookie != "" {
			req.RefreshToken = cookie
		} else {
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "invalid input", err.Error())
			return
		}
	}

	resp, err := h.service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.setSessionCookies(c, resp.AccessToken, resp.RefreshToken)
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Logout(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.service.Logout(ctx, contextutil.GetUserID(ctx)); err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.clearSessionCookies(c)
	response.Success(c, http.StatusOK, gin.H{"logged_out": true}, nil)
}

func (h *Handler) Me(c *gin.Context) {
	ctx := c.Request.Context()
	resp, err := h.service.GetMe(ctx, contextutil.GetTenantID(ctx), contextutil.GetUserID(ctx))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "invalid input", err.Error())
		return
	}

	ctx := c.Request.Context()
	err := h.service.ChangePassword(ctx,
		contextutil.GetTenantID(ctx), contextutil.GetUserID(ctx),
		req.CurrentPassword, req.NewPassword,
	)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"changed": true}, nil)
}

func (h *Handler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "invalid input", err.Error())
		return
	}

	if err := h.service.RequestPasswordReset(c.Request.Context(), req.Email, req.TenantSlug); err != nil {
		h.writeServiceError(c, err)
		return
	}

	// Same answer whether or not the account exists.
	response.Success(c, http.StatusOK, gin.H{
		"message": "If the account exists, a reset link has been sent",
	}, nil)
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "invalid input", err.Error())
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reset": true}, nil)
}

func (h *Handler) setSessionCookies(c *gin.Context, accessToken, refreshToken string) {
	secure := h.cfg.IsProduction()

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		Path:     "/",
		MaxAge:   int(h.cfg.JWT.AccessTTL.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		Path:     "/",
		MaxAge:   int(h.cfg.JWT.RefreshTTL.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookies(c *gin.Context) {
	secure := h.cfg.IsProduction()

	for _, name := range []string{"access_token", "refresh_token"} {
		http.SetCookie(c.Writer, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
