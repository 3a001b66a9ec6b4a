package auth

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	autherrors "hubb-assist/internal/auth/errors"
	"hubb-assist/internal/shared/contextutil"
	"hubb-assist/internal/shared/policy"
	"hubb-assist/internal/tenant"
	tenanterrors "hubb-assist/internal/tenant/errors"
	"hubb-assist/internal/token"
	"hubb-assist/internal/user"
	usererrors "hubb-assist/internal/user/errors"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock

type Service interface {
	Login(ctx context.Context, email, slug, password string) (TokenResponse, error)
	Register(ctx context.Context, req RegisterRequest) (user.UserResponse, error)
	Refresh(ctx context.Context, refreshToken string) (TokenResponse, error)
	Logout(ctx context.Context, userID uint) error
	GetMe(ctx context.Context, tenantID, userID uint) (MeResponse, error)
	ChangePassword(ctx context.Context, tenantID, userID uint, current, next string) error
	RequestPasswordReset(ctx context.Context, email, slug string) error
	ResetPassword(ctx context.Context, resetToken, newPassword string) error
}

type service struct {
	issuer  *token.Issuer
	users   user.Repository
	userSvc user.Service
	tenants tenant.Repository
	logger  *zap.Logger
}

func NewService(
	issuer *token.Issuer,
	users user.Repository,
	userSvc user.Service,
	tenants tenant.Repository,
	logger *zap.Logger,
) Service {
	if logger == nil {
		logger = zap.L()
	}
	return &service{
		issuer:  issuer,
		users:   users,
		userSvc: userSvc,
		tenants: tenants,
		logger:  logger.Named("auth.service"),
	}
}

// Login resolves the clinic by slug, then the account by email inside that
// clinic. Unknown email, wrong password and a deactivated account all come
// back as the same error.
func (s *service) Login(ctx context.Context, email, slug, password string) (TokenResponse, error) {
	t, err := s.tenants.FindBySlug(ctx, slug)
	if err != nil {
		if tenant.IsNotFound(err) {
			return TokenResponse{}, tenanterrors.ErrTenantNotFound
		}
		return TokenResponse{}, err
	}
	if !t.AllowsLogin() {
		return TokenResponse{}, tenanterrors.ErrTenantInactive
	}

	u, err := s.users.FindByEmail(ctx, t.ID, email)
	if err != nil {
		if user.IsNotFound(err) {
			return TokenResponse{}, autherrors.ErrInvalidCredentials
		}
		return TokenResponse{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password)); err != nil {
		return TokenResponse{}, autherrors.ErrInvalidCredentials
	}
	// A deactivated account answers exactly like a wrong password.
	if !u.IsActive {
		return TokenResponse{}, autherrors.ErrInvalidCredentials
	}

	resp, err := s.issueTokens(ctx, u, t)
	if err != nil {
		return TokenResponse{}, err
	}

	if err := s.tenants.UpdateLastActivity(ctx, t.ID); err != nil {
		s.logger.Warn("update tenant last activity failed",
			zap.Uint("tenant_id", t.ID), zap.Error(err))
	}

	s.logger.Info("login succeeded",
		zap.Uint("user_id", u.ID),
		zap.Uint("tenant_id", t.ID),
		zap.String("role", string(u.Role)),
	)
	return resp, nil
}

// Register self-enrolls a new account in an existing clinic. The role is
// always ASSISTENTE; elevated roles go through the admin user endpoints.
func (s *service) Register(ctx context.Context, req RegisterRequest) (user.UserResponse, error) {
	t, err := s.tenants.FindBySlug(ctx, req.TenantSlug)
	if err != nil {
		if tenant.IsNotFound(err) {
			return user.UserResponse{}, tenanterrors.ErrTenantNotFound
		}
		return user.UserResponse{}, err
	}
	if !t.AllowsLogin() {
		return user.UserResponse{}, tenanterrors.ErrTenantInactive
	}

	return s.userSvc.Create(ctx, t.ID, user.CreateUserRequest{
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
		Role:     user.DefaultRole,
	})
}

// Refresh rotates the single stored refresh token: the presented token must
// equal the stored one, and a new pair replaces it.
func (s *service) Refresh(ctx context.Context, refreshToken string) (TokenResponse, error) {
	claims, err := s.issuer.Verify(refreshToken, token.KindRefresh)
	if err != nil {
		return TokenResponse{}, autherrors.ErrInvalidRefreshToken
	}

	u, err := s.users.FindByID(ctx, claims.TenantID, claims.UserID)
	if err != nil {
		return TokenResponse{}, autherrors.ErrInvalidRefreshToken
	}
	if u.RefreshToken == "" || u.RefreshToken != refreshToken {
		return TokenResponse{}, autherrors.ErrInvalidRefreshToken
	}
	if !u.IsActive {
		return TokenResponse{}, usererrors.ErrUserInactive
	}

	t, err := s.tenants.FindByID(ctx, claims.TenantID)
	if err != nil {
		return TokenResponse{}, autherrors.ErrInvalidRefreshToken
	}
	if !t.AllowsLogin() {
		return TokenResponse{}, tenanterrors.ErrTenantInactive
	}

	return s.issueTokens(ctx, u, t)
}

func (s *service) Logout(ctx context.Context, userID uint) error {
	return s.users.ClearRefreshToken(ctx, userID)
}

func (s *service) GetMe(ctx context.Context, tenantID, userID uint) (MeResponse, error) {
	u, err := s.users.FindByID(ctx, tenantID, userID)
	if err != nil {
		if user.IsNotFound(err) {
			return MeResponse{}, usererrors.ErrUserNotFound
		}
		return MeResponse{}, err
	}
	t, err := s.tenants.FindByID(ctx, tenantID)
	if err != nil {
		if tenant.IsNotFound(err) {
			return MeResponse{}, tenanterrors.ErrTenantNotFound
		}
		return MeResponse{}, err
	}
	return MeResponse{
		User:   user.ToResponse(u),
		Tenant: tenant.ToSummary(t),
	}, nil
}

func (s *service) ChangePassword(ctx context.Context, tenantID, userID uint, current, next string) error {
	u, err := s.users.FindByID(ctx, tenantID, userID)
	if err != nil {
		if user.IsNotFound(err) {
			return usererrors.ErrUserNotFound
		}
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(current)); err != nil {
		return autherrors.ErrWrongPassword
	}
	if err := policy.ValidatePassword(next); err != nil {
		return err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, u.ID, string(hashed)); err != nil {
		return err
	}
	// Other sessions have to log in again with the new password.
	return s.users.ClearRefreshToken(ctx, u.ID)
}

// RequestPasswordReset never reveals whether the account exists: every
// failure short of an infrastructure error answers exactly like success.
func (s *service) RequestPasswordReset(ctx context.Context, email, slug string) error {
	l := contextutil.GetLogger(ctx, s.logger)

	t, err := s.tenants.FindBySlug(ctx, slug)
	if err != nil {
		if tenant.IsNotFound(err) {
			l.Debug("password reset for unknown tenant", zap.String("slug", slug))
			return nil
		}
		return err
	}

	u, err := s.users.FindByEmail(ctx, t.ID, email)
	if err != nil {
		if user.IsNotFound(err) {
			l.Debug("password reset for unknown email", zap.Uint("tenant_id", t.ID))
			return nil
		}
		return err
	}
	if !u.IsActive {
		l.Debug("password reset for inactive account", zap.Uint("user_id", u.ID))
		return nil
	}

	resetToken, err := s.issuer.IssuePasswordReset(u.Email, t.ID)
	if err != nil {
		return err
	}
	if err := s.users.SetPasswordResetToken(ctx, u.ID, resetToken); err != nil {
		return err
	}

	// Delivery goes out by email; here we only record that a token exists.
	l.Info("password reset token issued",
		zap.Uint("user_id", u.ID),
		zap.Uint("tenant_id", t.ID),
	)
	return nil
}

// ResetPassword consumes the single stored reset token. The presented token
// must verify, match the stored slot and name the same account.
func (s *service) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	claims, err := s.issuer.Verify(resetToken, token.KindPasswordReset)
	if err != nil {
		return autherrors.ErrInvalidResetToken
	}

	u, err := s.users.FindByResetToken(ctx, resetToken)
	if err != nil {
		return autherrors.ErrInvalidResetToken
	}
	if u.Email != claims.Email || u.TenantID != claims.TenantID {
		return autherrors.ErrInvalidResetToken
	}

	if err := policy.ValidatePassword(newPassword); err != nil {
		return err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	// UpdatePassword clears the reset slot; clearing the refresh slot on top
	// forces every existing session to log in again.
	if err := s.users.UpdatePassword(ctx, u.ID, string(hashed)); err != nil {
		return err
	}
	if err := s.users.ClearRefreshToken(ctx, u.ID); err != nil {
		return err
	}

	s.logger.Info("password reset completed",
		zap.Uint("user_id", u.ID),
		zap.Uint("tenant_id", u.TenantID),
	)
	return nil
}

func (s *service) issueTokens(ctx context.Context, u *user.User, t *tenant.Tenant) (TokenResponse, error) {
	accessToken, err := s.issuer.IssueAccess(u.ID, t.ID, string(u.Role))
	if err != nil {
		return TokenResponse{}, err
	}
	refreshToken, err := s.issuer.IssueRefresh(u.ID, t.ID)
	if err != nil {
		return TokenResponse{}, err
	}

	if err := s.users.SetRefreshToken(ctx, u.ID, refreshToken); err != nil {
		return TokenResponse{}, err
	}

	return TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int64(s.issuer.AccessTTL().Seconds()),
		User:         user.ToSummary(u),
		Tenant:       tenant.ToSummary(t),
	}, nil
}
