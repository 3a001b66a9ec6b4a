package app

import (
	"context"

	"hubb-assist/internal/middleware"
	"hubb-assist/internal/shared/apperror"
	"hubb-assist/internal/tenant"
	tenanterrors "hubb-assist/internal/tenant/errors"
	"hubb-assist/internal/user"
	usererrors "hubb-assist/internal/user/errors"
)

// principalLoader backs middleware.RequireAuth with the user repository.
// A token naming a deleted account is indistinguishable from a bad token.
type principalLoader struct {
	users user.Repository
}

func (p principalLoader) LoadPrincipal(ctx context.Context, tenantID, userID uint) (middleware.Principal, error) {
	u, err := p.users.FindByID(ctx, tenantID, userID)
	if err != nil {
		if user.IsNotFound(err) {
			return middleware.Principal{}, apperror.ErrUnauthorized
		}
		return middleware.Principal{}, err
	}
	if !u.IsActive {
		return middleware.Principal{}, usererrors.ErrUserInactive
	}
	return middleware.Principal{
		UserID:   u.ID,
		TenantID: u.TenantID,
		Email:    u.Email,
		Role:     string(u.Role),
	}, nil
}

// tenantGate backs middleware.RequireTenant.
type tenantGate struct {
	tenants tenant.Repository
}

func (g tenantGate) AuthorizeTenant(ctx context.Context, tenantID uint) error {
	t, err := g.tenants.FindByID(ctx, tenantID)
	if err != nil {
		if tenant.IsNotFound(err) {
			return tenanterrors.ErrTenantNotFound
		}
		return err
	}
	if !t.AllowsLogin() {
		return tenanterrors.ErrTenantInactive
	}
	return nil
}
