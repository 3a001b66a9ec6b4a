package auth

import (
	"hubb-assist/internal/tenant"
	"hubb-assist/internal/user"
)

// LoginRequest accepts both a JSON body and an OAuth2-style form post.
// Username carries the composite identifier "email@clinic-slug"; JSON
// clients may send email and tenant_slug as separate fields instead.
type LoginRequest struct {
	Username   string `form:"username" json:"username"`
	Email      string `form:"email" json:"email"`
	TenantSlug string `form:"tenant_slug" json:"tenant_slug"`
	Password   string `form:"password" json:"password" binding:"required"`
}

type RegisterRequest struct {
	TenantSlug string `json:"tenant_slug" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	FullName   string `json:"full_name" binding:"required,min=2,max=255"`
	Password   string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email      string `json:"email" binding:"required,email"`
	TenantSlug string `json:"tenant_slug" binding:"required"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

type TokenResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	TokenType    string         `json:"token_type"`
	ExpiresIn    int64          `json:"expires_in"`
	User         user.Summary   `json:"user"`
	Tenant       tenant.Summary `json:"tenant"`
}

type MeResponse struct {
	User   user.UserResponse `json:"user"`
	Tenant tenant.Summary    `json:"tenant"`
}
