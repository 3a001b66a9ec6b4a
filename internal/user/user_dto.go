package user

import "time"

type CreateUserRequest struct {
	Email          string `json:"email" binding:"required,email"`
	FullName       string `json:"full_name" binding:"required,min=2,max=255"`
	Password       string `json:"password" binding:"required"`
	Role           Role   `json:"role" binding:"required"`
	Phone          string `json:"phone" binding:"omitempty,max=20"`
	CPF            string `json:"cpf" binding:"omitempty,max=14"`
	ProfessionalID string `json:"professional_id" binding:"omitempty,max=50"`
}

type UpdateUserRequest struct {
	FullName       *string `json:"full_name" binding:"omitempty,min=2,max=255"`
	Role           *Role   `json:"role"`
	Phone          *string `json:"phone" binding:"omitempty,max=20"`
	CPF            *string `json:"cpf" binding:"omitempty,max=14"`
	ProfessionalID *string `json:"professional_id" binding:"omitempty,max=50"`
	IsVerified     *bool   `json:"is_verified"`
}

type UpdatePasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required"`
}

type UserResponse struct {
	ID             uint       `json:"id"`
	TenantID       uint       `json:"tenant_id"`
	Email          string     `json:"email"`
	FullName       string     `json:"full_name"`
	Role           Role       `json:"role"`
	IsActive       bool       `json:"is_active"`
	IsVerified     bool       `json:"is_verified"`
	Phone          string     `json:"phone,omitempty"`
	CPF            string     `json:"cpf,omitempty"`
	ProfessionalID string     `json:"professional_id,omitempty"`
	LastLogin      *time.Time `json:"last_login,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Summary is the trimmed shape embedded in login responses.
type Summary struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     Role   `json:"role"`
}

func ToResponse(u *User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		TenantID:       u.TenantID,
		Email:          u.Email,
		FullName:       u.FullName,
		Role:           u.Role,
		IsActive:       u.IsActive,
		IsVerified:     u.IsVerified,
		Phone:          u.Phone,
		CPF:            u.CPF,
		ProfessionalID: u.ProfessionalID,
		LastLogin:      u.LastLogin,
		CreatedAt:      u.CreatedAt,
	}
}

func ToSummary(u *User) Summary {
	return Summary{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Role:     u.Role,
	}
}
