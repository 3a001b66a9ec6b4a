package user

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleSuperAdmin    Role = "SUPER_ADMIN"
	RoleAdminMaster   Role = "ADMIN_MASTER"
	RoleDonoClinica   Role = "DONO_CLINICA"
	RoleDentista      Role = "DENTISTA"
	RoleAssistente    Role = "ASSISTENTE"
	RoleRecepcionista Role = "RECEPCIONISTA"
	RoleFinanceiro    Role = "FINANCEIRO"
	RoleRH            Role = "RH"
	RolePaciente      Role = "PACIENTE"
)

// DefaultRole is what self-registration always gets. Elevated roles are only
// assignable through the admin create/update paths.
const DefaultRole = RoleAssistente

// The three fixed role tiers routes are gated with. Tiers nest: every set
// contains the ones above it.
var (
	SuperAdminOnly = []Role{RoleSuperAdmin}
	AdminTier      = []Role{RoleSuperAdmin, RoleAdminMaster, RoleDonoClinica}
	ClinicalTier   = []Role{RoleSuperAdmin, RoleAdminMaster, RoleDonoClinica, RoleDentista}
)

// Names converts a tier to the plain strings route guards take.
func Names(roles []Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}

func ValidRole(r Role) bool {
	switch r {
	case RoleSuperAdmin, RoleAdminMaster, RoleDonoClinica, RoleDentista,
		RoleAssistente, RoleRecepcionista, RoleFinanceiro, RoleRH, RolePaciente:
		return true
	}
	return false
}

// User belongs to exactly one tenant for its lifetime. Email is unique per
// tenant only: the same address may exist under two different clinics.
// Refresh and password-reset tokens are single mutable slots, not lists.
type User struct {
	ID       uint   `gorm:"primaryKey"`
	TenantID uint   `gorm:"not null;index;uniqueIndex:idx_users_tenant_email"`
	Email    string `gorm:"type:varchar(255);not null;uniqueIndex:idx_users_tenant_email"`
	FullName string `gorm:"type:varchar(255);not null"`

	HashedPassword string `gorm:"type:varchar(255);not null"`
	Role           Role   `gorm:"type:varchar(30);not null;default:'ASSISTENTE'"`
	IsActive       bool   `gorm:"not null;default:true"`
	IsVerified     bool   `gorm:"not null;default:false"`

	Phone          string `gorm:"type:varchar(20)"`
	CPF            string `gorm:"column:cpf;type:varchar(14);index"`
	ProfessionalID string `gorm:"type:varchar(50)"` // CRO and similar registries

	RefreshToken       string `gorm:"type:varchar(500)"`
	PasswordResetToken string `gorm:"type:varchar(500)"`

	LastLogin *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}
