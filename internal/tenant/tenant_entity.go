package tenant

import (
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusActive    Status = "ACTIVE"
	StatusSuspended Status = "SUSPENDED"
	StatusCancelled Status = "CANCELLED"
)

type Plan string

const (
	PlanTrial        Plan = "TRIAL"
	PlanBasic        Plan = "BASIC"
	PlanProfessional Plan = "PROFESSIONAL"
	PlanEnterprise   Plan = "ENTERPRISE"
)

type Segment string

const (
	SegmentOdontologia  Segment = "ODONTOLOGIA"
	SegmentEstetica     Segment = "ESTETICA"
	SegmentFisioterapia Segment = "FISIOTERAPIA"
	SegmentDermatologia Segment = "DERMATOLOGIA"
	SegmentOrtopedia    Segment = "ORTOPEDIA"
	SegmentCardiologia  Segment = "CARDIOLOGIA"
	SegmentOutros       Segment = "OUTROS"
)

// Tenant is one clinic: the unit of data partitioning. A tenant is created
// PENDING during onboarding and becomes ACTIVE only when onboarding completes.
type Tenant struct {
	ID          uint   `gorm:"primaryKey"`
	Slug        string `gorm:"type:varchar(100);uniqueIndex;not null"`
	CompanyName string `gorm:"type:varchar(255);not null"`
	FantasyName string `gorm:"type:varchar(255)"`

	// Documents
	CNPJ string `gorm:"column:cnpj;type:varchar(18);index"`
	CPF  string `gorm:"column:cpf;type:varchar(14);index"` // MEI clinics register with CPF
	IE   string `gorm:"column:ie;type:varchar(20)"`
	IM   string `gorm:"column:im;type:varchar(20)"`

	// Address
	CEP          string `gorm:"column:cep;type:varchar(9);not null"`
	Street       string `gorm:"type:varchar(255);not null"`
	Number       string `gorm:"type:varchar(20);not null"`
	Complement   string `gorm:"type:varchar(255)"`
	Neighborhood string `gorm:"type:varchar(255);not null"`
	City         string `gorm:"type:varchar(255);not null"`
	State        string `gorm:"type:varchar(2);not null"`
	Country      string `gorm:"type:varchar(2);not null;default:'BR'"`

	// Contact
	Email   string `gorm:"type:varchar(255);not null;index"`
	Phone   string `gorm:"type:varchar(20);not null"`
	Website string `gorm:"type:varchar(255)"`

	Segment Segment `gorm:"type:varchar(30);not null;default:'ODONTOLOGIA'"`

	// Plan and lifecycle
	Plan     Plan   `gorm:"type:varchar(20);not null;default:'TRIAL'"`
	Status   Status `gorm:"type:varchar(20);not null;default:'PENDING'"`
	IsActive bool   `gorm:"not null;default:true"`

	// Limits
	MaxUsers     int `gorm:"not null;default:10"`
	MaxStorageGB int `gorm:"column:max_storage_gb;not null;default:5"`

	// Billing
	MonthlyFee        float64    `gorm:"type:numeric(10,2);not null;default:0"`
	TrialEndDate      *time.Time `gorm:"column:trial_end_date"`
	SubscriptionStart *time.Time
	SubscriptionEnd   *time.Time

	// Onboarding
	OnboardingCompleted bool `gorm:"not null;default:false"`
	OnboardingStep      int  `gorm:"not null;default:1"`

	Theme   string `gorm:"type:varchar(50);not null;default:'default'"`
	LogoURL string `gorm:"type:varchar(500)"`

	CreatedAt   time.Time
	UpdatedAt   time.Time
	ActivatedAt *time.Time
	SuspendedAt *time.Time

	// Analytics
	LastActivity *time.Time
	TotalUsers   int `gorm:"not null;default:0"`

	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Tenant) TableName() string {
	return "tenants"
}

// DisplayName prefers the fantasy (trade) name when present.
func (t *Tenant) DisplayName() string {
	if t.FantasyName != "" {
		return t.FantasyName
	}
	return t.CompanyName
}

// AllowsLogin reports whether the tenant is in a state that permits
// authentication: the is_active flag and a non-terminal status must agree.
func (t *Tenant) AllowsLogin() bool {
	return t.IsActive && t.Status != StatusSuspended && t.Status != StatusCancelled
}
