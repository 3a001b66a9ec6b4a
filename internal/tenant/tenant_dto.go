package tenant

import "time"

type TenantResponse struct {
	ID                  uint       `json:"id"`
	Slug                string     `json:"slug"`
	CompanyName         string     `json:"company_name"`
	FantasyName         string     `json:"fantasy_name,omitempty"`
	CNPJ                string     `json:"cnpj,omitempty"`
	CPF                 string     `json:"cpf,omitempty"`
	Email               string     `json:"email"`
	Phone               string     `json:"phone"`
	City                string     `json:"city"`
	State               string     `json:"state"`
	Segment             Segment    `json:"segment"`
	Plan                Plan       `json:"plan"`
	Status              Status     `json:"status"`
	IsActive            bool       `json:"is_active"`
	MaxUsers            int        `json:"max_users"`
	TotalUsers          int        `json:"total_users"`
	OnboardingCompleted bool       `json:"onboarding_completed"`
	TrialEndDate        *time.Time `json:"trial_end_date,omitempty"`
	LastActivity        *time.Time `json:"last_activity,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
}

// Summary is the compact form embedded in token responses.
type Summary struct {
	ID          uint   `json:"id"`
	Slug        string `json:"slug"`
	CompanyName string `json:"company_name"`
	Plan        Plan   `json:"plan"`
}

func ToSummary(t *Tenant) Summary {
	return Summary{
		ID:          t.ID,
		Slug:        t.Slug,
		CompanyName: t.DisplayName(),
		Plan:        t.Plan,
	}
}

type UpdateTenantRequest struct {
	CompanyName *string  `json:"company_name,omitempty"`
	FantasyName *string  `json:"fantasy_name,omitempty"`
	Phone       *string  `json:"phone,omitempty"`
	Website     *string  `json:"website,omitempty"`
	Plan        *Plan    `json:"plan,omitempty"`
	MaxUsers    *int     `json:"max_users,omitempty"`
	MonthlyFee  *float64 `json:"monthly_fee,omitempty"`
	Theme       *string  `json:"theme,omitempty"`
	LogoURL     *string  `json:"logo_url,omitempty"`
}

type TenantStats struct {
	TenantID      uint       `json:"tenant_id"`
	CompanyName   string     `json:"company_name"`
	Slug          string     `json:"slug"`
	Plan          Plan       `json:"plan"`
	Status        Status     `json:"status"`
	TotalUsers    int64      `json:"total_users"`
	ActiveUsers   int64      `json:"active_users"`
	MaxUsers      int        `json:"max_users"`
	DaysRemaining *int       `json:"days_remaining,omitempty"`
	LastActivity  *time.Time `json:"last_activity,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Onboarding flow: three steps. Step 1 validates company identity, step 2
// resolves the address from the CEP, step 3 creates tenant + owner account.

type OnboardingStep1Request struct {
	CompanyName string  `json:"company_name" binding:"required,min=2,max=255"`
	FantasyName string  `json:"fantasy_name" binding:"omitempty,max=255"`
	CNPJ        string  `json:"cnpj" binding:"omitempty,max=18"`
	CPF         string  `json:"cpf" binding:"omitempty,max=14"`
	Email       string  `json:"email" binding:"required,email"`
	Phone       string  `json:"phone" binding:"required,max=20"`
	Segment     Segment `json:"segment" binding:"omitempty"`
}

type OnboardingStep1Response struct {
	Valid    bool   `json:"valid"`
	NextStep string `json:"next_step"`
	Slug     string `json:"slug"`
}

type OnboardingStep2Request struct {
	CEP    string `json:"cep" binding:"required,max=9"`
	Number string `json:"number" binding:"required,max=20"`
}

type OnboardingStep2Response struct {
	Valid    bool    `json:"valid"`
	NextStep string  `json:"next_step"`
	Address  Address `json:"address"`
}

type Address struct {
	CEP          string `json:"cep"`
	Street       string `json:"street"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

type OnboardingStep3Request struct {
	// company identity (step 1, re-submitted)
	CompanyName string  `json:"company_name" binding:"required,min=2,max=255"`
	FantasyName string  `json:"fantasy_name" binding:"omitempty,max=255"`
	CNPJ        string  `json:"cnpj" binding:"omitempty,max=18"`
	CPF         string  `json:"cpf" binding:"omitempty,max=14"`
	Email       string  `json:"email" binding:"required,email"`
	Phone       string  `json:"phone" binding:"required,max=20"`
	Segment     Segment `json:"segment" binding:"omitempty"`
	Slug        string  `json:"slug" binding:"omitempty,max=100"`

	// address (step 2)
	CEP          string `json:"cep" binding:"required,max=9"`
	Street       string `json:"street" binding:"required,max=255"`
	Number       string `json:"number" binding:"required,max=20"`
	Complement   string `json:"complement" binding:"omitempty,max=255"`
	Neighborhood string `json:"neighborhood" binding:"required,max=255"`
	City         string `json:"city" binding:"required,max=255"`
	State        string `json:"state" binding:"required,len=2"`

	// owner account
	OwnerFullName string `json:"owner_full_name" binding:"required,min=2,max=255"`
	OwnerEmail    string `json:"owner_email" binding:"required,email"`
	OwnerPassword string `json:"owner_password" binding:"required,min=6"`
}

type OnboardingCompleteResponse struct {
	Tenant  TenantResponse `json:"tenant"`
	OwnerID uint           `json:"owner_id"`
	Message string         `json:"message"`
}
