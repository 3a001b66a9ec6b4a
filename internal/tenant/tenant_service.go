package tenant

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"hubb-assist/internal/events"
	"hubb-assist/internal/messaging/kafka"
	"hubb-assist/internal/shared/brdoc"
	"hubb-assist/internal/shared/contextutil"
	tenanterrors "hubb-assist/internal/tenant/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=tenant_service.go -destination=mock/tenant_service_mock.go -package=mock

type Service interface {
	List(ctx context.Context, filter ListFilter) ([]TenantResponse, int64, error)
	GetByID(ctx context.Context, id uint) (TenantResponse, error)
	Update(ctx context.Context, id uint, req UpdateTenantRequest) (TenantResponse, error)
	Deactivate(ctx context.Context, id uint) error
	Activate(ctx context.Context, id uint) error
	Stats(ctx context.Context, id uint) (TenantStats, error)

	OnboardingStep1(ctx context.Context, req OnboardingStep1Request) (OnboardingStep1Response, error)
	OnboardingStep2(ctx context.Context, req OnboardingStep2Request) (OnboardingStep2Response, error)
	CompleteOnboarding(ctx context.Context, req OnboardingStep3Request) (OnboardingCompleteResponse, error)
}

// CEPResolver resolves a postal code to an address (ViaCEP behind a breaker).
type CEPResolver interface {
	Resolve(ctx context.Context, cep string) (Address, error)
}

// UserDirectory is the slice of the user module the registry needs: creating
// the owner account inside the onboarding transaction and counting users for
// stats. Declared locally so tenant does not import user.
type UserDirectory interface {
	CreateOwner(ctx context.Context, tx *gorm.DB, tenantID uint, fullName, email, password string) (uint, error)
	CountByTenant(ctx context.Context, tenantID uint) (int64, error)
	CountActiveByTenant(ctx context.Context, tenantID uint) (int64, error)
}

// Defaults applied to newly onboarded tenants.
type Defaults struct {
	MaxUsers     int
	TrialDays    int
	MaxStorageGB int
}

type service struct {
	db       *gorm.DB
	repo     Repository
	users    UserDirectory
	cep      CEPResolver
	outbox   kafka.OutboxRepository
	defaults Defaults
	logger   *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	users UserDirectory,
	cep CEPResolver,
	outbox kafka.OutboxRepository,
	defaults Defaults,
	logger *zap.Logger,
) Service {
	if logger == nil {
		logger = zap.L()
	}
	return &service{
		db:       db,
		repo:     repo,
		users:    users,
		cep:      cep,
		outbox:   outbox,
		defaults: defaults,
		logger:   logger.Named("tenant.service"),
	}
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]TenantResponse, int64, error) {
	tenants, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]TenantResponse, len(tenants))
	for i := range tenants {
		resp[i] = mapToResponse(&tenants[i])
	}
	return resp, total, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (TenantResponse, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return TenantResponse{}, tenanterrors.ErrTenantNotFound
		}
		return TenantResponse{}, err
	}
	return mapToResponse(t), nil
}

func (s *service) Update(ctx context.Context, id uint, req UpdateTenantRequest) (TenantResponse, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return TenantResponse{}, tenanterrors.ErrTenantNotFound
		}
		return TenantResponse{}, err
	}

	if req.CompanyName != nil {
		t.CompanyName = *req.CompanyName
	}
	if req.FantasyName != nil {
		t.FantasyName = *req.FantasyName
	}
	if req.Phone != nil {
		t.Phone = *req.Phone
	}
	if req.Website != nil {
		t.Website = *req.Website
	}
	if req.Plan != nil {
		t.Plan = *req.Plan
	}
	if req.MaxUsers != nil {
		t.MaxUsers = *req.MaxUsers
	}
	if req.MonthlyFee != nil {
		t.MonthlyFee = *req.MonthlyFee
	}
	if req.Theme != nil {
		t.Theme = *req.Theme
	}
	if req.LogoURL != nil {
		t.LogoURL = *req.LogoURL
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return TenantResponse{}, err
	}
	return mapToResponse(t), nil
}

func (s *service) Deactivate(ctx context.Context, id uint) error {
	if _, err := s.mustFind(ctx, id); err != nil {
		return err
	}
	return s.repo.Deactivate(ctx, id)
}

func (s *service) Activate(ctx context.Context, id uint) error {
	if _, err := s.mustFind(ctx, id); err != nil {
		return err
	}
	return s.repo.Activate(ctx, id)
}

func (s *service) Stats(ctx context.Context, id uint) (TenantStats, error) {
	t, err := s.mustFind(ctx, id)
	if err != nil {
		return TenantStats{}, err
	}

	total, err := s.users.CountByTenant(ctx, id)
	if err != nil {
		return TenantStats{}, err
	}
	active, err := s.users.CountActiveByTenant(ctx, id)
	if err != nil {
		return TenantStats{}, err
	}

	stats := TenantStats{
		TenantID:     t.ID,
		CompanyName:  t.CompanyName,
		Slug:         t.Slug,
		Plan:         t.Plan,
		Status:       t.Status,
		TotalUsers:   total,
		ActiveUsers:  active,
		MaxUsers:     t.MaxUsers,
		LastActivity: t.LastActivity,
		CreatedAt:    t.CreatedAt,
	}

	var until *time.Time
	if t.SubscriptionEnd != nil {
		until = t.SubscriptionEnd
	} else if t.TrialEndDate != nil {
		until = t.TrialEndDate
	}
	if until != nil {
		days := int(time.Until(*until).Hours() / 24)
		if days < 0 {
			days = 0
		}
		stats.DaysRemaining = &days
	}

	return stats, nil
}

// OnboardingStep1 validates company identity and reserves nothing: the caller
// gets back the slug that step 3 will use.
func (s *service) OnboardingStep1(ctx context.Context, req OnboardingStep1Request) (OnboardingStep1Response, error) {
	if err := s.validateCompanyData(ctx, req.CNPJ, req.CPF, req.Email); err != nil {
		return OnboardingStep1Response{}, err
	}

	return OnboardingStep1Response{
		Valid:    true,
		NextStep: "step2",
		Slug:     GenerateSlug(req.CompanyName),
	}, nil
}

func (s *service) OnboardingStep2(ctx context.Context, req OnboardingStep2Request) (OnboardingStep2Response, error) {
	addr, err := s.cep.Resolve(ctx, req.CEP)
	if err != nil {
		return OnboardingStep2Response{}, err
	}

	return OnboardingStep2Response{
		Valid:    true,
		NextStep: "step3",
		Address:  addr,
	}, nil
}

// CompleteOnboarding creates the tenant and its owner account in one
// transaction and activates the tenant. The owner gets DONO_CLINICA.
func (s *service) CompleteOnboarding(ctx context.Context, req OnboardingStep3Request) (OnboardingCompleteResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	if err := s.validateCompanyData(ctx, req.CNPJ, req.CPF, req.Email); err != nil {
		return OnboardingCompleteResponse{}, err
	}

	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = GenerateSlug(req.CompanyName)
	}
	taken, err := s.repo.SlugExists(ctx, slug)
	if err != nil {
		return OnboardingCompleteResponse{}, err
	}
	if taken {
		return OnboardingCompleteResponse{}, tenanterrors.ErrSlugTaken
	}

	segment := req.Segment
	if segment == "" {
		segment = SegmentOdontologia
	}

	trialEnd := time.Now().UTC().AddDate(0, 0, s.defaults.TrialDays)
	t := &Tenant{
		Slug:         slug,
		CompanyName:  req.CompanyName,
		FantasyName:  req.FantasyName,
		CNPJ:         req.CNPJ,
		CPF:          req.CPF,
		Email:        req.Email,
		Phone:        req.Phone,
		Segment:      segment,
		CEP:          req.CEP,
		Street:       req.Street,
		Number:       req.Number,
		Complement:   req.Complement,
		Neighborhood: req.Neighborhood,
		City:         req.City,
		State:        strings.ToUpper(req.State),
		Country:      "BR",
		Plan:         PlanTrial,
		Status:       StatusPending,
		IsActive:     true,
		MaxUsers:     s.defaults.MaxUsers,
		MaxStorageGB: s.defaults.MaxStorageGB,
		TrialEndDate: &trialEnd,
	}

	var ownerID uint
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		if err := qtx.Create(ctx, t); err != nil {
			return err
		}

		id, err := s.users.CreateOwner(ctx, tx, t.ID, req.OwnerFullName, req.OwnerEmail, req.OwnerPassword)
		if err != nil {
			return err
		}
		ownerID = id

		if err := qtx.CompleteOnboarding(ctx, t.ID); err != nil {
			return err
		}

		if s.outbox != nil {
			event := events.TenantActivatedEvent{
				EventType:   "tenant_activated",
				RequestID:   contextutil.GetRequestID(ctx),
				TenantID:    t.ID,
				Slug:        t.Slug,
				CompanyName: t.CompanyName,
				OccurredAt:  time.Now().UTC(),
			}
			payload, err := json.Marshal(event)
			if err != nil {
				return err
			}
			return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
				ID:            uuid.NewString(),
				RequestID:     event.RequestID,
				AggregateType: "tenant",
				AggregateID:   slug,
				EventType:     event.EventType,
				Topic:         events.TenantLifecycleTopic,
				Payload:       payload,
				Status:        kafka.OutboxStatusPending,
			})
		}
		return nil
	})
	if err != nil {
		l.Error("complete onboarding failed", zap.String("slug", slug), zap.Error(err))
		return OnboardingCompleteResponse{}, err
	}

	t.Status = StatusActive
	t.OnboardingCompleted = true

	l.Info("tenant onboarded",
		zap.Uint("tenant_id", t.ID),
		zap.String("slug", t.Slug),
	)

	return OnboardingCompleteResponse{
		Tenant:  mapToResponse(t),
		OwnerID: ownerID,
		Message: "Onboarding completed",
	}, nil
}

func (s *service) validateCompanyData(ctx context.Context, cnpj, cpf, email string) error {
	if cnpj == "" && cpf == "" {
		return tenanterrors.ErrDocumentRequired
	}
	if cnpj != "" && !brdoc.ValidCNPJ(cnpj) {
		return tenanterrors.ErrInvalidCNPJ
	}
	if cpf != "" && !brdoc.ValidCPF(cpf) {
		return tenanterrors.ErrInvalidCPF
	}

	if cnpj != "" {
		exists, err := s.repo.CNPJExists(ctx, cnpj)
		if err != nil {
			return err
		}
		if exists {
			return tenanterrors.ErrCNPJTaken
		}
	}

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return tenanterrors.ErrEmailTaken
	}
	return nil
}

func (s *service) mustFind(ctx context.Context, id uint) (*Tenant, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, tenanterrors.ErrTenantNotFound
		}
		return nil, err
	}
	return t, nil
}

func mapToResponse(t *Tenant) TenantResponse {
	return TenantResponse{
		ID:                  t.ID,
		Slug:                t.Slug,
		CompanyName:         t.CompanyName,
		FantasyName:         t.FantasyName,
		CNPJ:                t.CNPJ,
		CPF:                 t.CPF,
		Email:               t.Email,
		Phone:               t.Phone,
		City:                t.City,
		State:               t.State,
		Segment:             t.Segment,
		Plan:                t.Plan,
		Status:              t.Status,
		IsActive:            t.IsActive,
		MaxUsers:            t.MaxUsers,
		TotalUsers:          t.TotalUsers,
		OnboardingCompleted: t.OnboardingCompleted,
		TrialEndDate:        t.TrialEndDate,
		LastActivity:        t.LastActivity,
		CreatedAt:           t.CreatedAt,
	}
}
