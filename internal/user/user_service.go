package user

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hubb-assist/internal/events"
	"hubb-assist/internal/messaging/kafka"
	"hubb-assist/internal/shared/contextutil"
	"hubb-assist/internal/shared/policy"
	"hubb-assist/internal/tenant"
	tenanterrors "hubb-assist/internal/tenant/errors"
	usererrors "hubb-assist/internal/user/errors"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock

type Service interface {
	List(ctx context.Context, tenantID uint, filter ListFilter) ([]UserResponse, int64, error)
	GetByID(ctx context.Context, tenantID, id uint) (UserResponse, error)
	Create(ctx context.Context, tenantID uint, req CreateUserRequest) (UserResponse, error)
	Update(ctx context.Context, tenantID, id uint, req UpdateUserRequest) (UserResponse, error)
	UpdatePassword(ctx context.Context, tenantID, id uint, newPassword string) error
	Deactivate(ctx context.Context, tenantID, id, callerID uint) error
	Activate(ctx context.Context, tenantID, id uint) error

	// CreateOwner provisions the DONO_CLINICA account inside an onboarding
	// transaction. It satisfies tenant.UserDirectory.
	CreateOwner(ctx context.Context, tx *gorm.DB, tenantID uint, fullName, email, password string) (uint, error)
	CountByTenant(ctx context.Context, tenantID uint) (int64, error)
	CountActiveByTenant(ctx context.Context, tenantID uint) (int64, error)
}

type service struct {
	db      *gorm.DB
	repo    Repository
	tenants tenant.Repository
	outbox  kafka.OutboxRepository
	logger  *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, tenants tenant.Repository, outbox kafka.OutboxRepository, logger *zap.Logger) Service {
	return &service{
		db:      db,
		repo:    repo,
		tenants: tenants,
		outbox:  outbox,
		logger:  logger,
	}
}

func (s *service) List(ctx context.Context, tenantID uint, filter ListFilter) ([]UserResponse, int64, error) {
	users, total, err := s.repo.List(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, ToResponse(&users[i]))
	}
	return out, total, nil
}

func (s *service) GetByID(ctx context.Context, tenantID, id uint) (UserResponse, error) {
	u, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		if IsNotFound(err) {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
		return UserResponse{}, err
	}
	return ToResponse(u), nil
}

func (s *service) Create(ctx context.Context, tenantID uint, req CreateUserRequest) (UserResponse, error) {
	if !ValidRole(req.Role) || req.Role == RoleSuperAdmin {
		return UserResponse{}, usererrors.ErrInvalidRole
	}
	if err := policy.ValidatePassword(req.Password); err != nil {
		return UserResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserResponse{}, err
	}

	u := &User{
		TenantID:       tenantID,
		Email:          req.Email,
		FullName:       req.FullName,
		HashedPassword: string(hashed),
		Role:           req.Role,
		IsActive:       true,
		Phone:          req.Phone,
		CPF:            req.CPF,
		ProfessionalID: req.ProfessionalID,
	}

	// Quota and uniqueness are checked inside the same transaction that
	// inserts the row, so concurrent creates cannot both pass the gate.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t, err := s.tenants.WithTx(tx).FindByID(ctx, tenantID)
		if err != nil {
			if tenant.IsNotFound(err) {
				return tenanterrors.ErrTenantNotFound
			}
			return err
		}

		qrepo := s.repo.WithTx(tx)
		count, err := qrepo.CountByTenant(ctx, tenantID)
		if err != nil {
			return err
		}
		if t.MaxUsers > 0 && count >= int64(t.MaxUsers) {
			return usererrors.ErrQuotaExceeded
		}

		if err := qrepo.Create(ctx, u); err != nil {
			return mapUserWriteError(err)
		}

		event := events.UserCreatedEvent{
			EventType:  "user_created",
			RequestID:  contextutil.GetRequestID(ctx),
			UserID:     u.ID,
			TenantID:   tenantID,
			Role:       string(u.Role),
			OccurredAt: time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return err
		}
		err = s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     event.RequestID,
			AggregateType: "user",
			AggregateID:   strconv.FormatUint(uint64(u.ID), 10),
			EventType:     event.EventType,
			Topic:         events.UserLifecycleTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		})
		if err != nil {
			return err
		}

		return s.tenants.WithTx(tx).RefreshUserCount(ctx, tenantID)
	})
	if err != nil {
		return UserResponse{}, err
	}

	s.logger.Info("user created",
		zap.Uint("user_id", u.ID),
		zap.Uint("tenant_id", tenantID),
		zap.String("role", string(u.Role)),
	)
	return ToResponse(u), nil
}

func (s *service) Update(ctx context.Context, tenantID, id uint, req UpdateUserRequest) (UserResponse, error) {
	u, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		if IsNotFound(err) {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
		return UserResponse{}, err
	}

	if req.Role != nil {
		if !ValidRole(*req.Role) || *req.Role == RoleSuperAdmin {
			return UserResponse{}, usererrors.ErrInvalidRole
		}
		u.Role = *req.Role
	}
	if req.FullName != nil {
		u.FullName = *req.FullName
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
	}
	if req.CPF != nil {
		u.CPF = *req.CPF
	}
	if req.ProfessionalID != nil {
		u.ProfessionalID = *req.ProfessionalID
	}
	if req.IsVerified != nil {
		u.IsVerified = *req.IsVerified
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return UserResponse{}, mapUserWriteError(err)
	}
	return ToResponse(u), nil
}

func (s *service) UpdatePassword(ctx context.Context, tenantID, id uint, newPassword string) error {
	if err := policy.ValidatePassword(newPassword); err != nil {
		return err
	}
	u, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		if IsNotFound(err) {
			return usererrors.ErrUserNotFound
		}
		return err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, u.ID, string(hashed))
}

func (s *service) Deactivate(ctx context.Context, tenantID, id, callerID uint) error {
	if id == callerID {
		return usererrors.ErrSelfDeactivation
	}
	if err := s.repo.Deactivate(ctx, tenantID, id); err != nil {
		if IsNotFound(err) {
			return usererrors.ErrUserNotFound
		}
		return err
	}
	if err := s.tenants.RefreshUserCount(ctx, tenantID); err != nil {
		s.logger.Warn("refresh tenant user count failed",
			zap.Uint("tenant_id", tenantID), zap.Error(err))
	}
	return nil
}

func (s *service) Activate(ctx context.Context, tenantID, id uint) error {
	if err := s.repo.Activate(ctx, tenantID, id); err != nil {
		if IsNotFound(err) {
			return usererrors.ErrUserNotFound
		}
		return err
	}
	if err := s.tenants.RefreshUserCount(ctx, tenantID); err != nil {
		s.logger.Warn("refresh tenant user count failed",
			zap.Uint("tenant_id", tenantID), zap.Error(err))
	}
	return nil
}

func (s *service) CreateOwner(ctx context.Context, tx *gorm.DB, tenantID uint, fullName, email, password string) (uint, error) {
	if err := policy.ValidatePassword(password); err != nil {
		return 0, err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}
	u := &User{
		TenantID:       tenantID,
		Email:          email,
		FullName:       fullName,
		HashedPassword: string(hashed),
		Role:           RoleDonoClinica,
		IsActive:       true,
		IsVerified:     true,
	}
	if err := s.repo.WithTx(tx).Create(ctx, u); err != nil {
		return 0, mapUserWriteError(err)
	}
	return u.ID, nil
}

func (s *service) CountByTenant(ctx context.Context, tenantID uint) (int64, error) {
	return s.repo.CountByTenant(ctx, tenantID)
}

func (s *service) CountActiveByTenant(ctx context.Context, tenantID uint) (int64, error) {
	return s.repo.CountActiveByTenant(ctx, tenantID)
}

// mapUserWriteError translates the unique-index violation on
// (tenant_id, email) into the domain conflict error.
func mapUserWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return usererrors.ErrEmailTaken
	}
	return err
}
