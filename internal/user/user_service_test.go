package user_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"hubb-assist/internal/events"
	"hubb-assist/internal/messaging/kafka"
	"hubb-assist/internal/tenant"
	"hubb-assist/internal/user"
	usererrors "hubb-assist/internal/user/errors"

	kafkaMock "hubb-assist/internal/messaging/kafka/mock"
	tenantMock "hubb-assist/internal/tenant/mock"
	userMock "hubb-assist/internal/user/mock"
)

type serviceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service user.Service
	repo    *userMock.MockRepository
	tenants *tenantMock.MockRepository
	outbox  *kafkaMock.MockOutboxRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, _ := sqlmock.New()
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		DisableAutomaticPing: true,
	})
	assert.NoError(t, err)

	repo := userMock.NewMockRepository(ctrl)
	tenants := tenantMock.NewMockRepository(ctrl)
	outbox := kafkaMock.NewMockOutboxRepository(ctrl)

	svc := user.NewService(gormDB, repo, tenants, outbox, zap.NewNop())

	return &serviceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
		tenants: tenants,
		outbox:  outbox,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()

	validReq := func() user.CreateUserRequest {
		return user.CreateUserRequest{
			Email:    "carla@clinic.com",
			FullName: "Carla Lima",
			Password: "senha123",
			Role:     user.RoleDentista,
		}
	}

	t.Run("success inside one transaction", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.tenants.EXPECT().WithTx(gomock.Any()).Return(deps.tenants).AnyTimes()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo).AnyTimes()
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox).AnyTimes()

		deps.tenants.EXPECT().FindByID(ctx, uint(7)).
			Return(&tenant.Tenant{ID: 7, MaxUsers: 5}, nil)
		deps.repo.EXPECT().CountByTenant(ctx, uint(7)).Return(int64(2), nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, u *user.User) error {
				assert.Equal(t, uint(7), u.TenantID)
				assert.Equal(t, user.RoleDentista, u.Role)
				assert.True(t, u.IsActive)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte("senha123")))
				u.ID = 10
				return nil
			})
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, evt kafka.OutboxEvent) error {
				assert.Equal(t, events.UserLifecycleTopic, evt.Topic)
				assert.Equal(t, "user_created", evt.EventType)
				assert.Equal(t, "10", evt.AggregateID)
				assert.Equal(t, kafka.OutboxStatusPending, evt.Status)

				var payload events.UserCreatedEvent
				assert.NoError(t, json.Unmarshal(evt.Payload, &payload))
				assert.Equal(t, uint(10), payload.UserID)
				assert.Equal(t, uint(7), payload.TenantID)
				return nil
			})
		deps.tenants.EXPECT().RefreshUserCount(ctx, uint(7)).Return(nil)

		resp, err := deps.service.Create(ctx, 7, validReq())
		assert.NoError(t, err)
		assert.Equal(t, uint(10), resp.ID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("quota exhausted rolls back before the insert", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.tenants.EXPECT().WithTx(gomock.Any()).Return(deps.tenants)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)

		deps.tenants.EXPECT().FindByID(ctx, uint(7)).
			Return(&tenant.Tenant{ID: 7, MaxUsers: 2}, nil)
		deps.repo.EXPECT().CountByTenant(ctx, uint(7)).Return(int64(2), nil)

		_, err := deps.service.Create(ctx, 7, validReq())
		assert.ErrorIs(t, err, usererrors.ErrQuotaExceeded)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("unlimited tenant ignores the head count", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.tenants.EXPECT().WithTx(gomock.Any()).Return(deps.tenants).AnyTimes()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo).AnyTimes()
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox).AnyTimes()

		deps.tenants.EXPECT().FindByID(ctx, uint(7)).
			Return(&tenant.Tenant{ID: 7, MaxUsers: 0}, nil)
		deps.repo.EXPECT().CountByTenant(ctx, uint(7)).Return(int64(9000), nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, u *user.User) error {
				u.ID = 11
				return nil
			})
		deps.outbox.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		deps.tenants.EXPECT().RefreshUserCount(ctx, uint(7)).Return(nil)

		_, err := deps.service.Create(ctx, 7, validReq())
		assert.NoError(t, err)
	})

	t.Run("duplicate email maps the unique violation", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.tenants.EXPECT().WithTx(gomock.Any()).Return(deps.tenants)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)

		deps.tenants.EXPECT().FindByID(ctx, uint(7)).
			Return(&tenant.Tenant{ID: 7, MaxUsers: 5}, nil)
		deps.repo.EXPECT().CountByTenant(ctx, uint(7)).Return(int64(1), nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "idx_users_tenant_email"})

		_, err := deps.service.Create(ctx, 7, validReq())
		assert.ErrorIs(t, err, usererrors.ErrEmailTaken)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("unknown role", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		req := validReq()
		req.Role = "HACKER"

		_, err := deps.service.Create(ctx, 7, req)
		assert.ErrorIs(t, err, usererrors.ErrInvalidRole)
	})

	t.Run("SUPER_ADMIN cannot be granted through tenant endpoints", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		req := validReq()
		req.Role = user.RoleSuperAdmin

		_, err := deps.service.Create(ctx, 7, req)
		assert.ErrorIs(t, err, usererrors.ErrInvalidRole)
	})

	t.Run("weak password", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		req := validReq()
		req.Password = "short"

		_, err := deps.service.Create(ctx, 7, req)
		assert.Error(t, err)
	})
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("role change is validated like create", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		existing := &user.User{ID: 10, TenantID: 7, Role: user.RoleAssistente}
		deps.repo.EXPECT().FindByID(ctx, uint(7), uint(10)).Return(existing, nil)

		elevated := user.RoleSuperAdmin
		_, err := deps.service.Update(ctx, 7, 10, user.UpdateUserRequest{Role: &elevated})
		assert.ErrorIs(t, err, usererrors.ErrInvalidRole)
	})

	t.Run("partial update only touches given fields", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		existing := &user.User{ID: 10, TenantID: 7, FullName: "Carla Lima", Role: user.RoleAssistente, Phone: "11 99999-0000"}
		deps.repo.EXPECT().FindByID(ctx, uint(7), uint(10)).Return(existing, nil)
		deps.repo.EXPECT().Update(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, u *user.User) error {
				assert.Equal(t, "Carla Souza", u.FullName)
				assert.Equal(t, "11 99999-0000", u.Phone)
				assert.Equal(t, user.RoleAssistente, u.Role)
				return nil
			})

		name := "Carla Souza"
		resp, err := deps.service.Update(ctx, 7, 10, user.UpdateUserRequest{FullName: &name})
		assert.NoError(t, err)
		assert.Equal(t, "Carla Souza", resp.FullName)
	})

	t.Run("missing user", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().FindByID(ctx, uint(7), uint(99)).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Update(ctx, 7, 99, user.UpdateUserRequest{})
		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
	})
}

func TestUserService_Deactivate(t *testing.T) {
	ctx := context.Background()

	t.Run("caller cannot deactivate themselves", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		err := deps.service.Deactivate(ctx, 7, 10, 10)
		assert.ErrorIs(t, err, usererrors.ErrSelfDeactivation)
	})

	t.Run("success refreshes the tenant head count", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().Deactivate(ctx, uint(7), uint(10)).Return(nil)
		deps.tenants.EXPECT().RefreshUserCount(ctx, uint(7)).Return(nil)

		err := deps.service.Deactivate(ctx, 7, 10, 42)
		assert.NoError(t, err)
	})

	t.Run("missing user", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().Deactivate(ctx, uint(7), uint(99)).Return(gorm.ErrRecordNotFound)

		err := deps.service.Deactivate(ctx, 7, 99, 42)
		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
	})
}

func TestUserService_CreateOwner(t *testing.T) {
	ctx := context.Background()

	t.Run("owner is provisioned verified with the clinic-owner role", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, u *user.User) error {
				assert.Equal(t, user.RoleDonoClinica, u.Role)
				assert.True(t, u.IsActive)
				assert.True(t, u.IsVerified)
				u.ID = 1
				return nil
			})

		id, err := deps.service.CreateOwner(ctx, nil, 7, "Dono Silva", "dono@clinic.com", "senha123")
		assert.NoError(t, err)
		assert.Equal(t, uint(1), id)
	})

	t.Run("duplicate owner email", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505"})

		_, err := deps.service.CreateOwner(ctx, nil, 7, "Dono Silva", "dono@clinic.com", "senha123")
		assert.ErrorIs(t, err, usererrors.ErrEmailTaken)
	})
}
