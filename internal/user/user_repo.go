package user

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"hubb-assist/internal/tenant"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock

type ListFilter struct {
	Search   string
	Role     Role
	IsActive *bool
	Page     int
	Limit    int
}

type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, tenantID, id uint) (*User, error)
	FindByEmail(ctx context.Context, tenantID uint, email string) (*User, error)
	FindByResetToken(ctx context.Context, token string) (*User, error)
	List(ctx context.Context, tenantID uint, filter ListFilter) ([]User, int64, error)
	Update(ctx context.Context, u *User) error

	SetRefreshToken(ctx context.Context, id uint, token string) error
	ClearRefreshToken(ctx context.Context, id uint) error
	SetPasswordResetToken(ctx context.Context, id uint, token string) error
	UpdatePassword(ctx context.Context, id uint, hashed string) error

	Deactivate(ctx context.Context, tenantID, id uint) error
	Activate(ctx context.Context, tenantID, id uint) error

	CountByTenant(ctx context.Context, tenantID uint) (int64, error)
	CountActiveByTenant(ctx context.Context, tenantID uint) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *repository) FindByID(ctx context.Context, tenantID, id uint) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		First(&u, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindByEmail(ctx context.Context, tenantID uint, email string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		First(&u, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindByResetToken(ctx context.Context, token string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		First(&u, "password_reset_token = ?", token).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) List(ctx context.Context, tenantID uint, filter ListFilter) ([]User, int64, error) {
	q := r.db.WithContext(ctx).Model(&User{}).Scopes(tenant.Scope(tenantID))

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("full_name ILIKE ? OR email ILIKE ?", like, like)
	}
	if filter.Role != "" {
		q = q.Where("role = ?", filter.Role)
	}
	if filter.IsActive != nil {
		q = q.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var users []User
	err := q.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *repository) Update(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *repository) SetRefreshToken(ctx context.Context, id uint, token string) error {
	return r.db.WithContext(ctx).Model(&User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"refresh_token": token,
			"last_login":    time.Now(),
		}).Error
}

func (r *repository) ClearRefreshToken(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&User{}).
		Where("id = ?", id).
		Update("refresh_token", "").Error
}

func (r *repository) SetPasswordResetToken(ctx context.Context, id uint, token string) error {
	return r.db.WithContext(ctx).Model(&User{}).
		Where("id = ?", id).
		Update("password_reset_token", token).Error
}

func (r *repository) UpdatePassword(ctx context.Context, id uint, hashed string) error {
	return r.db.WithContext(ctx).Model(&User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"hashed_password":      hashed,
			"password_reset_token": "",
		}).Error
}

func (r *repository) Deactivate(ctx context.Context, tenantID, id uint) error {
	// Clearing the refresh slot revokes the session on the next refresh.
	res := r.db.WithContext(ctx).Model(&User{}).
		Scopes(tenant.Scope(tenantID)).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_active":     false,
			"refresh_token": "",
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Activate(ctx context.Context, tenantID, id uint) error {
	res := r.db.WithContext(ctx).Model(&User{}).
		Scopes(tenant.Scope(tenantID)).
		Where("id = ?", id).
		Update("is_active", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CountByTenant(ctx context.Context, tenantID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&User{}).
		Scopes(tenant.Scope(tenantID)).
		Count(&n).Error
	return n, err
}

func (r *repository) CountActiveByTenant(ctx context.Context, tenantID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&User{}).
		Scopes(tenant.Scope(tenantID)).
		Where("is_active = ?", true).
		Count(&n).Error
	return n, err
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
