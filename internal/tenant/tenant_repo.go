package tenant

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=tenant_repo.go -destination=mock/tenant_repo_mock.go -package=mock

// ListFilter narrows List results. Zero values mean "no filter".
type ListFilter struct {
	Search string
	Status Status
	Plan   Plan
	Page   int
	Limit  int
}

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, t *Tenant) error
	FindByID(ctx context.Context, id uint) (*Tenant, error)
	FindBySlug(ctx context.Context, slug string) (*Tenant, error)
	List(ctx context.Context, filter ListFilter) ([]Tenant, int64, error)
	Update(ctx context.Context, t *Tenant) error
	Deactivate(ctx context.Context, id uint) error
	Activate(ctx context.Context, id uint) error
	CompleteOnboarding(ctx context.Context, id uint) error
	UpdateLastActivity(ctx context.Context, id uint) error
	RefreshUserCount(ctx context.Context, id uint) error
	SlugExists(ctx context.Context, slug string) (bool, error)
	CNPJExists(ctx context.Context, cnpj string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
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

func (r *repository) Create(ctx context.Context, t *Tenant) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Tenant, error) {
	var t Tenant
	err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) FindBySlug(ctx context.Context, slug string) (*Tenant, error) {
	var t Tenant
	err := r.db.WithContext(ctx).First(&t, "slug = ?", slug).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Tenant, int64, error) {
	q := r.db.WithContext(ctx).Model(&Tenant{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where(
			"company_name ILIKE ? OR fantasy_name ILIKE ? OR email ILIKE ? OR slug ILIKE ?",
			like, like, like, like,
		)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Plan != "" {
		q = q.Where("plan = ?", filter.Plan)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	var tenants []Tenant
	err := q.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&tenants).Error

	return tenants, total, err
}

func (r *repository) Update(ctx context.Context, t *Tenant) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *repository) Deactivate(ctx context.Context, id uint) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(&Tenant{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":    false,
			"status":       StatusCancelled,
			"suspended_at": now,
		}).Error
}

func (r *repository) Activate(ctx context.Context, id uint) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(&Tenant{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":    true,
			"status":       StatusActive,
			"activated_at": now,
			"suspended_at": nil,
		}).Error
}

func (r *repository) CompleteOnboarding(ctx context.Context, id uint) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(&Tenant{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"onboarding_completed": true,
			"onboarding_step":      3,
			"status":               StatusActive,
			"activated_at":         now,
		}).Error
}

func (r *repository) UpdateLastActivity(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&Tenant{}).
		Where("id = ?", id).
		Update("last_activity", time.Now().UTC()).Error
}

// RefreshUserCount recomputes total_users from live active user rows. The
// counter is advisory; the quota gate counts rows directly.
func (r *repository) RefreshUserCount(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE tenants
		SET total_users = (
			SELECT COUNT(*) FROM users
			WHERE users.tenant_id = tenants.id
			  AND users.is_active = true
			  AND users.deleted_at IS NULL
		)
		WHERE id = ?
	`, id).Error
}

func (r *repository) SlugExists(ctx context.Context, slug string) (bool, error) {
	return r.exists(ctx, "slug = ?", slug)
}

func (r *repository) CNPJExists(ctx context.Context, cnpj string) (bool, error) {
	return r.exists(ctx, "cnpj = ?", cnpj)
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email = ?", email)
}

func (r *repository) exists(ctx context.Context, query string, arg string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Tenant{}).Where(query, arg).Count(&count).Error
	return count > 0, err
}

// IsNotFound reports whether err is gorm's missing-record error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
