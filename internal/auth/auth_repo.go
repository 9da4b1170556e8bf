package auth

import (
	"context"

	"go-timeclock/internal/tenant"
	"go-timeclock/internal/user"

	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_repo.go -destination=mock/auth_repo_mock.go -package=mock
type Repository interface {
	tenant.Directory
	OwnerByUsername(ctx context.Context, username string) (*Owner, error)
	UserByUsername(ctx context.Context, username string) (*user.User, error)
	ExistsOwner(ctx context.Context, username string) (bool, error)
	CreateOwner(ctx context.Context, o *Owner) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindOwnerByUsername(ctx context.Context, username string) (tenant.Identity, error) {
	o, err := r.OwnerByUsername(ctx, username)
	if err != nil {
		return tenant.Identity{}, err
	}
	return tenant.Identity{ID: o.ID, Username: o.Username, Email: o.Email}, nil
}

func (r *repository) FindUserByUsername(ctx context.Context, username, companyID string) (tenant.Identity, error) {
	var u user.User
	err := r.db.WithContext(ctx).
		Where("username = ? AND company_id = ?", username, companyID).
		First(&u).Error
	if err != nil {
		return tenant.Identity{}, err
	}
	return tenant.Identity{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CompanyID: u.CompanyID,
		Role:      u.Role,
	}, nil
}

func (r *repository) OwnerByUsername(ctx context.Context, username string) (*Owner, error) {
	var o Owner
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) UserByUsername(ctx context.Context, username string) (*user.User, error) {
	var u user.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) ExistsOwner(ctx context.Context, username string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Owner{}).Where("username = ?", username).Count(&n).Error
	return n > 0, err
}

func (r *repository) CreateOwner(ctx context.Context, o *Owner) error {
	return r.db.WithContext(ctx).Create(o).Error
}
