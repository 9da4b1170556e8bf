package employee

import (
	"context"

	"go-timeclock/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, e *Employee) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Employee, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Employee, error)
	ExistsByNumber(ctx context.Context, companyID, number, excludeID string) (bool, error)
	Update(ctx context.Context, companyID, id string, fields map[string]any) error
	Delete(ctx context.Context, companyID, id string) error
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

func (r *repository) Create(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("surname ASC, name ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&e, "id = ?", id).Error
	return &e, err
}

// ExistsByNumber checks (company, number) uniqueness, ignoring excludeID.
func (r *repository) ExistsByNumber(ctx context.Context, companyID, number, excludeID string) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&Employee{}).
		Scopes(tenant.Scope(companyID)).
		Where("number = ?", number)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var n int64
	err := q.Count(&n).Error
	return n > 0, err
}

func (r *repository) Update(ctx context.Context, companyID, id string, fields map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&Employee{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the employee and its time entries.
func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	db := r.db.WithContext(ctx)

	if err := db.Exec(
		"DELETE FROM time_entries WHERE employee_id = ? AND company_id = ?", id, companyID,
	).Error; err != nil {
		return err
	}

	res := db.Scopes(tenant.Scope(companyID)).Where("id = ?", id).Delete(&Employee{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
