package company

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -destination=mock/company_repo_mock.go -package=mock . Repository
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, company *Company) error
	ExistsByName(ctx context.Context, name string) (bool, error)
	GetByID(ctx context.Context, id string) (*Company, error)
	ListWithCounts(ctx context.Context) ([]CompanyWithCounts, error)
	UpdateTimezone(ctx context.Context, id string, timezone *string) error
	DeleteCascade(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, company *Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *repository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Company{}).Where("name = ?", name).Count(&n).Error
	return n > 0, err
}

func (r *repository) GetByID(ctx context.Context, id string) (*Company, error) {
	var company Company
	err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error
	return &company, err
}

func (r *repository) ListWithCounts(ctx context.Context) ([]CompanyWithCounts, error) {
	var rows []CompanyWithCounts
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			c.id, c.name, c.owner_id, c.timezone, c.created_at,
			(SELECT COUNT(*) FROM users u WHERE u.company_id = c.id AND u.role = 'admin') AS admin_count,
			(SELECT COUNT(*) FROM users u WHERE u.company_id = c.id) AS user_count,
			(SELECT COUNT(*) FROM employees e WHERE e.company_id = c.id) AS employee_count
		FROM companies c
		ORDER BY c.created_at ASC, c.name ASC
	`).Scan(&rows).Error
	return rows, err
}

func (r *repository) UpdateTimezone(ctx context.Context, id string, timezone *string) error {
	res := r.db.WithContext(ctx).
		Model(&Company{}).
		Where("id = ?", id).
		Update("timezone", timezone)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteCascade removes the company and everything it owns. Call it on a
// transaction-bound repository.
func (r *repository) DeleteCascade(ctx context.Context, id string) error {
	db := r.db.WithContext(ctx)

	steps := []string{
		"DELETE FROM time_entries WHERE employee_id IN (SELECT id FROM employees WHERE company_id = ?) OR company_id = ?",
		"DELETE FROM users WHERE company_id = ?",
		"DELETE FROM employees WHERE company_id = ?",
		"DELETE FROM company_counters WHERE company_id = ?",
	}
	for i, stmt := range steps {
		args := []any{id}
		if i == 0 {
			args = append(args, id)
		}
		if err := db.Exec(stmt, args...).Error; err != nil {
			return err
		}
	}

	res := db.Where("id = ?", id).Delete(&Company{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
