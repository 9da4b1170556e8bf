package attendance

import (
	"context"

	"go-timeclock/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ListFilter struct {
	DateFrom   string
	DateTo     string
	EmployeeID string
	Limit      int
	Offset     int
}

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Company(ctx context.Context, companyID string) (*CompanyRef, error)
	FindEmployee(ctx context.Context, companyID, id string) (*EmployeeRef, error)
	LockEmployee(ctx context.Context, companyID, number string) (*EmployeeRef, error)
	FindOpen(ctx context.Context, employeeID, date string) (*TimeEntry, error)
	ListStaleOpen(ctx context.Context, employeeID, beforeDate string) ([]TimeEntry, error)
	Create(ctx context.Context, e *TimeEntry) error
	Close(ctx context.Context, e *TimeEntry) error
	FindByID(ctx context.Context, companyID, id string) (*TimeEntry, error)
	Delete(ctx context.Context, companyID, id string) error
	List(ctx context.Context, companyID string, f ListFilter) ([]EntryRow, int64, error)
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

func (r *repository) Company(ctx context.Context, companyID string) (*CompanyRef, error) {
	var c CompanyRef
	err := r.db.WithContext(ctx).First(&c, "id = ?", companyID).Error
	return &c, err
}

func (r *repository) FindEmployee(ctx context.Context, companyID, id string) (*EmployeeRef, error) {
	var e EmployeeRef
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&e, "id = ?", id).Error
	return &e, err
}

// LockEmployee loads the employee by number and, on PostgreSQL, holds its
// row lock until the surrounding transaction ends. SQLite serializes writers
// on its own.
func (r *repository) LockEmployee(ctx context.Context, companyID, number string) (*EmployeeRef, error) {
	q := r.db.WithContext(ctx)
	if q.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var e EmployeeRef
	err := q.Scopes(tenant.Scope(companyID)).
		Where("number = ?", number).
		First(&e).Error
	return &e, err
}

func (r *repository) FindOpen(ctx context.Context, employeeID, date string) (*TimeEntry, error) {
	var e TimeEntry
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND date = ? AND status = ?", employeeID, date, StatusWorking).
		First(&e).Error
	return &e, err
}

func (r *repository) ListStaleOpen(ctx context.Context, employeeID, beforeDate string) ([]TimeEntry, error) {
	var entries []TimeEntry
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND status = ? AND date < ?", employeeID, StatusWorking, beforeDate).
		Order("date ASC").
		Find(&entries).Error
	return entries, err
}

func (r *repository) Create(ctx context.Context, e *TimeEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// Close persists the closing columns only. The row must still be working.
func (r *repository) Close(ctx context.Context, e *TimeEntry) error {
	res := r.db.WithContext(ctx).
		Model(&TimeEntry{}).
		Where("id = ? AND status = ?", e.ID, StatusWorking).
		Updates(map[string]any{
			"check_out":      e.CheckOut,
			"status":         e.Status,
			"last_scan_time": e.LastScanTime,
			"auto_closed":    e.AutoClosed,
			"updated_at":     e.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, companyID, id string) (*TimeEntry, error) {
	var e TimeEntry
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&e, "id = ?", id).Error
	return &e, err
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Delete(&TimeEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List returns entries newest first with the matching total. A zero Limit
// returns every row.
func (r *repository) List(ctx context.Context, companyID string, f ListFilter) ([]EntryRow, int64, error) {
	base := func() *gorm.DB {
		q := r.db.WithContext(ctx).
			Table("time_entries AS te").
			Joins("JOIN employees e ON e.id = te.employee_id").
			Scopes(tenant.ScopeTable("te", companyID))
		if f.DateFrom != "" {
			q = q.Where("te.date >= ?", f.DateFrom)
		}
		if f.DateTo != "" {
			q = q.Where("te.date <= ?", f.DateTo)
		}
		if f.EmployeeID != "" {
			q = q.Where("te.employee_id = ?", f.EmployeeID)
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := base().
		Select("te.*, e.name AS employee_name, e.surname AS employee_surname, " +
			"e.number AS employee_number, e.position AS employee_position").
		Order("te.date DESC, te.check_in DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	var rows []EntryRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
