package employee_test

import (
	"context"
	"testing"
	"time"

	"go-timeclock/internal/employee"
	"go-timeclock/internal/shared/dbutil"
	"go-timeclock/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedCompany(t *testing.T, db *gorm.DB, name string) string {
	t.Helper()
	id := uuid.NewString()
	require.NoError(t, db.Exec(
		"INSERT INTO companies (id, name, owner_id, created_at) VALUES (?, ?, 'system', CURRENT_TIMESTAMP)", id, name,
	).Error)
	return id
}

func newEmployee(companyID, number string) *employee.Employee {
	return &employee.Employee{
		ID:        uuid.NewString(),
		Name:      "John",
		Surname:   "Doe",
		Number:    number,
		QRPayload: "EMP_" + companyID + "_" + number + "_abcdef12",
		CompanyID: companyID,
	}
}

func TestRepository_NumberUniqueness(t *testing.T) {
	db := testutil.NewDB(t)
	repo := employee.NewRepository(db)
	ctx := context.Background()

	acme := seedCompany(t, db, "Acme")
	globex := seedCompany(t, db, "Globex")

	first := newEmployee(acme, "001")
	require.NoError(t, repo.Create(ctx, first))

	// same number in another company is fine
	require.NoError(t, repo.Create(ctx, newEmployee(globex, "001")))

	exists, err := repo.ExistsByNumber(ctx, acme, "001", "")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByNumber(ctx, acme, "001", first.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	err = repo.Create(ctx, newEmployee(acme, "001"))
	require.Error(t, err)
	assert.True(t, dbutil.IsUniqueViolation(err, "uq_employee_number", "employees.number"))
}

func TestRepository_UpdateAndScope(t *testing.T) {
	db := testutil.NewDB(t)
	repo := employee.NewRepository(db)
	ctx := context.Background()

	acme := seedCompany(t, db, "Acme")
	globex := seedCompany(t, db, "Globex")

	e := newEmployee(acme, "001")
	require.NoError(t, repo.Create(ctx, e))

	_, err := repo.FindByIDAndCompany(ctx, globex, e.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = repo.Update(ctx, globex, e.ID, map[string]any{"position": "Dev"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.Update(ctx, acme, e.ID, map[string]any{"position": "Dev"}))
	got, err := repo.FindByIDAndCompany(ctx, acme, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dev", got.Position)

	list, err := repo.FindAllByCompany(ctx, acme)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRepository_DeleteRemovesTimeEntries(t *testing.T) {
	db := testutil.NewDB(t)
	repo := employee.NewRepository(db)
	ctx := context.Background()

	acme := seedCompany(t, db, "Acme")
	e := newEmployee(acme, "001")
	require.NoError(t, repo.Create(ctx, e))

	now := time.Now().UTC()
	require.NoError(t, db.Exec(
		`INSERT INTO time_entries (id, employee_id, company_id, check_in, date, status, last_scan_time, created_at, updated_at)
		 VALUES (?, ?, ?, ?, '2026-01-05', 'working', ?, ?, ?)`,
		uuid.NewString(), e.ID, acme, now, now, now, now,
	).Error)

	require.NoError(t, repo.Delete(ctx, acme, e.ID))
	assert.Zero(t, testutil.Count(t, db, "time_entries", "employee_id = ?", e.ID))
	assert.Zero(t, testutil.Count(t, db, "employees", "id = ?", e.ID))

	assert.ErrorIs(t, repo.Delete(ctx, acme, e.ID), gorm.ErrRecordNotFound)
}
