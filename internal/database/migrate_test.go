package database_test

import (
	"testing"

	"go-timeclock/internal/config"
	"go-timeclock/internal/database"
	"go-timeclock/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUp_CreatesSchema(t *testing.T) {
	db := testutil.NewDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	for _, table := range []string{"owners", "companies", "users", "employees", "time_entries", "company_counters", "outbox_events"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	status, err := database.Status(sqlDB, config.DriverSQLite)
	require.NoError(t, err)
	assert.False(t, status.Pending)
	assert.False(t, status.Dirty)
	assert.Equal(t, status.LatestVersion, status.CurrentVersion)

	// Running again is a no-op.
	assert.NoError(t, database.Up(sqlDB, config.DriverSQLite))
}

func TestOpenSessionIndex(t *testing.T) {
	db := testutil.NewDB(t)

	require.NoError(t, db.Exec(`INSERT INTO companies (id, name, owner_id, created_at) VALUES ('c1', 'Acme', 'system', CURRENT_TIMESTAMP)`).Error)
	require.NoError(t, db.Exec(`INSERT INTO employees (id, name, surname, number, qr_payload, company_id, created_at, updated_at)
		VALUES ('e1', 'Ada', 'L', '007', 'EMP_c1_007_x', 'c1', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`).Error)

	insert := `INSERT INTO time_entries (id, employee_id, company_id, check_in, date, status, last_scan_time, created_at, updated_at)
		VALUES (?, 'e1', 'c1', CURRENT_TIMESTAMP, '2026-03-02', ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`

	require.NoError(t, db.Exec(insert, "t1", "completed").Error)
	require.NoError(t, db.Exec(insert, "t2", "working").Error)
	assert.Error(t, db.Exec(insert, "t3", "working").Error)
	assert.NoError(t, db.Exec(insert, "t4", "completed").Error)
}
