package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"go-timeclock/internal/config"
	"go-timeclock/internal/database"
	"go-timeclock/internal/shared/connection"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var dbSeq atomic.Int64

// NewDB returns a migrated in-memory SQLite store private to the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:timeclock_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := connection.ConnectSQLite(dsn)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Up(sqlDB, config.DriverSQLite))
	return db
}

// Count returns the number of rows in table matching where.
func Count(t *testing.T, db *gorm.DB, table string, where string, args ...any) int64 {
	t.Helper()

	var n int64
	q := db.Table(table)
	if where != "" {
		q = q.Where(where, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}
