package attendance_test

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"
	_ "time/tzdata"

	"go-timeclock/internal/attendance"
	attendanceerrors "go-timeclock/internal/attendance/errors"
	"go-timeclock/internal/messaging/kafka"
	"go-timeclock/internal/shared/keylock"
	"go-timeclock/internal/tenant"
	"go-timeclock/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type integration struct {
	db      *gorm.DB
	clock   *testutil.Clock
	service attendance.Service
}

func setupIntegration(t *testing.T) *integration {
	db := testutil.NewDB(t)
	clock := testutil.NewClock(start)
	svc := attendance.NewService(db, attendance.NewRepository(db), kafka.NewOutboxRepository(db), keylock.New(),
		attendance.Config{Now: clock.NowFunc(), DefaultLocation: time.UTC})
	return &integration{db: db, clock: clock, service: svc}
}

func (it *integration) seedCompany(t *testing.T, name string, timezone *string) string {
	t.Helper()
	id := uuid.NewString()
	require.NoError(t, it.db.Exec(
		"INSERT INTO companies (id, name, owner_id, timezone, created_at) VALUES (?, ?, 'system', ?, ?)",
		id, name, timezone, start,
	).Error)
	return id
}

func (it *integration) seedEmployee(t *testing.T, companyID, number string) string {
	t.Helper()
	id := uuid.NewString()
	require.NoError(t, it.db.Exec(
		`INSERT INTO employees (id, name, surname, position, number, qr_payload, qr_image, company_id, created_at, updated_at)
		 VALUES (?, 'John', 'Doe', 'Dev', ?, '', '', ?, ?, ?)`,
		id, number, companyID, start, start,
	).Error)
	return id
}

func scopedUser(companyID string) tenant.ScopedPrincipal {
	return tenant.ScopedPrincipal{ID: "user-" + companyID, Username: "reception", CompanyID: companyID, Role: tenant.RoleUser}
}

func scopedAdmin(companyID string) tenant.ScopedPrincipal {
	return tenant.ScopedPrincipal{ID: "admin-" + companyID, Username: "admin", CompanyID: companyID, Role: tenant.RoleAdmin}
}

func TestIntegration_ConcurrentScansOpenOneSession(t *testing.T) {
	it := setupIntegration(t)
	ctx := context.Background()

	acme := it.seedCompany(t, "Acme", nil)
	empID := it.seedEmployee(t, acme, "001")
	req := attendance.ScanRequest{QRData: payload(t, acme, "001")}

	const n = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		checkIns  int
		cooldowns int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := it.service.Scan(ctx, scopedUser(acme), req)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil && resp.Action == attendance.ActionCheckIn:
				checkIns++
			case assert.ErrorIs(t, err, attendanceerrors.ErrCooldown):
				cooldowns++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, checkIns)
	assert.Equal(t, n-1, cooldowns)
	assert.Equal(t, int64(1), testutil.Count(t, it.db, "time_entries", "employee_id = ? AND status = ?", empID, attendance.StatusWorking))
	assert.Equal(t, int64(1), testutil.Count(t, it.db, "outbox_events", "aggregate_type = ?", "time_entry"))
}

func TestIntegration_ScanCycle(t *testing.T) {
	it := setupIntegration(t)
	ctx := context.Background()

	acme := it.seedCompany(t, "Acme", nil)
	empID := it.seedEmployee(t, acme, "001")
	req := attendance.ScanRequest{QRData: payload(t, acme, "001")}
	user := scopedUser(acme)

	resp, err := it.service.Scan(ctx, user, req)
	require.NoError(t, err)
	assert.Equal(t, attendance.ActionCheckIn, resp.Action)
	firstID := resp.EntryID

	// cooldown counts down and never mutates the entry
	previous := attendance.CooldownSeconds + 1
	for _, offset := range []time.Duration{time.Second, 2500 * time.Millisecond, 4 * time.Second} {
		it.clock.Set(start.Add(offset))
		_, err := it.service.Scan(ctx, user, req)
		require.ErrorIs(t, err, attendanceerrors.ErrCooldown)
		remaining := cooldownRemaining(t, err)
		assert.Less(t, remaining, previous)
		assert.GreaterOrEqual(t, remaining, 1)
		previous = remaining
	}

	it.clock.Set(start.Add(8 * time.Hour))
	resp, err = it.service.Scan(ctx, user, req)
	require.NoError(t, err)
	assert.Equal(t, attendance.ActionCheckOut, resp.Action)
	assert.Equal(t, firstID, resp.EntryID)
	require.NotNil(t, resp.HoursWorked)
	assert.Equal(t, 8.0, *resp.HoursWorked)

	// a completed entry stays completed; the next scan opens a new one
	it.clock.Set(start.Add(8*time.Hour + 10*time.Second))
	resp, err = it.service.Scan(ctx, user, req)
	require.NoError(t, err)
	assert.Equal(t, attendance.ActionCheckIn, resp.Action)
	assert.NotEqual(t, firstID, resp.EntryID)

	assert.Equal(t, int64(2), testutil.Count(t, it.db, "time_entries", "employee_id = ?", empID))
	assert.Equal(t, int64(1), testutil.Count(t, it.db, "time_entries", "employee_id = ? AND status = ?", empID, attendance.StatusCompleted))
}

func TestIntegration_MidnightAutoClose(t *testing.T) {
	it := setupIntegration(t)
	ctx := context.Background()

	zone := "Europe/Warsaw"
	loc, err := time.LoadLocation(zone)
	require.NoError(t, err)

	acme := it.seedCompany(t, "Acme", &zone)
	empID := it.seedEmployee(t, acme, "001")
	req := attendance.ScanRequest{QRData: payload(t, acme, "001")}

	it.clock.Set(time.Date(2026, 3, 2, 22, 0, 0, 0, loc))
	resp, err := it.service.Scan(ctx, scopedUser(acme), req)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", resp.Date)
	assert.Equal(t, "22:00:00", resp.Time)
	staleID := resp.EntryID

	it.clock.Set(time.Date(2026, 3, 3, 8, 0, 0, 0, loc))
	resp, err = it.service.Scan(ctx, scopedUser(acme), req)
	require.NoError(t, err)
	assert.Equal(t, attendance.ActionCheckIn, resp.Action)
	assert.Equal(t, "2026-03-03", resp.Date)

	var stale attendance.TimeEntry
	require.NoError(t, it.db.First(&stale, "id = ?", staleID).Error)
	assert.True(t, stale.AutoClosed)
	assert.Equal(t, attendance.StatusCompleted, stale.Status)
	require.NotNil(t, stale.CheckOut)
	assert.True(t, stale.CheckOut.Equal(time.Date(2026, 3, 2, 23, 59, 59, 0, loc)))

	assert.Equal(t, int64(1), testutil.Count(t, it.db, "time_entries", "employee_id = ? AND status = ?", empID, attendance.StatusWorking))
}

func TestIntegration_CrossTenantIsolation(t *testing.T) {
	it := setupIntegration(t)
	ctx := context.Background()

	acme := it.seedCompany(t, "Acme", nil)
	globex := it.seedCompany(t, "Globex", nil)
	it.seedEmployee(t, acme, "001")
	globexEmp := it.seedEmployee(t, globex, "001")

	_, err := it.service.Scan(ctx, scopedUser(acme), attendance.ScanRequest{QRData: payload(t, globex, "001")})
	assert.ErrorIs(t, err, attendanceerrors.ErrCrossTenant)
	assert.Zero(t, testutil.Count(t, it.db, "time_entries", "employee_id = ?", globexEmp))

	_, err = it.service.Scan(ctx, scopedUser(acme), attendance.ScanRequest{QRData: payload(t, acme, "999")})
	assert.ErrorIs(t, err, attendanceerrors.ErrUnknownEmployee)

	_, err = it.service.Scan(ctx, scopedUser(acme), attendance.ScanRequest{QRData: payload(t, acme, "001")})
	require.NoError(t, err)

	result, err := it.service.ListEntries(ctx, scopedAdmin(globex), attendance.ListEntriesRequest{})
	require.NoError(t, err)
	assert.Zero(t, result.Total)

	result, err = it.service.ListEntries(ctx, scopedAdmin(acme), attendance.ListEntriesRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
}

func TestIntegration_ManualEntriesAndReport(t *testing.T) {
	it := setupIntegration(t)
	ctx := context.Background()

	acme := it.seedCompany(t, "Acme", nil)
	empID := it.seedEmployee(t, acme, "001")
	admin := scopedAdmin(acme)

	out := "17:15"
	entry, err := it.service.CreateManual(ctx, admin, attendance.ManualEntryRequest{
		EmployeeID: empID, Date: "2026-02-27", CheckIn: "09:00", CheckOut: &out,
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.SourceManual, entry.Source)
	require.NotNil(t, entry.HoursWorked)
	assert.Equal(t, 8.25, *entry.HoursWorked)

	_, err = it.service.CreateManual(ctx, admin, attendance.ManualEntryRequest{
		EmployeeID: empID, Date: "2026-03-02", CheckIn: "08:00",
	})
	require.NoError(t, err)

	_, err = it.service.CreateManual(ctx, admin, attendance.ManualEntryRequest{
		EmployeeID: empID, Date: "2026-03-02", CheckIn: "08:30",
	})
	assert.ErrorIs(t, err, attendanceerrors.ErrOpenSession)

	result, err := it.service.ListEntries(ctx, admin, attendance.ListEntriesRequest{DateTo: "2026-02-28"})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "John Doe", result.Items[0].EmployeeName)
	assert.Equal(t, "001", result.Items[0].EmployeeNumber)
	assert.Equal(t, "Dev", result.Items[0].EmployeePosition)

	result, err = it.service.ListEntries(ctx, admin, attendance.ListEntriesRequest{})
	require.NoError(t, err)
	require.Len(t, result.Items, 2)
	assert.Equal(t, "2026-03-02", result.Items[0].Date)

	doc, err := it.service.Report(ctx, admin, attendance.ListEntriesRequest{})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))

	require.NoError(t, it.service.DeleteEntry(ctx, admin, entry.ID))
	assert.ErrorIs(t, it.service.DeleteEntry(ctx, admin, entry.ID), attendanceerrors.ErrTimeEntryNotFound)
	assert.Equal(t, int64(1), testutil.Count(t, it.db, "time_entries", "employee_id = ?", empID))
}

func TestIntegration_FutureManualEntryKeepsScansWorking(t *testing.T) {
	it := setupIntegration(t)
	ctx := context.Background()

	acme := it.seedCompany(t, "Acme", nil)
	empID := it.seedEmployee(t, acme, "001")

	_, err := it.service.CreateManual(ctx, scopedAdmin(acme), attendance.ManualEntryRequest{
		EmployeeID: empID, Date: "2026-03-02", CheckIn: "18:00",
	})
	require.ErrorIs(t, err, attendanceerrors.ErrFutureTime)
	assert.Equal(t, int64(0), testutil.Count(t, it.db, "time_entries", "employee_id = ?", empID))

	req := attendance.ScanRequest{QRData: payload(t, acme, "001")}
	resp, err := it.service.Scan(ctx, scopedUser(acme), req)
	require.NoError(t, err)
	assert.Equal(t, attendance.ActionCheckIn, resp.Action)

	it.clock.Set(start.Add(time.Hour))
	resp, err = it.service.Scan(ctx, scopedUser(acme), req)
	require.NoError(t, err)
	assert.Equal(t, attendance.ActionCheckOut, resp.Action)
}
