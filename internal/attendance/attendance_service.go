package attendance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	attendanceerrors "go-timeclock/internal/attendance/errors"
	employeeerrors "go-timeclock/internal/employee/errors"
	"go-timeclock/internal/events"
	"go-timeclock/internal/messaging/kafka"
	"go-timeclock/internal/qrcode"
	"go-timeclock/internal/shared/apperror"
	"go-timeclock/internal/shared/contextutil"
	"go-timeclock/internal/shared/dbutil"
	"go-timeclock/internal/shared/keylock"
	"go-timeclock/internal/tenant"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	Cooldown        = 5 * time.Second
	CooldownSeconds = 5

	defaultPageSize = 50
	aggregateType   = "time_entry"
	openSessionIdx  = "uq_time_entry_open_session"
)

//go:generate mockgen -destination=mock/attendance_service_mock.go -package=mock . Service
type Service interface {
	Scan(ctx context.Context, p tenant.Principal, req ScanRequest) (ScanResponse, error)
	ListEntries(ctx context.Context, p tenant.Principal, req ListEntriesRequest) (ListEntriesResult, error)
	CreateManual(ctx context.Context, p tenant.Principal, req ManualEntryRequest) (TimeEntryResponse, error)
	DeleteEntry(ctx context.Context, p tenant.Principal, id string) error
	Report(ctx context.Context, p tenant.Principal, req ListEntriesRequest) ([]byte, error)
}

// Config carries the clock and the zone used for companies without one.
type Config struct {
	Now             func() time.Time
	DefaultLocation *time.Location
}

type service struct {
	db     *gorm.DB
	repo   Repository
	outbox kafka.OutboxRepository
	locks  *keylock.KeyedMutex
	now    func() time.Time
	defLoc *time.Location
	logger *zap.Logger
}

// NewService wires the attendance engine. outbox may be nil; locks is
// shared by every caller that mutates time entries.
func NewService(
	db *gorm.DB,
	repo Repository,
	outbox kafka.OutboxRepository,
	locks *keylock.KeyedMutex,
	cfg Config,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.DefaultLocation == nil {
		cfg.DefaultLocation = time.Local
	}
	if locks == nil {
		locks = keylock.New()
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outbox,
		locks:  locks,
		now:    cfg.Now,
		defLoc: cfg.DefaultLocation,
		logger: l,
	}
}

func (s *service) Scan(ctx context.Context, p tenant.Principal, req ScanRequest) (ScanResponse, error) {
	sp, err := tenant.RequireScoped(p)
	if err != nil {
		return ScanResponse{}, err
	}

	l := contextutil.GetLogger(ctx, s.logger)

	identity, err := qrcode.Decode(strings.TrimSpace(req.QRData))
	if err != nil {
		return ScanResponse{}, err
	}
	if identity.CompanyID != sp.CompanyID {
		l.Warn("cross tenant scan rejected",
			zap.String("company_id", sp.CompanyID),
			zap.String("qr_company_id", identity.CompanyID),
		)
		return ScanResponse{}, attendanceerrors.ErrCrossTenant
	}

	unlock := s.locks.Lock(keylock.EmployeeKey(sp.CompanyID, identity.EmployeeNumber))
	defer unlock()

	var resp ScanResponse
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		empl, err := repo.LockEmployee(ctx, sp.CompanyID, identity.EmployeeNumber)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return attendanceerrors.ErrUnknownEmployee
			}
			return err
		}

		loc, err := s.location(ctx, repo, sp.CompanyID)
		if err != nil {
			return err
		}

		now := s.now().UTC()
		today := now.In(loc).Format(dateLayout)

		if err := s.closeStale(ctx, tx, repo, empl, today, now, loc, sp.ID); err != nil {
			return err
		}

		entry, action, err := s.toggle(ctx, repo, empl, today, now)
		if err != nil {
			return err
		}

		eventType := events.AttendanceCheckIn
		if action == ActionCheckOut {
			eventType = events.AttendanceCheckOut
		}
		if err := s.writeEvent(ctx, tx, eventType, entry, empl, sp.ID, now); err != nil {
			return err
		}

		resp = scanResponse(action, entry, empl, now, loc)
		return nil
	})
	if err != nil {
		var appErr *apperror.AppError
		switch {
		case errors.Is(err, attendanceerrors.ErrCooldown):
			l.Debug("scan within cooldown", zap.String("employee_number", identity.EmployeeNumber))
		case !errors.As(err, &appErr):
			l.Error("scan failed", zap.String("employee_number", identity.EmployeeNumber), zap.Error(err))
		}
		return ScanResponse{}, err
	}

	l.Info("scan recorded",
		zap.String("action", resp.Action),
		zap.String("entry_id", resp.EntryID),
		zap.String("employee_number", identity.EmployeeNumber),
	)
	return resp, nil
}

// toggle checks out the open entry for today or opens a new one.
func (s *service) toggle(ctx context.Context, repo Repository, empl *EmployeeRef, today string, now time.Time) (*TimeEntry, string, error) {
	open, err := repo.FindOpen(ctx, empl.ID, today)
	switch {
	case err == nil:
		if elapsed := now.Sub(open.LastScanTime); elapsed < Cooldown {
			return nil, "", cooldownError(elapsed)
		}
		open.CheckOut = &now
		open.Status = StatusCompleted
		open.LastScanTime = now
		open.UpdatedAt = now
		if err := repo.Close(ctx, open); err != nil {
			return nil, "", err
		}
		return open, ActionCheckOut, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		entry := &TimeEntry{
			ID:           uuid.NewString(),
			EmployeeID:   empl.ID,
			CompanyID:    empl.CompanyID,
			CheckIn:      now,
			Date:         today,
			Status:       StatusWorking,
			LastScanTime: now,
			Source:       SourceScan,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := repo.Create(ctx, entry); err != nil {
			return nil, "", mapRepositoryError(err)
		}
		return entry, ActionCheckIn, nil

	default:
		return nil, "", err
	}
}

// closeStale completes working entries from earlier days at the last second
// of their own date, never later than now.
func (s *service) closeStale(
	ctx context.Context,
	tx *gorm.DB,
	repo Repository,
	empl *EmployeeRef,
	today string,
	now time.Time,
	loc *time.Location,
	actorID string,
) error {
	stale, err := repo.ListStaleOpen(ctx, empl.ID, today)
	if err != nil {
		return err
	}

	for i := range stale {
		entry := &stale[i]
		closeAt := endOfDay(entry.Date, loc, now)
		entry.CheckOut = &closeAt
		entry.Status = StatusCompleted
		entry.AutoClosed = true
		entry.UpdatedAt = now
		if err := repo.Close(ctx, entry); err != nil {
			return err
		}
		if err := s.writeEvent(ctx, tx, events.AttendanceAutoClosed, entry, empl, actorID, now); err != nil {
			return err
		}

		contextutil.GetLogger(ctx, s.logger).Info("stale session auto-closed",
			zap.String("entry_id", entry.ID),
			zap.String("date", entry.Date),
		)
	}
	return nil
}

func (s *service) ListEntries(ctx context.Context, p tenant.Principal, req ListEntriesRequest) (ListEntriesResult, error) {
	admin, err := tenant.RequireAdmin(p)
	if err != nil {
		return ListEntriesResult{}, err
	}

	page, pageSize := req.Page, req.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	filter, err := listFilter(req)
	if err != nil {
		return ListEntriesResult{}, err
	}
	filter.Limit = pageSize
	filter.Offset = (page - 1) * pageSize

	loc, err := s.location(ctx, s.repo, admin.CompanyID)
	if err != nil {
		return ListEntriesResult{}, err
	}

	rows, total, err := s.repo.List(ctx, admin.CompanyID, filter)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("list time entries failed", zap.Error(err))
		return ListEntriesResult{}, err
	}

	return ListEntriesResult{
		Items:    mapRows(rows, loc),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *service) CreateManual(ctx context.Context, p tenant.Principal, req ManualEntryRequest) (TimeEntryResponse, error) {
	admin, err := tenant.RequireAdmin(p)
	if err != nil {
		return TimeEntryResponse{}, err
	}

	l := contextutil.GetLogger(ctx, s.logger)

	empl, err := s.repo.FindEmployee(ctx, admin.CompanyID, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TimeEntryResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return TimeEntryResponse{}, err
	}

	unlock := s.locks.Lock(keylock.EmployeeKey(admin.CompanyID, empl.Number))
	defer unlock()

	var (
		entry *TimeEntry
		loc   *time.Location
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		locked, err := repo.LockEmployee(ctx, admin.CompanyID, empl.Number)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return employeeerrors.ErrEmployeeNotFound
			}
			return err
		}
		empl = locked

		loc, err = s.location(ctx, repo, admin.CompanyID)
		if err != nil {
			return err
		}

		entry, err = s.manualEntry(req, empl, loc)
		if err != nil {
			return err
		}

		if entry.Status == StatusWorking {
			if _, err := repo.FindOpen(ctx, empl.ID, entry.Date); err == nil {
				return attendanceerrors.ErrOpenSession
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		if err := repo.Create(ctx, entry); err != nil {
			return mapRepositoryError(err)
		}

		return s.writeEvent(ctx, tx, events.AttendanceManualEntry, entry, empl, admin.ID, entry.CreatedAt)
	})
	if err != nil {
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			l.Error("manual time entry failed", zap.String("employee_id", req.EmployeeID), zap.Error(err))
		}
		return TimeEntryResponse{}, err
	}

	l.Info("manual time entry created",
		zap.String("entry_id", entry.ID),
		zap.String("employee_id", empl.ID),
		zap.String("date", entry.Date),
	)

	return mapRow(EntryRow{
		TimeEntry:        *entry,
		EmployeeName:     empl.Name,
		EmployeeSurname:  empl.Surname,
		EmployeeNumber:   empl.Number,
		EmployeePosition: empl.Position,
	}, loc), nil
}

func (s *service) manualEntry(req ManualEntryRequest, empl *EmployeeRef, loc *time.Location) (*TimeEntry, error) {
	checkIn, err := time.ParseInLocation(dateLayout+" 15:04", req.Date+" "+req.CheckIn, loc)
	if err != nil {
		return nil, apperror.InvalidField("Check In")
	}

	now := s.now().UTC()
	if checkIn.After(now) {
		return nil, attendanceerrors.ErrFutureTime
	}
	entry := &TimeEntry{
		ID:           uuid.NewString(),
		EmployeeID:   empl.ID,
		CompanyID:    empl.CompanyID,
		CheckIn:      checkIn.UTC(),
		Date:         req.Date,
		Status:       StatusWorking,
		LastScanTime: checkIn.UTC(),
		Source:       SourceManual,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if req.CheckOut != nil && *req.CheckOut != "" {
		checkOut, err := time.ParseInLocation(dateLayout+" 15:04", req.Date+" "+*req.CheckOut, loc)
		if err != nil {
			return nil, apperror.InvalidField("Check Out")
		}
		if !checkOut.After(checkIn) {
			return nil, attendanceerrors.ErrInvalidTimeRange
		}
		if checkOut.After(now) {
			return nil, attendanceerrors.ErrFutureTime
		}
		out := checkOut.UTC()
		entry.CheckOut = &out
		entry.Status = StatusCompleted
		entry.LastScanTime = out
	}
	return entry, nil
}

func (s *service) DeleteEntry(ctx context.Context, p tenant.Principal, id string) error {
	admin, err := tenant.RequireAdmin(p)
	if err != nil {
		return err
	}

	l := contextutil.GetLogger(ctx, s.logger)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		entry, err := repo.FindByID(ctx, admin.CompanyID, id)
		if err != nil {
			return mapRepositoryError(err)
		}
		if err := repo.Delete(ctx, admin.CompanyID, id); err != nil {
			return mapRepositoryError(err)
		}

		empl := &EmployeeRef{ID: entry.EmployeeID, CompanyID: entry.CompanyID}
		return s.writeEvent(ctx, tx, events.AttendanceEntryDeleted, entry, empl, admin.ID, s.now().UTC())
	})
	if err != nil {
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			l.Error("delete time entry failed", zap.String("entry_id", id), zap.Error(err))
		}
		return err
	}

	l.Info("time entry deleted", zap.String("entry_id", id))
	return nil
}

func (s *service) Report(ctx context.Context, p tenant.Principal, req ListEntriesRequest) ([]byte, error) {
	admin, err := tenant.RequireAdmin(p)
	if err != nil {
		return nil, err
	}

	filter, err := listFilter(req)
	if err != nil {
		return nil, err
	}

	company, err := s.repo.Company(ctx, admin.CompanyID)
	if err != nil {
		return nil, err
	}
	loc := s.locationOf(company)

	rows, _, err := s.repo.List(ctx, admin.CompanyID, filter)
	if err != nil {
		return nil, err
	}

	doc, err := renderTimesheet(timesheet{
		Company:  company.Name,
		DateFrom: filter.DateFrom,
		DateTo:   filter.DateTo,
		Zone:     loc.String(),
		Entries:  mapRows(rows, loc),
	})
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("render timesheet failed", zap.Error(err))
		return nil, err
	}
	return doc, nil
}

func (s *service) location(ctx context.Context, repo Repository, companyID string) (*time.Location, error) {
	company, err := repo.Company(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return s.locationOf(company), nil
}

// locationOf falls back to the default zone for unset or unknown names.
func (s *service) locationOf(c *CompanyRef) *time.Location {
	if c == nil || c.Timezone == nil || *c.Timezone == "" {
		return s.defLoc
	}
	loc, err := time.LoadLocation(*c.Timezone)
	if err != nil {
		return s.defLoc
	}
	return loc
}

func (s *service) writeEvent(
	ctx context.Context,
	tx *gorm.DB,
	eventType string,
	entry *TimeEntry,
	empl *EmployeeRef,
	actorID string,
	at time.Time,
) error {
	if s.outbox == nil {
		return nil
	}

	event, err := kafka.NewOutboxEvent(ctx, aggregateType, entry.ID, eventType, events.AttendanceTopic, events.AttendanceRecordedEvent{
		EventType:      eventType,
		TimeEntryID:    entry.ID,
		EmployeeID:     entry.EmployeeID,
		EmployeeNumber: empl.Number,
		CompanyID:      entry.CompanyID,
		Date:           entry.Date,
		CheckIn:        entry.CheckIn,
		CheckOut:       entry.CheckOut,
		Source:         entry.Source,
		RecordedBy:     actorID,
		OccurredAt:     at,
	})
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, event)
}

// cooldownError reports the whole seconds left, between 1 and CooldownSeconds.
func cooldownError(elapsed time.Duration) error {
	remaining := int(math.Ceil((Cooldown - elapsed).Seconds()))
	if remaining < 1 {
		remaining = 1
	}
	if remaining > CooldownSeconds {
		remaining = CooldownSeconds
	}
	return attendanceerrors.ErrCooldown.
		WithMessage(fmt.Sprintf("Wait %d seconds before scanning again", remaining)).
		WithDetails(map[string]any{"remaining_seconds": remaining})
}

func endOfDay(date string, loc *time.Location, now time.Time) time.Time {
	day, err := time.ParseInLocation(dateLayout, date, loc)
	if err != nil {
		return now
	}
	end := day.AddDate(0, 0, 1).Add(-time.Second).UTC()
	if end.After(now) {
		return now
	}
	return end
}

func listFilter(req ListEntriesRequest) (ListFilter, error) {
	for field, v := range map[string]string{"Date From": req.DateFrom, "Date To": req.DateTo} {
		if v == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, v); err != nil {
			return ListFilter{}, apperror.InvalidField(field)
		}
	}
	if req.DateFrom != "" && req.DateTo != "" && req.DateTo < req.DateFrom {
		return ListFilter{}, apperror.ErrInvalidInput.WithMessage("date_to must not be before date_from")
	}
	return ListFilter{
		DateFrom:   req.DateFrom,
		DateTo:     req.DateTo,
		EmployeeID: strings.TrimSpace(req.EmployeeID),
	}, nil
}

func hoursWorked(in time.Time, out *time.Time) *float64 {
	if out == nil {
		return nil
	}
	seconds := decimal.NewFromInt(int64(out.Sub(in) / time.Second))
	hours := seconds.Div(decimal.NewFromInt(3600)).Round(2).InexactFloat64()
	return &hours
}

func scanResponse(action string, e *TimeEntry, empl *EmployeeRef, now time.Time, loc *time.Location) ScanResponse {
	resp := ScanResponse{
		Action:          action,
		Employee:        empl.FullName(),
		Time:            now.In(loc).Format("15:04:05"),
		CooldownSeconds: CooldownSeconds,
		EntryID:         e.ID,
		Status:          e.Status,
		Date:            e.Date,
	}
	if action == ActionCheckOut {
		resp.Message = "Work finished"
		resp.HoursWorked = hoursWorked(e.CheckIn, e.CheckOut)
	} else {
		resp.Message = "Work started"
	}
	return resp
}

func mapRow(r EntryRow, loc *time.Location) TimeEntryResponse {
	resp := TimeEntryResponse{
		ID:               r.ID,
		EmployeeID:       r.EmployeeID,
		EmployeeName:     strings.TrimSpace(r.EmployeeName + " " + r.EmployeeSurname),
		EmployeeNumber:   r.EmployeeNumber,
		EmployeePosition: r.EmployeePosition,
		Date:             r.Date,
		CheckIn:          r.CheckIn.In(loc).Format(time.RFC3339),
		Status:           r.Status,
		HoursWorked:      hoursWorked(r.CheckIn, r.CheckOut),
		AutoClosed:       r.AutoClosed,
		Source:           r.Source,
	}
	if r.CheckOut != nil {
		v := r.CheckOut.In(loc).Format(time.RFC3339)
		resp.CheckOut = &v
	}
	return resp
}

func mapRows(rows []EntryRow, loc *time.Location) []TimeEntryResponse {
	res := make([]TimeEntryResponse, len(rows))
	for i, r := range rows {
		res[i] = mapRow(r, loc)
	}
	return res
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return attendanceerrors.ErrTimeEntryNotFound
	}
	if dbutil.IsUniqueViolation(err, openSessionIdx, "time_entries.employee_id") {
		return attendanceerrors.ErrOpenSession
	}
	return err
}
