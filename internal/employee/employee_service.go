package employee

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	employeeerrors "go-timeclock/internal/employee/errors"
	"go-timeclock/internal/events"
	"go-timeclock/internal/messaging/kafka"
	"go-timeclock/internal/qrcode"
	"go-timeclock/internal/shared/apperror"
	"go-timeclock/internal/shared/contextutil"
	"go-timeclock/internal/shared/counter"
	"go-timeclock/internal/shared/keylock"
	"go-timeclock/internal/tenant"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	EmployeeListKeyPrefix = "employees:list:"

	listCacheTTL    = time.Hour
	aggregateType   = "employee"
	generatedFormat = "EMP-%06d"

	// maxGenerateAttempts bounds how many counter values Create skips over
	// when hand-entered numbers already occupy the generated sequence.
	maxGenerateAttempts = 100
)

func EmployeeListKey(companyID string) string {
	return EmployeeListKeyPrefix + companyID
}

//go:generate mockgen -destination=mock/employee_service_mock.go -package=mock . Service
type Service interface {
	List(ctx context.Context, p tenant.Principal) ([]EmployeeResponse, error)
	Create(ctx context.Context, p tenant.Principal, req CreateEmployeeRequest) (EmployeeResponse, error)
	Get(ctx context.Context, p tenant.Principal, id string) (EmployeeResponse, error)
	Update(ctx context.Context, p tenant.Principal, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, p tenant.Principal, id string) error
}

type service struct {
	db       *gorm.DB
	repo     Repository
	counter  counter.Repository
	outbox   kafka.OutboxRepository
	renderer qrcode.Renderer
	rdb      redis.UniversalClient
	locks    *keylock.KeyedMutex
	sf       *singleflight.Group
	now      func() time.Time
	logger   *zap.Logger
}

// NewService wires the employee service. outbox and rdb may be nil. locks
// must be the mutex the attendance service scans under; nil gets a private one.
func NewService(
	db *gorm.DB,
	repo Repository,
	counter counter.Repository,
	outbox kafka.OutboxRepository,
	renderer qrcode.Renderer,
	rdb redis.UniversalClient,
	locks *keylock.KeyedMutex,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	if locks == nil {
		locks = keylock.New()
	}
	return &service{
		db:       db,
		repo:     repo,
		counter:  counter,
		outbox:   outbox,
		renderer: renderer,
		rdb:      rdb,
		locks:    locks,
		sf:       &singleflight.Group{},
		now:      func() time.Time { return time.Now().UTC() },
		logger:   l,
	}
}

func (s *service) List(ctx context.Context, p tenant.Principal) ([]EmployeeResponse, error) {
	admin, err := tenant.RequireAdmin(p)
	if err != nil {
		return nil, err
	}

	cacheKey := EmployeeListKey(admin.CompanyID)
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []EmployeeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		emps, err := s.repo.FindAllByCompany(ctx, admin.CompanyID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(emps)
		if s.rdb != nil {
			if data, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, data, listCacheTTL)
			}
		}
		return resp, nil
	})
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("list employees failed", zap.Error(err))
		return nil, err
	}

	return v.([]EmployeeResponse), nil
}

func (s *service) Create(ctx context.Context, p tenant.Principal, req CreateEmployeeRequest) (EmployeeResponse, error) {
	admin, err := tenant.RequireAdmin(p)
	if err != nil {
		return EmployeeResponse{}, err
	}

	l := contextutil.GetLogger(ctx, s.logger)

	name, surname := strings.TrimSpace(req.Name), strings.TrimSpace(req.Surname)
	if name == "" {
		return EmployeeResponse{}, apperror.RequiredField("Name")
	}
	if surname == "" {
		return EmployeeResponse{}, apperror.RequiredField("Surname")
	}

	number := strings.TrimSpace(req.Number)
	if req.Number != "" && !qrcode.ValidComponent(number) {
		return EmployeeResponse{}, employeeerrors.ErrInvalidNumber
	}

	now := s.now()
	empl := &Employee{
		ID:        uuid.NewString(),
		Name:      name,
		Surname:   surname,
		Position:  strings.TrimSpace(req.Position),
		CompanyID: admin.CompanyID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		employees := s.repo.WithTx(tx)

		if number == "" {
			generated, err := s.generateNumber(ctx, s.counter.WithTx(tx), employees, admin.CompanyID)
			if err != nil {
				return err
			}
			number = generated
		} else {
			exists, err := employees.ExistsByNumber(ctx, admin.CompanyID, number, "")
			if err != nil {
				return err
			}
			if exists {
				return employeeerrors.ErrDuplicateNumber
			}
		}

		empl.Number = number
		if err := s.issueQR(empl); err != nil {
			return err
		}

		if err := employees.Create(ctx, empl); err != nil {
			return mapRepositoryError(err)
		}

		return s.writeEvent(ctx, tx, events.EmployeeCreated, empl)
	})
	if err != nil {
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			l.Error("create employee failed", zap.String("company_id", admin.CompanyID), zap.Error(err))
		}
		return EmployeeResponse{}, err
	}

	s.invalidateList(ctx, admin.CompanyID)

	l.Info("employee created",
		zap.String("employee_id", empl.ID),
		zap.String("number", empl.Number),
	)
	return mapToResponse(*empl), nil
}

// generateNumber draws counter values until one is not already taken.
func (s *service) generateNumber(ctx context.Context, counters counter.Repository, employees Repository, companyID string) (string, error) {
	for i := 0; i < maxGenerateAttempts; i++ {
		next, err := counters.GetNextValue(ctx, companyID, counter.TypeEmployeeNumber)
		if err != nil {
			return "", err
		}

		number := fmt.Sprintf(generatedFormat, next)
		exists, err := employees.ExistsByNumber(ctx, companyID, number, "")
		if err != nil {
			return "", err
		}
		if !exists {
			return number, nil
		}
	}
	return "", employeeerrors.ErrDuplicateNumber
}

func (s *service) Get(ctx context.Context, p tenant.Principal, id string) (EmployeeResponse, error) {
	admin, err := tenant.RequireAdmin(p)
	if err != nil {
		return EmployeeResponse{}, err
	}

	empl, err := s.repo.FindByIDAndCompany(ctx, admin.CompanyID, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, p tenant.Principal, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	admin, err := tenant.RequireAdmin(p)
	if err != nil {
		return EmployeeResponse{}, err
	}

	l := contextutil.GetLogger(ctx, s.logger)

	locked, unlock, err := s.lockRenumber(ctx, admin.CompanyID, id, req)
	if err != nil {
		return EmployeeResponse{}, err
	}
	defer unlock()

	var empl *Employee
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		employees := s.repo.WithTx(tx)

		found, err := employees.FindByIDAndCompany(ctx, admin.CompanyID, id)
		if err != nil {
			return mapRepositoryError(err)
		}
		if req.Number != nil && found.Number != locked {
			return employeeerrors.ErrNumberChanged
		}
		empl = found

		fields, err := s.applyUpdate(ctx, employees, empl, req)
		if err != nil {
			return err
		}
		if len(fields) == 0 {
			return nil
		}

		if err := employees.Update(ctx, admin.CompanyID, id, fields); err != nil {
			return mapRepositoryError(err)
		}

		return s.writeEvent(ctx, tx, events.EmployeeUpdated, empl)
	})
	if err != nil {
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			l.Error("update employee failed", zap.String("employee_id", id), zap.Error(err))
		}
		return EmployeeResponse{}, err
	}

	s.invalidateList(ctx, admin.CompanyID)

	l.Info("employee updated", zap.String("employee_id", id))
	return mapToResponse(*empl), nil
}

// lockRenumber holds the scan locks of the current and the requested number
// while a renumbering update runs. It returns the number it locked under.
func (s *service) lockRenumber(ctx context.Context, companyID, id string, req UpdateEmployeeRequest) (string, func(), error) {
	if req.Number == nil {
		return "", func() {}, nil
	}

	current, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return "", nil, mapRepositoryError(err)
	}

	unlock := s.locks.LockAll(
		keylock.EmployeeKey(companyID, current.Number),
		keylock.EmployeeKey(companyID, strings.TrimSpace(*req.Number)),
	)
	return current.Number, unlock, nil
}

// applyUpdate copies the set fields onto empl and returns the column map.
// A changed number reissues the QR code.
func (s *service) applyUpdate(ctx context.Context, employees Repository, empl *Employee, req UpdateEmployeeRequest) (map[string]any, error) {
	fields := map[string]any{}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperror.RequiredField("Name")
		}
		empl.Name = name
		fields["name"] = name
	}
	if req.Surname != nil {
		surname := strings.TrimSpace(*req.Surname)
		if surname == "" {
			return nil, apperror.RequiredField("Surname")
		}
		empl.Surname = surname
		fields["surname"] = surname
	}
	if req.Position != nil {
		empl.Position = strings.TrimSpace(*req.Position)
		fields["position"] = empl.Position
	}
	if req.Number != nil {
		number := strings.TrimSpace(*req.Number)
		if !qrcode.ValidComponent(number) {
			return nil, employeeerrors.ErrInvalidNumber
		}
		if number != empl.Number {
			exists, err := employees.ExistsByNumber(ctx, empl.CompanyID, number, empl.ID)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, employeeerrors.ErrDuplicateNumber
			}

			empl.Number = number
			if err := s.issueQR(empl); err != nil {
				return nil, err
			}
			fields["number"] = empl.Number
			fields["qr_payload"] = empl.QRPayload
			fields["qr_image"] = empl.QRImage
		}
	}

	if len(fields) > 0 {
		empl.UpdatedAt = s.now()
		fields["updated_at"] = empl.UpdatedAt
	}
	return fields, nil
}

func (s *service) Delete(ctx context.Context, p tenant.Principal, id string) error {
	admin, err := tenant.RequireAdmin(p)
	if err != nil {
		return err
	}

	l := contextutil.GetLogger(ctx, s.logger)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		employees := s.repo.WithTx(tx)

		empl, err := employees.FindByIDAndCompany(ctx, admin.CompanyID, id)
		if err != nil {
			return mapRepositoryError(err)
		}

		if err := employees.Delete(ctx, admin.CompanyID, id); err != nil {
			return mapRepositoryError(err)
		}

		return s.writeEvent(ctx, tx, events.EmployeeDeleted, empl)
	})
	if err != nil {
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			l.Error("delete employee failed", zap.String("employee_id", id), zap.Error(err))
		}
		return err
	}

	s.invalidateList(ctx, admin.CompanyID)

	l.Info("employee deleted", zap.String("employee_id", id))
	return nil
}

func (s *service) issueQR(empl *Employee) error {
	payload, err := qrcode.Encode(empl.CompanyID, empl.Number)
	if err != nil {
		return err
	}
	image, err := s.renderer.DataURI(payload)
	if err != nil {
		return fmt.Errorf("render qr code: %w", err)
	}
	empl.QRPayload = payload
	empl.QRImage = image
	return nil
}

func (s *service) writeEvent(ctx context.Context, tx *gorm.DB, eventType string, empl *Employee) error {
	if s.outbox == nil {
		return nil
	}

	event, err := kafka.NewOutboxEvent(ctx, aggregateType, empl.ID, eventType, events.EmployeeTopic, events.EmployeeEvent{
		EventType:  eventType,
		EmployeeID: empl.ID,
		CompanyID:  empl.CompanyID,
		Number:     empl.Number,
		OccurredAt: s.now(),
	})
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, event)
}

func (s *service) invalidateList(ctx context.Context, companyID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := EmployeeListKey(companyID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("failed to invalidate employee list cache",
			zap.String("key", cacheKey),
			zap.Error(err),
		)
	}
}

func mapToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:        e.ID,
		Name:      e.Name,
		Surname:   e.Surname,
		Position:  e.Position,
		Number:    e.Number,
		QRPayload: e.QRPayload,
		QRCode:    e.QRImage,
		CompanyID: e.CompanyID,
		CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func mapToListResponse(emps []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(emps))
	for i, e := range emps {
		res[i] = mapToResponse(e)
	}
	return res
}
