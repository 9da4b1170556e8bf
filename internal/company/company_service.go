package company

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-timeclock/internal/bootstrap"
	companyerrors "go-timeclock/internal/company/errors"
	"go-timeclock/internal/credential"
	"go-timeclock/internal/employee"
	"go-timeclock/internal/shared/apperror"
	"go-timeclock/internal/shared/contextutil"
	"go-timeclock/internal/shared/dbutil"
	"go-timeclock/internal/tenant"
	"go-timeclock/internal/user"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -destination=mock/company_service_mock.go -package=mock . Service
type Service interface {
	List(ctx context.Context, p tenant.Principal) ([]CompanySummaryResponse, error)
	Create(ctx context.Context, p tenant.Principal, req CreateCompanyRequest) (CreateCompanyResponse, error)
	Register(ctx context.Context, req RegisterCompanyRequest) (CreateCompanyResponse, error)
	Delete(ctx context.Context, p tenant.Principal, id string) error
	Info(ctx context.Context, p tenant.Principal) (CompanyResponse, error)
	UpdateSettings(ctx context.Context, p tenant.Principal, req UpdateSettingsRequest) (CompanyResponse, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	users  user.Repository
	hasher credential.PasswordHasher
	rdb    redis.UniversalClient
	audit  bootstrap.AuditLogger
	logger *zap.Logger
}

// NewService wires the company service. rdb and audit may be nil.
func NewService(
	db *gorm.DB,
	repo Repository,
	users user.Repository,
	hasher credential.PasswordHasher,
	rdb redis.UniversalClient,
	audit bootstrap.AuditLogger,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("company.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.service")
	}
	return &service{db: db, repo: repo, users: users, hasher: hasher, rdb: rdb, audit: audit, logger: l}
}

func (s *service) List(ctx context.Context, p tenant.Principal) ([]CompanySummaryResponse, error) {
	if _, err := tenant.RequireOwner(p); err != nil {
		return nil, err
	}

	rows, err := s.repo.ListWithCounts(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]CompanySummaryResponse, len(rows))
	for i, r := range rows {
		resp[i] = CompanySummaryResponse{
			CompanyResponse: MapToResponse(&r.Company),
			AdminCount:      r.AdminCount,
			UserCount:       r.UserCount,
			EmployeeCount:   r.EmployeeCount,
		}
	}
	return resp, nil
}

func (s *service) Create(ctx context.Context, p tenant.Principal, req CreateCompanyRequest) (CreateCompanyResponse, error) {
	owner, err := tenant.RequireOwner(p)
	if err != nil {
		return CreateCompanyResponse{}, err
	}

	return s.provision(ctx, provisionInput{
		ownerID:       owner.ID,
		name:          req.Name,
		timezone:      req.Timezone,
		adminUsername: req.AdminUsername,
		adminEmail:    req.AdminEmail,
		adminPassword: req.AdminPassword,
	})
}

func (s *service) Register(ctx context.Context, req RegisterCompanyRequest) (CreateCompanyResponse, error) {
	return s.provision(ctx, provisionInput{
		ownerID:       SystemOwnerID,
		name:          req.CompanyName,
		timezone:      req.Timezone,
		adminUsername: req.AdminUsername,
		adminEmail:    req.AdminEmail,
		adminPassword: req.AdminPassword,
	})
}

type provisionInput struct {
	ownerID       string
	name          string
	timezone      string
	adminUsername string
	adminEmail    string
	adminPassword string
}

// provision creates the company and its first admin in one transaction.
func (s *service) provision(ctx context.Context, in provisionInput) (CreateCompanyResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	name := strings.TrimSpace(in.name)
	if name == "" {
		return CreateCompanyResponse{}, apperror.RequiredField("Name")
	}

	tz, err := normalizeTimezone(in.timezone)
	if err != nil {
		return CreateCompanyResponse{}, err
	}

	var (
		comp  *Company
		admin *user.User
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		companies := s.repo.WithTx(tx)

		exists, err := companies.ExistsByName(ctx, name)
		if err != nil {
			return err
		}
		if exists {
			return companyerrors.ErrDuplicateName
		}

		comp = &Company{
			ID:       uuid.NewString(),
			Name:     name,
			OwnerID:  in.ownerID,
			Timezone: tz,
		}
		if err := companies.Create(ctx, comp); err != nil {
			return mapRepositoryError(err)
		}

		admin, err = user.Provision(ctx, s.users.WithTx(tx), s.hasher,
			comp.ID, in.adminUsername, in.adminEmail, in.adminPassword, tenant.RoleAdmin)
		return err
	})
	if err != nil {
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			l.Error("failed to provision company", zap.String("name", name), zap.Error(err))
		}
		return CreateCompanyResponse{}, err
	}

	l.Info("company created",
		zap.String("company_id", comp.ID),
		zap.String("owner_id", comp.OwnerID),
		zap.String("admin_username", admin.Username),
	)

	return CreateCompanyResponse{
		Message: "Company created successfully",
		Company: MapToResponse(comp),
		Admin:   user.MapToResponse(*admin),
	}, nil
}

func (s *service) Delete(ctx context.Context, p tenant.Principal, id string) error {
	owner, err := tenant.RequireOwner(p)
	if err != nil {
		return err
	}

	l := contextutil.GetLogger(ctx, s.logger)

	var comp *Company
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		companies := s.repo.WithTx(tx)

		found, err := companies.GetByID(ctx, id)
		if err != nil {
			return mapRepositoryError(err)
		}
		comp = found

		return mapRepositoryError(companies.DeleteCascade(ctx, id))
	})
	if err != nil {
		return err
	}

	if s.rdb != nil {
		if err := s.rdb.Del(ctx, employee.EmployeeListKey(id)).Err(); err != nil {
			l.Warn("failed to invalidate employee cache", zap.String("company_id", id), zap.Error(err))
		}
	}

	if s.audit != nil {
		s.audit.Log(ctx, bootstrap.AuditLog{
			Action:  "COMPANY_DELETED",
			Message: "Company and all its data deleted",
			Meta: map[string]any{
				"company_id": comp.ID,
				"name":       comp.Name,
				"owner_id":   owner.ID,
			},
		})
	}

	l.Info("company deleted", zap.String("company_id", id))
	return nil
}

func (s *service) Info(ctx context.Context, p tenant.Principal) (CompanyResponse, error) {
	sp, err := tenant.RequireScoped(p)
	if err != nil {
		return CompanyResponse{}, err
	}

	comp, err := s.repo.GetByID(ctx, sp.CompanyID)
	if err != nil {
		return CompanyResponse{}, mapRepositoryError(err)
	}
	return MapToResponse(comp), nil
}

func (s *service) UpdateSettings(ctx context.Context, p tenant.Principal, req UpdateSettingsRequest) (CompanyResponse, error) {
	admin, err := tenant.RequireAdmin(p)
	if err != nil {
		return CompanyResponse{}, err
	}

	tz, err := normalizeTimezone(req.Timezone)
	if err != nil {
		return CompanyResponse{}, err
	}

	if err := s.repo.UpdateTimezone(ctx, admin.CompanyID, tz); err != nil {
		return CompanyResponse{}, mapRepositoryError(err)
	}

	comp, err := s.repo.GetByID(ctx, admin.CompanyID)
	if err != nil {
		return CompanyResponse{}, mapRepositoryError(err)
	}

	contextutil.GetLogger(ctx, s.logger).Info("company timezone updated",
		zap.String("company_id", comp.ID),
		zap.String("timezone", req.Timezone),
	)
	return MapToResponse(comp), nil
}

// normalizeTimezone returns nil for an empty zone and rejects unknown ones.
func normalizeTimezone(name string) (*string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	if _, err := time.LoadLocation(name); err != nil {
		return nil, companyerrors.ErrInvalidTimezone
	}
	return &name, nil
}

func MapToResponse(c *Company) CompanyResponse {
	resp := CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		OwnerID:   c.OwnerID,
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339),
	}
	if c.Timezone != nil {
		resp.Timezone = *c.Timezone
	}
	return resp
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return companyerrors.ErrCompanyNotFound
	}
	if dbutil.IsUniqueViolation(err, "uq_company_name", "companies.name") {
		return companyerrors.ErrDuplicateName
	}
	return err
}
