package company_test

import (
	"context"
	"testing"

	autherrors "go-timeclock/internal/auth/errors"
	"go-timeclock/internal/bootstrap"
	"go-timeclock/internal/company"
	companyerrors "go-timeclock/internal/company/errors"
	companyMock "go-timeclock/internal/company/mock"
	"go-timeclock/internal/credential"
	"go-timeclock/internal/employee"
	"go-timeclock/internal/tenant"
	"go-timeclock/internal/testutil"
	"go-timeclock/internal/user"
	usererrors "go-timeclock/internal/user/errors"
	userMock "go-timeclock/internal/user/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type recordingAudit struct {
	entries []bootstrap.AuditLog
}

func (a *recordingAudit) Log(_ context.Context, entry bootstrap.AuditLog) {
	a.entries = append(a.entries, entry)
}

type serviceDeps struct {
	sqlMock   sqlmock.Sqlmock
	repo      *companyMock.MockRepository
	users     *userMock.MockRepository
	redisMock redismock.ClientMock
	audit     *recordingAudit
	service   company.Service
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)
	db, mock := testutil.NewMockDB(t)
	rdb, redisMock := redismock.NewClientMock()

	deps := &serviceDeps{
		sqlMock:   mock,
		repo:      companyMock.NewMockRepository(ctrl),
		users:     userMock.NewMockRepository(ctrl),
		redisMock: redisMock,
		audit:     &recordingAudit{},
	}
	deps.service = company.NewService(db, deps.repo, deps.users,
		credential.NewPasswordHasher(bcrypt.MinCost), rdb, deps.audit)
	return deps
}

var (
	owner = tenant.OwnerPrincipal{ID: "owner-1", Username: "owner"}
	admin = tenant.ScopedPrincipal{ID: "admin-1", Username: "admin", CompanyID: "company-1", Role: tenant.RoleAdmin}
)

func acmeRequest() company.CreateCompanyRequest {
	return company.CreateCompanyRequest{
		Name:          "Acme",
		AdminUsername: "acme_admin",
		AdminEmail:    "admin@acme.test",
		AdminPassword: "secret1",
	}
}

func TestCompanyService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates company and admin", func(t *testing.T) {
		deps := setupServiceTest(t)
		testutil.ExpectTx(deps.sqlMock, true)

		var companyID string
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ExistsByName(ctx, "Acme").Return(false, nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, c *company.Company) error {
			assert.Equal(t, "owner-1", c.OwnerID)
			companyID = c.ID
			return nil
		})
		deps.users.EXPECT().WithTx(gomock.Any()).Return(deps.users)
		deps.users.EXPECT().ExistsByUsername(ctx, "acme_admin").Return(false, nil)
		deps.users.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u *user.User) error {
			assert.Equal(t, "admin", u.Role)
			assert.Equal(t, companyID, u.CompanyID)
			return nil
		})

		resp, err := deps.service.Create(ctx, owner, acmeRequest())
		require.NoError(t, err)
		assert.Equal(t, "Acme", resp.Company.Name)
		assert.Equal(t, "admin", resp.Admin.Role)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate name rolls back", func(t *testing.T) {
		deps := setupServiceTest(t)
		testutil.ExpectTx(deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ExistsByName(ctx, "Acme").Return(true, nil)

		_, err := deps.service.Create(ctx, owner, acmeRequest())
		assert.ErrorIs(t, err, companyerrors.ErrDuplicateName)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate admin username rolls back company", func(t *testing.T) {
		deps := setupServiceTest(t)
		testutil.ExpectTx(deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ExistsByName(ctx, "Acme").Return(false, nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		deps.users.EXPECT().WithTx(gomock.Any()).Return(deps.users)
		deps.users.EXPECT().ExistsByUsername(ctx, "acme_admin").Return(true, nil)

		_, err := deps.service.Create(ctx, owner, acmeRequest())
		assert.ErrorIs(t, err, usererrors.ErrDuplicateUsername)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("admin cannot create companies", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Create(ctx, admin, acmeRequest())
		assert.ErrorIs(t, err, autherrors.ErrOwnerRequired)
	})

	t.Run("unknown timezone", func(t *testing.T) {
		deps := setupServiceTest(t)
		req := acmeRequest()
		req.Timezone = "Mars/Olympus"

		_, err := deps.service.Create(ctx, owner, req)
		assert.ErrorIs(t, err, companyerrors.ErrInvalidTimezone)
	})
}

func TestCompanyService_Register(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)
	testutil.ExpectTx(deps.sqlMock, true)

	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
	deps.repo.EXPECT().ExistsByName(ctx, "Globex").Return(false, nil)
	deps.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, c *company.Company) error {
		assert.Equal(t, company.SystemOwnerID, c.OwnerID)
		return nil
	})
	deps.users.EXPECT().WithTx(gomock.Any()).Return(deps.users)
	deps.users.EXPECT().ExistsByUsername(ctx, "gx").Return(false, nil)
	deps.users.EXPECT().Create(ctx, gomock.Any()).Return(nil)

	resp, err := deps.service.Register(ctx, company.RegisterCompanyRequest{
		CompanyName:   "Globex",
		AdminUsername: "gx",
		AdminEmail:    "gx@globex.test",
		AdminPassword: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, company.SystemOwnerID, resp.Company.OwnerID)
}

func TestCompanyService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("cascades and invalidates cache", func(t *testing.T) {
		deps := setupServiceTest(t)
		testutil.ExpectTx(deps.sqlMock, true)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().GetByID(ctx, "company-1").Return(&company.Company{ID: "company-1", Name: "Acme"}, nil)
		deps.repo.EXPECT().DeleteCascade(ctx, "company-1").Return(nil)
		deps.redisMock.ExpectDel(employee.EmployeeListKey("company-1")).SetVal(1)

		require.NoError(t, deps.service.Delete(ctx, owner, "company-1"))
		require.Len(t, deps.audit.entries, 1)
		assert.Equal(t, "COMPANY_DELETED", deps.audit.entries[0].Action)
		assert.NoError(t, deps.redisMock.ExpectationsWereMet())
	})

	t.Run("unknown company", func(t *testing.T) {
		deps := setupServiceTest(t)
		testutil.ExpectTx(deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().GetByID(ctx, "missing").Return(nil, gorm.ErrRecordNotFound)

		err := deps.service.Delete(ctx, owner, "missing")
		assert.ErrorIs(t, err, companyerrors.ErrCompanyNotFound)
		assert.Empty(t, deps.audit.entries)
	})
}

func TestCompanyService_List(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)

	deps.repo.EXPECT().ListWithCounts(ctx).Return([]company.CompanyWithCounts{
		{Company: company.Company{ID: "company-1", Name: "Acme"}, AdminCount: 1, UserCount: 3, EmployeeCount: 7},
	}, nil)

	resp, err := deps.service.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, int64(1), resp[0].AdminCount)
	assert.Equal(t, int64(3), resp[0].UserCount)
	assert.Equal(t, int64(7), resp[0].EmployeeCount)
}

func TestCompanyService_UpdateSettings(t *testing.T) {
	ctx := context.Background()

	t.Run("sets timezone", func(t *testing.T) {
		deps := setupServiceTest(t)
		tz := "Europe/Warsaw"

		deps.repo.EXPECT().UpdateTimezone(ctx, "company-1", &tz).Return(nil)
		deps.repo.EXPECT().GetByID(ctx, "company-1").Return(&company.Company{ID: "company-1", Timezone: &tz}, nil)

		resp, err := deps.service.UpdateSettings(ctx, admin, company.UpdateSettingsRequest{Timezone: tz})
		require.NoError(t, err)
		assert.Equal(t, tz, resp.Timezone)
	})

	t.Run("plain user rejected", func(t *testing.T) {
		deps := setupServiceTest(t)
		clerk := tenant.ScopedPrincipal{ID: "u-2", CompanyID: "company-1", Role: tenant.RoleUser}

		_, err := deps.service.UpdateSettings(ctx, clerk, company.UpdateSettingsRequest{Timezone: "UTC"})
		assert.ErrorIs(t, err, autherrors.ErrAdminRequired)
	})
}
