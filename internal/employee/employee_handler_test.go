package employee_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-timeclock/internal/employee"
	employeeerrors "go-timeclock/internal/employee/errors"
	"go-timeclock/internal/middleware"
	"go-timeclock/internal/tenant"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeEmployeeService struct {
	ListFn   func(ctx context.Context, p tenant.Principal) ([]employee.EmployeeResponse, error)
	CreateFn func(ctx context.Context, p tenant.Principal, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	GetFn    func(ctx context.Context, p tenant.Principal, id string) (employee.EmployeeResponse, error)
	UpdateFn func(ctx context.Context, p tenant.Principal, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error)
	DeleteFn func(ctx context.Context, p tenant.Principal, id string) error
}

func (f *fakeEmployeeService) List(ctx context.Context, p tenant.Principal) ([]employee.EmployeeResponse, error) {
	return f.ListFn(ctx, p)
}
func (f *fakeEmployeeService) Create(ctx context.Context, p tenant.Principal, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.CreateFn(ctx, p, req)
}
func (f *fakeEmployeeService) Get(ctx context.Context, p tenant.Principal, id string) (employee.EmployeeResponse, error) {
	return f.GetFn(ctx, p, id)
}
func (f *fakeEmployeeService) Update(ctx context.Context, p tenant.Principal, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.UpdateFn(ctx, p, id, req)
}
func (f *fakeEmployeeService) Delete(ctx context.Context, p tenant.Principal, id string) error {
	return f.DeleteFn(ctx, p, id)
}

func newTestContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set(middleware.ContextPrincipal, admin)
	return c, w
}

func TestEmployeeHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(_ context.Context, _ tenant.Principal, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{ID: "e-1", Name: req.Name, Number: "EMP-000001"}, nil
			},
		}
		c, w := newTestContext(http.MethodPost, "/api/employees", `{"name":"John","surname":"Doe"}`)

		employee.NewHandler(svc).Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"number":"EMP-000001"`)
	})

	t.Run("missing surname", func(t *testing.T) {
		c, w := newTestContext(http.MethodPost, "/api/employees", `{"name":"John"}`)

		employee.NewHandler(&fakeEmployeeService{}).Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_INPUT")
	})

	t.Run("duplicate number", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(context.Context, tenant.Principal, employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrDuplicateNumber
			},
		}
		c, w := newTestContext(http.MethodPost, "/api/employees", `{"name":"John","surname":"Doe","number":"001"}`)

		employee.NewHandler(svc).Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "DUPLICATE_EMPLOYEE_NUMBER")
	})
}

func TestEmployeeHandler_GetAllFiltersByQuery(t *testing.T) {
	svc := &fakeEmployeeService{
		ListFn: func(context.Context, tenant.Principal) ([]employee.EmployeeResponse, error) {
			return []employee.EmployeeResponse{
				{ID: "e-1", Name: "John", Surname: "Doe", Number: "001"},
				{ID: "e-2", Name: "Jane", Surname: "Roe", Number: "002"},
			}, nil
		},
	}
	c, w := newTestContext(http.MethodGet, "/api/employees?q=roe", "")

	employee.NewHandler(svc).GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"e-2"`)
	assert.NotContains(t, w.Body.String(), `"id":"e-1"`)
}

func TestEmployeeHandler_Update(t *testing.T) {
	svc := &fakeEmployeeService{
		UpdateFn: func(_ context.Context, _ tenant.Principal, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
			assert.Equal(t, "e-1", id)
			assert.Nil(t, req.Name)
			if assert.NotNil(t, req.Position) {
				assert.Equal(t, "Lead", *req.Position)
			}
			return employee.EmployeeResponse{ID: id, Position: *req.Position}, nil
		},
	}
	c, w := newTestContext(http.MethodPut, "/api/employees/e-1", `{"position":"Lead"}`)
	c.Params = gin.Params{{Key: "id", Value: "e-1"}}

	employee.NewHandler(svc).Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEmployeeHandler_DeleteNotFound(t *testing.T) {
	svc := &fakeEmployeeService{
		DeleteFn: func(context.Context, tenant.Principal, string) error {
			return employeeerrors.ErrEmployeeNotFound
		},
	}
	c, w := newTestContext(http.MethodDelete, "/api/employees/missing", "")
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	employee.NewHandler(svc).Delete(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
