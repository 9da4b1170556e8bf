package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-timeclock/internal/auth"
	autherrors "go-timeclock/internal/auth/errors"
	"go-timeclock/internal/company"
	"go-timeclock/internal/middleware"
	"go-timeclock/internal/tenant"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthService struct {
	LoginFn           func(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error)
	MeFn              func(ctx context.Context, p tenant.Principal) (auth.PrincipalInfo, error)
	RegisterCompanyFn func(ctx context.Context, req company.RegisterCompanyRequest) (auth.RegisterCompanyResponse, error)
}

func (f *fakeAuthService) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	return f.LoginFn(ctx, req)
}
func (f *fakeAuthService) Me(ctx context.Context, p tenant.Principal) (auth.PrincipalInfo, error) {
	return f.MeFn(ctx, p)
}
func (f *fakeAuthService) RegisterCompany(ctx context.Context, req company.RegisterCompanyRequest) (auth.RegisterCompanyResponse, error) {
	return f.RegisterCompanyFn(ctx, req)
}
func (f *fakeAuthService) EnsureOwner(context.Context, string, string, string) (bool, error) {
	return false, nil
}

func newTestContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeAuthService{
			LoginFn: func(_ context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
				assert.Equal(t, "owner", req.Username)
				return auth.TokenResponse{AccessToken: "tok", TokenType: auth.TokenTypeBearer, User: auth.PrincipalInfo{Type: auth.TypeOwner}}, nil
			},
		}
		c, w := newTestContext(http.MethodPost, "/auth/login", `{"username":"owner","password":"owner123"}`)
		auth.NewHandler(svc).Login(c)

		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			OK   bool               `json:"ok"`
			Data auth.TokenResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.OK)
		assert.Equal(t, "tok", body.Data.AccessToken)
		assert.Equal(t, "bearer", body.Data.TokenType)
	})

	t.Run("missing password", func(t *testing.T) {
		c, w := newTestContext(http.MethodPost, "/auth/login", `{"username":"owner"}`)
		auth.NewHandler(&fakeAuthService{}).Login(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_INPUT")
	})

	t.Run("bad credentials", func(t *testing.T) {
		svc := &fakeAuthService{
			LoginFn: func(context.Context, auth.LoginRequest) (auth.TokenResponse, error) {
				return auth.TokenResponse{}, autherrors.ErrInvalidCredentials
			},
		}
		c, w := newTestContext(http.MethodPost, "/auth/login", `{"username":"owner","password":"x"}`)
		auth.NewHandler(svc).Login(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_CREDENTIALS")
	})
}

func TestAuthHandler_RegisterCompany(t *testing.T) {
	svc := &fakeAuthService{
		RegisterCompanyFn: func(_ context.Context, req company.RegisterCompanyRequest) (auth.RegisterCompanyResponse, error) {
			assert.Equal(t, "Acme", req.CompanyName)
			return auth.RegisterCompanyResponse{
				TokenResponse: auth.TokenResponse{AccessToken: "tok", TokenType: auth.TokenTypeBearer},
				Company:       company.CompanyResponse{ID: "c-1", Name: "Acme"},
			}, nil
		},
	}
	c, w := newTestContext(http.MethodPost, "/auth/register-company",
		`{"company_name":"Acme","admin_username":"acme_admin","admin_email":"admin@acme.test","admin_password":"secret1"}`)
	auth.NewHandler(svc).RegisterCompany(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"access_token":"tok"`)
	assert.Contains(t, w.Body.String(), `"name":"Acme"`)
}

func TestAuthHandler_Me(t *testing.T) {
	svc := &fakeAuthService{
		MeFn: func(_ context.Context, p tenant.Principal) (auth.PrincipalInfo, error) {
			return auth.PrincipalInfo{ID: p.PrincipalID(), Username: p.PrincipalUsername(), Type: auth.TypeUser}, nil
		},
	}

	t.Run("authenticated", func(t *testing.T) {
		c, w := newTestContext(http.MethodGet, "/auth/me", "")
		c.Set(middleware.ContextPrincipal, tenant.ScopedPrincipal{ID: "u-1", Username: "alice", CompanyID: "c-1", Role: tenant.RoleUser})
		auth.NewHandler(svc).Me(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"username":"alice"`)
	})

	t.Run("no principal", func(t *testing.T) {
		c, w := newTestContext(http.MethodGet, "/auth/me", "")
		auth.NewHandler(svc).Me(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
