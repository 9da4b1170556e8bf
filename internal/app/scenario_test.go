package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-timeclock/internal/app"
	"go-timeclock/internal/bootstrap"
	"go-timeclock/internal/config"
	"go-timeclock/internal/credential"
	"go-timeclock/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type envelope struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

type harness struct {
	t      *testing.T
	db     *gorm.DB
	clock  *testutil.Clock
	router http.Handler
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	db := testutil.NewDB(t)
	clock := testutil.NewClock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	tokens, err := credential.NewTokenService([]byte("scenario-secret"), "timeclock", credential.WithTokenClock(clock.NowFunc()))
	require.NoError(t, err)

	deps := &app.Dependencies{
		Config: config.Config{
			AppEnv:          "test",
			Auth:            config.AuthConfig{TokenTTL: time.Hour},
			Owner:           config.OwnerBootstrapConfig{Username: "owner", Email: "owner@system.com", Password: "owner123"},
			DefaultTimezone: "UTC",
		},
		DB:     db,
		Tokens: tokens,
		Hasher: credential.NewPasswordHasher(bcrypt.MinCost),
		Audit:  bootstrap.NewStdoutAuditLogger(zap.NewNop()),
		Logger: zap.NewNop(),
		Now:    clock.NowFunc(),
	}

	a, err := app.BuildApp(context.Background(), deps)
	require.NoError(t, err)

	return &harness{t: t, db: db, clock: clock, router: a.Router}
}

func (h *harness) do(method, path, token string, body any) (int, envelope) {
	h.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(h.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(h.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func (h *harness) login(username, password string) string {
	h.t.Helper()
	code, env := h.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": username, "password": password})
	require.Equal(h.t, http.StatusOK, code)

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(h.t, json.Unmarshal(env.Data, &resp))
	return resp.AccessToken
}

func (h *harness) createAcme(ownerToken string) string {
	h.t.Helper()
	code, env := h.do(http.MethodPost, "/api/owner/companies", ownerToken, map[string]string{
		"name":           "Acme",
		"admin_username": "alice",
		"admin_email":    "alice@acme.test",
		"admin_password": "pw1",
	})
	require.Equal(h.t, http.StatusCreated, code)

	var resp struct {
		Company struct {
			ID string `json:"id"`
		} `json:"company"`
	}
	require.NoError(h.t, json.Unmarshal(env.Data, &resp))
	return resp.Company.ID
}

type scanResult struct {
	Action      string   `json:"action"`
	Status      string   `json:"status"`
	HoursWorked *float64 `json:"hours_worked"`
}

func TestScenario_AcmeCheckInCheckOut(t *testing.T) {
	h := newHarness(t)

	owner := h.login("owner", "owner123")
	companyID := h.createAcme(owner)
	alice := h.login("alice", "pw1")

	code, env := h.do(http.MethodPost, "/api/employees", alice, map[string]string{
		"name": "James", "surname": "Bond", "number": "007",
	})
	require.Equal(t, http.StatusCreated, code)
	var emp struct {
		QRPayload string `json:"qr_payload"`
		CompanyID string `json:"company_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &emp))
	assert.Equal(t, companyID, emp.CompanyID)
	require.NotEmpty(t, emp.QRPayload)

	scan := map[string]string{"qr_data": emp.QRPayload}

	code, env = h.do(http.MethodPost, "/api/time/scan", alice, scan)
	require.Equal(t, http.StatusOK, code)
	var first scanResult
	require.NoError(t, json.Unmarshal(env.Data, &first))
	assert.Equal(t, "check_in", first.Action)
	assert.Equal(t, "working", first.Status)
	assert.Nil(t, first.HoursWorked)

	code, env = h.do(http.MethodPost, "/api/time/scan", alice, scan)
	require.Equal(t, http.StatusTooManyRequests, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "COOLDOWN", env.Error.Code)
	assert.EqualValues(t, 5, env.Error.Details["remaining_seconds"])
	assert.EqualValues(t, 1, testutil.Count(t, h.db, "time_entries", "status = ?", "working"))

	h.clock.Advance(6 * time.Second)

	code, env = h.do(http.MethodPost, "/api/time/scan", alice, scan)
	require.Equal(t, http.StatusOK, code)
	var second scanResult
	require.NoError(t, json.Unmarshal(env.Data, &second))
	assert.Equal(t, "check_out", second.Action)
	assert.Equal(t, "completed", second.Status)
	require.NotNil(t, second.HoursWorked)
	assert.InDelta(t, 0.0, *second.HoursWorked, 0.001)
}

func TestScenario_DuplicateAcme(t *testing.T) {
	h := newHarness(t)

	owner := h.login("owner", "owner123")
	h.createAcme(owner)

	code, env := h.do(http.MethodPost, "/api/owner/companies", owner, map[string]string{
		"name":           "Acme",
		"admin_username": "bob",
		"admin_email":    "bob@acme.test",
		"admin_password": "pw2",
	})
	assert.Equal(t, http.StatusConflict, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "DUPLICATE_NAME", env.Error.Code)

	assert.EqualValues(t, 1, testutil.Count(t, h.db, "companies", ""))
	assert.EqualValues(t, 0, testutil.Count(t, h.db, "users", "username = ?", "bob"))
}

func TestScenario_AdminCannotTakeOwnerUsername(t *testing.T) {
	h := newHarness(t)

	owner := h.login("owner", "owner123")
	code, env := h.do(http.MethodPost, "/api/owner/companies", owner, map[string]string{
		"name":           "Acme",
		"admin_username": "owner",
		"admin_email":    "admin@acme.test",
		"admin_password": "pw1",
	})
	assert.Equal(t, http.StatusConflict, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "DUPLICATE_USERNAME", env.Error.Code)

	assert.EqualValues(t, 0, testutil.Count(t, h.db, "companies", ""))
	assert.EqualValues(t, 0, testutil.Count(t, h.db, "users", "username = ?", "owner"))
}

func TestScenario_DeleteAcmeCascades(t *testing.T) {
	h := newHarness(t)

	owner := h.login("owner", "owner123")
	companyID := h.createAcme(owner)
	alice := h.login("alice", "pw1")

	code, env := h.do(http.MethodPost, "/api/employees", alice, map[string]string{"name": "James", "surname": "Bond", "number": "007"})
	require.Equal(t, http.StatusCreated, code)
	var emp struct {
		ID        string `json:"id"`
		QRPayload string `json:"qr_payload"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &emp))

	code, _ = h.do(http.MethodPost, "/api/time/scan", alice, map[string]string{"qr_data": emp.QRPayload})
	require.Equal(t, http.StatusOK, code)

	code, _ = h.do(http.MethodDelete, "/api/owner/companies/"+companyID, owner, nil)
	require.Equal(t, http.StatusOK, code)

	code, env = h.do(http.MethodGet, "/api/auth/me", alice, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "UNKNOWN_PRINCIPAL", env.Error.Code)

	code, _ = h.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "alice", "password": "pw1"})
	assert.Equal(t, http.StatusUnauthorized, code)

	assert.EqualValues(t, 0, testutil.Count(t, h.db, "users", "company_id = ?", companyID))
	assert.EqualValues(t, 0, testutil.Count(t, h.db, "employees", "company_id = ?", companyID))
	assert.EqualValues(t, 0, testutil.Count(t, h.db, "time_entries", "employee_id = ?", emp.ID))
}

func TestHealthz(t *testing.T) {
	h := newHarness(t)
	code, env := h.do(http.MethodGet, "/api/healthz", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.OK)
}
