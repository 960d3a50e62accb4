package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/clinic-service/internal/api/http"
	"github.com/spec-kit/clinic-service/internal/api/http/handlers"
	"github.com/spec-kit/clinic-service/internal/auth"
	"github.com/spec-kit/clinic-service/internal/config"
	"github.com/spec-kit/clinic-service/internal/domain"
	"github.com/spec-kit/clinic-service/internal/events"
	"github.com/spec-kit/clinic-service/internal/observability"
	"github.com/spec-kit/clinic-service/internal/repository"
	"github.com/spec-kit/clinic-service/internal/service"
)

type fakeEmployeeRepo struct {
	byEmail map[string]*domain.Employee
}

func (r *fakeEmployeeRepo) Create(_ context.Context, employee *domain.Employee) error {
	employee.ID = uuid.New()
	r.byEmail[employee.Email] = employee
	return nil
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, _ uuid.UUID) (*domain.Employee, error) {
	return nil, pgx.ErrNoRows
}

func (r *fakeEmployeeRepo) GetByEmail(_ context.Context, email string) (*domain.Employee, error) {
	employee, ok := r.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return employee, nil
}

func (r *fakeEmployeeRepo) List(_ context.Context, _, _ int) ([]domain.Employee, int, error) {
	return nil, 0, nil
}

func (r *fakeEmployeeRepo) Update(_ context.Context, _ uuid.UUID, _ domain.EmployeeUpdate, _ uuid.UUID, _ time.Time) (*domain.Employee, error) {
	return nil, pgx.ErrNoRows
}

func (r *fakeEmployeeRepo) Delete(_ context.Context, _ uuid.UUID) (int64, error) {
	return 0, nil
}

type fakePatientRepo struct{}

func (fakePatientRepo) Create(_ context.Context, patient *domain.Patient) error {
	patient.ID = uuid.New()
	return nil
}

func (fakePatientRepo) GetByID(_ context.Context, _ uuid.UUID) (*domain.Patient, error) {
	return nil, pgx.ErrNoRows
}

func (fakePatientRepo) List(_ context.Context, _, _ int) ([]domain.Patient, int, error) {
	return nil, 0, nil
}

func (fakePatientRepo) Update(_ context.Context, _ uuid.UUID, _ domain.PatientUpdate) (*domain.Patient, error) {
	return nil, pgx.ErrNoRows
}

func (fakePatientRepo) Verify(_ context.Context, _ uuid.UUID, _ domain.PatientVerification) (*domain.Patient, error) {
	return nil, pgx.ErrNoRows
}

func (fakePatientRepo) Delete(_ context.Context, _ uuid.UUID) (int64, error) {
	return 0, nil
}

type fakeAppointmentRepo struct{}

func (fakeAppointmentRepo) Create(_ context.Context, appointment *domain.Appointment) error {
	appointment.ID = uuid.New()
	return nil
}

func (fakeAppointmentRepo) ListWithFilter(_ context.Context, _ repository.AppointmentFilter) ([]domain.Appointment, int, error) {
	return nil, 0, nil
}

func (fakeAppointmentRepo) Delete(_ context.Context, _ uuid.UUID) (int64, uuid.UUID, time.Time, error) {
	return 0, uuid.Nil, time.Time{}, nil
}

type fakeDictionaryRepo struct {
	rows map[int]*domain.DictionaryRow
}

func (r *fakeDictionaryRepo) AddRow(_ context.Context, _ domain.DictionaryDescriptor, row *domain.DictionaryRow) error {
	row.CreateDate = time.Now()
	r.rows[row.ID] = row
	return nil
}

func (r *fakeDictionaryRepo) ListRows(_ context.Context, _ domain.DictionaryDescriptor, activeFilter *bool) ([]domain.DictionaryRow, error) {
	var out []domain.DictionaryRow
	for _, row := range r.rows {
		if activeFilter != nil && row.IsActive != *activeFilter {
			continue
		}
		out = append(out, *row)
	}
	return out, nil
}

func (r *fakeDictionaryRepo) GetRow(_ context.Context, _ domain.DictionaryDescriptor, id int) (*domain.DictionaryRow, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return row, nil
}

func (r *fakeDictionaryRepo) UpdateRow(_ context.Context, _ domain.DictionaryDescriptor, id int, _ domain.DictionaryRowUpdate, _ uuid.UUID, _ time.Time) (*domain.DictionaryRow, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return row, nil
}

func (r *fakeDictionaryRepo) DeleteRow(_ context.Context, _ domain.DictionaryDescriptor, id int) (int64, error) {
	if _, ok := r.rows[id]; !ok {
		return 0, nil
	}
	delete(r.rows, id)
	return 1, nil
}

type fakeTokenRepo struct {
	rows map[string]*domain.AccessToken
}

func (r *fakeTokenRepo) Add(_ context.Context, token *domain.AccessToken) error {
	r.rows[token.AccessToken] = token
	return nil
}

func (r *fakeTokenRepo) Check(_ context.Context, accessToken string) (*domain.AccessToken, error) {
	row, ok := r.rows[accessToken]
	if !ok || !time.Now().Before(row.ExpirationDate) {
		return nil, nil
	}
	return row, nil
}

func (r *fakeTokenRepo) DeleteExpired(_ context.Context) (int64, error) {
	return 0, nil
}

type apiFixture struct {
	app       *fiber.App
	auth      *service.AuthService
	dictRows  *fakeDictionaryRepo
	employees *fakeEmployeeRepo
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	logger := zap.NewNop()
	metrics := observability.NewMetrics()

	employees := &fakeEmployeeRepo{byEmail: make(map[string]*domain.Employee)}
	dictRows := &fakeDictionaryRepo{rows: make(map[int]*domain.DictionaryRow)}
	tokens := &fakeTokenRepo{rows: make(map[string]*domain.AccessToken)}

	authService := service.NewAuthService(config.AuthConfig{Salt: "test-salt", AccessTokenTTLMinutes: 60}, employees, tokens)
	dispatcher := events.NewInMemoryDispatcher()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, 5*time.Second)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler("clinic-service", "test", nil, nil),
		Account:        handlers.NewAccountHandler(authService),
		Employees:      handlers.NewEmployeesHandler(service.NewEmployeeService(employees, authService.Hasher())),
		Patients:       handlers.NewPatientsHandler(service.NewPatientService(fakePatientRepo{}, authService.Hasher())),
		Appointments:   handlers.NewAppointmentsHandler(service.NewAppointmentService(fakeAppointmentRepo{}, dispatcher)),
		Dictionaries:   handlers.NewDictionariesHandler(service.NewDictionaryService(dictRows)),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager()),
	})

	return &apiFixture{app: app, auth: authService, dictRows: dictRows, employees: employees}
}

func (f *apiFixture) registerEmployee(t *testing.T, email, password string, roleID int) *domain.Employee {
	t.Helper()
	employee := &domain.Employee{
		Email:          email,
		RoleID:         roleID,
		HashedPassword: f.auth.Hasher().Hash(password),
	}
	require.NoError(t, f.employees.Create(context.Background(), employee))
	return employee
}

func (f *apiFixture) login(t *testing.T, email, password string) string {
	t.Helper()
	form := url.Values{"username": {email}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/employees/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := f.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "bearer", body.TokenType)
	require.NotEmpty(t, body.AccessToken)
	return body.AccessToken
}

func decodeErrorEnvelope(t *testing.T, resp *http.Response) (string, string) {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(raw, &body), "body: %s", raw)
	return body.Error.Code, body.Error.Message
}

func TestLoginEndpoint(t *testing.T) {
	fixture := newAPIFixture(t)
	fixture.registerEmployee(t, "doctor@clinic.example", "Secret123", domain.RoleDoctor)

	t.Run("valid credentials", func(t *testing.T) {
		token := fixture.login(t, "doctor@clinic.example", "Secret123")
		assert.NotEmpty(t, token)
	})

	t.Run("wrong password", func(t *testing.T) {
		form := url.Values{"username": {"doctor@clinic.example"}, "password": {"Wrong123"}}
		req := httptest.NewRequest(http.MethodPost, "/employees/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := fixture.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		code, _ := decodeErrorEnvelope(t, resp)
		assert.Equal(t, "UNAUTHORIZED", code)
	})

	t.Run("unknown email fails the same way", func(t *testing.T) {
		form := url.Values{"username": {"nobody@clinic.example"}, "password": {"Secret123"}}
		req := httptest.NewRequest(http.MethodPost, "/employees/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := fixture.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	fixture := newAPIFixture(t)

	for _, route := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/employees"},
		{http.MethodGet, "/patients"},
		{http.MethodGet, "/appointments"},
		{http.MethodGet, "/dictionaries/application_roles"},
	} {
		req := httptest.NewRequest(route.method, route.path, nil)
		resp, err := fixture.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", route.method, route.path)
	}
}

func TestEmployeeManagementIsAdminOnly(t *testing.T) {
	fixture := newAPIFixture(t)
	fixture.registerEmployee(t, "doctor@clinic.example", "Secret123", domain.RoleDoctor)
	fixture.registerEmployee(t, "admin@clinic.example", "Secret123", domain.RoleAdministrator)

	payload := `{"name":"Jan","surname":"Kowalski","role_id":2,"pesel_or_identifier":"90010112345",` +
		`"birth_date":"1990-01-01T00:00:00Z","telephone":"+48123456789","email":"jkowalski@clinic.example",` +
		`"address":"ul. Prosta 1","password":"Secret123","confirm_password":"Secret123"}`

	post := func(token string) *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(payload))
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", "application/json")
		resp, err := fixture.app.Test(req)
		require.NoError(t, err)
		return resp
	}

	doctorToken := fixture.login(t, "doctor@clinic.example", "Secret123")
	resp := post(doctorToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	adminToken := fixture.login(t, "admin@clinic.example", "Secret123")
	resp = post(adminToken)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestHealthLiveIsOpen(t *testing.T) {
	fixture := newAPIFixture(t)

	resp, err := fixture.app.Test(httptest.NewRequest(http.MethodGet, "/health/live", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDictionaryFlow(t *testing.T) {
	fixture := newAPIFixture(t)
	fixture.registerEmployee(t, "admin@clinic.example", "Secret123", domain.RoleAdministrator)
	token := fixture.login(t, "admin@clinic.example", "Secret123")

	authed := func(method, path, body string) *http.Request {
		var reader io.Reader
		if body != "" {
			reader = strings.NewReader(body)
		}
		req := httptest.NewRequest(method, path, reader)
		req.Header.Set("Authorization", "Bearer "+token)
		if body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		return req
	}

	t.Run("add row", func(t *testing.T) {
		resp, err := fixture.app.Test(authed(http.MethodPost, "/dictionaries/application_roles/10",
			`{"display_name":"auditor","description":"read-only reviewer","is_active":true}`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "/dictionaries/application_roles/10", resp.Header.Get("Location"))
	})

	t.Run("get row", func(t *testing.T) {
		resp, err := fixture.app.Test(authed(http.MethodGet, "/dictionaries/application_roles/10", ""))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("unknown dictionary", func(t *testing.T) {
		resp, err := fixture.app.Test(authed(http.MethodGet, "/dictionaries/no_such_dictionary", ""))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		code, _ := decodeErrorEnvelope(t, resp)
		assert.Equal(t, "UNKNOWN_DICTIONARY", code)
	})

	t.Run("short display name is rejected", func(t *testing.T) {
		resp, err := fixture.app.Test(authed(http.MethodPost, "/dictionaries/application_roles/11",
			`{"display_name":"x"}`))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("system value survives delete attempts", func(t *testing.T) {
		fixture.dictRows.rows[1] = &domain.DictionaryRow{ID: 1, DisplayName: "admin", IsSystemValue: true}

		resp, err := fixture.app.Test(authed(http.MethodDelete, "/dictionaries/application_roles/1", ""))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		code, message := decodeErrorEnvelope(t, resp)
		assert.Equal(t, "SYSTEM_VALUE_PROTECTED", code)
		assert.Contains(t, message, "contact the developer team")
		assert.Contains(t, fixture.dictRows.rows, 1)
	})

	t.Run("delete row", func(t *testing.T) {
		resp, err := fixture.app.Test(authed(http.MethodDelete, "/dictionaries/application_roles/10", ""))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		assert.NotContains(t, fixture.dictRows.rows, 10)
	})
}
