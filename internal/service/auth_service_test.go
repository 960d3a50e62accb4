package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/clinic-service/internal/config"
	"github.com/spec-kit/clinic-service/internal/domain"
)

type stubEmployeeRepo struct {
	byEmail map[string]*domain.Employee
}

func newStubEmployeeRepo() *stubEmployeeRepo {
	return &stubEmployeeRepo{byEmail: make(map[string]*domain.Employee)}
}

func (r *stubEmployeeRepo) Create(_ context.Context, employee *domain.Employee) error {
	employee.ID = uuid.New()
	r.byEmail[employee.Email] = employee
	return nil
}

func (r *stubEmployeeRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Employee, error) {
	for _, employee := range r.byEmail {
		if employee.ID == id {
			return employee, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *stubEmployeeRepo) GetByEmail(_ context.Context, email string) (*domain.Employee, error) {
	employee, ok := r.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return employee, nil
}

func (r *stubEmployeeRepo) List(_ context.Context, _, _ int) ([]domain.Employee, int, error) {
	return nil, 0, nil
}

func (r *stubEmployeeRepo) Update(_ context.Context, _ uuid.UUID, _ domain.EmployeeUpdate, _ uuid.UUID, _ time.Time) (*domain.Employee, error) {
	return nil, pgx.ErrNoRows
}

func (r *stubEmployeeRepo) Delete(_ context.Context, _ uuid.UUID) (int64, error) {
	return 0, nil
}

func newAuthFixture(t *testing.T) (*AuthService, *stubEmployeeRepo, *memoryTokenRepoStub) {
	t.Helper()
	employees := newStubEmployeeRepo()
	tokens := newMemoryTokenRepoStub()
	svc := NewAuthService(config.AuthConfig{Salt: "test-salt", AccessTokenTTLMinutes: 60}, employees, tokens)
	return svc, employees, tokens
}

type memoryTokenRepoStub struct {
	rows map[string]*domain.AccessToken
}

func newMemoryTokenRepoStub() *memoryTokenRepoStub {
	return &memoryTokenRepoStub{rows: make(map[string]*domain.AccessToken)}
}

func (r *memoryTokenRepoStub) Add(_ context.Context, token *domain.AccessToken) error {
	r.rows[token.AccessToken] = token
	return nil
}

func (r *memoryTokenRepoStub) Check(_ context.Context, accessToken string) (*domain.AccessToken, error) {
	row, ok := r.rows[accessToken]
	if !ok || !time.Now().Before(row.ExpirationDate) {
		return nil, nil
	}
	return row, nil
}

func (r *memoryTokenRepoStub) DeleteExpired(_ context.Context) (int64, error) {
	return 0, nil
}

func TestAuthService_LoginIssuesToken(t *testing.T) {
	svc, employees, tokens := newAuthFixture(t)

	employee := &domain.Employee{
		Email:          "doctor@clinic.example",
		RoleID:         2,
		HashedPassword: svc.Hasher().Hash("Secret123"),
	}
	require.NoError(t, employees.Create(context.Background(), employee))

	token, err := svc.Login(context.Background(), "doctor@clinic.example", "Secret123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	row := tokens.rows[token]
	require.NotNil(t, row)
	assert.Equal(t, employee.ID, row.EmployeeID)
	assert.Equal(t, 2, row.RoleID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), row.ExpirationDate, 5*time.Second)
}

func TestAuthService_LoginFailuresAreUniform(t *testing.T) {
	svc, employees, _ := newAuthFixture(t)

	employee := &domain.Employee{
		Email:          "doctor@clinic.example",
		HashedPassword: svc.Hasher().Hash("Secret123"),
	}
	require.NoError(t, employees.Create(context.Background(), employee))

	_, wrongPassword := svc.Login(context.Background(), "doctor@clinic.example", "Wrong123")
	_, unknownEmail := svc.Login(context.Background(), "nobody@clinic.example", "Secret123")

	assert.ErrorIs(t, wrongPassword, ErrBadCredentials)
	assert.ErrorIs(t, unknownEmail, ErrBadCredentials)
	assert.Equal(t, wrongPassword, unknownEmail, "failure modes must be indistinguishable")
}
