package service

import (
	"context"
	"errors"

	"github.com/spec-kit/clinic-service/internal/auth"
	"github.com/spec-kit/clinic-service/internal/config"
	"github.com/spec-kit/clinic-service/internal/repository"
)

// ErrBadCredentials covers every login failure. Unknown email and wrong
// password are indistinguishable to the caller.
var ErrBadCredentials = errors.New("invalid credentials")

// AuthService coordinates the login flow.
type AuthService struct {
	employees repository.EmployeeRepository
	hasher    *auth.PasswordHasher
	tokenMgr  *auth.TokenManager
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, employees repository.EmployeeRepository, tokens auth.TokenRepository) *AuthService {
	return &AuthService{
		employees: employees,
		hasher:    auth.NewPasswordHasher(cfg.Salt),
		tokenMgr:  auth.NewTokenManager(tokens, cfg.AccessTokenTTL()),
	}
}

// Login authenticates an employee by email and password and issues a new
// opaque bearer token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	employee, err := s.employees.GetByEmail(ctx, email)
	if err != nil {
		return "", ErrBadCredentials
	}
	if !s.hasher.Verify(password, employee.HashedPassword) {
		return "", ErrBadCredentials
	}
	return s.tokenMgr.Issue(ctx, employee.ID, employee.RoleID)
}

// Hasher exposes the credential hasher for account provisioning.
func (s *AuthService) Hasher() *auth.PasswordHasher {
	return s.hasher
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
