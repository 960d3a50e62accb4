package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/clinic-service/internal/auth"
	"github.com/spec-kit/clinic-service/internal/domain"
	"github.com/spec-kit/clinic-service/internal/repository"
	apperrors "github.com/spec-kit/clinic-service/pkg/util"
)

// EmployeeCreateInput carries validated fields for a new employee record.
type EmployeeCreateInput struct {
	Name              string
	Surname           string
	RoleID            int
	PeselOrIdentifier string
	BirthDate         time.Time
	Telephone         *string
	BusinessTelephone *string
	Email             string
	Address           string
	Password          string
}

// EmployeeService orchestrates employee CRUD.
type EmployeeService struct {
	employees repository.EmployeeRepository
	hasher    *auth.PasswordHasher
}

// NewEmployeeService builds the service.
func NewEmployeeService(employees repository.EmployeeRepository, hasher *auth.PasswordHasher) *EmployeeService {
	return &EmployeeService{employees: employees, hasher: hasher}
}

// Create hashes the password, stamps the creator and persists the employee.
func (s *EmployeeService) Create(ctx context.Context, input EmployeeCreateInput, createdBy uuid.UUID) (*domain.Employee, error) {
	employee := &domain.Employee{
		Name:              input.Name,
		Surname:           input.Surname,
		RoleID:            input.RoleID,
		PeselOrIdentifier: input.PeselOrIdentifier,
		BirthDate:         input.BirthDate,
		HashedPassword:    s.hasher.Hash(input.Password),
		Telephone:         input.Telephone,
		BusinessTelephone: input.BusinessTelephone,
		Email:             input.Email,
		Address:           input.Address,
		CreatedByID:       createdBy,
	}
	if err := s.employees.Create(ctx, employee); err != nil {
		return nil, apperrors.MapError(err)
	}
	return employee, nil
}

// List returns one page of employees together with the total row count.
func (s *EmployeeService) List(ctx context.Context, limit, offset int) ([]domain.Employee, int, error) {
	employees, total, err := s.employees.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, apperrors.MapError(err)
	}
	return employees, total, nil
}

// Update applies a partial update and stamps modification audit fields.
func (s *EmployeeService) Update(ctx context.Context, id uuid.UUID, update domain.EmployeeUpdate, modifiedBy uuid.UUID) (*domain.Employee, error) {
	employee, err := s.employees.Update(ctx, id, update, modifiedBy, time.Now())
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("employee", map[string]any{"id": id.String()})
		}
		return nil, apperrors.MapError(err)
	}
	return employee, nil
}

// Delete removes an employee record.
func (s *EmployeeService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.employees.Delete(ctx, id)
	if err != nil {
		return apperrors.MapError(err)
	}
	if deleted == 0 {
		return apperrors.NewNotFound("employee", map[string]any{"id": id.String()})
	}
	return nil
}
