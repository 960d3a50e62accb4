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

// PatientCreateInput carries validated fields for patient registration.
type PatientCreateInput struct {
	Login             string
	Name              string
	Surname           string
	Sex               string
	PeselOrIdentifier string
	BirthDate         time.Time
	Telephone         *string
	Email             *string
	Address           string
}

// PatientService orchestrates patient accounts.
type PatientService struct {
	patients repository.PatientRepository
	hasher   *auth.PasswordHasher
}

// NewPatientService builds the service.
func NewPatientService(patients repository.PatientRepository, hasher *auth.PasswordHasher) *PatientService {
	return &PatientService{patients: patients, hasher: hasher}
}

// Register creates a patient account with a system-generated credential.
// The plaintext password is returned for one-time disclosure and is never
// stored or logged.
func (s *PatientService) Register(ctx context.Context, input PatientCreateInput) (*domain.Patient, string, error) {
	password, hash, err := s.hasher.GenerateRandomCredential()
	if err != nil {
		return nil, "", apperrors.NewInternalError(err)
	}

	patient := &domain.Patient{
		Login:             input.Login,
		HashedPassword:    hash,
		Name:              input.Name,
		Surname:           input.Surname,
		Sex:               input.Sex,
		PeselOrIdentifier: input.PeselOrIdentifier,
		BirthDate:         input.BirthDate,
		Telephone:         input.Telephone,
		Email:             input.Email,
		Address:           input.Address,
	}
	if err := s.patients.Create(ctx, patient); err != nil {
		return nil, "", apperrors.MapError(err)
	}
	return patient, password, nil
}

// List returns one page of patients together with the total row count.
func (s *PatientService) List(ctx context.Context, limit, offset int) ([]domain.Patient, int, error) {
	patients, total, err := s.patients.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, apperrors.MapError(err)
	}
	return patients, total, nil
}

// Update applies a partial update to patient contact data.
func (s *PatientService) Update(ctx context.Context, id uuid.UUID, update domain.PatientUpdate) (*domain.Patient, error) {
	patient, err := s.patients.Update(ctx, id, update)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("patient", map[string]any{"id": id.String()})
		}
		return nil, apperrors.MapError(err)
	}
	return patient, nil
}

// Verify marks patient identity, telephone or email as confirmed. Unique
// constraints on verified values may reject the transition.
func (s *PatientService) Verify(ctx context.Context, id uuid.UUID, verification domain.PatientVerification) (*domain.Patient, error) {
	patient, err := s.patients.Verify(ctx, id, verification)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("patient", map[string]any{"id": id.String()})
		}
		return nil, apperrors.MapError(err)
	}
	return patient, nil
}

// Delete removes a patient account.
func (s *PatientService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.patients.Delete(ctx, id)
	if err != nil {
		return apperrors.MapError(err)
	}
	if deleted == 0 {
		return apperrors.NewNotFound("patient", map[string]any{"id": id.String()})
	}
	return nil
}
