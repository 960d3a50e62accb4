package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/clinic-service/internal/auth"
	"github.com/spec-kit/clinic-service/internal/domain"
	apperrors "github.com/spec-kit/clinic-service/pkg/util"
)

func TestPatientService_RegisterGeneratesCredential(t *testing.T) {
	patients := newStubPatientRepo()
	hasher := auth.NewPasswordHasher("test-salt")
	svc := NewPatientService(patients, hasher)

	email := "patient@example.com"
	patient, password, err := svc.Register(context.Background(), PatientCreateInput{
		Login:             "jkowalski",
		Name:              "Jan",
		Surname:           "Kowalski",
		Sex:               "M",
		PeselOrIdentifier: "90010112345",
		Email:             &email,
	})
	require.NoError(t, err)
	require.NotEmpty(t, password)

	// The stored hash corresponds to the disclosed plaintext; the plaintext
	// itself is never persisted.
	assert.True(t, hasher.Verify(password, patient.HashedPassword))
	assert.True(t, strings.ContainsAny(password, "ABCDEFGHIJKLMNOPQRSTUVWXYZ"))
	assert.True(t, strings.ContainsAny(password, "0123456789"))

	stored := patients.patients[patient.ID]
	require.NotNil(t, stored)
	assert.Equal(t, "jkowalski", stored.Login)
	assert.Nil(t, stored.IsVerified, "new accounts start unverified")
}

func TestPatientService_DeleteUnknownPatient(t *testing.T) {
	svc := NewPatientService(newStubPatientRepo(), auth.NewPasswordHasher("test-salt"))

	err := svc.Delete(context.Background(), uuid.New())
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, 404, domainErr.HTTPStatus)
}

func TestPatientService_UpdateUnknownPatient(t *testing.T) {
	svc := NewPatientService(newStubPatientRepo(), auth.NewPasswordHasher("test-salt"))

	name := "Anna"
	_, err := svc.Update(context.Background(), uuid.New(), domain.PatientUpdate{Name: &name})
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}
