package dto

import (
	"time"

	"github.com/spec-kit/clinic-service/internal/domain"
)

// CreatePatientRequest payload.
type CreatePatientRequest struct {
	Login             string    `json:"login"`
	Name              string    `json:"name"`
	Surname           string    `json:"surname"`
	Sex               string    `json:"sex"`
	PeselOrIdentifier string    `json:"pesel_or_identifier"`
	BirthDate         time.Time `json:"birth_date"`
	Telephone         *string   `json:"telephone"`
	Email             *string   `json:"email"`
	Address           string    `json:"address"`
}

// Validate returns per-field problems, or nil when the payload is valid.
func (r CreatePatientRequest) Validate() map[string]any {
	errs := fieldErrors{}
	checkLength(errs, "login", r.Login, 2, 155)
	checkLength(errs, "name", r.Name, 2, 155)
	checkLength(errs, "surname", r.Surname, 2, 255)
	if r.Sex == "" {
		errs.add("sex", "required")
	}
	checkLength(errs, "pesel_or_identifier", r.PeselOrIdentifier, 3, 36)
	checkBirthDate(errs, "birth_date", r.BirthDate)
	checkTelephone(errs, "telephone", r.Telephone)
	checkOptionalLength(errs, "email", r.Email, 5, 255)
	if r.Address == "" {
		errs.add("address", "required")
	}
	return errs.orNil()
}

// UpdatePatientRequest payload; absent fields stay unchanged.
type UpdatePatientRequest struct {
	Name      *string `json:"name"`
	Surname   *string `json:"surname"`
	Telephone *string `json:"telephone"`
	Email     *string `json:"email"`
	Address   *string `json:"address"`
}

// Validate returns per-field problems, or nil when the payload is valid.
func (r UpdatePatientRequest) Validate() map[string]any {
	errs := fieldErrors{}
	checkOptionalLength(errs, "name", r.Name, 2, 155)
	checkOptionalLength(errs, "surname", r.Surname, 2, 255)
	checkTelephone(errs, "telephone", r.Telephone)
	checkOptionalLength(errs, "email", r.Email, 5, 255)
	return errs.orNil()
}

// ToDomain converts the request into the partial-update shape.
func (r UpdatePatientRequest) ToDomain() domain.PatientUpdate {
	return domain.PatientUpdate{
		Name:      r.Name,
		Surname:   r.Surname,
		Telephone: r.Telephone,
		Email:     r.Email,
		Address:   r.Address,
	}
}

// VerifyPatientRequest marks verified patient attributes.
type VerifyPatientRequest struct {
	IsVerified        *bool `json:"is_verified"`
	TelephoneVerified *bool `json:"telephone_verified"`
	EmailVerified     *bool `json:"email_verified"`
}

// ToDomain converts the request into the verification shape.
func (r VerifyPatientRequest) ToDomain() domain.PatientVerification {
	return domain.PatientVerification{
		IsVerified:        r.IsVerified,
		TelephoneVerified: r.TelephoneVerified,
		EmailVerified:     r.EmailVerified,
	}
}

// PatientResponse serializes a patient without its password hash.
type PatientResponse struct {
	ID                string    `json:"id"`
	Login             string    `json:"login"`
	Name              string    `json:"name"`
	Surname           string    `json:"surname"`
	Sex               string    `json:"sex"`
	PeselOrIdentifier string    `json:"pesel_or_identifier"`
	BirthDate         time.Time `json:"birth_date"`
	Telephone         *string   `json:"telephone"`
	Email             *string   `json:"email"`
	Address           string    `json:"address"`
	CreateDate        time.Time `json:"create_date"`
	IsVerified        *bool     `json:"is_verified"`
	TelephoneVerified *bool     `json:"telephone_verified"`
	EmailVerified     *bool     `json:"email_verified"`
	Location          string    `json:"location,omitempty"`
}

// NewPatientResponse maps a domain patient.
func NewPatientResponse(patient *domain.Patient) PatientResponse {
	return PatientResponse{
		ID:                patient.ID.String(),
		Login:             patient.Login,
		Name:              patient.Name,
		Surname:           patient.Surname,
		Sex:               patient.Sex,
		PeselOrIdentifier: patient.PeselOrIdentifier,
		BirthDate:         patient.BirthDate,
		Telephone:         patient.Telephone,
		Email:             patient.Email,
		Address:           patient.Address,
		CreateDate:        patient.CreateDate,
		IsVerified:        patient.IsVerified,
		TelephoneVerified: patient.TelephoneVerified,
		EmailVerified:     patient.EmailVerified,
	}
}

// CreatedPatientResponse includes the one-time generated password.
type CreatedPatientResponse struct {
	PatientResponse
	InitialPassword string `json:"initial_password"`
}
