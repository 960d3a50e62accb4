package dto

import (
	"time"

	"github.com/spec-kit/clinic-service/internal/domain"
)

// CreateEmployeeRequest payload.
type CreateEmployeeRequest struct {
	Name              string    `json:"name"`
	Surname           string    `json:"surname"`
	RoleID            int       `json:"role_id"`
	PeselOrIdentifier string    `json:"pesel_or_identifier"`
	BirthDate         time.Time `json:"birth_date"`
	Telephone         *string   `json:"telephone"`
	BusinessTelephone *string   `json:"business_telephone"`
	Email             string    `json:"email"`
	Address           string    `json:"address"`
	Password          string    `json:"password"`
	ConfirmPassword   string    `json:"confirm_password"`
}

// Validate returns per-field problems, or nil when the payload is valid.
func (r CreateEmployeeRequest) Validate() map[string]any {
	errs := fieldErrors{}
	checkLength(errs, "name", r.Name, 2, 155)
	checkLength(errs, "surname", r.Surname, 2, 255)
	if r.RoleID <= 0 {
		errs.add("role_id", "must be positive")
	}
	checkLength(errs, "pesel_or_identifier", r.PeselOrIdentifier, 7, 36)
	checkBirthDate(errs, "birth_date", r.BirthDate)
	checkTelephone(errs, "telephone", r.Telephone)
	checkTelephone(errs, "business_telephone", r.BusinessTelephone)
	if r.Telephone == nil && r.BusinessTelephone == nil {
		errs.add("telephone", "telephone or business_telephone required")
	}
	checkLength(errs, "email", r.Email, 5, 255)
	checkLength(errs, "address", r.Address, 1, 500)
	checkPassword(errs, "password", r.Password)
	if r.Password != r.ConfirmPassword {
		errs.add("confirm_password", "passwords don't match")
	}
	return errs.orNil()
}

// UpdateEmployeeRequest payload; absent fields stay unchanged.
type UpdateEmployeeRequest struct {
	Name              *string    `json:"name"`
	Surname           *string    `json:"surname"`
	RoleID            *int       `json:"role_id"`
	PeselOrIdentifier *string    `json:"pesel_or_identifier"`
	BirthDate         *time.Time `json:"birth_date"`
	Telephone         *string    `json:"telephone"`
	BusinessTelephone *string    `json:"business_telephone"`
	Email             *string    `json:"email"`
	Address           *string    `json:"address"`
}

// Validate returns per-field problems, or nil when the payload is valid.
func (r UpdateEmployeeRequest) Validate() map[string]any {
	errs := fieldErrors{}
	checkOptionalLength(errs, "name", r.Name, 2, 155)
	checkOptionalLength(errs, "surname", r.Surname, 2, 255)
	if r.RoleID != nil && *r.RoleID <= 0 {
		errs.add("role_id", "must be positive")
	}
	checkOptionalLength(errs, "pesel_or_identifier", r.PeselOrIdentifier, 7, 36)
	if r.BirthDate != nil {
		checkBirthDate(errs, "birth_date", *r.BirthDate)
	}
	checkTelephone(errs, "telephone", r.Telephone)
	checkTelephone(errs, "business_telephone", r.BusinessTelephone)
	checkOptionalLength(errs, "email", r.Email, 5, 255)
	checkOptionalLength(errs, "address", r.Address, 1, 500)
	return errs.orNil()
}

// ToDomain converts the request into the partial-update shape.
func (r UpdateEmployeeRequest) ToDomain() domain.EmployeeUpdate {
	return domain.EmployeeUpdate{
		Name:              r.Name,
		Surname:           r.Surname,
		RoleID:            r.RoleID,
		PeselOrIdentifier: r.PeselOrIdentifier,
		BirthDate:         r.BirthDate,
		Telephone:         r.Telephone,
		BusinessTelephone: r.BusinessTelephone,
		Email:             r.Email,
		Address:           r.Address,
	}
}

// EmployeeResponse serializes an employee without its password hash.
type EmployeeResponse struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Surname           string     `json:"surname"`
	RoleID            int        `json:"role_id"`
	PeselOrIdentifier string     `json:"pesel_or_identifier"`
	BirthDate         time.Time  `json:"birth_date"`
	Telephone         *string    `json:"telephone"`
	BusinessTelephone *string    `json:"business_telephone"`
	Email             string     `json:"email"`
	Address           string     `json:"address"`
	CreateDate        time.Time  `json:"create_date"`
	LastModifiedDate  *time.Time `json:"last_modified_date,omitempty"`
	Location          string     `json:"location,omitempty"`
}

// NewEmployeeResponse maps a domain employee.
func NewEmployeeResponse(employee *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:                employee.ID.String(),
		Name:              employee.Name,
		Surname:           employee.Surname,
		RoleID:            employee.RoleID,
		PeselOrIdentifier: employee.PeselOrIdentifier,
		BirthDate:         employee.BirthDate,
		Telephone:         employee.Telephone,
		BusinessTelephone: employee.BusinessTelephone,
		Email:             employee.Email,
		Address:           employee.Address,
		CreateDate:        employee.CreateDate,
		LastModifiedDate:  employee.LastModifiedDate,
	}
}
