package domain

import (
	"time"

	"github.com/google/uuid"
)

// Seeded application role ids from dicts.application_roles.
const (
	RoleAdministrator = 1
	RoleDoctor        = 2
	RoleReceptionist  = 3
)

// Employee is a clinic staff member who can authenticate against the API.
type Employee struct {
	ID                 uuid.UUID
	Name               string
	Surname            string
	PeselOrIdentifier  string
	BirthDate          time.Time
	RoleID             int
	HashedPassword     []byte
	Telephone          *string
	BusinessTelephone  *string
	Email              string
	Address            string
	CreateDate         time.Time
	CreatedByID        uuid.UUID
	LastModifiedByID   *uuid.UUID
	LastModifiedDate   *time.Time
}

// EmployeeUpdate carries a partial update; nil fields stay untouched.
type EmployeeUpdate struct {
	Name              *string
	Surname           *string
	RoleID            *int
	PeselOrIdentifier *string
	BirthDate         *time.Time
	Telephone         *string
	BusinessTelephone *string
	Email             *string
	Address           *string
}
