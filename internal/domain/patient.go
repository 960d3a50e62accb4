package domain

import (
	"time"

	"github.com/google/uuid"
)

// Patient is a clinic patient account. Verification flags are nil until the
// identity, telephone or email has been confirmed; partial unique indexes on
// the verified values prevent hoarding contact data with fictional accounts.
type Patient struct {
	ID                uuid.UUID
	Login             string
	HashedPassword    []byte
	Name              string
	Surname           string
	Sex               string
	PeselOrIdentifier string
	BirthDate         time.Time
	Telephone         *string
	Email             *string
	Address           string
	CreateDate        time.Time
	IsVerified        *bool
	TelephoneVerified *bool
	EmailVerified     *bool
}

// PatientUpdate carries a partial update; nil fields stay untouched.
type PatientUpdate struct {
	Name      *string
	Surname   *string
	Telephone *string
	Email     *string
	Address   *string
}

// PatientVerification marks which patient attributes have been confirmed.
type PatientVerification struct {
	IsVerified        *bool
	TelephoneVerified *bool
	EmailVerified     *bool
}
