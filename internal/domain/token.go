package domain

import (
	"time"

	"github.com/google/uuid"
)

// AccessToken is an opaque bearer token row. The token string carries no
// claims; all authority lives in this row and dies with its expiration.
type AccessToken struct {
	AccessToken    string
	EmployeeID     uuid.UUID
	RoleID         int
	ExpirationDate time.Time
}
