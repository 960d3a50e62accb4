package domain

import (
	"time"

	"github.com/google/uuid"
)

// Appointment is a booked visit between a patient and an employee.
type Appointment struct {
	ID         uuid.UUID
	PatientID  uuid.UUID
	EmployeeID uuid.UUID
	Start      time.Time
	End        time.Time
}
