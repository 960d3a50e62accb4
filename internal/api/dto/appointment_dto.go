package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/clinic-service/internal/domain"
)

// CreateAppointmentRequest payload.
type CreateAppointmentRequest struct {
	PatientID  uuid.UUID `json:"patient_id"`
	EmployeeID uuid.UUID `json:"employee_id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
}

// Validate returns per-field problems, or nil when the payload is valid.
func (r CreateAppointmentRequest) Validate() map[string]any {
	errs := fieldErrors{}
	if r.PatientID == uuid.Nil {
		errs.add("patient_id", "required")
	}
	if r.EmployeeID == uuid.Nil {
		errs.add("employee_id", "required")
	}
	if r.Start.IsZero() {
		errs.add("start", "required")
	}
	if r.End.IsZero() {
		errs.add("end", "required")
	}
	if !r.Start.IsZero() && !r.End.After(r.Start) {
		errs.add("end", "must be after start")
	}
	return errs.orNil()
}

// AppointmentResponse serializes an appointment.
type AppointmentResponse struct {
	ID         string    `json:"id"`
	PatientID  string    `json:"patient_id"`
	EmployeeID string    `json:"employee_id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Location   string    `json:"location,omitempty"`
}

// NewAppointmentResponse maps a domain appointment.
func NewAppointmentResponse(appointment *domain.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:         appointment.ID.String(),
		PatientID:  appointment.PatientID.String(),
		EmployeeID: appointment.EmployeeID.String(),
		Start:      appointment.Start,
		End:        appointment.End,
	}
}
