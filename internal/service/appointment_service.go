package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/clinic-service/internal/domain"
	"github.com/spec-kit/clinic-service/internal/events"
	"github.com/spec-kit/clinic-service/internal/repository"
	apperrors "github.com/spec-kit/clinic-service/pkg/util"
)

// AppointmentService orchestrates visit booking and cancellation.
type AppointmentService struct {
	appointments repository.AppointmentRepository
	dispatcher   events.Dispatcher
}

// NewAppointmentService builds the service.
func NewAppointmentService(appointments repository.AppointmentRepository, dispatcher events.Dispatcher) *AppointmentService {
	return &AppointmentService{appointments: appointments, dispatcher: dispatcher}
}

// Book creates an appointment. Double-booking on (start, employee) or
// (start, patient) surfaces as a constraint violation from the store.
func (s *AppointmentService) Book(ctx context.Context, patientID, employeeID uuid.UUID, start, end time.Time) (*domain.Appointment, error) {
	if !end.After(start) {
		return nil, apperrors.NewValidationError("end must be after start", map[string]any{
			"start": start, "end": end,
		})
	}
	appointment := &domain.Appointment{
		PatientID:  patientID,
		EmployeeID: employeeID,
		Start:      start,
		End:        end,
	}
	if err := s.appointments.Create(ctx, appointment); err != nil {
		return nil, apperrors.MapError(err)
	}
	return appointment, nil
}

// List returns one page of appointments matching the filter, with the total.
func (s *AppointmentService) List(ctx context.Context, filter repository.AppointmentFilter) ([]domain.Appointment, int, error) {
	appointments, total, err := s.appointments.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.MapError(err)
	}
	return appointments, total, nil
}

// Cancel deletes the appointment and, once the deletion has committed,
// publishes exactly one cancellation event on a detached context. The
// triggering request never waits for notification delivery and notification
// failure cannot undo the cancellation.
func (s *AppointmentService) Cancel(ctx context.Context, id uuid.UUID) error {
	deleted, patientID, visitStart, err := s.appointments.Delete(ctx, id)
	if err != nil {
		return apperrors.MapError(err)
	}
	if deleted == 0 {
		return apperrors.NewNotFound("appointment", map[string]any{"id": id.String()})
	}

	event := events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventAppointmentCancelled,
		Timestamp: time.Now(),
		Payload: events.AppointmentCancelledPayload{
			AppointmentID: id,
			PatientID:     patientID,
			VisitStart:    visitStart,
		},
	}
	go func() {
		_ = s.dispatcher.Publish(context.Background(), event)
	}()
	return nil
}
