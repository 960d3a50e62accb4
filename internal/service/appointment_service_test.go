package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/clinic-service/internal/domain"
	"github.com/spec-kit/clinic-service/internal/events"
	"github.com/spec-kit/clinic-service/internal/repository"
	apperrors "github.com/spec-kit/clinic-service/pkg/util"
)

type stubAppointmentRepo struct {
	appointments map[uuid.UUID]*domain.Appointment
	created      []*domain.Appointment
}

func newStubAppointmentRepo() *stubAppointmentRepo {
	return &stubAppointmentRepo{appointments: make(map[uuid.UUID]*domain.Appointment)}
}

func (r *stubAppointmentRepo) Create(_ context.Context, appointment *domain.Appointment) error {
	appointment.ID = uuid.New()
	r.appointments[appointment.ID] = appointment
	r.created = append(r.created, appointment)
	return nil
}

func (r *stubAppointmentRepo) ListWithFilter(_ context.Context, _ repository.AppointmentFilter) ([]domain.Appointment, int, error) {
	var out []domain.Appointment
	for _, appointment := range r.appointments {
		out = append(out, *appointment)
	}
	return out, len(out), nil
}

func (r *stubAppointmentRepo) Delete(_ context.Context, id uuid.UUID) (int64, uuid.UUID, time.Time, error) {
	appointment, ok := r.appointments[id]
	if !ok {
		return 0, uuid.Nil, time.Time{}, nil
	}
	delete(r.appointments, id)
	return 1, appointment.PatientID, appointment.Start, nil
}

// channelDispatcher forwards published events to a channel so tests can wait
// for the detached publish goroutine.
type channelDispatcher struct {
	published chan events.Event
}

func newChannelDispatcher() *channelDispatcher {
	return &channelDispatcher{published: make(chan events.Event, 8)}
}

func (d *channelDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published <- event
	return nil
}

func (d *channelDispatcher) Subscribe(_ events.EventType, _ events.EventHandler) {}

func TestAppointmentService_BookRejectsInvertedRange(t *testing.T) {
	repo := newStubAppointmentRepo()
	svc := NewAppointmentService(repo, newChannelDispatcher())

	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	_, err := svc.Book(context.Background(), uuid.New(), uuid.New(), start, start.Add(-time.Minute))

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	assert.Empty(t, repo.created)
}

func TestAppointmentService_BookRejectsZeroLengthVisit(t *testing.T) {
	svc := NewAppointmentService(newStubAppointmentRepo(), newChannelDispatcher())

	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	_, err := svc.Book(context.Background(), uuid.New(), uuid.New(), start, start)
	assert.Error(t, err)
}

func TestAppointmentService_BookStoresAppointment(t *testing.T) {
	repo := newStubAppointmentRepo()
	svc := NewAppointmentService(repo, newChannelDispatcher())

	patientID, employeeID := uuid.New(), uuid.New()
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	appointment, err := svc.Book(context.Background(), patientID, employeeID, start, start.Add(30*time.Minute))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, appointment.ID)
	assert.Equal(t, patientID, appointment.PatientID)
	assert.Equal(t, employeeID, appointment.EmployeeID)
}

func TestAppointmentService_CancelPublishesOneEvent(t *testing.T) {
	repo := newStubAppointmentRepo()
	dispatcher := newChannelDispatcher()
	svc := NewAppointmentService(repo, dispatcher)

	patientID := uuid.New()
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	appointment, err := svc.Book(context.Background(), patientID, uuid.New(), start, start.Add(time.Hour))
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(context.Background(), appointment.ID))
	assert.NotContains(t, repo.appointments, appointment.ID)

	select {
	case event := <-dispatcher.published:
		assert.Equal(t, events.EventAppointmentCancelled, event.Type)
		payload, ok := event.Payload.(events.AppointmentCancelledPayload)
		require.True(t, ok)
		assert.Equal(t, appointment.ID, payload.AppointmentID)
		assert.Equal(t, patientID, payload.PatientID)
		assert.Equal(t, start, payload.VisitStart)
	case <-time.After(time.Second):
		t.Fatal("cancellation event was not published")
	}

	select {
	case <-dispatcher.published:
		t.Fatal("cancellation must publish exactly one event")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestAppointmentService_CancelUnknownAppointment(t *testing.T) {
	dispatcher := newChannelDispatcher()
	svc := NewAppointmentService(newStubAppointmentRepo(), dispatcher)

	err := svc.Cancel(context.Background(), uuid.New())
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, 404, domainErr.HTTPStatus)

	select {
	case <-dispatcher.published:
		t.Fatal("no event may be published for a failed cancellation")
	case <-time.After(50 * time.Millisecond):
	}
}
