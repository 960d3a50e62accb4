package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/clinic-service/internal/config"
	"github.com/spec-kit/clinic-service/internal/events"
	"github.com/spec-kit/clinic-service/internal/repository"
)

const (
	cancelVisitEmailSubject = "Cancellation of visit %s"
	cancelVisitEmailBody    = "We regret to inform you that your visit on %s has been canceled. " +
		"We apologize for the difficulties.\n\nBest regards,\nMedApp team"
	cancelVisitShortText = "Your visit on %s has been canceled."
)

// NotificationService handles emitting notifications for domain events.
// Delivery is best-effort: failures are logged and swallowed, never
// propagated back to the triggering request.
type NotificationService struct {
	dispatcher events.Dispatcher
	patients   repository.PatientRepository
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, patients repository.PatientRepository, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		patients:   patients,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventAppointmentCancelled, n.handleAppointmentCancelled)
}

func (n *NotificationService) handleAppointmentCancelled(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.AppointmentCancelledPayload)
	if !ok {
		n.logger.Warn("unexpected payload for appointment_cancelled", zap.String("event_id", event.ID))
		return nil
	}

	patient, err := n.patients.GetByID(ctx, payload.PatientID)
	if err != nil {
		n.logger.Warn("cancellation notice skipped, patient lookup failed",
			zap.String("patient_id", payload.PatientID.String()), zap.Error(err))
		return nil
	}

	visitDate := payload.VisitStart.Format("2006-01-02 15:04:05")

	if patient.EmailVerified != nil && *patient.EmailVerified && patient.Email != nil {
		n.sendEmailStub(*patient.Email,
			fmt.Sprintf(cancelVisitEmailSubject, visitDate),
			fmt.Sprintf(cancelVisitEmailBody, visitDate))
	}
	if patient.TelephoneVerified != nil && *patient.TelephoneVerified && patient.Telephone != nil {
		n.sendSMSStub(*patient.Telephone, fmt.Sprintf(cancelVisitShortText, visitDate))
	}
	n.notifyInAppStub(payload.PatientID.String(), fmt.Sprintf(cancelVisitShortText, visitDate))
	return nil
}

func (n *NotificationService) sendEmailStub(to, subject, body string) {
	n.logger.Debug("sendEmailStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("to", to),
		zap.String("subject", subject))
}

func (n *NotificationService) sendSMSStub(number, text string) {
	n.logger.Debug("sendSMSStub",
		zap.String("sender", n.cfg.SMSSender),
		zap.String("to", number),
		zap.String("text", text))
}

func (n *NotificationService) notifyInAppStub(patientID, text string) {
	n.logger.Debug("notifyInAppStub",
		zap.String("patient_id", patientID),
		zap.String("text", text))
}
