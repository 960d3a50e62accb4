package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/clinic-service/internal/api/dto"
	"github.com/spec-kit/clinic-service/internal/repository"
	"github.com/spec-kit/clinic-service/internal/service"
	apperrors "github.com/spec-kit/clinic-service/pkg/util"
)

// AppointmentsHandler manages appointment endpoints.
type AppointmentsHandler struct {
	service *service.AppointmentService
}

// NewAppointmentsHandler constructs handler.
func NewAppointmentsHandler(appointmentService *service.AppointmentService) *AppointmentsHandler {
	return &AppointmentsHandler{service: appointmentService}
}

// Create POST /appointments.
func (h *AppointmentsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if details := req.Validate(); details != nil {
		return apperrors.NewValidationError("invalid appointment", details)
	}

	appointment, err := h.service.Book(c.Context(), req.PatientID, req.EmployeeID, req.Start, req.End)
	if err != nil {
		return err
	}

	c.Set("Location", fmt.Sprintf("/appointments/%s", appointment.ID))
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewAppointmentResponse(appointment)})
}

// List GET /appointments.
func (h *AppointmentsHandler) List(c *fiber.Ctx) error {
	page := ParsePage(c)
	filter := repository.AppointmentFilter{
		Limit:  page.Size,
		Offset: page.Offset(),
	}
	if specialist := c.Query("specialist-id"); specialist != "" {
		id, err := uuid.Parse(specialist)
		if err != nil {
			return apperrors.NewValidationError("invalid specialist id", map[string]any{"specialist-id": specialist})
		}
		filter.EmployeeID = &id
	}
	if start := parseTime(c.Query("start")); start != nil {
		filter.Start = start
	}
	if end := parseTime(c.Query("end")); end != nil {
		filter.End = end
	}

	appointments, total, err := h.service.List(c.Context(), filter)
	if err != nil {
		return err
	}
	if len(appointments) == 0 {
		return c.SendStatus(http.StatusNoContent)
	}

	items := make([]dto.AppointmentResponse, 0, len(appointments))
	for i := range appointments {
		item := dto.NewAppointmentResponse(&appointments[i])
		item.Location = fmt.Sprintf("/appointments/%s", item.ID)
		items = append(items, item)
	}
	SetLinkHeader(c, "/appointments", page, total)
	return c.JSON(fiber.Map{"data": items})
}

// Delete DELETE /appointments/:id.
func (h *AppointmentsHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperrors.NewValidationError("invalid appointment id", map[string]any{"id": c.Params("id")})
	}
	if err := h.service.Cancel(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func parseTime(val string) *time.Time {
	if val == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return nil
	}
	return &t
}
