package handlers

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/clinic-service/internal/api/dto"
	"github.com/spec-kit/clinic-service/internal/service"
	apperrors "github.com/spec-kit/clinic-service/pkg/util"
)

// PatientsHandler manages patient endpoints.
type PatientsHandler struct {
	service *service.PatientService
}

// NewPatientsHandler constructs handler.
func NewPatientsHandler(patientService *service.PatientService) *PatientsHandler {
	return &PatientsHandler{service: patientService}
}

// Create POST /patients. The generated account password appears in this
// response only.
func (h *PatientsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreatePatientRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if details := req.Validate(); details != nil {
		return apperrors.NewValidationError("invalid patient", details)
	}

	input := service.PatientCreateInput{
		Login:             req.Login,
		Name:              req.Name,
		Surname:           req.Surname,
		Sex:               req.Sex,
		PeselOrIdentifier: req.PeselOrIdentifier,
		BirthDate:         req.BirthDate,
		Telephone:         req.Telephone,
		Email:             req.Email,
		Address:           req.Address,
	}
	patient, password, err := h.service.Register(c.Context(), input)
	if err != nil {
		return err
	}

	c.Set("Location", fmt.Sprintf("/patients/%s", patient.ID))
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.CreatedPatientResponse{
		PatientResponse: dto.NewPatientResponse(patient),
		InitialPassword: password,
	}})
}

// List GET /patients.
func (h *PatientsHandler) List(c *fiber.Ctx) error {
	page := ParsePage(c)
	patients, total, err := h.service.List(c.Context(), page.Size, page.Offset())
	if err != nil {
		return err
	}
	if len(patients) == 0 {
		return c.SendStatus(http.StatusNoContent)
	}

	items := make([]dto.PatientResponse, 0, len(patients))
	for i := range patients {
		item := dto.NewPatientResponse(&patients[i])
		item.Location = fmt.Sprintf("/patients/%s", item.ID)
		items = append(items, item)
	}
	SetLinkHeader(c, "/patients", page, total)
	return c.JSON(fiber.Map{"data": items})
}

// Update PATCH /patients/:id.
func (h *PatientsHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperrors.NewValidationError("invalid patient id", map[string]any{"id": c.Params("id")})
	}
	var req dto.UpdatePatientRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if details := req.Validate(); details != nil {
		return apperrors.NewValidationError("invalid patient", details)
	}

	patient, err := h.service.Update(c.Context(), id, req.ToDomain())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPatientResponse(patient)})
}

// Verify PATCH /verify/patients/:id.
func (h *PatientsHandler) Verify(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperrors.NewValidationError("invalid patient id", map[string]any{"id": c.Params("id")})
	}
	var req dto.VerifyPatientRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	patient, err := h.service.Verify(c.Context(), id, req.ToDomain())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPatientResponse(patient)})
}

// Delete DELETE /patients/:id.
func (h *PatientsHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperrors.NewValidationError("invalid patient id", map[string]any{"id": c.Params("id")})
	}
	if err := h.service.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
