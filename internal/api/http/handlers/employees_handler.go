package handlers

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/clinic-service/internal/api/dto"
	"github.com/spec-kit/clinic-service/internal/auth"
	"github.com/spec-kit/clinic-service/internal/service"
	apperrors "github.com/spec-kit/clinic-service/pkg/util"
)

// EmployeesHandler manages employee endpoints.
type EmployeesHandler struct {
	service *service.EmployeeService
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(employeeService *service.EmployeeService) *EmployeesHandler {
	return &EmployeesHandler{service: employeeService}
}

// Create POST /employees.
func (h *EmployeesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("employee required")
	}
	var req dto.CreateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if details := req.Validate(); details != nil {
		return apperrors.NewValidationError("invalid employee", details)
	}

	input := service.EmployeeCreateInput{
		Name:              req.Name,
		Surname:           req.Surname,
		RoleID:            req.RoleID,
		PeselOrIdentifier: req.PeselOrIdentifier,
		BirthDate:         req.BirthDate,
		Telephone:         req.Telephone,
		BusinessTelephone: req.BusinessTelephone,
		Email:             req.Email,
		Address:           req.Address,
		Password:          req.Password,
	}
	employee, err := h.service.Create(c.Context(), input, principal.EmployeeID)
	if err != nil {
		return err
	}

	c.Set("Location", fmt.Sprintf("/employees/%s", employee.ID))
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewEmployeeResponse(employee)})
}

// List GET /employees.
func (h *EmployeesHandler) List(c *fiber.Ctx) error {
	page := ParsePage(c)
	employees, total, err := h.service.List(c.Context(), page.Size, page.Offset())
	if err != nil {
		return err
	}
	if len(employees) == 0 {
		return c.SendStatus(http.StatusNoContent)
	}

	items := make([]dto.EmployeeResponse, 0, len(employees))
	for i := range employees {
		item := dto.NewEmployeeResponse(&employees[i])
		item.Location = fmt.Sprintf("/employees/%s", item.ID)
		items = append(items, item)
	}
	SetLinkHeader(c, "/employees", page, total)
	return c.JSON(fiber.Map{"data": items})
}

// Update PATCH /employees/:id.
func (h *EmployeesHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("employee required")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperrors.NewValidationError("invalid employee id", map[string]any{"id": c.Params("id")})
	}
	var req dto.UpdateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if details := req.Validate(); details != nil {
		return apperrors.NewValidationError("invalid employee", details)
	}

	employee, err := h.service.Update(c.Context(), id, req.ToDomain(), principal.EmployeeID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEmployeeResponse(employee)})
}

// Delete DELETE /employees/:id.
func (h *EmployeesHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperrors.NewValidationError("invalid employee id", map[string]any{"id": c.Params("id")})
	}
	if err := h.service.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
