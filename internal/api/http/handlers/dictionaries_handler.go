package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-service/internal/api/dto"
	"github.com/spec-kit/clinic-service/internal/auth"
	"github.com/spec-kit/clinic-service/internal/service"
	apperrors "github.com/spec-kit/clinic-service/pkg/util"
)

// DictionariesHandler exposes uniform CRUD over every registered dictionary.
type DictionariesHandler struct {
	service *service.DictionaryService
}

// NewDictionariesHandler constructs handler.
func NewDictionariesHandler(dictionaryService *service.DictionaryService) *DictionariesHandler {
	return &DictionariesHandler{service: dictionaryService}
}

// AddRow POST /dictionaries/:name/:id. Dictionary row ids are assigned by
// the caller.
func (h *DictionariesHandler) AddRow(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("employee required")
	}
	descriptor, err := h.service.Resolve(c.Params("name"))
	if err != nil {
		return err
	}
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return apperrors.NewValidationError("invalid row id", map[string]any{"id": c.Params("id")})
	}
	var req dto.CreateDictionaryRowRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if details := req.Validate(); details != nil {
		return apperrors.NewValidationError("invalid dictionary row", details)
	}

	input := service.DictionaryRowInput{
		DisplayName:   req.DisplayName,
		Description:   req.Description,
		IsActive:      req.IsActive,
		IsSystemValue: req.IsSystemValue,
	}
	row, err := h.service.AddRow(c.Context(), descriptor, id, input, principal.EmployeeID)
	if err != nil {
		return err
	}

	c.Set("Location", fmt.Sprintf("/dictionaries/%s/%d", descriptor.Name, row.ID))
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewDictionaryRowResponse(row)})
}

// ListRows GET /dictionaries/:name. The optional is-active query filters by
// the active flag; when absent every row is returned.
func (h *DictionariesHandler) ListRows(c *fiber.Ctx) error {
	descriptor, err := h.service.Resolve(c.Params("name"))
	if err != nil {
		return err
	}

	var activeFilter *bool
	if raw := c.Query("is-active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return apperrors.NewValidationError("invalid is-active filter", map[string]any{"is-active": raw})
		}
		activeFilter = &active
	}

	rows, err := h.service.ListRows(c.Context(), descriptor, activeFilter)
	if err != nil {
		return err
	}

	items := make([]dto.DictionaryRowResponse, 0, len(rows))
	for i := range rows {
		item := dto.NewDictionaryRowResponse(&rows[i])
		item.Location = fmt.Sprintf("/dictionaries/%s/%d", descriptor.Name, item.ID)
		items = append(items, item)
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetRow GET /dictionaries/:name/:id.
func (h *DictionariesHandler) GetRow(c *fiber.Ctx) error {
	descriptor, err := h.service.Resolve(c.Params("name"))
	if err != nil {
		return err
	}
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return apperrors.NewValidationError("invalid row id", map[string]any{"id": c.Params("id")})
	}

	row, err := h.service.GetRow(c.Context(), descriptor, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewDictionaryRowResponse(row)})
}

// UpdateRow PATCH /dictionaries/:name/:id.
func (h *DictionariesHandler) UpdateRow(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("employee required")
	}
	descriptor, err := h.service.Resolve(c.Params("name"))
	if err != nil {
		return err
	}
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return apperrors.NewValidationError("invalid row id", map[string]any{"id": c.Params("id")})
	}
	var req dto.UpdateDictionaryRowRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if details := req.Validate(); details != nil {
		return apperrors.NewValidationError("invalid dictionary row", details)
	}

	row, err := h.service.UpdateRow(c.Context(), descriptor, id, req.ToDomain(), principal.EmployeeID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewDictionaryRowResponse(row)})
}

// DeleteRow DELETE /dictionaries/:name/:id.
func (h *DictionariesHandler) DeleteRow(c *fiber.Ctx) error {
	descriptor, err := h.service.Resolve(c.Params("name"))
	if err != nil {
		return err
	}
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return apperrors.NewValidationError("invalid row id", map[string]any{"id": c.Params("id")})
	}

	if err := h.service.DeleteRow(c.Context(), descriptor, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
