package dto

import (
	"time"

	"github.com/spec-kit/clinic-service/internal/domain"
)

// CreateDictionaryRowRequest payload.
type CreateDictionaryRowRequest struct {
	DisplayName   string `json:"display_name"`
	Description   string `json:"description"`
	IsActive      bool   `json:"is_active"`
	IsSystemValue bool   `json:"is_system_value"`
}

// Validate returns per-field problems, or nil when the payload is valid.
func (r CreateDictionaryRowRequest) Validate() map[string]any {
	errs := fieldErrors{}
	checkLength(errs, "display_name", r.DisplayName, 2, 255)
	if len(r.Description) > 1000 {
		errs.add("description", "length out of bounds")
	}
	return errs.orNil()
}

// UpdateDictionaryRowRequest payload; absent fields stay unchanged.
type UpdateDictionaryRowRequest struct {
	DisplayName *string `json:"display_name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// Validate returns per-field problems, or nil when the payload is valid.
func (r UpdateDictionaryRowRequest) Validate() map[string]any {
	errs := fieldErrors{}
	checkOptionalLength(errs, "display_name", r.DisplayName, 2, 255)
	if r.Description != nil && len(*r.Description) > 1000 {
		errs.add("description", "length out of bounds")
	}
	return errs.orNil()
}

// ToDomain converts the request into the partial-update shape.
func (r UpdateDictionaryRowRequest) ToDomain() domain.DictionaryRowUpdate {
	return domain.DictionaryRowUpdate{
		DisplayName: r.DisplayName,
		Description: r.Description,
		IsActive:    r.IsActive,
	}
}

// DictionaryRowResponse serializes a dictionary row.
type DictionaryRowResponse struct {
	ID               int        `json:"id"`
	DisplayName      string     `json:"display_name"`
	Description      string     `json:"description"`
	IsActive         bool       `json:"is_active"`
	IsSystemValue    bool       `json:"is_system_value"`
	CreateDate       time.Time  `json:"create_date"`
	LastModifiedDate *time.Time `json:"last_modified_date,omitempty"`
	Location         string     `json:"location,omitempty"`
}

// NewDictionaryRowResponse maps a domain dictionary row.
func NewDictionaryRowResponse(row *domain.DictionaryRow) DictionaryRowResponse {
	return DictionaryRowResponse{
		ID:               row.ID,
		DisplayName:      row.DisplayName,
		Description:      row.Description,
		IsActive:         row.IsActive,
		IsSystemValue:    row.IsSystemValue,
		CreateDate:       row.CreateDate,
		LastModifiedDate: row.LastModifiedDate,
	}
}
