package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/clinic-service/internal/domain"
	"github.com/spec-kit/clinic-service/internal/repository"
	apperrors "github.com/spec-kit/clinic-service/pkg/util"
)

// DictionaryRowInput carries validated fields for a new dictionary row.
type DictionaryRowInput struct {
	DisplayName   string
	Description   string
	IsActive      bool
	IsSystemValue bool
}

// DictionaryService runs uniform CRUD over every registered lookup table.
type DictionaryService struct {
	rows repository.DictionaryRepository
}

// NewDictionaryService builds the service.
func NewDictionaryService(rows repository.DictionaryRepository) *DictionaryService {
	return &DictionaryService{rows: rows}
}

// Resolve maps a dictionary name to its descriptor. Unknown names are a
// client error raised before any persistence access.
func (s *DictionaryService) Resolve(name string) (domain.DictionaryDescriptor, error) {
	descriptor, ok := domain.ResolveDictionary(name)
	if !ok {
		return domain.DictionaryDescriptor{}, apperrors.NewDomainError(
			"UNKNOWN_DICTIONARY", "unknown dictionary name", 400,
			map[string]any{"name": name, "known": domain.DictionaryNames()})
	}
	return descriptor, nil
}

// AddRow inserts a row under the caller-assigned id, stamped with the
// creating employee.
func (s *DictionaryService) AddRow(ctx context.Context, descriptor domain.DictionaryDescriptor, id int, input DictionaryRowInput, callerID uuid.UUID) (*domain.DictionaryRow, error) {
	row := &domain.DictionaryRow{
		ID:            id,
		DisplayName:   input.DisplayName,
		Description:   input.Description,
		IsActive:      input.IsActive,
		IsSystemValue: input.IsSystemValue,
		CreatedByID:   callerID,
	}
	if err := s.rows.AddRow(ctx, descriptor, row); err != nil {
		return nil, apperrors.MapError(err)
	}
	return row, nil
}

// ListRows returns rows, optionally filtered by the active flag. A nil
// filter returns every row regardless of active state.
func (s *DictionaryService) ListRows(ctx context.Context, descriptor domain.DictionaryDescriptor, activeFilter *bool) ([]domain.DictionaryRow, error) {
	rows, err := s.rows.ListRows(ctx, descriptor, activeFilter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return rows, nil
}

// GetRow fetches a single row by id.
func (s *DictionaryService) GetRow(ctx context.Context, descriptor domain.DictionaryDescriptor, id int) (*domain.DictionaryRow, error) {
	row, err := s.rows.GetRow(ctx, descriptor, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("dictionary row", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return row, nil
}

// UpdateRow applies a partial update; only supplied fields change. Stamps
// modification audit fields.
func (s *DictionaryService) UpdateRow(ctx context.Context, descriptor domain.DictionaryDescriptor, id int, update domain.DictionaryRowUpdate, callerID uuid.UUID) (*domain.DictionaryRow, error) {
	row, err := s.rows.UpdateRow(ctx, descriptor, id, update, callerID, time.Now())
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("dictionary row", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return row, nil
}

// DeleteRow removes a row, refusing to touch system values. The guard runs
// before any delete is attempted so a protected row always survives.
func (s *DictionaryService) DeleteRow(ctx context.Context, descriptor domain.DictionaryDescriptor, id int) error {
	row, err := s.rows.GetRow(ctx, descriptor, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("dictionary row", map[string]any{"id": id})
		}
		return apperrors.MapError(err)
	}
	if row.IsSystemValue {
		return apperrors.NewSystemValueProtected()
	}

	deleted, err := s.rows.DeleteRow(ctx, descriptor, id)
	if err != nil {
		return apperrors.MapError(err)
	}
	if deleted == 0 {
		return apperrors.NewNotFound("dictionary row", map[string]any{"id": id})
	}
	return nil
}
