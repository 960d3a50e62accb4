package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/clinic-service/internal/domain"
)

const dictionaryColumns = `id, display_name, description, is_active, is_system_value, create_date,
               created_by_id, last_modified_by_id, last_modified_date`

// DictionaryRepository is a single implementation operating over every
// registered lookup table; the descriptor selects the target table.
type DictionaryRepository interface {
	AddRow(ctx context.Context, descriptor domain.DictionaryDescriptor, row *domain.DictionaryRow) error
	ListRows(ctx context.Context, descriptor domain.DictionaryDescriptor, activeFilter *bool) ([]domain.DictionaryRow, error)
	GetRow(ctx context.Context, descriptor domain.DictionaryDescriptor, id int) (*domain.DictionaryRow, error)
	UpdateRow(ctx context.Context, descriptor domain.DictionaryDescriptor, id int, update domain.DictionaryRowUpdate, modifiedBy uuid.UUID, modifiedAt time.Time) (*domain.DictionaryRow, error)
	DeleteRow(ctx context.Context, descriptor domain.DictionaryDescriptor, id int) (int64, error)
}

type dictionaryRepository struct {
	pool *pgxpool.Pool
}

// NewDictionaryRepository returns a Postgres-backed implementation.
func NewDictionaryRepository(pool *pgxpool.Pool) DictionaryRepository {
	return &dictionaryRepository{pool: pool}
}

func (r *dictionaryRepository) AddRow(ctx context.Context, descriptor domain.DictionaryDescriptor, row *domain.DictionaryRow) error {
	query := fmt.Sprintf(`
        INSERT INTO %s (id, display_name, description, is_active, is_system_value, created_by_id)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING create_date`, descriptor.Table)

	return r.pool.QueryRow(ctx, query,
		row.ID,
		row.DisplayName,
		row.Description,
		row.IsActive,
		row.IsSystemValue,
		row.CreatedByID,
	).Scan(&row.CreateDate)
}

func (r *dictionaryRepository) ListRows(ctx context.Context, descriptor domain.DictionaryDescriptor, activeFilter *bool) ([]domain.DictionaryRow, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s`, dictionaryColumns, descriptor.Table)
	args := []any{}
	if activeFilter != nil {
		query += ` WHERE is_active=$1`
		args = append(args, *activeFilter)
	}
	query += ` ORDER BY id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.DictionaryRow
	for rows.Next() {
		var row domain.DictionaryRow
		if err := rows.Scan(
			&row.ID,
			&row.DisplayName,
			&row.Description,
			&row.IsActive,
			&row.IsSystemValue,
			&row.CreateDate,
			&row.CreatedByID,
			&row.LastModifiedByID,
			&row.LastModifiedDate,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *dictionaryRepository) GetRow(ctx context.Context, descriptor domain.DictionaryDescriptor, id int) (*domain.DictionaryRow, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id=$1`, dictionaryColumns, descriptor.Table)

	var row domain.DictionaryRow
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&row.ID,
		&row.DisplayName,
		&row.Description,
		&row.IsActive,
		&row.IsSystemValue,
		&row.CreateDate,
		&row.CreatedByID,
		&row.LastModifiedByID,
		&row.LastModifiedDate,
	); err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *dictionaryRepository) UpdateRow(ctx context.Context, descriptor domain.DictionaryDescriptor, id int, update domain.DictionaryRowUpdate, modifiedBy uuid.UUID, modifiedAt time.Time) (*domain.DictionaryRow, error) {
	sets := []string{}
	args := []any{}

	addSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s=$%d", column, len(args)))
	}

	if update.DisplayName != nil {
		addSet("display_name", *update.DisplayName)
	}
	if update.Description != nil {
		addSet("description", *update.Description)
	}
	if update.IsActive != nil {
		addSet("is_active", *update.IsActive)
	}
	addSet("last_modified_by_id", modifiedBy)
	addSet("last_modified_date", modifiedAt)

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE %s SET %s WHERE id=$%d RETURNING %s`,
		descriptor.Table, strings.Join(sets, ", "), len(args), dictionaryColumns)

	var row domain.DictionaryRow
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&row.ID,
		&row.DisplayName,
		&row.Description,
		&row.IsActive,
		&row.IsSystemValue,
		&row.CreateDate,
		&row.CreatedByID,
		&row.LastModifiedByID,
		&row.LastModifiedDate,
	); err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *dictionaryRepository) DeleteRow(ctx context.Context, descriptor domain.DictionaryDescriptor, id int) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id=$1`, descriptor.Table)
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
