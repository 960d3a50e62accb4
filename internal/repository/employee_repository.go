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

const employeeColumns = `id, name, surname, pesel_or_identifier, birth_date, role_id, hashed_password,
               telephone, business_telephone, email, address, create_date,
               created_by_id, last_modified_by_id, last_modified_date`

// EmployeeRepository defines persistence access for employees.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *domain.Employee) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error)
	GetByEmail(ctx context.Context, email string) (*domain.Employee, error)
	List(ctx context.Context, limit, offset int) ([]domain.Employee, int, error)
	Update(ctx context.Context, id uuid.UUID, update domain.EmployeeUpdate, modifiedBy uuid.UUID, modifiedAt time.Time) (*domain.Employee, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type employeeRepository struct {
	pool *pgxpool.Pool
}

// NewEmployeeRepository returns a Postgres-backed implementation.
func NewEmployeeRepository(pool *pgxpool.Pool) EmployeeRepository {
	return &employeeRepository{pool: pool}
}

func (r *employeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	const query = `
        INSERT INTO employees (name, surname, pesel_or_identifier, birth_date, role_id, hashed_password,
                               telephone, business_telephone, email, address, created_by_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, create_date`

	return r.pool.QueryRow(ctx, query,
		employee.Name,
		employee.Surname,
		employee.PeselOrIdentifier,
		employee.BirthDate,
		employee.RoleID,
		employee.HashedPassword,
		employee.Telephone,
		employee.BusinessTelephone,
		employee.Email,
		employee.Address,
		employee.CreatedByID,
	).Scan(&employee.ID, &employee.CreateDate)
}

func (r *employeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	query := fmt.Sprintf(`SELECT %s FROM employees WHERE id=$1`, employeeColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	query := fmt.Sprintf(`SELECT %s FROM employees WHERE email=$1`, employeeColumns)
	return r.fetchSingle(ctx, query, email)
}

func (r *employeeRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Employee, error) {
	var employee domain.Employee
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&employee.ID,
		&employee.Name,
		&employee.Surname,
		&employee.PeselOrIdentifier,
		&employee.BirthDate,
		&employee.RoleID,
		&employee.HashedPassword,
		&employee.Telephone,
		&employee.BusinessTelephone,
		&employee.Email,
		&employee.Address,
		&employee.CreateDate,
		&employee.LastModifiedByID,
		&employee.LastModifiedDate,
	); err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) List(ctx context.Context, limit, offset int) ([]domain.Employee, int, error) {
	query := fmt.Sprintf(`SELECT %s, COUNT(*) OVER() AS total
        FROM employees ORDER BY create_date LIMIT $1 OFFSET $2`, employeeColumns)

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.Employee
	total := 0
	for rows.Next() {
		var employee domain.Employee
		if err := rows.Scan(
			&employee.ID,
			&employee.Name,
			&employee.Surname,
			&employee.PeselOrIdentifier,
			&employee.BirthDate,
			&employee.RoleID,
			&employee.HashedPassword,
			&employee.Telephone,
			&employee.BusinessTelephone,
			&employee.Email,
			&employee.Address,
			&employee.CreateDate,
			&employee.LastModifiedByID,
			&employee.LastModifiedDate,
			&total,
		); err != nil {
			return nil, 0, err
		}
		result = append(result, employee)
	}
	return result, total, rows.Err()
}

func (r *employeeRepository) Update(ctx context.Context, id uuid.UUID, update domain.EmployeeUpdate, modifiedBy uuid.UUID, modifiedAt time.Time) (*domain.Employee, error) {
	sets := []string{}
	args := []any{}

	addSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s=$%d", column, len(args)))
	}

	if update.Name != nil {
		addSet("name", *update.Name)
	}
	if update.Surname != nil {
		addSet("surname", *update.Surname)
	}
	if update.RoleID != nil {
		addSet("role_id", *update.RoleID)
	}
	if update.PeselOrIdentifier != nil {
		addSet("pesel_or_identifier", *update.PeselOrIdentifier)
	}
	if update.BirthDate != nil {
		addSet("birth_date", *update.BirthDate)
	}
	if update.Telephone != nil {
		addSet("telephone", *update.Telephone)
	}
	if update.BusinessTelephone != nil {
		addSet("business_telephone", *update.BusinessTelephone)
	}
	if update.Email != nil {
		addSet("email", *update.Email)
	}
	if update.Address != nil {
		addSet("address", *update.Address)
	}
	addSet("last_modified_by_id", modifiedBy)
	addSet("last_modified_date", modifiedAt)

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE employees SET %s WHERE id=$%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), employeeColumns)

	var employee domain.Employee
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&employee.ID,
		&employee.Name,
		&employee.Surname,
		&employee.PeselOrIdentifier,
		&employee.BirthDate,
		&employee.RoleID,
		&employee.HashedPassword,
		&employee.Telephone,
		&employee.BusinessTelephone,
		&employee.Email,
		&employee.Address,
		&employee.CreateDate,
		&employee.LastModifiedByID,
		&employee.LastModifiedDate,
	); err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM employees WHERE id=$1`, id)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
