package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/clinic-service/internal/domain"
)

// AppointmentFilter captures appointment search parameters.
type AppointmentFilter struct {
	EmployeeID *uuid.UUID
	Start      *time.Time
	End        *time.Time
	Limit      int
	Offset     int
}

// AppointmentRepository encapsulates appointment persistence.
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) error
	ListWithFilter(ctx context.Context, filter AppointmentFilter) ([]domain.Appointment, int, error)
	// Delete removes the appointment and reports the owning patient id so
	// the caller can notify after the cancellation commits.
	Delete(ctx context.Context, id uuid.UUID) (int64, uuid.UUID, time.Time, error)
}

type appointmentRepository struct {
	pool *pgxpool.Pool
}

// NewAppointmentRepository instantiates repository.
func NewAppointmentRepository(pool *pgxpool.Pool) AppointmentRepository {
	return &appointmentRepository{pool: pool}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *domain.Appointment) error {
	const query = `
        INSERT INTO patients.appointments (patient_id, employee_id, start, "end")
        VALUES ($1,$2,$3,$4)
        RETURNING id`

	return r.pool.QueryRow(ctx, query,
		appointment.PatientID,
		appointment.EmployeeID,
		appointment.Start,
		appointment.End,
	).Scan(&appointment.ID)
}

func (r *appointmentRepository) ListWithFilter(ctx context.Context, filter AppointmentFilter) ([]domain.Appointment, int, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		clauses = append(clauses, fmt.Sprintf("employee_id=$%d", len(args)))
	}
	if filter.Start != nil {
		args = append(args, *filter.Start)
		clauses = append(clauses, fmt.Sprintf("start >= $%d", len(args)))
	}
	if filter.End != nil {
		args = append(args, *filter.End)
		clauses = append(clauses, fmt.Sprintf(`"end" <= $%d`, len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT id, patient_id, employee_id, start, "end", COUNT(*) OVER() AS total
        FROM patients.appointments WHERE %s ORDER BY start LIMIT %d OFFSET %d`,
		strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.Appointment
	total := 0
	for rows.Next() {
		var appointment domain.Appointment
		if err := rows.Scan(
			&appointment.ID,
			&appointment.PatientID,
			&appointment.EmployeeID,
			&appointment.Start,
			&appointment.End,
			&total,
		); err != nil {
			return nil, 0, err
		}
		result = append(result, appointment)
	}
	return result, total, rows.Err()
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) (int64, uuid.UUID, time.Time, error) {
	const query = `
        DELETE FROM patients.appointments WHERE id=$1
        RETURNING patient_id, start`

	var patientID uuid.UUID
	var start time.Time
	if err := r.pool.QueryRow(ctx, query, id).Scan(&patientID, &start); err != nil {
		if err == pgx.ErrNoRows {
			return 0, uuid.Nil, time.Time{}, nil
		}
		return 0, uuid.Nil, time.Time{}, err
	}
	return 1, patientID, start, nil
}
