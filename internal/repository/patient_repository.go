package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/clinic-service/internal/domain"
)

const patientColumns = `id, login, hashed_password, name, surname, sex, pesel_or_identifier, birth_date,
               telephone, email, address, create_date, is_verified, telephone_verified, email_verified`

// PatientRepository defines persistence access for patients.
type PatientRepository interface {
	Create(ctx context.Context, patient *domain.Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Patient, error)
	List(ctx context.Context, limit, offset int) ([]domain.Patient, int, error)
	Update(ctx context.Context, id uuid.UUID, update domain.PatientUpdate) (*domain.Patient, error)
	Verify(ctx context.Context, id uuid.UUID, verification domain.PatientVerification) (*domain.Patient, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type patientRepository struct {
	pool *pgxpool.Pool
}

// NewPatientRepository returns a Postgres-backed implementation.
func NewPatientRepository(pool *pgxpool.Pool) PatientRepository {
	return &patientRepository{pool: pool}
}

func (r *patientRepository) Create(ctx context.Context, patient *domain.Patient) error {
	const query = `
        INSERT INTO patients.patients (login, hashed_password, name, surname, sex, pesel_or_identifier,
                              birth_date, telephone, email, address)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, create_date`

	return r.pool.QueryRow(ctx, query,
		patient.Login,
		patient.HashedPassword,
		patient.Name,
		patient.Surname,
		patient.Sex,
		patient.PeselOrIdentifier,
		patient.BirthDate,
		patient.Telephone,
		patient.Email,
		patient.Address,
	).Scan(&patient.ID, &patient.CreateDate)
}

func (r *patientRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Patient, error) {
	query := fmt.Sprintf(`SELECT %s FROM patients.patients WHERE id=$1`, patientColumns)

	var patient domain.Patient
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&patient.ID,
		&patient.Login,
		&patient.HashedPassword,
		&patient.Name,
		&patient.Surname,
		&patient.Sex,
		&patient.PeselOrIdentifier,
		&patient.BirthDate,
		&patient.Telephone,
		&patient.Email,
		&patient.Address,
		&patient.CreateDate,
		&patient.IsVerified,
		&patient.TelephoneVerified,
		&patient.EmailVerified,
	); err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) List(ctx context.Context, limit, offset int) ([]domain.Patient, int, error) {
	query := fmt.Sprintf(`SELECT %s, COUNT(*) OVER() AS total
        FROM patients.patients ORDER BY create_date LIMIT $1 OFFSET $2`, patientColumns)

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.Patient
	total := 0
	for rows.Next() {
		var patient domain.Patient
		if err := rows.Scan(
			&patient.ID,
			&patient.Login,
			&patient.HashedPassword,
			&patient.Name,
			&patient.Surname,
			&patient.Sex,
			&patient.PeselOrIdentifier,
			&patient.BirthDate,
			&patient.Telephone,
			&patient.Email,
			&patient.Address,
			&patient.CreateDate,
			&patient.IsVerified,
			&patient.TelephoneVerified,
			&patient.EmailVerified,
			&total,
		); err != nil {
			return nil, 0, err
		}
		result = append(result, patient)
	}
	return result, total, rows.Err()
}

func (r *patientRepository) Update(ctx context.Context, id uuid.UUID, update domain.PatientUpdate) (*domain.Patient, error) {
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
	if update.Telephone != nil {
		addSet("telephone", *update.Telephone)
	}
	if update.Email != nil {
		addSet("email", *update.Email)
	}
	if update.Address != nil {
		addSet("address", *update.Address)
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	return r.updateReturning(ctx, id, sets, args)
}

func (r *patientRepository) Verify(ctx context.Context, id uuid.UUID, verification domain.PatientVerification) (*domain.Patient, error) {
	sets := []string{}
	args := []any{}

	addSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s=$%d", column, len(args)))
	}

	if verification.IsVerified != nil {
		addSet("is_verified", *verification.IsVerified)
	}
	if verification.TelephoneVerified != nil {
		addSet("telephone_verified", *verification.TelephoneVerified)
	}
	if verification.EmailVerified != nil {
		addSet("email_verified", *verification.EmailVerified)
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	return r.updateReturning(ctx, id, sets, args)
}

func (r *patientRepository) updateReturning(ctx context.Context, id uuid.UUID, sets []string, args []any) (*domain.Patient, error) {
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE patients.patients SET %s WHERE id=$%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), patientColumns)

	var patient domain.Patient
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&patient.ID,
		&patient.Login,
		&patient.HashedPassword,
		&patient.Name,
		&patient.Surname,
		&patient.Sex,
		&patient.PeselOrIdentifier,
		&patient.BirthDate,
		&patient.Telephone,
		&patient.Email,
		&patient.Address,
		&patient.CreateDate,
		&patient.IsVerified,
		&patient.TelephoneVerified,
		&patient.EmailVerified,
	); err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM patients.patients WHERE id=$1`, id)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
