package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/clinic-service/internal/domain"
)

// TokenRepository persists employee access tokens.
type TokenRepository interface {
	Add(ctx context.Context, token *domain.AccessToken) error
	Check(ctx context.Context, accessToken string) (*domain.AccessToken, error)
	DeleteExpired(ctx context.Context) (int64, error)
}

type tokenRepository struct {
	pool *pgxpool.Pool
}

// NewTokenRepository returns a Postgres-backed implementation.
func NewTokenRepository(pool *pgxpool.Pool) TokenRepository {
	return &tokenRepository{pool: pool}
}

func (r *tokenRepository) Add(ctx context.Context, token *domain.AccessToken) error {
	const query = `
        INSERT INTO employees_access_tokens (access_token, employee_id, role_id, expiration_date)
        VALUES ($1, $2, $3, $4)`

	_, err := r.pool.Exec(ctx, query,
		token.AccessToken,
		token.EmployeeID,
		token.RoleID,
		token.ExpirationDate,
	)
	return err
}

// Check resolves a token row, excluding expired rows at the query level so
// an expired-but-present token is indistinguishable from an unknown one.
func (r *tokenRepository) Check(ctx context.Context, accessToken string) (*domain.AccessToken, error) {
	const query = `
        SELECT access_token, employee_id, role_id, expiration_date
        FROM employees_access_tokens
        WHERE access_token=$1 AND expiration_date > NOW()`

	var token domain.AccessToken
	if err := r.pool.QueryRow(ctx, query, accessToken).Scan(
		&token.AccessToken,
		&token.EmployeeID,
		&token.RoleID,
		&token.ExpirationDate,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &token, nil
}

// DeleteExpired removes dead token rows. Nothing in the request path calls
// this; it exists for operational cleanup.
func (r *tokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	const query = `DELETE FROM employees_access_tokens WHERE expiration_date <= NOW()`

	cmd, err := r.pool.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
