package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/clinic-service/internal/domain"
)

// tokenEntropyBytes is the raw entropy per token before URL-safe encoding.
const tokenEntropyBytes = 32

// ErrInvalidToken rejects both unknown and expired tokens. Callers must not
// be able to tell the two cases apart.
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenRepository persists and resolves access token rows.
type TokenRepository interface {
	Add(ctx context.Context, token *domain.AccessToken) error
	// Check returns the token row only when it exists and has not expired.
	Check(ctx context.Context, accessToken string) (*domain.AccessToken, error)
	DeleteExpired(ctx context.Context) (int64, error)
}

// TokenManager issues and validates opaque bearer tokens. Tokens carry no
// embedded claims; authority derives solely from the stored row.
type TokenManager struct {
	tokens TokenRepository
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager builds a new manager.
func NewTokenManager(tokens TokenRepository, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 1440 * time.Minute
	}
	return &TokenManager{tokens: tokens, ttl: ttl, now: time.Now}
}

// Issue generates a random URL-safe token, persists it with its expiration
// and returns the token string.
func (tm *TokenManager) Issue(ctx context.Context, employeeID uuid.UUID, roleID int) (string, error) {
	raw := make([]byte, tokenEntropyBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	token := base64.RawURLEncoding.EncodeToString(raw)

	row := &domain.AccessToken{
		AccessToken:    token,
		EmployeeID:     employeeID,
		RoleID:         roleID,
		ExpirationDate: tm.now().Add(tm.ttl),
	}
	if err := tm.tokens.Add(ctx, row); err != nil {
		return "", err
	}
	return token, nil
}

// Validate resolves a token to its identity and role. Unknown and expired
// tokens fail identically with ErrInvalidToken.
func (tm *TokenManager) Validate(ctx context.Context, token string) (uuid.UUID, int, error) {
	row, err := tm.tokens.Check(ctx, token)
	if err != nil || row == nil {
		return uuid.Nil, 0, ErrInvalidToken
	}
	if !tm.now().Before(row.ExpirationDate) {
		return uuid.Nil, 0, ErrInvalidToken
	}
	return row.EmployeeID, row.RoleID, nil
}
