package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"math/big"
)

const (
	randomPasswordLength = 34
	passwordCharset      = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!#$%&*+-_=?"
	uppercaseLetters     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits               = "0123456789"
)

// PasswordHasher derives password hashes from a process-wide salt. The salt
// is loaded once at startup and never changes for the process lifetime.
type PasswordHasher struct {
	salt []byte
}

// NewPasswordHasher builds a hasher around the configured salt.
func NewPasswordHasher(salt string) *PasswordHasher {
	return &PasswordHasher{salt: []byte(salt)}
}

// Hash computes the digest of salt followed by the password. Deterministic
// for a given (salt, password) pair.
func (h *PasswordHasher) Hash(password string) []byte {
	digest := sha256.Sum256(append(append([]byte{}, h.salt...), password...))
	return digest[:]
}

// Verify recomputes the hash and compares in constant time.
func (h *PasswordHasher) Verify(password string, storedHash []byte) bool {
	computed := h.Hash(password)
	return subtle.ConstantTimeCompare(computed, storedHash) == 1
}

// GenerateRandomCredential produces a random password satisfying the same
// complexity policy as user-supplied passwords (contains an uppercase letter
// and a digit) together with its hash. The plaintext is for one-time
// disclosure only.
func (h *PasswordHasher) GenerateRandomCredential() (string, []byte, error) {
	password, err := randomString(passwordCharset, randomPasswordLength)
	if err != nil {
		return "", nil, err
	}
	upper, err := randomString(uppercaseLetters, 1)
	if err != nil {
		return "", nil, err
	}
	digit, err := randomString(digits, 1)
	if err != nil {
		return "", nil, err
	}
	password += upper + digit
	return password, h.Hash(password), nil
}

func randomString(charset string, length int) (string, error) {
	result := make([]byte, length)
	max := big.NewInt(int64(len(charset)))
	for i := range result {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate random credential: %w", err)
		}
		result[i] = charset[idx.Int64()]
	}
	return string(result), nil
}
