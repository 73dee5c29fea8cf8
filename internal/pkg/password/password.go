// Package password hashes account passwords and the refresh tokens kept
// server side.
package password

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"ecoreport/internal/core/domain"

	"golang.org/x/crypto/bcrypt"
)

const (
	// Cost is the bcrypt work factor for account passwords
	Cost = 12
	// MaxLength is the longest password bcrypt can hash, in bytes
	MaxLength = 72
)

// Hash returns the bcrypt hash stored for an account. Passwords longer than
// MaxLength bytes are a validation error rather than silently truncated.
func Hash(plain string) (string, error) {
	if len(plain) > MaxLength {
		return "", fmt.Errorf("%w: password must be at most %d bytes", domain.ErrValidation, MaxLength)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plain matches the stored account hash
func Verify(plain, stored string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)) == nil
}

// HashToken is the lookup key for a refresh token. Only this digest is
// persisted, so a leaked token table cannot be replayed.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
