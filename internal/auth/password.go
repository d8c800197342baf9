package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordMismatch is returned when a password does not verify.
var ErrPasswordMismatch = errors.New("password mismatch")

// HashPassword hashes a plaintext password with configured cost. Passwords of
// any length are accepted.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(digest(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its stored value. Stored values
// that are not bcrypt hashes come from older plaintext users documents and are
// compared exactly.
func ComparePassword(stored, plain string) error {
	if !IsHashed(stored) {
		if subtle.ConstantTimeCompare([]byte(stored), []byte(plain)) != 1 {
			return ErrPasswordMismatch
		}
		return nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored), digest(plain)); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}

// IsHashed reports whether stored looks like a bcrypt hash.
func IsHashed(stored string) bool {
	if len(stored) != 60 {
		return false
	}
	return strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$")
}

// digest fits the password under bcrypt's 72 byte input limit.
func digest(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}
