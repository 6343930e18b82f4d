// Package auth hashes and verifies the two secrets a user carries: the
// login password and the security answer used for password resets. Plain
// secrets never reach the store.
package auth

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLen is the minimum accepted password length at registration
// and password change.
const MinPasswordLen = 6

// HashPassword returns the bcrypt hash of a password.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// VerifyPassword reports whether password matches the stored hash.
func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// HashAnswer hashes a security answer. Answers are normalized first so that
// casing and surrounding whitespace do not lock a user out.
func HashAnswer(answer string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(normalizeAnswer(answer)), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash answer: %w", err)
	}
	return string(h), nil
}

// VerifyAnswer reports whether answer matches the stored hash.
func VerifyAnswer(hash, answer string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(normalizeAnswer(answer))) == nil
}

func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ValidatePassword checks a candidate password against the registration
// rules.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLen)
	}
	return nil
}
