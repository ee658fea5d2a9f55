// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"fmt"
	"unicode/utf8"

	"smarthr/config"
	domainerrors "smarthr/internal/domain/errors"
	"smarthr/internal/domain/service"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt ignores input past 72 bytes; longer passwords are rejected instead of truncated.
const maxPasswordBytes = 72

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost      int
	minLength int
}

// NewBcryptHasher is the constructor for bcryptHasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	minLength := 8
	if cfg.Auth != nil {
		if cfg.Auth.BcryptCost >= bcrypt.MinCost && cfg.Auth.BcryptCost <= bcrypt.MaxCost {
			cost = cfg.Auth.BcryptCost
		}
		if cfg.Auth.PasswordMinLength > 0 {
			minLength = cfg.Auth.PasswordMinLength
		}
	}

	return &bcryptHasher{cost: cost, minLength: minLength}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)

	return string(bytes), err
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidateStrength enforces the minimum length in characters and the bcrypt byte limit.
func (h *bcryptHasher) ValidateStrength(password string) error {
	if utf8.RuneCountInString(password) < h.minLength {
		return domainerrors.ErrWeakPassword.WithPublicDetails(
			fmt.Sprintf("password must be at least %d characters", h.minLength),
		)
	}
	if len(password) > maxPasswordBytes {
		return domainerrors.ErrWeakPassword.WithPublicDetails(
			fmt.Sprintf("password must be at most %d bytes", maxPasswordBytes),
		)
	}

	return nil
}
