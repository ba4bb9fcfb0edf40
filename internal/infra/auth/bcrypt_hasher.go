// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"fmt"
	"strings"
	"unicode"

	"coderr/config"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/service"

	"golang.org/x/crypto/bcrypt"
)

const (
	defaultMinPasswordLength = 8
	defaultMaxPasswordLength = 128
	// bcrypt ignores input past 72 bytes.
	bcryptMaxInputLength = 72
)

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost            int
	minLength       int
	maxLength       int
	checkSimilarity bool
}

// NewBcryptHasher is the constructor for bcryptHasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	hasher := &bcryptHasher{
		cost:            bcrypt.DefaultCost,
		minLength:       defaultMinPasswordLength,
		maxLength:       defaultMaxPasswordLength,
		checkSimilarity: true,
	}

	if cfg == nil {
		return hasher
	}

	if cfg.Auth != nil && cfg.Auth.BcryptCost >= bcrypt.MinCost && cfg.Auth.BcryptCost <= bcrypt.MaxCost {
		hasher.cost = cfg.Auth.BcryptCost
	}
	if ps := cfg.PasswordStrength; ps != nil {
		if ps.MinLength > 0 {
			hasher.minLength = ps.MinLength
		}
		if ps.MaxLength > 0 {
			hasher.maxLength = ps.MaxLength
		}
		hasher.checkSimilarity = ps.CheckSimilarity
	}

	return hasher
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt automatically handles salt generation.
func (h *bcryptHasher) Hash(password string) (string, error) {
	if len(password) > bcryptMaxInputLength {
		return "", domainerrors.ErrPasswordPolicy.WithField("password",
			fmt.Sprintf("must be at most %d bytes", bcryptMaxInputLength))
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	// err is nil if the password and hash match.
	return err == nil
}

// ValidatePasswordStrength applies the password policy: length bounds, not
// entirely numeric, not a common password and not derived from userAttributes.
// All failures are reported together under the "password" field.
func (h *bcryptHasher) ValidatePasswordStrength(password string, userAttributes ...string) error {
	collector := domainerrors.Validation()

	collector.Check(len([]rune(password)) >= h.minLength, "password",
		fmt.Sprintf("This password is too short. It must contain at least %d characters.", h.minLength))
	collector.Check(len([]rune(password)) <= h.maxLength, "password",
		fmt.Sprintf("This password is too long. It must contain at most %d characters.", h.maxLength))
	collector.Check(!isAllDigits(password), "password", "This password is entirely numeric.")
	collector.Check(!isCommonPassword(password), "password", "This password is too common.")

	if h.checkSimilarity {
		for _, attr := range userAttributes {
			if resembles(password, attr) {
				collector.Add("password", "The password is too similar to the username or email.")

				break
			}
		}
	}

	if err := collector.Err(); err != nil {
		return domainerrors.ErrPasswordPolicy.WithFields(domainerrors.FieldsOf(err))
	}

	return nil
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}

	return true
}

// resembles reports whether password and attr contain one another once
// lowercased. Emails are compared by their local part.
func resembles(password, attr string) bool {
	attr = strings.ToLower(strings.TrimSpace(attr))
	if at := strings.IndexByte(attr, '@'); at > 0 {
		attr = attr[:at]
	}
	if len(attr) < 3 {
		return false
	}

	pw := strings.ToLower(password)

	return strings.Contains(pw, attr) || strings.Contains(attr, pw)
}
