// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/budgy/backend/internal/application/adapter"
	"github.com/budgy/backend/internal/domain/entity"
	domainerror "github.com/budgy/backend/internal/domain/error"
)

const (
	passwordHashCost = 12
	// bcrypt ignores everything past 72 bytes
	maxPasswordBytes = 72
)

// bcryptPasswords stores account passwords as bcrypt hashes.
type bcryptPasswords struct {
	cost int
}

// NewPasswordService creates the bcrypt backed password service.
func NewPasswordService() adapter.PasswordService {
	return &bcryptPasswords{cost: passwordHashCost}
}

func (p *bcryptPasswords) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (p *bcryptPasswords) VerifyPassword(hashedPassword, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return domainerror.ErrInvalidCredentials
	}
	return err
}

// ValidatePasswordStrength counts characters, not bytes, for the lower bound.
func (p *bcryptPasswords) ValidatePasswordStrength(password string) error {
	if utf8.RuneCountInString(password) < entity.MinPasswordLength {
		return weakPassword(fmt.Sprintf("password must be at least %d characters long", entity.MinPasswordLength))
	}
	if len(password) > maxPasswordBytes {
		return weakPassword(fmt.Sprintf("password must not exceed %d bytes", maxPasswordBytes))
	}
	return nil
}

func weakPassword(message string) error {
	return domainerror.NewAuthError(domainerror.ErrCodeWeakPassword, message, domainerror.ErrWeakPassword)
}
