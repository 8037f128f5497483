package auth

import (
	"errors"
	"fmt"

	"github.com/yigit/edureach/internal/pkg/apperrors"
	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest input bcrypt hashes without truncation.
const MaxPasswordBytes = 72

// BcryptCost is the hashing cost. Tests lower it to bcrypt.MinCost.
var BcryptCost = 12

// ErrPasswordTooLong rejects passwords bcrypt would silently cut short.
var ErrPasswordTooLong = apperrors.NewBadRequestError(fmt.Sprintf("Password maksimal %d karakter.", MaxPasswordBytes))

// HashPassword hashes password at BcryptCost.
func HashPassword(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword returns apperrors.ErrInvalidCredentials when password does not match
// hash. Any other error means the stored hash itself is unusable.
func VerifyPassword(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return apperrors.ErrInvalidCredentials
	default:
		return fmt.Errorf("failed to verify password: %w", err)
	}
}
