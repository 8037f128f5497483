package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/edureach/internal/pkg/apperrors"
	"golang.org/x/crypto/bcrypt"
)

func newTestJWT(now time.Time) *JWTService {
	s := NewJWTService(JWTConfig{SecretKey: "secret", AccessTokenExp: time.Hour})
	s.now = func() time.Time { return now }
	return s
}

func TestGenerateAndValidateToken(t *testing.T) {
	s := newTestJWT(time.Now())

	token, err := s.GenerateToken("u1", "a@b.com")
	require.NoError(t, err)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "a@b.com", claims.Email)
}

func TestValidateTokenExpired(t *testing.T) {
	issued := time.Now().Add(-2 * time.Hour)
	token, err := newTestJWT(issued).GenerateToken("u1", "a@b.com")
	require.NoError(t, err)

	_, err = newTestJWT(time.Now()).ValidateToken(token)
	assert.True(t, errors.Is(err, ErrExpiredToken))
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := newTestJWT(time.Now()).GenerateToken("u1", "a@b.com")
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{SecretKey: "other", AccessTokenExp: time.Hour})
	_, err = other.ValidateToken(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))

	_, err = other.ValidateToken("")
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	token, err = ExtractBearerToken("abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	_, err = ExtractBearerToken("")
	assert.True(t, errors.Is(err, ErrInvalidFormat))
}

func TestPasswordHashing(t *testing.T) {
	BcryptCost = bcrypt.MinCost

	hash, err := HashPassword("rahasia123")
	require.NoError(t, err)

	assert.NoError(t, VerifyPassword(hash, "rahasia123"))
	assert.True(t, errors.Is(VerifyPassword(hash, "salah"), apperrors.ErrInvalidCredentials))
}

func TestVerifyPasswordCorruptHash(t *testing.T) {
	err := VerifyPassword("not-a-bcrypt-hash", "rahasia123")

	require.Error(t, err)
	assert.False(t, errors.Is(err, apperrors.ErrInvalidCredentials))
}

func TestHashPasswordRejectsTruncatedInput(t *testing.T) {
	BcryptCost = bcrypt.MinCost

	_, err := HashPassword(strings.Repeat("a", MaxPasswordBytes+1))
	assert.True(t, errors.Is(err, ErrPasswordTooLong))
	assert.True(t, errors.Is(err, apperrors.ErrBadRequest))

	_, err = HashPassword(strings.Repeat("a", MaxPasswordBytes))
	assert.NoError(t, err)
}
