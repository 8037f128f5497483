package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomErrorUnwrapsToSentinel(t *testing.T) {
	err := fmt.Errorf("load community: %w", NewResourceNotFoundError("Komunitas tidak ditemukan."))

	assert.True(t, errors.Is(err, ErrResourceNotFound))
	assert.Equal(t, "Komunitas tidak ditemukan.", UserMessage(err))
}

func TestUserMessageFallbacks(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrUnauthorized, "Sesi Anda telah berakhir, silakan masuk kembali."},
		{fmt.Errorf("wrapped: %w", ErrTokenExpired), "Sesi Anda telah berakhir, silakan masuk kembali."},
		{ErrPermissionDenied, "Anda tidak memiliki akses untuk tindakan ini."},
		{ErrResourceNotFound, "Data tidak ditemukan."},
		{ErrValidationFailed, "Data yang dikirim tidak valid."},
		{ErrBackendUnavailable, "Terjadi kesalahan, silakan coba lagi."},
		{NewCustomError(ErrBadRequest, ""), "Terjadi kesalahan, silakan coba lagi."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, UserMessage(tt.err), tt.err.Error())
	}
}

func TestCustomErrorMessageFallsBackToCause(t *testing.T) {
	assert.Equal(t, "bad request", NewCustomError(ErrBadRequest, "").Error())
	assert.Equal(t, "unknown error", (&CustomError{}).Error())
}
