package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors. The gateway never validates tokens itself; ErrUnauthorized
	// means the backend rejected the token it was given.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Upstream errors
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrBackendResponse    = errors.New("unexpected backend response")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// UserMessage returns the message that is safe to show to the end user.
func UserMessage(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	switch {
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrTokenInvalid), errors.Is(err, ErrTokenExpired):
		return "Sesi Anda telah berakhir, silakan masuk kembali."
	case errors.Is(err, ErrPermissionDenied):
		return "Anda tidak memiliki akses untuk tindakan ini."
	case errors.Is(err, ErrResourceNotFound):
		return "Data tidak ditemukan."
	case errors.Is(err, ErrValidationFailed):
		return "Data yang dikirim tidak valid."
	default:
		return "Terjadi kesalahan, silakan coba lagi."
	}
}
