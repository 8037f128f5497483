package dto

import "time"

// ToastType classifies a transient message.
type ToastType string

const (
	ToastSuccess ToastType = "success"
	ToastError   ToastType = "error"
	ToastInfo    ToastType = "info"
)

// Toast is a transient message shown once alongside a page.
type Toast struct {
	Type    ToastType `json:"type"`
	Message string    `json:"message"`
}

// APIResponse is the envelope every gateway page returns. Data holds the view model,
// FieldErrors the inline form errors of a rejected submission.
type APIResponse struct {
	Success     bool              `json:"success"`
	Message     string            `json:"message,omitempty"`
	Data        interface{}       `json:"data,omitempty"`
	Toasts      []Toast           `json:"toasts,omitempty"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
	RedirectTo  string            `json:"redirectTo,omitempty"`
	Error       *ErrorDetail      `json:"error,omitempty"`
	Timestamp   time.Time         `json:"timestamp"`
}

// NewSuccessResponse wraps a view model.
func NewSuccessResponse(data interface{}, message string, toasts ...Toast) APIResponse {
	return APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Toasts:    toasts,
		Timestamp: time.Now(),
	}
}

// NewRedirectResponse tells the client where to navigate next.
func NewRedirectResponse(to, message string, toasts ...Toast) APIResponse {
	return APIResponse{
		Success:    true,
		Message:    message,
		RedirectTo: to,
		Toasts:     toasts,
		Timestamp:  time.Now(),
	}
}

// SuccessToast is shorthand for a success toast.
func SuccessToast(message string) Toast {
	return Toast{Type: ToastSuccess, Message: message}
}

// ErrorToast is shorthand for an error toast.
func ErrorToast(message string) Toast {
	return Toast{Type: ToastError, Message: message}
}

// InfoToast is shorthand for an info toast.
func InfoToast(message string) Toast {
	return Toast{Type: ToastInfo, Message: message}
}
