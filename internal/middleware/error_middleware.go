package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/edureach/internal/app/models/dto"
	"github.com/yigit/edureach/internal/backend"
	"github.com/yigit/edureach/internal/pkg/apperrors"
	"github.com/yigit/edureach/internal/pkg/logger"
	"github.com/yigit/edureach/internal/pkg/validation"
)

// HandleAPIError writes err as an APIResponse carrying an error toast. Validation failures
// become inline field errors with 422; backend failures become 502, or 401 when the backend
// rejected the token.
func HandleAPIError(c *gin.Context, err error, toasts ...dto.Toast) {
	status, detail := classify(err)
	message := apperrors.UserMessage(err)

	resp := dto.APIResponse{
		Success:   false,
		Message:   message,
		Error:     detail,
		Timestamp: time.Now(),
	}

	if verr, ok := validation.AsErrors(err); ok {
		resp.FieldErrors = verr.Map()
		detail.WithDetails(verr.Fields)
	} else {
		var httpErr *backend.HTTPError
		if errors.As(err, &httpErr) {
			if m := httpErr.Message(); m != "" && (httpErr.StatusCode == http.StatusBadRequest || httpErr.StatusCode == http.StatusConflict) {
				resp.Message = m
			}
		}
		toasts = append(toasts, dto.ErrorToast(resp.Message))
	}
	resp.Toasts = toasts

	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Int("status", status).Msg("Request failed")
	} else {
		detail.WithSeverity(dto.ErrorSeverityWarning)
		logger.Debug().Err(err).Str("path", c.Request.URL.Path).Int("status", status).Msg("Request rejected")
	}
	c.AbortWithStatusJSON(status, resp)
}

func classify(err error) (int, *dto.ErrorDetail) {
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		return http.StatusUnprocessableEntity, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed")
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Backend rejected the session token")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden, dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Resource not found")
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Conflict")
	case errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeBadRequest, "Bad request")
	case errors.Is(err, apperrors.ErrBackendUnavailable), errors.Is(err, apperrors.ErrBackendResponse):
		return http.StatusBadGateway, dto.NewErrorDetail(dto.ErrorCodeExternalServiceError, "Backend request failed")
	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}
}
