package middleware

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/edureach/internal/backend"
	"github.com/yigit/edureach/internal/pkg/apperrors"
	"github.com/yigit/edureach/internal/pkg/validation"
)

// maxUploadSize caps a single uploaded file read into memory.
const maxUploadSize = validation.MaxPDFSize + 1

// Bind decodes the request into obj according to its content type (JSON, form or
// multipart). Field rules are checked later by the services.
func Bind(c *gin.Context, obj interface{}) error {
	if c.Request.ContentLength == 0 && c.Request.Method != http.MethodGet {
		return nil
	}
	if err := c.ShouldBind(obj); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperrors.NewCustomError(apperrors.ErrBadRequest, "Format permintaan tidak valid.")
	}
	return nil
}

// FormFile reads an optional uploaded file into memory. It returns nil when the field is
// absent.
func FormFile(c *gin.Context, field string) (*backend.File, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, apperrors.NewCustomError(apperrors.ErrBadRequest, "Gagal membaca file yang diunggah.")
	}

	f, err := header.Open()
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrBadRequest, "Gagal membaca file yang diunggah.")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadSize))
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrBadRequest, "Gagal membaca file yang diunggah.")
	}
	return &backend.File{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     data,
	}, nil
}
