package validation

import (
	"fmt"

	"github.com/gabriel-vasile/mimetype"
)

// Upload limits.
const (
	MaxPDFSize   = 20 << 20
	MaxImageSize = 5 << 20
)

var imageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// DetectContentType sniffs data and returns its MIME type.
func DetectContentType(data []byte) string {
	return mimetype.Detect(data).String()
}

// CheckPDF verifies that data is a PDF within MaxPDFSize.
func CheckPDF(field string, data []byte) error {
	if len(data) == 0 {
		return (&Errors{}).Add(field, "File PDF wajib diunggah.")
	}
	if len(data) > MaxPDFSize {
		return (&Errors{}).Add(field, fmt.Sprintf("Ukuran file maksimal %d MB.", MaxPDFSize>>20))
	}
	if !mimetype.Detect(data).Is("application/pdf") {
		return (&Errors{}).Add(field, "Hanya file PDF yang didukung.")
	}
	return nil
}

// CheckImage verifies that data is a supported image within MaxImageSize.
// Empty data is accepted: images are optional everywhere.
func CheckImage(field string, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if len(data) > MaxImageSize {
		return (&Errors{}).Add(field, fmt.Sprintf("Ukuran gambar maksimal %d MB.", MaxImageSize>>20))
	}
	if !isOneOf(mimetype.Detect(data), imageTypes) {
		return (&Errors{}).Add(field, "Format gambar harus JPG, PNG, GIF atau WEBP.")
	}
	return nil
}

func isOneOf(m *mimetype.MIME, types []string) bool {
	for _, t := range types {
		if m.Is(t) {
			return true
		}
	}
	return false
}

// Merge combines validation failures, ignoring nil errors. Non-validation errors are
// returned as they are.
func Merge(errs ...error) error {
	merged := &Errors{}
	for _, err := range errs {
		if err == nil {
			continue
		}
		verr, ok := AsErrors(err)
		if !ok {
			return err
		}
		merged.Fields = append(merged.Fields, verr.Fields...)
	}
	if !merged.HasErrors() {
		return nil
	}
	return merged
}
