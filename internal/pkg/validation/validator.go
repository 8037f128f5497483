// Package validation checks form input before anything is sent to the backend.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/yigit/edureach/internal/pkg/apperrors"
)

// FieldError is one failed rule on one field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is returned by Struct when validation fails. It unwraps to
// apperrors.ErrValidationFailed.
type Errors struct {
	Fields []FieldError
}

func (e *Errors) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *Errors) Unwrap() error {
	return apperrors.ErrValidationFailed
}

// Map returns the first message per field.
func (e *Errors) Map() map[string]string {
	m := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		if _, ok := m[f.Field]; !ok {
			m[f.Field] = f.Message
		}
	}
	return m
}

// Add appends a field error.
func (e *Errors) Add(field, message string) *Errors {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
	return e
}

// HasErrors reports whether any field failed.
func (e *Errors) HasErrors() bool {
	return len(e.Fields) > 0
}

// AsErrors extracts *Errors from err.
func AsErrors(err error) (*Errors, bool) {
	var verr *Errors
	ok := errors.As(err, &verr)
	return verr, ok
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return f.Name
		})
		_ = v.RegisterValidation("dotcom_email", validateDotComEmail)
		_ = v.RegisterValidation("date", validateDate)
		_ = v.RegisterValidation("notblank", validateNotBlank)
		_ = v.RegisterValidation("clock", validateClock)
		validate = v
	})
	return validate
}

// Struct validates obj against its validate tags. Field names in the result are the json
// (or form) names. Messages come from the struct's label tags.
func Struct(obj interface{}) error {
	err := instance().Struct(obj)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", apperrors.ErrValidationFailed, err)
	}

	labels := labelsOf(obj)
	out := &Errors{}
	for _, fe := range fieldErrs {
		out.Add(fe.Field(), message(fe, labels))
	}
	return out
}

// labelsOf maps json/form field names to their label tag.
func labelsOf(obj interface{}) map[string]string {
	t := reflect.TypeOf(obj)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	labels := map[string]string{}
	if t.Kind() != reflect.Struct {
		return labels
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		label := f.Tag.Get("label")
		if label == "" {
			label = f.Name
		}
		labels[f.Name] = label
		for _, tag := range []string{"json", "form"} {
			if name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]; name != "" && name != "-" {
				labels[name] = label
			}
		}
	}
	return labels
}

func message(fe validator.FieldError, labels map[string]string) string {
	label := labels[fe.Field()]
	if label == "" {
		label = fe.Field()
	}

	switch fe.Tag() {
	case "required", "notblank":
		return label + " tidak boleh kosong."
	case "min":
		return fmt.Sprintf("%s harus minimal %s karakter.", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s maksimal %s karakter.", label, fe.Param())
	case "dotcom_email", "email":
		return "Email harus dalam format [nama]@[domain].com"
	case "eqfield":
		other := labels[fe.Param()]
		if other == "" {
			other = fe.Param()
		}
		return fmt.Sprintf("%s tidak sama dengan %s.", label, strings.ToLower(other))
	case "date":
		return label + " tidak valid."
	case "clock":
		return label + " harus dalam format JJ:MM."
	case "oneof":
		return fmt.Sprintf("%s harus salah satu dari: %s.", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s tidak valid (%s).", label, fe.Tag())
	}
}
