package validation

import (
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Validation rule patterns
var (
	// DotComEmailPattern accepts name@domain.com addresses only.
	DotComEmailPattern = `^[^@\s]+@[^@\s]+\.com$`

	// Password min lengths. Login accepts shorter passwords than registration.
	LoginPasswordMinLength = 6
	PasswordMinLength      = 8

	// DateLayouts are the accepted date formats, tried in order.
	DateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04"}
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	DotComEmail *regexp.Regexp
}{
	DotComEmail: regexp.MustCompile(DotComEmailPattern),
}

// IsDotComEmail reports whether s contains an @ and ends with .com.
func IsDotComEmail(s string) bool {
	return strings.Contains(s, "@") && strings.HasSuffix(s, ".com") && CompiledPatterns.DotComEmail.MatchString(s)
}

// ParseDate parses s with the first matching layout in DateLayouts.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func validateDotComEmail(fl validator.FieldLevel) bool {
	return IsDotComEmail(fl.Field().String())
}

func validateDate(fl validator.FieldLevel) bool {
	_, ok := ParseDate(fl.Field().String())
	return ok
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// clock matches HH:MM in 24 hour time.
var clock = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

func validateClock(fl validator.FieldLevel) bool {
	return clock.MatchString(fl.Field().String())
}
