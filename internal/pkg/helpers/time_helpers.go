package helpers

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	if strings.TrimSpace(durationStr) == "" {
		return defaultDuration
	}
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

var shortMonths = [...]string{"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul", "Agu", "Sep", "Okt", "Nov", "Des"}

// ShortDate formats t as "17 Mei".
func ShortDate(t time.Time) string {
	return fmt.Sprintf("%d %s", t.Day(), shortMonths[t.Month()-1])
}

// RelativeTime labels t relative to now: "Baru saja" within the hour, "N jam yang lalu"
// within a day, "Kemarin" within two days, a short date after that. A zero time reads as
// "Baru saja".
func RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return "Baru saja"
	}
	hours := int(now.Sub(t).Hours())
	switch {
	case hours < 1:
		return "Baru saja"
	case hours < 24:
		return fmt.Sprintf("%d jam yang lalu", hours)
	case hours < 48:
		return "Kemarin"
	default:
		return ShortDate(t)
	}
}

// CombineDateTime joins a YYYY-MM-DD date and an HH:MM clock time into one timestamp in loc.
func CombineDateTime(date, clock string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation("2006-01-02T15:04", strings.TrimSpace(date)+"T"+strings.TrimSpace(clock), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date or time %q %q: %w", date, clock, err)
	}
	return t, nil
}
