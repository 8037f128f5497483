package models

import (
	"bytes"
	"fmt"
	"strconv"
	"time"
)

// zonelessLayout is the server-local format some backends emit without an offset.
const zonelessLayout = "2006-01-02T15:04:05.9999999"

// Timestamp decodes RFC 3339 times as well as zoneless ones, which are read as UTC.
// It encodes as RFC 3339.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("timestamp must be a JSON string: %s", data)
	}
	if s == "" {
		ts.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		ts.Time = t
		return nil
	}
	t, err := time.ParseInLocation(zonelessLayout, s, time.UTC)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	ts.Time = t
	return nil
}
