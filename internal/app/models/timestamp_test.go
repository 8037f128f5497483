package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampUnmarshal(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{`"2025-07-12T10:00:00Z"`, time.Date(2025, 7, 12, 10, 0, 0, 0, time.UTC)},
		{`"2025-07-12T17:00:00+07:00"`, time.Date(2025, 7, 12, 10, 0, 0, 0, time.UTC)},
		{`"2025-07-12T10:00:00.1234567"`, time.Date(2025, 7, 12, 10, 0, 0, 123456700, time.UTC)},
		{`"2025-07-12T10:00:00"`, time.Date(2025, 7, 12, 10, 0, 0, 0, time.UTC)},
		{`""`, time.Time{}},
		{`null`, time.Time{}},
	}
	for _, tt := range tests {
		var ts Timestamp
		require.NoError(t, json.Unmarshal([]byte(tt.in), &ts), tt.in)
		assert.True(t, tt.want.Equal(ts.Time), "%s: got %s", tt.in, ts.Time)
	}
}

func TestTimestampRejectsGarbage(t *testing.T) {
	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"kemarin"`), &ts))
	assert.Error(t, json.Unmarshal([]byte(`12`), &ts))
}

func TestTimestampRoundTripsInsideRecords(t *testing.T) {
	var n Notification
	require.NoError(t, json.Unmarshal([]byte(`{"id":"n1","createdAt":"2025-07-12T10:00:00"}`), &n))

	out, err := json.Marshal(n)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"createdAt":"2025-07-12T10:00:00Z"`)
}
