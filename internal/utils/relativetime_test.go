package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRelativeTime(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) *time.Time {
		ts := now.Add(-d)
		return &ts
	}

	tests := []struct {
		name     string
		ts       *time.Time
		expected string
	}{
		{"never seen", nil, "—"},
		{"seconds ago", at(30 * time.Second), "just now"},
		{"one minute", at(time.Minute), "1m ago"},
		{"under an hour", at(59 * time.Minute), "59m ago"},
		{"hours", at(3*time.Hour + 20*time.Minute), "3h ago"},
		{"under a day", at(23 * time.Hour), "23h ago"},
		{"one day", at(24 * time.Hour), "1d ago"},
		{"many days", at(9*24*time.Hour + 5*time.Hour), "9d ago"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RelativeTime(tt.ts, now))
		})
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "—", Percent(0, false))
	assert.Equal(t, "0%", Percent(0, true))
	assert.Equal(t, "75%", Percent(0.75, true))
	assert.Equal(t, "100%", Percent(1, true))
}
