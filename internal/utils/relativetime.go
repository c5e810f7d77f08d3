package utils

import (
	"fmt"
	"time"
)

// RelativeTime renders a last-seen timestamp for display: "just now",
// "12m ago", "3h ago", "5d ago", or "—" when the word was never seen.
func RelativeTime(ts *time.Time, now time.Time) string {
	if ts == nil {
		return "—"
	}

	diff := now.Sub(*ts)

	mins := int(diff.Minutes())
	if mins < 1 {
		return "just now"
	}
	if mins < 60 {
		return fmt.Sprintf("%dm ago", mins)
	}

	hrs := int(diff.Hours())
	if hrs < 24 {
		return fmt.Sprintf("%dh ago", hrs)
	}

	days := hrs / 24
	return fmt.Sprintf("%dd ago", days)
}

// Percent renders an accuracy ratio as "83%", or "—" when undefined.
func Percent(ratio float64, ok bool) string {
	if !ok {
		return "—"
	}
	return fmt.Sprintf("%.0f%%", ratio*100)
}
