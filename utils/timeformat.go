package utils

import (
	"fmt"
	"time"
)

// FormatAge renders the elapsed time since a unix creation timestamp in
// the largest sensible unit, for the node list view. It measures age since
// creation, not time running; a restart does not reset it.
func FormatAge(createdUnix int64, now time.Time) string {
	elapsed := now.Sub(time.Unix(createdUnix, 0))
	if elapsed < 0 {
		elapsed = 0
	}

	switch {
	case elapsed < time.Minute:
		return fmt.Sprintf("%ds", int(elapsed.Seconds()))
	case elapsed < time.Hour:
		return fmt.Sprintf("%dm", int(elapsed.Minutes()))
	case elapsed < 24*time.Hour:
		h := int(elapsed.Hours())
		m := int(elapsed.Minutes()) % 60
		return fmt.Sprintf("%dh%dm", h, m)
	default:
		d := int(elapsed.Hours()) / 24
		h := int(elapsed.Hours()) % 24
		return fmt.Sprintf("%dd%dh", d, h)
	}
}
