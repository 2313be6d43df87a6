package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the day-precision format used for due dates in forms and seed files.
const DateLayout = "2006-01-02"

// ParseDueDate accepts a calendar date (interpreted as local midnight) or an RFC 3339
// timestamp. An empty string yields ErrDueDateRequired.
func ParseDueDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrDueDateRequired
	}
	if t, err := time.ParseInLocation(DateLayout, s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q (want YYYY-MM-DD)", ErrInvalidDueDate, s)
}

// FormatDueDate renders a due date with the given layout, falling back to DateLayout.
func FormatDueDate(t time.Time, layout string) string {
	if t.IsZero() {
		return "-"
	}
	if layout == "" {
		layout = DateLayout
	}
	return t.Local().Format(layout)
}
