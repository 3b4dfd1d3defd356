package shared

import "time"

const dayLayout = "2006-01-02"

// ParseDate accepts a plain YYYY-MM-DD report day, the common case here, or
// a full RFC3339 timestamp. Empty input yields the zero time so callers can
// treat absence distinctly from a bad value.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(dayLayout, value); err == nil {
		return parsed, nil
	}
	return time.Parse(time.RFC3339, value)
}
