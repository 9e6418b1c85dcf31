package shared

import "time"

// DayFormat is the wire format for schedule day keys.
const DayFormat = "2006-01-02"

// ParseDate accepts RFC3339 or a bare day (YYYY-MM-DD).
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse(DayFormat, value)
}

// FormatDay renders a timestamp as a schedule day key.
func FormatDay(t time.Time) string {
	return t.Format(DayFormat)
}
