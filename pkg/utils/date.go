package utils

import "time"

const dateLayout = "2006-01-02"

// ParseDate interpreta uma data no formato YYYY-MM-DD
func ParseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}
