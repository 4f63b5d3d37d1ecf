package utils

import (
	"regexp"
	"strings"
	"time"
)

var timeOfDay = regexp.MustCompile(`\d{1,2}:\d{2}`)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// HasTime reports whether s carries a time of day such as "14:00".
func HasTime(s string) bool {
	return timeOfDay.MatchString(s)
}

// ParseDate accepts a calendar date with an optional time.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
