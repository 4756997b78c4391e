package fhir

import (
	"strings"
	"time"
)

// Accepted input layouts, tried in order. Inputs may be date-only,
// naive datetimes (assumed UTC), or carry an explicit offset.
var parseLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999-07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseAny(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	s = strings.Replace(s, "Z", "+00:00", 1)
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	// Offset without colon.
	if t, err := time.Parse("2006-01-02T15:04:05-0700", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// FormatDateTime normalizes a flat datetime or date string to ISO 8601 with
// an explicit offset (UTC assumed when absent). Invalid input yields "".
func FormatDateTime(s string) string {
	t, ok := parseAny(s)
	if !ok {
		return ""
	}
	if t.Nanosecond() != 0 {
		return t.Format("2006-01-02T15:04:05.999999-07:00")
	}
	return t.Format("2006-01-02T15:04:05-07:00")
}

// FormatDate normalizes a datetime or date string to YYYY-MM-DD.
// Invalid input yields "".
func FormatDate(s string) string {
	t, ok := parseAny(s)
	if !ok {
		return ""
	}
	return t.Format("2006-01-02")
}

// FlatDateTime normalizes a document datetime to the flat-side form, with
// UTC rendered as a trailing "Z". Invalid input yields "".
func FlatDateTime(s string) string {
	t, ok := parseAny(s)
	if !ok {
		return ""
	}
	_, offset := t.Zone()
	if offset == 0 {
		if t.Nanosecond() != 0 {
			return t.UTC().Format("2006-01-02T15:04:05.999999Z")
		}
		return t.UTC().Format("2006-01-02T15:04:05Z")
	}
	return FormatDateTime(s)
}

// Year extracts the leading four-digit year from a date string, or "" when
// the input is too short or non-numeric.
func Year(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 4 {
		return ""
	}
	y := s[:4]
	for _, r := range y {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return y
}
