package utils

import (
	"strings"
	"time"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02-01-2006",
}

var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02 15:04",
	"01/02/2006 15:04",
}

// ParseDate parses a calendar date in one of the accepted layouts.
// Empty input returns nil without error.
func ParseDate(value string) (*time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, true
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return &t, true
		}
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, true
	}
	return nil, false
}

// ParseDateTime parses a date and time in one of the accepted layouts.
// Empty input returns nil without error.
func ParseDateTime(value string) (*time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, true
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return &t, true
		}
	}
	return nil, false
}
