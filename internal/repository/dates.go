package repository

import (
	"strings"
	"time"
)

// Layouts seen in stored service dates. The field was written by several
// client versions: some stored a timestamp, some the raw form string.
var serviceDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"January 2, 2006",
}

// NormalizeDate tolerantly parses a stored free-form date. This is the one
// place the polymorphic representation is resolved; everything downstream
// sees *time.Time or nil.
func NormalizeDate(raw *string) *time.Time {
	if raw == nil {
		return nil
	}
	value := strings.TrimSpace(*raw)
	if value == "" {
		return nil
	}
	for _, layout := range serviceDateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return &parsed
		}
	}
	return nil
}
