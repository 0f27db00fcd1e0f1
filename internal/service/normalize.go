package service

import (
	"strings"
	"unicode/utf8"
)

const maxDescriptionLen = 255

// normalizeName trims surrounding whitespace. An empty result means the name
// is invalid; callers reject it.
func normalizeName(name string) string {
	return strings.TrimSpace(name)
}

// normalizeDescription trims the description, collapses internal whitespace
// runs to a single space and truncates to 255 characters. Empty input
// normalizes to nil (absent). Idempotent: applying it twice equals once.
func normalizeDescription(description string) *string {
	fields := strings.Fields(description)
	if len(fields) == 0 {
		return nil
	}

	d := strings.Join(fields, " ")
	if utf8.RuneCountInString(d) > maxDescriptionLen {
		// Cut at a rune boundary; a byte slice could split a multibyte
		// character and produce invalid UTF-8.
		d = strings.TrimSpace(string([]rune(d)[:maxDescriptionLen]))
	}

	return &d
}
