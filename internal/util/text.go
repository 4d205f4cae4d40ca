package util

import (
	"strings"
	"unicode/utf8"
)

// SanitizePostgresText drops invalid UTF-8 and NUL bytes, which Postgres
// rejects in text columns.
func SanitizePostgresText(value string) string {
	if value == "" {
		return value
	}

	sanitized := strings.ToValidUTF8(value, "")
	return strings.ReplaceAll(sanitized, "\x00", "")
}

// Truncate shortens value to at most maxRunes runes, appending "…" when
// anything was cut.
func Truncate(value string, maxRunes int) string {
	if maxRunes <= 0 || utf8.RuneCountInString(value) <= maxRunes {
		return value
	}
	runes := []rune(value)
	return string(runes[:maxRunes]) + "…"
}
