package format

import (
	"html"
	"strconv"
	"strings"
	"unicode/utf8"
)

// EscapeHTML escapes text for Telegram's HTML parse mode.
func EscapeHTML(text string) string {
	return html.EscapeString(text)
}

// Size renders a shoe size without trailing zeros: 42.0 -> "42", 42.50 -> "42.5".
// Sizes are stored as single-precision reals, so they print at that precision.
func Size(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 32)
}

// Sizes renders each size with Size and joins them with ", ".
func Sizes(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = Size(v)
	}
	return strings.Join(parts, ", ")
}

// Truncate cuts text to at most limit runes, appending suffix when it had to cut.
func Truncate(text string, limit int, suffix string) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	keep := limit - utf8.RuneCountInString(suffix)
	if keep < 0 {
		keep = 0
	}
	runes := []rune(text)
	return string(runes[:keep]) + suffix
}
