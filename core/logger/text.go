package logger

import (
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// SanitizeLimit strips control and format runes (keeping tab and newline) and
// keeps at most max runes. User-supplied text goes through it before logging.
func SanitizeLimit(s string, max int) string {
	if max <= 0 {
		return ""
	}
	clean := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) || unicode.Is(unicode.Cf, r) {
			return -1
		}
		return r
	}, s)
	if utf8.RuneCountInString(clean) <= max {
		return clean
	}
	return string([]rune(clean)[:max])
}

// SummarizeStrings joins at most limit values with ", " and reports whether
// any were left out.
func SummarizeStrings(values []string, limit int) (string, bool) {
	if limit <= 0 {
		return "", len(values) > 0
	}
	cut := len(values) > limit
	if cut {
		values = values[:limit]
	}
	return strings.Join(values, ", "), cut
}

// RoundMS rounds d to whole milliseconds; negative durations become zero.
func RoundMS(d time.Duration) time.Duration {
	return max(d, 0).Round(time.Millisecond)
}

// BuildRID formats the correlation id of an update as update:chat:user.
func BuildRID(updateID int, chatID, userID int64) string {
	return strconv.Itoa(updateID) + ":" +
		strconv.FormatInt(chatID, 10) + ":" +
		strconv.FormatInt(userID, 10)
}

// CompactRID rewrites an update:chat:user id as dot-separated base36 numbers.
// Ids in any other shape come back trimmed but otherwise unchanged.
func CompactRID(rid string) string {
	rid = strings.TrimSpace(rid)
	parts := strings.Split(rid, ":")
	if len(parts) != 3 {
		return rid
	}
	for i, p := range parts {
		n, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return rid
		}
		parts[i] = strconv.FormatInt(n, 36)
	}
	return strings.Join(parts, ".")
}
