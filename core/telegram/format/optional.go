package format

import "strings"

// Optional maps blank text to nil, for nullable columns.
func Optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// Value reads an optional string, treating nil as empty.
func Value(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
