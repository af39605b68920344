package utils

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

func UrlQuery(s string) string { return strings.ReplaceAll(s, " ", "+") }

func Str(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

// Truncate hard-cuts s to at most max bytes and appends the marker. A max
// of zero or less means unbounded. The cut backs up to the nearest rune
// boundary so multibyte text stays valid UTF-8; it is otherwise
// non-semantic.
func Truncate(s string, max int, marker string) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + marker
}
