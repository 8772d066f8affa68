package common

import (
	"strings"
	"unicode"
)

// IsDigits reports whether s is non-empty and made only of ASCII digits,
// which is how postal codes are told apart from place names.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// SplitList splits a comma separated value, trimming blanks and dropping empties.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
