// Package sanitizer normalizes free-text input before validation and
// storage.
package sanitizer

import (
	"strings"
	"unicode"
)

// TrimAndNormalize trims surrounding whitespace and collapses internal
// whitespace runs to a single space.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}
	return result.String()
}

// NormalizeName normalizes venue and court names.
func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

// NormalizeSport lowercases a sport label after whitespace normalization,
// so "Badminton" and "badminton" index identically.
func NormalizeSport(sport string) string {
	return strings.ToLower(TrimAndNormalize(sport))
}
