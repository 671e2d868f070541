package dialogue

import (
	"strings"
	"unicode"
)

// NormalizeAlpha keeps only letters from s, concatenated. Total over any
// input; empty input yields the empty string.
func NormalizeAlpha(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeDigits keeps only decimal digits from s, concatenated.
func NormalizeDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
