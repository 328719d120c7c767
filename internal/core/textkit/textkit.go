// Package textkit holds small pure text helpers shared by the extractors
package textkit

import (
	"regexp"
	"strings"
)

var ordinalRe = regexp.MustCompile(`(?i)(\d)(st|nd|rd|th)`)

// Squish collapses whitespace runs to single spaces and trims both ends
func Squish(s string) string {
	if s == "" {
		return ""
	}
	return strings.Join(strings.Fields(s), " ")
}

// CleanPhone strips every non-digit rune and returns the digit string
// when its length is between 10 and 15 inclusive, otherwise ""
func CleanPhone(phone string) string {
	if phone == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) >= 10 && len(digits) <= 15 {
		return digits
	}
	return ""
}

// StripOrdinalSuffix removes english ordinal suffixes that follow a digit
// "May 21st 2024" becomes "May 21 2024"
// a street like "3rd Street" also loses its suffix, known limitation since
// this runs on date text only
func StripOrdinalSuffix(dateText string) string {
	if dateText == "" {
		return ""
	}
	return ordinalRe.ReplaceAllString(dateText, "$1")
}
