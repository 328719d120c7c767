// Package extract provides the label anchored field extractors for intake text
//
// Grammar notes
//   - line fields look like "Label: value" where the delimiter tolerates
//     whitespace, an optional literal "?" and one or more ":" characters
//   - block fields span multiple lines between a start label line and the
//     next end label line, capture is non greedy so the first end label wins
//   - labels are opaque literals and are always escaped before being placed
//     in a pattern, punctuation in them never acts as pattern syntax
//
// Absence is a normal outcome, every extractor returns "" when nothing
// qualifies
package extract

import (
	"regexp"
	"strings"

	"caseflow/internal/core/textkit"
)

const delim = `\s*\??\s*:+`

// Line returns the single line value following "label ?::" at line start
// the value is squished, "" means no line matched or the value was empty
func Line(text, label string) string {
	if text == "" || label == "" {
		return ""
	}
	re, err := regexp.Compile(`(?m)^` + regexp.QuoteMeta(label) + delim + `[ \t]*(.*)$`)
	if err != nil {
		return ""
	}
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return textkit.Squish(m[1])
}

// BlockUntil returns the multi line text between a startLabel line and the
// next endLabel line, the end label line is not included
// "" when either label is missing, when no end label follows the start, or
// when the capture trims to nothing, a document whose last section has no
// terminating label yields "" rather than capturing to end of document
func BlockUntil(text, startLabel, endLabel string) string {
	if text == "" || startLabel == "" || endLabel == "" {
		return ""
	}
	s := regexp.QuoteMeta(startLabel)
	e := regexp.QuoteMeta(endLabel)
	re, err := regexp.Compile(`(?ms)^` + s + delim + `[ \t]*(.*?)\s*^` + e + delim)
	if err != nil {
		return ""
	}
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	v := strings.ReplaceAll(m[1], "\r", "")
	return strings.TrimSpace(v)
}

// locationRe matches the header plus underline grammar used for addresses
//
//	Location
//	========
//	text until a blank line or end of document
var locationRe = regexp.MustCompile(`(?ms)^Location[ \t]*\n=+[ \t]*\n(.*?)\s*(?:\n[ \t]*\n|\z)`)

// Location returns the address paragraph under a "Location" underlined header
func Location(text string) string {
	if text == "" {
		return ""
	}
	m := locationRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	v := strings.ReplaceAll(m[1], "\r", "")
	return strings.TrimSpace(v)
}

var (
	caseIDLineRe = regexp.MustCompile(`(?mi)^My Case ID.*?:\s*(\d{8})\b`)
	caseIDURLRe  = regexp.MustCompile(`(?i)mycase\.com/leads/(\d{8})\b`)
)

// CaseID finds the 8 digit external reference via an ordered fallback,
// first a "My Case ID ...:" line, then a mycase.com/leads/ URL fragment
// the id is exactly 8 digits, a 9 digit run does not match
func CaseID(text string) string {
	if text == "" {
		return ""
	}
	if m := caseIDLineRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if m := caseIDURLRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}
