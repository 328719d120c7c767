// Package normalize derives search keys and display names for fuzzy lookup
// Pipeline for Name
// 1 Decompose and strip combining marks so "López" folds to "Lopez"
// 2 Uppercase
// 3 Keep only uppercase latin letters digits and spaces
// 4 Collapse whitespace to single spaces and trim
// The result feeds trigram matching downstream and is idempotent
package normalize

import (
	"regexp"
	"strings"
	"sync"
	"unicode"

	"caseflow/internal/core/textkit"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// pool of fresh transformer chains, order mirrors the documented pipeline
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFD,
			runes.Remove(runes.In(unicode.Mn)), // strip combining marks
			norm.NFC,
		)
	},
}

// Name canonicalizes a display name into the search key used for
// approximate matching, applying Name to its own output is a no op
func Name(s string) string {
	if s == "" {
		return ""
	}

	tr := chainPool.Get().(transform.Transformer)
	folded, _, _ := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)

	upper := strings.ToUpper(folded)

	var b strings.Builder
	b.Grow(len(upper))
	for _, r := range upper {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == ' ' {
			b.WriteRune(r)
		}
	}

	return textkit.Squish(b.String())
}

var digitRunRe = regexp.MustCompile(`\d+`)

// firstEightDigitRun returns the first digit run of exactly 8 digits
// longer runs do not qualify, partial matches would misattribute ids
func firstEightDigitRun(s string) string {
	for _, run := range digitRunRe.FindAllString(s, -1) {
		if len(run) == 8 {
			return run
		}
	}
	return ""
}

// TaskName splits a task title of the form "Display Name | trailing text"
// the display name is everything before the first pipe, trimmed, the
// trailing text is scanned for the first embedded 8 digit run
// returns the display name, the id or "", and the search key for the name
func TaskName(title string) (display, caseID, searchKey string) {
	if title == "" {
		return "", "", ""
	}

	after := ""
	if i := strings.Index(title, "|"); i >= 0 {
		display = strings.TrimSpace(title[:i])
		after = strings.TrimSpace(title[i+1:])
	} else {
		display = strings.TrimSpace(title)
	}

	if after != "" {
		caseID = firstEightDigitRun(after)
	}

	return display, caseID, Name(display)
}
