// Package slug derives URL-safe path segments from arbitrary labels.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var folder = cases.Fold()

// stripMarks removes combining marks after NFD decomposition, so accented
// characters reduce to their base letter.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Make converts a label into a lower-case, ASCII-leaning, dash-separated
// slug. Idempotent: Make(Make(s)) == Make(s).
func Make(label string) string {
	s, _, err := transform.String(stripMarks, label)
	if err != nil {
		s = label
	}
	s = folder.String(s)

	var sb strings.Builder
	lastDash := true // swallow leading dashes
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				sb.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(sb.String(), "-")
}

// Fold case-folds a string for caseless comparison without slugifying it.
func Fold(s string) string {
	return folder.String(s)
}
