package sheetdata

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD and drops combining marks, so "José" and
// "Jose" fold to the same key.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func foldAccents(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizeName produces the join key used on both the audit and finance
// sides: trimmed, lower-cased, accent-stripped, inner whitespace collapsed.
func NormalizeName(s string) string {
	folded := foldAccents(strings.ToLower(s))
	return strings.Join(strings.Fields(folded), " ")
}

// NormalizeHeader folds a header cell for synonym matching. Header spellings
// drift between periods ("Competência" vs "COMPETENCIA"), so matching is
// upper-cased and accent-insensitive with collapsed whitespace.
func NormalizeHeader(s string) string {
	folded := foldAccents(strings.ToUpper(s))
	return strings.Join(strings.Fields(folded), " ")
}
