package extract

import (
	"strings"
	"unicode"
)

// Document is the normalized view of one booking document. Lines and Text
// stay index-consistent: Text is exactly Lines joined with "\n", so line i of
// a multiline regex match corresponds to Lines[i]. Raw keeps the input lines
// untouched for heuristics that rescan unnormalized text.
type Document struct {
	Lines []string
	Text  string
	Raw   []string
}

func NewDocument(lines []string) *Document {
	normalized := make([]string, len(lines))
	raw := make([]string, len(lines))
	for i, ln := range lines {
		raw[i] = ln
		normalized[i] = NormalizeSpaces(ln)
	}
	return &Document{
		Lines: normalized,
		Text:  strings.Join(normalized, "\n"),
		Raw:   raw,
	}
}

// RawText joins the unnormalized lines. Used by fallback steps that re-check
// label patterns the space folding may have disturbed.
func (d *Document) RawText() string {
	return strings.Join(d.Raw, "\n")
}

// NormalizeSpaces collapses every run of Unicode space characters (including
// non-breaking and narrow no-break spaces) into a single ASCII space and trims
// the ends. Newlines never reach this function; line boundaries are preserved
// by normalizing per line.
func NormalizeSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inSpace = true
			continue
		}
		if inSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
