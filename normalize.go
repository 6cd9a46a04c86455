package cleanser

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	CommentMarker = '#'
	NoBreakSpace  = '\u00a0'
)

// Normalizer
// Turns raw lines into matching keys and candidate outputs. It holds a
// stateful lowercasing transformer and must not be shared between
// goroutines.
type Normalizer struct {
	lower cases.Caser
}

func NewNormalizer() *Normalizer {
	return &Normalizer{lower: cases.Lower(language.Und)}
}

// Normalize
// Strips everything from the first `#`, trims surrounding whitespace and
// substitutes no-break spaces with plain spaces, giving the candidate
// output. The key is the candidate lowercased. Tabs and runs of spaces are
// left untouched.
func (n *Normalizer) Normalize(line string) (key string, candidate string) {
	if idx := strings.IndexByte(line, CommentMarker); idx >= 0 {
		line = line[:idx]
	}
	candidate = strings.TrimSpace(line)
	candidate = strings.ReplaceAll(candidate, string(NoBreakSpace), " ")
	return n.Lower(candidate), candidate
}

// Pattern
// Prepares a keyword for matching against keys: no-break spaces become plain
// spaces and the result is lowercased.
func (n *Normalizer) Pattern(keyword string) string {
	return n.Lower(strings.ReplaceAll(keyword, string(NoBreakSpace), " "))
}

// Lower applies the same lowercasing used for keys.
func (n *Normalizer) Lower(s string) string {
	return n.lower.String(s)
}

// Normalize is a convenience wrapper that allocates a fresh Normalizer.
func Normalize(line string) (key string, candidate string) {
	return NewNormalizer().Normalize(line)
}
