package mdparse

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// lowerCaser lowercases heading text with Unicode-aware rules.
// Heading text in academic documentation regularly contains non-ASCII
// characters, so a plain strings.ToLower is not enough.
var lowerCaser = cases.Lower(language.Und)

// slugger computes GitHub-style heading anchors with per-document
// deduplication. GitHub appends -1, -2, ... to repeated slugs in
// document order, and so do we.
type slugger struct {
	// seen counts how many times each base slug has occurred.
	seen map[string]int
}

// newSlugger creates a slugger for a single document.
func newSlugger() *slugger {
	return &slugger{seen: make(map[string]int)}
}

// Slug returns the anchor for the given heading text, deduplicated
// against earlier headings in the same document.
func (s *slugger) Slug(text string) string {
	base := Slugify(text)
	count := s.seen[base]
	s.seen[base] = count + 1
	if count == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, count)
}

// Slugify converts heading text to a GitHub-style anchor:
// NFC-normalized, lowercased, punctuation stripped, spaces replaced
// with hyphens. Letters, digits, hyphens, and underscores survive.
func Slugify(text string) string {
	text = norm.NFC.String(text)
	text = lowerCaser.String(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('-')
		}
		// Everything else (punctuation, symbols) is dropped.
	}
	return b.String()
}
