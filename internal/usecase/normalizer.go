package usecase

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Package-level compiled regex patterns for performance
var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]`)
	multipleSpacesRegex  = regexp.MustCompile(`\s+`)
)

// DefaultStopWords are bottle-label terms that carry no identity
// (edition, age and cask markers, producer-type words).
var DefaultStopWords = []string{
	"the", "limited", "edition", "release", "single", "barrel", "cask",
	"strength", "proof", "year", "old", "aged", "distillery", "winery",
	"vineyard", "chateau", "domaine",
}

// Normalizer canonicalizes raw names into comparable text.
// A single instance must be used for both the query and catalog fields.
type Normalizer struct {
	stopWordRegex *regexp.Regexp // nil when there are no stop words
	foldAccents   bool
}

// NewNormalizer builds a normalizer for the given stop words.
// A nil slice selects DefaultStopWords; an empty non-nil slice disables removal.
func NewNormalizer(stopWords []string, foldAccents bool) *Normalizer {
	if stopWords == nil {
		stopWords = DefaultStopWords
	}

	n := &Normalizer{foldAccents: foldAccents}

	var words []string
	for _, w := range stopWords {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			words = append(words, regexp.QuoteMeta(w))
		}
	}
	if len(words) > 0 {
		n.stopWordRegex = regexp.MustCompile(`\b(?:` + strings.Join(words, "|") + `)\b`)
	}

	return n
}

// Normalize lowercases, strips everything outside [a-z0-9\s], removes
// whole-word stop words, and collapses whitespace. Any Unicode space
// (NBSP, \v, ideographic space) separates words like ' '. Empty input
// yields "".
func (n *Normalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}

	result := strings.Map(unifySpace, strings.ToLower(text))
	if n.foldAccents {
		result = foldAccents(result)
	}
	result = nonAlphanumericRegex.ReplaceAllString(result, "")
	if n.stopWordRegex != nil {
		result = n.stopWordRegex.ReplaceAllString(result, "")
	}
	result = multipleSpacesRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

// unifySpace maps every whitespace rune to ' ' since RE2's \s is ASCII-only
func unifySpace(r rune) rune {
	if unicode.IsSpace(r) || r == '\uFEFF' {
		return ' '
	}
	return r
}

// foldAccents maps "château" to "chateau" by dropping combining marks
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}
