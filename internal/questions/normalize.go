// Package questions normalizes the canonical research-question guide and maps
// raw captured questions onto it.
package questions

import (
	"strings"
	"unicode"
)

// stopwords excluded from fuzzy token-overlap scoring.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "and": {}, "or": {}, "but": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {},
	"do": {}, "does": {}, "did": {}, "can": {}, "could": {}, "would": {},
	"should": {}, "will": {}, "have": {}, "has": {}, "had": {},
	"you": {}, "your": {}, "yours": {}, "we": {}, "our": {}, "us": {},
	"i": {}, "me": {}, "my": {}, "it": {}, "its": {}, "they": {},
	"their": {}, "them": {}, "this": {}, "that": {}, "these": {}, "those": {},
	"what": {}, "which": {}, "who": {}, "how": {}, "when": {}, "where": {},
	"why": {}, "to": {}, "of": {}, "in": {}, "on": {}, "at": {}, "for": {},
	"with": {}, "about": {}, "as": {}, "by": {}, "from": {}, "if": {},
	"any": {}, "some": {}, "there": {}, "so": {}, "please": {},
}

// NormalizeKey lowercases, strips non-alphanumeric characters, and collapses
// whitespace so near-identical phrasings collapse to one key.
func NormalizeKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokenize splits a string into normalized tokens.
func Tokenize(s string) []string {
	return strings.Fields(NormalizeKey(s))
}

// ContentTokens returns the stopword-filtered token set of a string.
func ContentTokens(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range Tokenize(s) {
		if _, skip := stopwords[tok]; skip {
			continue
		}
		set[tok] = struct{}{}
	}
	return set
}

// Jaccard computes |a∩b| / |a∪b| over two token sets.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	intersection := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// containsAny reports whether the normalized text contains any of the terms.
func containsAny(normalized string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(normalized, term) {
			return true
		}
	}
	return false
}
