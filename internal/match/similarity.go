// Package match scores text against candidate source passages.
package match

import (
	"strings"
	"unicode"
)

// SimilarityFn scores two texts in [0,1]. Implementations must be
// deterministic and symmetric; an embedding-backed scorer can replace Jaccard.
type SimilarityFn func(a, b string) float64

// Jaccard is |A∩B| / |A∪B| over lower-cased whitespace tokens with edge
// punctuation trimmed. Two empty token sets score 0.
func Jaccard(a, b string) float64 {
	setA := Tokens(a)
	setB := Tokens(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for tok := range setA {
		if setB[tok] {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

// Tokens returns the set of normalized word tokens in text
func Tokens(text string) map[string]bool {
	fields := strings.Fields(strings.ToLower(text))
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		tok := strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if tok != "" {
			set[tok] = true
		}
	}
	return set
}

// normalize collapses whitespace and case for containment checks
func normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// Contains reports whether source contains claim verbatim (modulo case,
// whitespace and a trailing terminator)
func Contains(source, claim string) bool {
	c := strings.TrimRight(normalize(claim), ".!?")
	if c == "" {
		return false
	}
	return strings.Contains(normalize(source), c)
}
