package match

import (
	"sort"

	"github.com/ppiankov/groundcheck/internal/model"
)

// DefaultSuggestionThreshold is the lower bar for listing related sources
const DefaultSuggestionThreshold = 0.3

// Match is a candidate source scored against a piece of text
type Match struct {
	Source     model.CandidateSource
	Similarity float64
	Method     model.MatchMethod
	Index      int // Position in the candidate pool
}

// Matcher ranks candidate sources against claims and citations.
// It holds no per-call state and is safe for concurrent use.
type Matcher struct {
	similarity          SimilarityFn
	suggestionThreshold float64
}

// NewMatcher creates a matcher. A nil SimilarityFn uses Jaccard.
func NewMatcher(fn SimilarityFn, suggestionThreshold float64) *Matcher {
	if fn == nil {
		fn = Jaccard
	}
	if suggestionThreshold <= 0 {
		suggestionThreshold = DefaultSuggestionThreshold
	}
	return &Matcher{similarity: fn, suggestionThreshold: suggestionThreshold}
}

// Similarity scores two texts with the configured function
func (m *Matcher) Similarity(a, b string) float64 {
	return m.similarity(a, b)
}

// Best returns the highest scoring candidate at or above min
func (m *Matcher) Best(text string, pool []model.CandidateSource, min float64) (Match, bool) {
	ranked := m.rank(text, pool, min)
	if len(ranked) == 0 {
		return Match{}, false
	}
	return ranked[0], true
}

// FindMatchingSources returns every candidate at or above the suggestion
// threshold, best first
func (m *Matcher) FindMatchingSources(text string, pool []model.CandidateSource) []Match {
	return m.rank(text, pool, m.suggestionThreshold)
}

func (m *Matcher) rank(text string, pool []model.CandidateSource, min float64) []Match {
	var matches []Match
	for i, src := range pool {
		sim := m.similarity(text, src.Content)
		if sim < min || sim <= 0 {
			continue
		}
		method := model.MethodLexical
		if Contains(src.Content, text) {
			method = model.MethodVerbatim
		}
		matches = append(matches, Match{Source: src, Similarity: sim, Method: method, Index: i})
	}

	// Ties fall back to the retrieval hint, then pool order
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Similarity != matches[j].Similarity {
			return matches[i].Similarity > matches[j].Similarity
		}
		hi, hj := matches[i].Source.SimilarityHint(), matches[j].Source.SimilarityHint()
		if hi != hj {
			return hi > hj
		}
		return matches[i].Index < matches[j].Index
	})

	return matches
}
