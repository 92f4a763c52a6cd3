package extract

import (
	"sort"
	"strings"

	"github.com/ppiankov/groundcheck/internal/model"
	"github.com/ppiankov/groundcheck/internal/patterns"
)

// Placeholder confidence until the scorer validates a citation
const unvalidatedConfidence = 0.8

// CitationExtractor finds citation markers already present in text
type CitationExtractor struct{}

// NewCitationExtractor creates a citation extractor
func NewCitationExtractor() *CitationExtractor {
	return &CitationExtractor{}
}

type span struct{ start, end int }

// Extract returns the citation markers in text ordered by position.
// Offsets are shifted by baseOffset.
func (e *CitationExtractor) Extract(text, paragraphID string, baseOffset int) []model.ExtractedCitation {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var taken []span
	var citations []model.ExtractedCitation
	sentences := SplitSentences(text, 1)

	for _, p := range patterns.CitationMarkers {
		for _, loc := range p.Re.FindAllStringIndex(text, -1) {
			s := span{start: loc[0], end: loc[1]}
			if overlapsAny(taken, s) {
				continue
			}
			taken = append(taken, s)

			raw := text[s.start:s.end]
			claimText := ""
			if sentence, ok := sentenceAt(sentences, s.start); ok {
				claimText = sentence.Text
			}

			citations = append(citations, model.ExtractedCitation{
				ParagraphID: paragraphID,
				ClaimText:   claimText,
				Raw:         strings.TrimSpace(raw),
				Kind:        classifyKind(raw),
				Start:       baseOffset + s.start,
				End:         baseOffset + s.end,
				Validation: model.CitationValidation{
					IsValid:    true,
					Confidence: unvalidatedConfidence,
				},
			})
		}
	}

	sort.SliceStable(citations, func(i, j int) bool {
		return citations[i].Start < citations[j].Start
	})

	return citations
}

// classifyKind: numerical for digit-only brackets, inline for parentheticals
// with a four-digit year, implicit otherwise
func classifyKind(raw string) model.CitationKind {
	raw = strings.TrimSpace(raw)
	if patterns.OnlyDigits.MatchString(raw) {
		return model.CitationKindNumerical
	}
	if strings.HasPrefix(raw, "(") && patterns.FourDigitYear.MatchString(raw) {
		return model.CitationKindInline
	}
	return model.CitationKindImplicit
}

func overlapsAny(taken []span, s span) bool {
	for _, t := range taken {
		if s.start < t.end && t.start < s.end {
			return true
		}
	}
	return false
}
