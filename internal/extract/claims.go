package extract

import (
	"github.com/ppiankov/groundcheck/internal/model"
	"github.com/ppiankov/groundcheck/internal/patterns"
)

// Heuristic confidence per classification
const (
	confidenceStatistical    = 0.9
	confidenceAuthority      = 0.8
	confidenceFactual        = 0.7
	confidenceMethodological = 0.6
	confidenceOther          = 0.4
)

// ClaimExtractor splits paragraph text into classified claims
type ClaimExtractor struct {
	minSentenceLength int
}

// NewClaimExtractor creates a claim extractor. A non-positive length uses the default.
func NewClaimExtractor(minSentenceLength int) *ClaimExtractor {
	if minSentenceLength <= 0 {
		minSentenceLength = DefaultMinSentenceLength
	}
	return &ClaimExtractor{minSentenceLength: minSentenceLength}
}

// Extract returns one claim per sentence. Offsets are shifted by baseOffset.
func (e *ClaimExtractor) Extract(text string, baseOffset int) []model.Claim {
	sentences := SplitSentences(text, e.minSentenceLength)

	claims := make([]model.Claim, 0, len(sentences))
	for _, s := range sentences {
		claim := classify(s.Text)
		claim.Start = baseOffset + s.Start
		claim.End = baseOffset + s.End
		claims = append(claims, claim)
	}

	return claims
}

// classify applies the priority order statistical, methodological,
// authority-factual, opinion, then generic factual
func classify(sentence string) model.Claim {
	claim := model.Claim{Text: sentence}

	if name, ok := patterns.Statistical.Match(sentence); ok {
		claim.Type = model.ClaimTypeStatistical
		claim.Confidence = confidenceStatistical
		claim.NeedsCitation = true
		claim.Heuristic = "statistical:" + name
		return claim
	}

	if name, ok := patterns.Methodological.Match(sentence); ok {
		_, outcome := patterns.Outcome.Match(sentence)
		claim.Type = model.ClaimTypeMethodological
		claim.Confidence = confidenceMethodological
		claim.NeedsCitation = outcome
		claim.Heuristic = "methodological:" + name
		return claim
	}

	if name, ok := patterns.Authority.Match(sentence); ok {
		_, data := patterns.DataBearing.Match(sentence)
		claim.Type = model.ClaimTypeFactual
		claim.Confidence = confidenceAuthority
		claim.NeedsCitation = data
		claim.Heuristic = "authority:" + name
		return claim
	}

	if name, ok := patterns.Opinion.Match(sentence); ok {
		claim.Type = model.ClaimTypeOpinion
		claim.Confidence = confidenceOther
		claim.NeedsCitation = false
		claim.Heuristic = "opinion:" + name
		return claim
	}

	_, data := patterns.DataBearing.Match(sentence)
	claim.Type = model.ClaimTypeFactual
	claim.Confidence = confidenceFactual
	claim.NeedsCitation = data
	claim.Heuristic = "factual"
	return claim
}

// RequiringCitation filters claims to those that need evidentiary support
func RequiringCitation(claims []model.Claim) []model.Claim {
	var out []model.Claim
	for _, c := range claims {
		if c.NeedsCitation {
			out = append(out, c)
		}
	}
	return out
}
