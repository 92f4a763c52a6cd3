package score

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/groundcheck/internal/model"
)

func floatPtr(v float64) *float64 { return &v }

func TestGenerateCitations_Supported(t *testing.T) {
	resp := newScorer().GenerateCitationsForParagraph(model.ValidationRequest{
		Text:        "Our org served 5,000 people in 2023.",
		ParagraphID: "p1",
	}, impactPool)

	require.Len(t, resp.Citations, 1)
	c := resp.Citations[0]
	assert.True(t, c.IsValid)
	assert.Equal(t, "impact-1", c.ChunkID)
	assert.Equal(t, "impact-report", c.DocumentID)
	assert.Equal(t, 0.5, c.Similarity)
	assert.Equal(t, 0.5, c.Confidence)
	assert.Equal(t, model.MethodLexical, c.Method)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, 1.0, resp.GroundingQuality)

	// 0.5 sits inside the marginal band above the 0.5 bar
	require.Len(t, resp.ValidationIssues, 1)
	assert.Equal(t, model.IssueWeakCitation, resp.ValidationIssues[0].Type)
	assert.Equal(t, model.SeverityMedium, resp.ValidationIssues[0].Severity)
}

func TestGenerateCitations_EmptyPool(t *testing.T) {
	resp := newScorer().GenerateCitationsForParagraph(model.ValidationRequest{
		Text:        "Our org served 5,000 people in 2023.",
		ParagraphID: "p1",
	}, nil)

	require.Len(t, resp.Citations, 1)
	c := resp.Citations[0]
	assert.False(t, c.IsValid)
	assert.Equal(t, model.MethodNone, c.Method)
	assert.Equal(t, 0.3, c.Confidence)
	assert.Equal(t, 0.0, resp.GroundingQuality)

	require.Len(t, resp.ValidationIssues, 1)
	issue := resp.ValidationIssues[0]
	assert.Equal(t, model.IssueMissingSource, issue.Type)
	assert.Equal(t, model.SeverityHigh, issue.Severity)
	assert.Equal(t, "p1", issue.ParagraphID)
	assert.NotEmpty(t, issue.Suggestion)
}

func TestGenerateCitations_MinimumSimilarityOverride(t *testing.T) {
	resp := newScorer().GenerateCitationsForParagraph(model.ValidationRequest{
		Text:              "Our org served 5,000 people in 2023.",
		ParagraphID:       "p1",
		MinimumSimilarity: floatPtr(0.6),
	}, impactPool)

	require.Len(t, resp.Citations, 1)
	assert.False(t, resp.Citations[0].IsValid)
	assert.Contains(t, resp.ValidationIssues[0].Suggestion, "impact-1 (0.50)")
}

func TestGenerateCitations_NoClaims(t *testing.T) {
	resp := newScorer().GenerateCitationsForParagraph(model.ValidationRequest{
		Text:        "We believe every family deserves a safe home.",
		ParagraphID: "p1",
	}, impactPool)

	assert.Empty(t, resp.Citations)
	assert.NotNil(t, resp.Citations)
	assert.Empty(t, resp.ValidationIssues)
	assert.Equal(t, 1.0, resp.GroundingQuality)
}

func TestGenerateCitations_DeterministicIDs(t *testing.T) {
	s := newScorer()
	req := model.ValidationRequest{Text: "Our org served 5,000 people in 2023.", ParagraphID: "p1"}

	first := s.GenerateCitationsForParagraph(req, impactPool)
	second := s.GenerateCitationsForParagraph(req, impactPool)
	assert.Equal(t, first.Citations[0].ID, second.Citations[0].ID)

	req.ParagraphID = "p2"
	other := s.GenerateCitationsForParagraph(req, impactPool)
	assert.NotEqual(t, first.Citations[0].ID, other.Citations[0].ID)
}

func TestValidateCitation(t *testing.T) {
	s := newScorer()

	t.Run("valid", func(t *testing.T) {
		v := s.ValidateCitation(model.ExtractedCitation{
			ParagraphID: "p1",
			ClaimText:   "We served 5,000 people in 2023 [1].",
			Raw:         "[1]",
		}, impactPool)

		assert.True(t, v.IsValid)
		assert.Equal(t, 0.75, v.Similarity)
		assert.Equal(t, 0.75, v.Confidence)
		assert.Equal(t, "impact-1", v.MatchedChunkID)
		assert.Empty(t, v.Issues)
	})

	t.Run("marginal", func(t *testing.T) {
		v := s.ValidateCitation(model.ExtractedCitation{
			ParagraphID: "p1",
			ClaimText:   "We served 5,000 people in 2023 overall [1].",
			Raw:         "[1]",
		}, impactPool)

		assert.True(t, v.IsValid)
		assert.InDelta(t, 6.0/9.0, v.Similarity, 1e-9)
		require.Len(t, v.Issues, 1)
		assert.Equal(t, model.IssueWeakCitation, v.Issues[0].Type)
	})

	t.Run("invalid", func(t *testing.T) {
		v := s.ValidateCitation(model.ExtractedCitation{
			ParagraphID: "p1",
			ClaimText:   "Rents doubled in two years [2].",
			Raw:         "[2]",
		}, impactPool)

		assert.False(t, v.IsValid)
		assert.Equal(t, 0.3, v.Confidence)
		require.Len(t, v.Issues, 1)
		assert.Equal(t, model.IssueMissingSource, v.Issues[0].Type)
		assert.Equal(t, model.SeverityHigh, v.Issues[0].Severity)
	})
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short text", excerpt("short\n  text"))

	long := ""
	for i := 0; i < 60; i++ {
		long += "word "
	}
	got := excerpt(long)
	assert.LessOrEqual(t, len(got), maxExcerptLength+3)
	assert.Contains(t, got, "...")
}

func TestGenerateCitations_NegativeConfigUsesDefaults(t *testing.T) {
	cfg := model.DefaultScoringConfig()
	cfg.MaxSuggestions = -1
	cfg.ProximityWindow = -5
	s := NewScorer(cfg)

	assert.Equal(t, 3, s.Config().MaxSuggestions)
	assert.Equal(t, 100, s.Config().ProximityWindow)

	var resp model.ValidationResponse
	require.NotPanics(t, func() {
		resp = s.GenerateCitationsForParagraph(model.ValidationRequest{
			Text:              "Our org served 5,000 people in 2023.",
			ParagraphID:       "p1",
			MinimumSimilarity: floatPtr(0.6),
		}, impactPool)
	})
	require.Len(t, resp.ValidationIssues, 1)
	assert.Contains(t, resp.ValidationIssues[0].Suggestion, "impact-1")
}

func TestSuggestSources_Limit(t *testing.T) {
	pool := []model.CandidateSource{
		{ChunkID: "a", Content: "served people in 2023"},
		{ChunkID: "b", Content: "served people in 2023 too"},
		{ChunkID: "c", Content: "served people in 2023 as well"},
		{ChunkID: "d", Content: "served people in 2023 and beyond"},
	}
	s := newScorer()

	got := s.suggestSources("We served people in 2023.", pool)
	assert.Equal(t, 3, strings.Count(got, "("), got)

	s.cfg.MaxSuggestions = -1
	assert.NotPanics(t, func() { s.suggestSources("We served people in 2023.", pool) })
}
