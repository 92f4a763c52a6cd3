package score

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ppiankov/groundcheck/internal/extract"
	"github.com/ppiankov/groundcheck/internal/match"
	"github.com/ppiankov/groundcheck/internal/model"
)

const maxExcerptLength = 240

// citationNamespace seeds name-based citation IDs so reruns produce identical output
var citationNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/ppiankov/groundcheck/citation"))

// ValidateCitation checks an existing citation marker against the pool.
// The sentence around the marker must reach CitationMatchThreshold against
// some passage; matches within MarginalSlack of the bar are flagged weak.
func (s *Scorer) ValidateCitation(c model.ExtractedCitation, pool []model.CandidateSource) model.CitationValidation {
	text := strings.TrimSpace(strings.Replace(c.ClaimText, c.Raw, "", 1))
	if text == "" {
		text = c.Raw
	}

	best, ok := s.matcher.Best(text, pool, s.cfg.CitationMatchThreshold)
	if !ok {
		return model.CitationValidation{
			IsValid:    false,
			Confidence: s.cfg.InvalidConfidence,
			Issues: []model.ValidationIssue{{
				Type:        model.IssueMissingSource,
				Severity:    model.SeverityHigh,
				Message:     fmt.Sprintf("Citation %s does not match any source passage", c.Raw),
				ParagraphID: c.ParagraphID,
				ClaimText:   c.ClaimText,
				Suggestion:  s.suggestSources(text, pool),
			}},
		}
	}

	v := model.CitationValidation{
		IsValid:        true,
		Confidence:     best.Similarity,
		MatchedChunkID: best.Source.ChunkID,
		Similarity:     best.Similarity,
	}
	if best.Similarity < s.cfg.CitationMatchThreshold+s.cfg.MarginalSlack {
		v.Issues = []model.ValidationIssue{s.weakIssue(c.ParagraphID, c.ClaimText, best)}
	}
	return v
}

// GenerateCitationsForParagraph finds a source for every claim in the
// paragraph that needs one. Claims without a match produce an invalid
// citation and a missing_source issue.
func (s *Scorer) GenerateCitationsForParagraph(req model.ValidationRequest, pool []model.CandidateSource) model.ValidationResponse {
	minimum := s.cfg.ClaimMatchThreshold
	if req.MinimumSimilarity != nil {
		minimum = *req.MinimumSimilarity
	}

	resp := model.ValidationResponse{
		Citations:        []model.CitationSource{},
		GroundingQuality: 1.0,
		ValidationIssues: []model.ValidationIssue{},
	}

	needing := extract.RequiringCitation(s.claims.Extract(req.Text, 0))
	if len(needing) == 0 {
		return resp
	}

	valid := 0
	for _, claim := range needing {
		best, ok := s.matcher.Best(claim.Text, pool, minimum)
		if !ok {
			resp.Citations = append(resp.Citations, model.CitationSource{
				ID:          citationID(req.ParagraphID, claim, ""),
				ParagraphID: req.ParagraphID,
				ClaimText:   claim.Text,
				Method:      model.MethodNone,
				IsValid:     false,
				Confidence:  s.cfg.InvalidConfidence,
			})
			resp.ValidationIssues = append(resp.ValidationIssues, model.ValidationIssue{
				Type:        model.IssueMissingSource,
				Severity:    model.SeverityHigh,
				Message:     fmt.Sprintf("No source passage supports this %s claim", claim.Type),
				ParagraphID: req.ParagraphID,
				ClaimText:   claim.Text,
				Suggestion:  s.suggestSources(claim.Text, pool),
			})
			continue
		}

		valid++
		resp.Citations = append(resp.Citations, newCitationSource(req.ParagraphID, claim, best))
		if best.Similarity < minimum+s.cfg.MarginalSlack {
			resp.ValidationIssues = append(resp.ValidationIssues, s.weakIssue(req.ParagraphID, claim.Text, best))
		}
	}

	resp.GroundingQuality = float64(valid) / float64(len(needing))
	return resp
}

func newCitationSource(paragraphID string, claim model.Claim, m match.Match) model.CitationSource {
	src := m.Source
	return model.CitationSource{
		ID:            citationID(paragraphID, claim, src.ChunkID),
		ParagraphID:   paragraphID,
		ClaimText:     claim.Text,
		ChunkID:       src.ChunkID,
		DocumentID:    src.DocumentID,
		DocumentTitle: src.Title(),
		Excerpt:       excerpt(src.Content),
		PageNumber:    src.Metadata.PageNumber,
		SectionTitle:  src.Metadata.SectionTitle,
		ChunkIndex:    src.Metadata.ChunkIndex,
		Year:          src.Metadata.Year,
		Similarity:    m.Similarity,
		Method:        m.Method,
		IsValid:       true,
		Confidence:    m.Similarity,
	}
}

func (s *Scorer) weakIssue(paragraphID, claimText string, m match.Match) model.ValidationIssue {
	return model.ValidationIssue{
		Type:        model.IssueWeakCitation,
		Severity:    model.SeverityMedium,
		Message:     fmt.Sprintf("Marginal match with %s (similarity %.2f)", m.Source.ChunkID, m.Similarity),
		ParagraphID: paragraphID,
		ClaimText:   claimText,
		Suggestion:  "Quote or paraphrase the source more closely, or cite a more specific passage.",
	}
}

// suggestSources lists the closest passages below the matching bar
func (s *Scorer) suggestSources(text string, pool []model.CandidateSource) string {
	related := s.matcher.FindMatchingSources(text, pool)
	if len(related) == 0 {
		return "Add a source document that supports this claim, or remove the claim."
	}
	if n := s.cfg.MaxSuggestions; n > 0 && len(related) > n {
		related = related[:n]
	}

	names := make([]string, 0, len(related))
	for _, m := range related {
		names = append(names, fmt.Sprintf("%s (%.2f)", m.Source.ChunkID, m.Similarity))
	}
	return "Closest passages: " + strings.Join(names, ", ")
}

func citationID(paragraphID string, claim model.Claim, chunkID string) string {
	name := fmt.Sprintf("%s:%d:%d:%s", paragraphID, claim.Start, claim.End, chunkID)
	return uuid.NewSHA1(citationNamespace, []byte(name)).String()
}

func excerpt(content string) string {
	content = strings.Join(strings.Fields(content), " ")
	if len(content) <= maxExcerptLength {
		return content
	}
	cut := strings.LastIndexByte(content[:maxExcerptLength], ' ')
	if cut <= 0 {
		cut = maxExcerptLength
	}
	return content[:cut] + "..."
}
