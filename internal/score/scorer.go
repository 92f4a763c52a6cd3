package score

import (
	"fmt"

	"github.com/ppiankov/groundcheck/internal/draft"
	"github.com/ppiankov/groundcheck/internal/extract"
	"github.com/ppiankov/groundcheck/internal/match"
	"github.com/ppiankov/groundcheck/internal/model"
)

// Scorer computes grounding scores for drafts against a candidate pool.
// It is stateless after construction; one instance may serve concurrent calls.
type Scorer struct {
	cfg       model.ScoringConfig
	claims    *extract.ClaimExtractor
	citations *extract.CitationExtractor
	matcher   *match.Matcher
}

// Option customizes a Scorer
type Option func(*options)

type options struct {
	similarity match.SimilarityFn
}

// WithSimilarity replaces the Jaccard similarity function
func WithSimilarity(fn match.SimilarityFn) Option {
	return func(o *options) {
		o.similarity = fn
	}
}

// NewScorer creates a scorer with the given policy constants. Zero fields take defaults.
func NewScorer(cfg model.ScoringConfig, opts ...Option) *Scorer {
	cfg = cfg.WithDefaults()
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	return &Scorer{
		cfg:       cfg,
		claims:    extract.NewClaimExtractor(cfg.MinSentenceLength),
		citations: extract.NewCitationExtractor(),
		matcher:   match.NewMatcher(o.similarity, cfg.SuggestionThreshold),
	}
}

// Config returns the scoring policy in use
func (s *Scorer) Config() model.ScoringConfig {
	return s.cfg
}

// Matcher returns the source matcher in use
func (s *Scorer) Matcher() *match.Matcher {
	return s.matcher
}

// ParseContent splits a draft into paragraphs and assesses it
func (s *Scorer) ParseContent(text string, pool []model.CandidateSource) model.DocumentAssessment {
	return s.Assess(draft.Parse(text, draft.FormatAuto), pool)
}

// Assess scores each paragraph and aggregates the document
func (s *Scorer) Assess(paragraphs []model.Paragraph, pool []model.CandidateSource) model.DocumentAssessment {
	assessed := make([]model.ParagraphAssessment, 0, len(paragraphs))
	var issues []model.ValidationIssue

	for _, p := range paragraphs {
		pa, paragraphIssues := s.assessParagraph(p, pool)
		assessed = append(assessed, pa)
		issues = append(issues, paragraphIssues...)
	}

	return s.aggregate(assessed, issues)
}

func (s *Scorer) assessParagraph(p model.Paragraph, pool []model.CandidateSource) (model.ParagraphAssessment, []model.ValidationIssue) {
	claims := s.claims.Extract(p.Text, p.Offset)
	citations := s.citations.Extract(p.Text, p.ID, p.Offset)

	var issues []model.ValidationIssue
	for i := range citations {
		citations[i].Validation = s.ValidateCitation(citations[i], pool)
		issues = append(issues, citations[i].Validation.Issues...)
	}

	return model.ParagraphAssessment{
		ParagraphID:    p.ID,
		Position:       p.Position,
		Text:           p.Text,
		Claims:         claims,
		Citations:      citations,
		CitationCount:  len(citations),
		GroundingScore: s.ScoreParagraph(claims, citations),
	}, issues
}

// ScoreParagraph returns the fraction of citation-requiring claims that have
// a citation within the proximity window. No such claims scores 1.0.
func (s *Scorer) ScoreParagraph(claims []model.Claim, citations []model.ExtractedCitation) float64 {
	needing := 0
	covered := 0

	for _, c := range claims {
		if !c.NeedsCitation {
			continue
		}
		needing++
		if s.isCovered(c, citations) {
			covered++
		}
	}

	if needing == 0 {
		return 1.0
	}
	return float64(covered) / float64(needing)
}

func (s *Scorer) isCovered(claim model.Claim, citations []model.ExtractedCitation) bool {
	lo := claim.Start - s.cfg.ProximityWindow
	hi := claim.End + s.cfg.ProximityWindow
	for _, c := range citations {
		if c.Start < hi && c.End > lo {
			return true
		}
	}
	return false
}

// aggregate computes the document-level scores and issues
func (s *Scorer) aggregate(paragraphs []model.ParagraphAssessment, issues []model.ValidationIssue) model.DocumentAssessment {
	doc := model.DocumentAssessment{
		Paragraphs:        paragraphs,
		OverallScore:      1.0,
		CitationCoverage:  100,
		HallucinationRisk: model.RiskLow,
		Issues:            issues,
	}

	if len(paragraphs) > 0 {
		total := 0.0
		withCitation := 0
		for _, p := range paragraphs {
			total += p.GroundingScore
			if p.CitationCount > 0 {
				withCitation++
			}
			if p.GroundingScore < s.cfg.LowGroundingCutoff {
				doc.LowGroundingCount++
			}
		}
		n := float64(len(paragraphs))
		doc.OverallScore = clamp01(total / n)
		doc.CitationCoverage = float64(withCitation) / n * 100
		doc.HallucinationRisk = ClassifyRisk(doc.LowGroundingCount, len(paragraphs), s.cfg)
	}

	for _, p := range paragraphs {
		if p.GroundingScore < s.cfg.LowGroundingCutoff {
			doc.Suggestions = append(doc.Suggestions, fmt.Sprintf(
				"Paragraph %d (%s) is weakly grounded (%.2f): cite a source next to each statistical or data-bearing claim.",
				p.Position+1, p.ParagraphID, p.GroundingScore))
		}
	}

	if doc.OverallScore < s.cfg.WeakOverallScore {
		doc.Issues = append(doc.Issues, model.ValidationIssue{
			Type:     model.IssueWeakCitation,
			Severity: model.SeverityHigh,
			Message:  fmt.Sprintf("Overall grounding score %.2f is below %.2f", doc.OverallScore, s.cfg.WeakOverallScore),
		})
		doc.Suggestions = append(doc.Suggestions,
			"Strengthen the evidence: tie each factual and statistical claim to a specific passage from your source documents.")
	}

	if doc.CitationCoverage < s.cfg.MinCitationCoverage {
		doc.Issues = append(doc.Issues, model.ValidationIssue{
			Type:     model.IssueMissingSource,
			Severity: model.SeverityMedium,
			Message:  fmt.Sprintf("Only %.0f%% of paragraphs contain a citation (minimum %.0f%%)", doc.CitationCoverage, s.cfg.MinCitationCoverage),
		})
		doc.Suggestions = append(doc.Suggestions,
			"Add citations to paragraphs that make claims without referencing a source.")
	}

	if doc.Issues == nil {
		doc.Issues = []model.ValidationIssue{}
	}
	if doc.Suggestions == nil {
		doc.Suggestions = []string{}
	}
	if doc.Paragraphs == nil {
		doc.Paragraphs = []model.ParagraphAssessment{}
	}

	return doc
}

// ClassifyRisk maps the share of low-grounding paragraphs to a risk level.
// Ratios at or above a bar fall into that bar's level.
func ClassifyRisk(lowCount, total int, cfg model.ScoringConfig) model.RiskLevel {
	if total == 0 || lowCount == 0 {
		return model.RiskLow
	}

	ratio := float64(lowCount) / float64(total)
	switch {
	case ratio >= cfg.HighRiskRatio:
		return model.RiskHigh
	case ratio >= cfg.MediumRiskRatio:
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
