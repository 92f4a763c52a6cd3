package model

// IssueType classifies a validation issue
type IssueType string

const (
	IssueMissingSource  IssueType = "missing_source"
	IssueWeakCitation   IssueType = "weak_citation"
	IssueExecutionError IssueType = "execution_error"
)

// Severity indicates how much attention an issue needs
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// ValidationIssue is a structured finding; it never aborts a run
type ValidationIssue struct {
	Type        IssueType `json:"type"`
	Severity    Severity  `json:"severity"`
	Message     string    `json:"message"`
	ParagraphID string    `json:"paragraphId,omitempty"`
	ClaimText   string    `json:"claimText,omitempty"`
	Suggestion  string    `json:"suggestion,omitempty"`
}

// RiskLevel is the document-level hallucination risk classification
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Rank orders risk levels: low < medium < high
func (r RiskLevel) Rank() int {
	switch r {
	case RiskHigh:
		return 2
	case RiskMedium:
		return 1
	default:
		return 0
	}
}

// ParagraphAssessment is one scored paragraph
type ParagraphAssessment struct {
	ParagraphID    string              `json:"paragraph_id"`
	Position       int                 `json:"position"`
	Text           string              `json:"text"`
	Claims         []Claim             `json:"claims"`
	Citations      []ExtractedCitation `json:"citations,omitempty"`
	CitationCount  int                 `json:"citation_count"`
	GroundingScore float64             `json:"grounding_score"` // Derived by the scorer
}

// DocumentAssessment aggregates paragraph assessments
type DocumentAssessment struct {
	Paragraphs        []ParagraphAssessment `json:"paragraphs"`
	OverallScore      float64               `json:"overall_score"`     // Mean paragraph grounding, 0-1
	CitationCoverage  float64               `json:"citation_coverage"` // Percent of paragraphs with a citation, 0-100
	HallucinationRisk RiskLevel             `json:"hallucination_risk"`
	LowGroundingCount int                   `json:"low_grounding_count"`
	Issues            []ValidationIssue     `json:"issues"`
	Suggestions       []string              `json:"suggestions"`
}

// Paragraph is one unit of a draft handed to the scorer
type Paragraph struct {
	ID       string `json:"id"`
	Position int    `json:"position"` // 0-based order in the draft
	Text     string `json:"text"`
	Offset   int    `json:"offset"` // Byte offset of Text within the draft
}
