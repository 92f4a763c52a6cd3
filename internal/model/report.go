package model

import "time"

// Report is the complete output of a groundcheck run over one draft
type Report struct {
	Subject          string             `json:"subject"`      // Draft name, usually the file name
	GeneratedAt      time.Time          `json:"generated_at"` // Set by the pipeline, not the engine
	Assessment       DocumentAssessment `json:"assessment"`
	Citations        []CitationSource   `json:"citations"` // Generated per citation-requiring claim
	GroundingQuality float64            `json:"grounding_quality"`
	Issues           []ValidationIssue  `json:"issues"` // Issues from citation generation
	SourceCount      int                `json:"source_count"`
}

// ValidCitations returns the generated citations that matched a source
func (r *Report) ValidCitations() []CitationSource {
	var valid []CitationSource
	for _, c := range r.Citations {
		if c.IsValid {
			valid = append(valid, c)
		}
	}
	return valid
}
