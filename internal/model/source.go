package model

// CandidateSource is one retrievable passage supplied by the retrieval layer.
// The engine only reads it.
type CandidateSource struct {
	ChunkID    string         `json:"chunkId" yaml:"chunkId"`
	DocumentID string         `json:"documentId" yaml:"documentId"`
	Content    string         `json:"content" yaml:"content"`
	Similarity *float64       `json:"similarity,omitempty" yaml:"similarity,omitempty"` // Retrieval score vs. the question; tiebreaker only
	Metadata   SourceMetadata `json:"metadata" yaml:"metadata"`
}

// SourceMetadata carries optional location data used for rendering citations
type SourceMetadata struct {
	PageNumber    *int   `json:"pageNumber,omitempty" yaml:"pageNumber,omitempty"`
	SectionTitle  string `json:"sectionTitle,omitempty" yaml:"sectionTitle,omitempty"`
	ChunkIndex    *int   `json:"chunkIndex,omitempty" yaml:"chunkIndex,omitempty"`
	DocumentTitle string `json:"documentTitle,omitempty" yaml:"documentTitle,omitempty"`
	Year          *int   `json:"year,omitempty" yaml:"year,omitempty"`
}

// SimilarityHint returns the retrieval similarity, or 0 when absent
func (s CandidateSource) SimilarityHint() float64 {
	if s.Similarity == nil {
		return 0
	}
	return *s.Similarity
}

// Title returns a display title for the owning document
func (s CandidateSource) Title() string {
	if s.Metadata.DocumentTitle != "" {
		return s.Metadata.DocumentTitle
	}
	if s.DocumentID != "" {
		return "Document " + s.DocumentID
	}
	return "Untitled source"
}
