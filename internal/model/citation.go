package model

// CitationKind classifies a citation marker found in text
type CitationKind string

const (
	CitationKindInline    CitationKind = "inline"    // Parenthetical with a year, e.g. (Smith, 2020)
	CitationKindImplicit  CitationKind = "implicit"  // (see ...), as noted in ..., bracketed names
	CitationKindNumerical CitationKind = "numerical" // [1], [2, 3]
)

// ExtractedCitation is a citation marker already present in a draft
type ExtractedCitation struct {
	ParagraphID string             `json:"paragraph_id"`
	ClaimText   string             `json:"claim_text"` // Sentence containing the marker
	Raw         string             `json:"raw"`
	Kind        CitationKind       `json:"kind"`
	Start       int                `json:"start"`
	End         int                `json:"end"`
	Validation  CitationValidation `json:"validation"`
}

// CitationValidation holds the outcome of matching a citation against the pool
type CitationValidation struct {
	IsValid        bool              `json:"is_valid"`
	Confidence     float64           `json:"confidence"`
	Issues         []ValidationIssue `json:"issues,omitempty"`
	MatchedChunkID string            `json:"matched_chunk_id,omitempty"`
	Similarity     float64           `json:"similarity,omitempty"`
}

// MatchMethod records how a claim was tied to a source
type MatchMethod string

const (
	MethodVerbatim MatchMethod = "verbatim" // Source contains the claim text
	MethodLexical  MatchMethod = "lexical"  // Token overlap above threshold
	MethodNone     MatchMethod = "none"     // No source found
)

// CitationSource is a citation generated for a claim from the candidate pool
type CitationSource struct {
	ID            string      `json:"id"`
	ParagraphID   string      `json:"paragraphId"`
	ClaimText     string      `json:"claimText"`
	ChunkID       string      `json:"chunkId,omitempty"`
	DocumentID    string      `json:"documentId,omitempty"`
	DocumentTitle string      `json:"documentTitle,omitempty"`
	Excerpt       string      `json:"excerpt,omitempty"`
	PageNumber    *int        `json:"pageNumber,omitempty"`
	SectionTitle  string      `json:"sectionTitle,omitempty"`
	ChunkIndex    *int        `json:"chunkIndex,omitempty"`
	Year          *int        `json:"year,omitempty"`
	Similarity    float64     `json:"similarity"`
	Method        MatchMethod `json:"method"`
	IsValid       bool        `json:"isValid"`
	Confidence    float64     `json:"confidence"`
}

// ValidationRequest asks for citations covering one paragraph
type ValidationRequest struct {
	Text              string   `json:"text"`
	ParagraphID       string   `json:"paragraphId"`
	Position          int      `json:"position"`
	MinimumSimilarity *float64 `json:"minimumSimilarity,omitempty"`
}

// ValidationResponse is the result of a ValidationRequest
type ValidationResponse struct {
	Citations        []CitationSource  `json:"citations"`
	GroundingQuality float64           `json:"groundingQuality"`
	ValidationIssues []ValidationIssue `json:"validationIssues"`
}

// FormattedCitation is an export-ready rendering of one citation
type FormattedCitation struct {
	Number       int    `json:"number"` // 1-based
	CitationID   string `json:"citationId"`
	Inline       string `json:"inline"`
	Bibliography string `json:"bibliography"`
	Footnote     string `json:"footnote,omitempty"`
}
