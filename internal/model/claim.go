package model

// Claim is a classified sentence within a paragraph
type Claim struct {
	Text          string    `json:"text"`
	Start         int       `json:"start"` // Byte offset, inclusive
	End           int       `json:"end"`   // Byte offset, exclusive
	Type          ClaimType `json:"type"`
	Confidence    float64   `json:"confidence"`
	NeedsCitation bool      `json:"needs_citation"`
	Heuristic     string    `json:"heuristic,omitempty"` // Which pattern classified it (e.g., "statistical:percentage")
}

// ClaimType categorizes the evidentiary nature of a claim
type ClaimType string

const (
	ClaimTypeFactual        ClaimType = "factual"
	ClaimTypeStatistical    ClaimType = "statistical"
	ClaimTypeMethodological ClaimType = "methodological"
	ClaimTypeOpinion        ClaimType = "opinion"
)
