package extract

import (
	"strings"
	"testing"

	"github.com/ppiankov/groundcheck/internal/model"
)

func TestClaimExtractor_Classification(t *testing.T) {
	tests := []struct {
		sentence      string
		wantType      model.ClaimType
		wantNeeds     bool
		wantConf      float64
		wantHeuristic string
	}{
		{"Our org served 5,000 people in 2023.", model.ClaimTypeStatistical, true, 0.9, "statistical:count"},
		{"Graduation improved by 12% across the district.", model.ClaimTypeStatistical, true, 0.9, "statistical:percentage"},
		{"We will implement a mentoring curriculum in partner schools.", model.ClaimTypeMethodological, false, 0.6, "methodological:"},
		{"Our evidence-based curriculum raises reading scores.", model.ClaimTypeMethodological, true, 0.6, "methodological:"},
		{"According to the 2022 census, poverty is rising in our county.", model.ClaimTypeFactual, true, 0.8, "authority:according_to"},
		{"We believe every family deserves a safe home.", model.ClaimTypeOpinion, false, 0.4, "opinion:belief"},
		{"The neighborhood has a long history of civic engagement.", model.ClaimTypeFactual, false, 0.7, "factual"},
		{"The graduation rate in the district lags the state.", model.ClaimTypeFactual, true, 0.7, "factual"},
	}

	extractor := NewClaimExtractor(0)
	for _, tt := range tests {
		claims := extractor.Extract(tt.sentence, 0)
		if len(claims) != 1 {
			t.Errorf("%q: expected 1 claim, got %d", tt.sentence, len(claims))
			continue
		}
		c := claims[0]
		if c.Type != tt.wantType {
			t.Errorf("%q: expected type %s, got %s", tt.sentence, tt.wantType, c.Type)
		}
		if c.NeedsCitation != tt.wantNeeds {
			t.Errorf("%q: expected NeedsCitation=%v, got %v", tt.sentence, tt.wantNeeds, c.NeedsCitation)
		}
		if c.Confidence != tt.wantConf {
			t.Errorf("%q: expected confidence %.1f, got %.1f", tt.sentence, tt.wantConf, c.Confidence)
		}
		if !strings.HasPrefix(c.Heuristic, tt.wantHeuristic) {
			t.Errorf("%q: expected heuristic %q, got %q", tt.sentence, tt.wantHeuristic, c.Heuristic)
		}
	}
}

func TestClaimExtractor_Offsets(t *testing.T) {
	text := "Our org served 5,000 people in 2023. We believe in this work."
	claims := NewClaimExtractor(0).Extract(text, 100)

	if len(claims) != 2 {
		t.Fatalf("Expected 2 claims, got %d", len(claims))
	}
	if claims[0].Start != 100 {
		t.Errorf("Expected first claim at 100, got %d", claims[0].Start)
	}
	if got := text[claims[1].Start-100 : claims[1].End-100]; got != claims[1].Text {
		t.Errorf("Expected offsets to cover %q, got %q", claims[1].Text, got)
	}
}

func TestClaimExtractor_DropsShortFragments(t *testing.T) {
	claims := NewClaimExtractor(0).Extract("Yes. Ok. This sentence is long enough to count.", 0)
	if len(claims) != 1 {
		t.Fatalf("Expected 1 claim, got %d", len(claims))
	}
	if claims[0].Text != "This sentence is long enough to count." {
		t.Errorf("Unexpected claim text %q", claims[0].Text)
	}
}

func TestClaimExtractor_Empty(t *testing.T) {
	if claims := NewClaimExtractor(0).Extract("   ", 0); len(claims) != 0 {
		t.Errorf("Expected no claims for blank text, got %d", len(claims))
	}
}

func TestRequiringCitation(t *testing.T) {
	claims := NewClaimExtractor(0).Extract(
		"Our org served 5,000 people in 2023. We believe in this work. Our clinic cut wait times by 40%.", 0)

	needing := RequiringCitation(claims)
	if len(needing) != 2 {
		t.Fatalf("Expected 2 claims needing citation, got %d", len(needing))
	}
	for _, c := range needing {
		if !c.NeedsCitation {
			t.Errorf("Claim %q should need a citation", c.Text)
		}
	}
}
