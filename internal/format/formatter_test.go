package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/groundcheck/internal/model"
)

func intPtr(v int) *int { return &v }

func impactCitation() model.CitationSource {
	return model.CitationSource{
		ID:            "c1",
		DocumentID:    "impact-report",
		DocumentTitle: "Impact Report",
		SectionTitle:  "Outcomes",
		PageNumber:    intPtr(4),
		Year:          intPtr(2023),
		IsValid:       true,
	}
}

func TestFormat_Styles(t *testing.T) {
	f := NewFormatter(2024)
	c := impactCitation()

	tests := []struct {
		style        Style
		inline       string
		bibliography string
	}{
		{StyleAPA, "(Impact Report, 2023, p. 4)", "Impact Report. (2023). Outcomes. p. 4."},
		{StyleGrantStandard, "[1]", "[1] Impact Report, Outcomes, p. 4 (2023)."},
		{StyleDefault, "[Source 1]", "1. Impact Report: Outcomes (p. 4)"},
	}

	for _, tt := range tests {
		t.Run(string(tt.style), func(t *testing.T) {
			out := f.Format([]model.CitationSource{c}, tt.style, KindInline)
			require.Len(t, out, 1)
			assert.Equal(t, 1, out[0].Number)
			assert.Equal(t, "c1", out[0].CitationID)
			assert.Equal(t, tt.inline, out[0].Inline)
			assert.Equal(t, tt.bibliography, out[0].Bibliography)
			assert.Empty(t, out[0].Footnote)
		})
	}
}

func TestFormat_SkipsInvalidAndNumbersInOrder(t *testing.T) {
	f := NewFormatter(2024)

	first := impactCitation()
	invalid := impactCitation()
	invalid.ID = "bad"
	invalid.IsValid = false
	second := impactCitation()
	second.ID = "c2"

	out := f.Format([]model.CitationSource{first, invalid, second}, StyleGrantStandard, KindInline)

	require.Len(t, out, 2)
	assert.Equal(t, "c1", out[0].CitationID)
	assert.Equal(t, "c2", out[1].CitationID)
	assert.Equal(t, "[2]", out[1].Inline)
	assert.Equal(t, 2, out[1].Number)
}

func TestFormat_Footnote(t *testing.T) {
	out := NewFormatter(2024).Format([]model.CitationSource{impactCitation()}, StyleGrantStandard, KindFootnote)

	require.Len(t, out, 1)
	assert.Equal(t, "[^1]", out[0].Inline)
	assert.Equal(t, "[^1]: Impact Report, Outcomes, p. 4 (2023).", out[0].Footnote)
	assert.Equal(t, "[1] Impact Report, Outcomes, p. 4 (2023).", out[0].Bibliography)
}

func TestFormat_MissingMetadata(t *testing.T) {
	f := NewFormatter(2024)

	out := f.Format([]model.CitationSource{{ID: "c1", DocumentID: "notes", IsValid: true}}, StyleAPA, KindInline)
	require.Len(t, out, 1)
	assert.Equal(t, "(Document notes, 2024)", out[0].Inline)
	assert.Equal(t, "Document notes. (2024).", out[0].Bibliography)

	out = f.Format([]model.CitationSource{{ID: "c2", IsValid: true}}, StyleDefault, KindInline)
	assert.Equal(t, "1. Untitled source", out[0].Bibliography)
}

func TestFormat_Empty(t *testing.T) {
	out := NewFormatter(2024).Format(nil, StyleAPA, KindInline)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestRenderText(t *testing.T) {
	f := NewFormatter(2024)
	cites := []model.CitationSource{impactCitation()}

	bib := RenderText(f.Format(cites, StyleGrantStandard, KindBibliography), KindBibliography)
	assert.Equal(t, "References\n\n[1] Impact Report, Outcomes, p. 4 (2023).\n", bib)

	notes := RenderText(f.Format(cites, StyleGrantStandard, KindFootnote), KindFootnote)
	assert.Equal(t, "[^1]: Impact Report, Outcomes, p. 4 (2023).\n", notes)

	inline := RenderText(f.Format(cites, StyleDefault, KindInline), KindInline)
	assert.Equal(t, "[Source 1] 1. Impact Report: Outcomes (p. 4)\n", inline)

	assert.Equal(t, "", RenderText(nil, KindBibliography))
}

func TestParseStyle(t *testing.T) {
	for in, want := range map[string]Style{
		"apa":            StyleAPA,
		" APA ":          StyleAPA,
		"grant_standard": StyleGrantStandard,
		"default":        StyleDefault,
		"":               StyleDefault,
	} {
		got, err := ParseStyle(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseStyle("mla")
	assert.Error(t, err)
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{
		"inline":       KindInline,
		"Footnote":     KindFootnote,
		"bibliography": KindBibliography,
		"":             KindInline,
	} {
		got, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseKind("endnote")
	assert.Error(t, err)
}
