package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/groundcheck/internal/model"
)

func texts(paragraphs []model.Paragraph) []string {
	out := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		out = append(out, p.Text)
	}
	return out
}

func assertOffsets(t *testing.T, source string, paragraphs []model.Paragraph) {
	t.Helper()
	for i, p := range paragraphs {
		assert.Equal(t, i, p.Position)
		require.LessOrEqual(t, p.Offset+len(p.Text), len(source))
		assert.Equal(t, p.Text, source[p.Offset:p.Offset+len(p.Text)], p.ID)
	}
}

func TestParse_Text(t *testing.T) {
	text := "  First line\ncontinues here.\n\n\nSecond para.\n"
	paragraphs := Parse(text, FormatText)

	require.Len(t, paragraphs, 2)
	assert.Equal(t, []string{"First line\ncontinues here.", "Second para."}, texts(paragraphs))
	assert.Equal(t, "p1", paragraphs[0].ID)
	assert.Equal(t, "p2", paragraphs[1].ID)
	assert.Equal(t, 2, paragraphs[0].Offset)
	assertOffsets(t, text, paragraphs)
}

func TestParse_CRLF(t *testing.T) {
	paragraphs := Parse("One paragraph.\r\n\r\nAnother one.", FormatText)
	assert.Equal(t, []string{"One paragraph.", "Another one."}, texts(paragraphs))
}

func TestParse_Markdown(t *testing.T) {
	text := "# Title\n\nBody paragraph here.\n\n---\n\n## Needs\n- bullet item text"
	paragraphs := Parse(text, FormatAuto)

	assert.Equal(t, []string{"Body paragraph here.", "- bullet item text"}, texts(paragraphs))
	assertOffsets(t, text, paragraphs)
}

func TestParse_TextKeepsHashLines(t *testing.T) {
	paragraphs := Parse("# not a heading here\n\nBody.", FormatText)
	assert.Len(t, paragraphs, 2)
}

func TestParse_HTML(t *testing.T) {
	content := `<html><body><h1>Title</h1><p>First <b>bold</b> para.</p><script>x()</script>` +
		`<ul><li>Item one</li></ul><div>Loose text</div></body></html>`
	paragraphs := Parse(content, FormatAuto)

	require.Len(t, paragraphs, 3)
	assert.Equal(t, []string{"First bold para.", "Item one", "Loose text"}, texts(paragraphs))
	assert.Equal(t, 0, paragraphs[0].Offset)
	assert.Equal(t, 18, paragraphs[1].Offset)
	assert.Equal(t, 28, paragraphs[2].Offset)
}

func TestParse_Empty(t *testing.T) {
	assert.Empty(t, Parse("", FormatAuto))
	assert.Empty(t, Parse("\n\n   \n", FormatText))
}

func TestDetect(t *testing.T) {
	assert.Equal(t, FormatHTML, Detect("<p>Hello</p>"))
	assert.Equal(t, FormatMarkdown, Detect("intro\n## Heading\nbody"))
	assert.Equal(t, FormatText, Detect("plain text with 5 < 6 inside"))
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"":         FormatAuto,
		"auto":     FormatAuto,
		"TEXT":     FormatText,
		"txt":      FormatText,
		"md":       FormatMarkdown,
		"markdown": FormatMarkdown,
		"html":     FormatHTML,
	} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("docx")
	assert.Error(t, err)
}
