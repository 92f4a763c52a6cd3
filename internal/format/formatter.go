// Package format renders validated citations for document export.
package format

import (
	"fmt"
	"strings"

	"github.com/ppiankov/groundcheck/internal/model"
)

// Style is a citation style
type Style string

const (
	StyleAPA           Style = "apa"
	StyleGrantStandard Style = "grant_standard"
	StyleDefault       Style = "default"
)

// Kind selects where citations are placed in the exported document
type Kind string

const (
	KindInline       Kind = "inline"
	KindFootnote     Kind = "footnote"
	KindBibliography Kind = "bibliography"
)

// ParseStyle validates a style name
func ParseStyle(s string) (Style, error) {
	switch st := Style(strings.ToLower(strings.TrimSpace(s))); st {
	case StyleAPA, StyleGrantStandard, StyleDefault:
		return st, nil
	case "":
		return StyleDefault, nil
	default:
		return "", fmt.Errorf("unknown citation style %q (want apa, grant_standard or default)", s)
	}
}

// ParseKind validates a format name
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindInline, KindFootnote, KindBibliography:
		return k, nil
	case "":
		return KindInline, nil
	default:
		return "", fmt.Errorf("unknown citation format %q (want inline, footnote or bibliography)", s)
	}
}

// Formatter turns citation metadata into strings. It does no validation.
type Formatter struct {
	defaultYear int
}

// NewFormatter creates a formatter. defaultYear is used for sources without
// a year; callers pass the current year so the formatter stays deterministic.
func NewFormatter(defaultYear int) *Formatter {
	return &Formatter{defaultYear: defaultYear}
}

// Format renders each valid citation. Numbers start at 1 and follow input order.
func (f *Formatter) Format(citations []model.CitationSource, style Style, kind Kind) []model.FormattedCitation {
	out := make([]model.FormattedCitation, 0, len(citations))

	n := 0
	for _, c := range citations {
		if !c.IsValid {
			continue
		}
		n++

		fc := model.FormattedCitation{
			Number:       n,
			CitationID:   c.ID,
			Bibliography: f.bibliography(c, style, n),
		}

		switch kind {
		case KindFootnote:
			fc.Inline = fmt.Sprintf("[^%d]", n)
			fc.Footnote = fmt.Sprintf("[^%d]: %s", n, f.bibliography(c, style, 0))
		default:
			fc.Inline = f.inline(c, style, n)
		}

		out = append(out, fc)
	}

	return out
}

func (f *Formatter) inline(c model.CitationSource, style Style, n int) string {
	switch style {
	case StyleAPA:
		if p := page(c); p != "" {
			return fmt.Sprintf("(%s, %d, %s)", title(c), f.year(c), p)
		}
		return fmt.Sprintf("(%s, %d)", title(c), f.year(c))
	case StyleGrantStandard:
		return fmt.Sprintf("[%d]", n)
	default:
		return fmt.Sprintf("[Source %d]", n)
	}
}

// bibliography renders a reference entry; n == 0 omits the number prefix
func (f *Formatter) bibliography(c model.CitationSource, style Style, n int) string {
	var entry string
	switch style {
	case StyleAPA:
		entry = fmt.Sprintf("%s. (%d).", title(c), f.year(c))
		if c.SectionTitle != "" {
			entry += " " + c.SectionTitle + "."
		}
		if p := page(c); p != "" {
			entry += " " + p + "."
		}
		return entry
	case StyleGrantStandard:
		parts := []string{title(c)}
		if c.SectionTitle != "" {
			parts = append(parts, c.SectionTitle)
		}
		if p := page(c); p != "" {
			parts = append(parts, p)
		}
		entry = fmt.Sprintf("%s (%d).", strings.Join(parts, ", "), f.year(c))
		if n > 0 {
			return fmt.Sprintf("[%d] %s", n, entry)
		}
		return entry
	default:
		entry = title(c)
		if c.SectionTitle != "" {
			entry += ": " + c.SectionTitle
		}
		if p := page(c); p != "" {
			entry += " (" + p + ")"
		}
		if n > 0 {
			return fmt.Sprintf("%d. %s", n, entry)
		}
		return entry
	}
}

func (f *Formatter) year(c model.CitationSource) int {
	if c.Year != nil {
		return *c.Year
	}
	return f.defaultYear
}

func title(c model.CitationSource) string {
	switch {
	case c.DocumentTitle != "":
		return c.DocumentTitle
	case c.DocumentID != "":
		return "Document " + c.DocumentID
	default:
		return "Untitled source"
	}
}

func page(c model.CitationSource) string {
	if c.PageNumber == nil {
		return ""
	}
	return fmt.Sprintf("p. %d", *c.PageNumber)
}

// RenderText joins formatted citations into a block for plain-text export
func RenderText(formatted []model.FormattedCitation, kind Kind) string {
	if len(formatted) == 0 {
		return ""
	}

	var b strings.Builder
	switch kind {
	case KindFootnote:
		for _, fc := range formatted {
			b.WriteString(fc.Footnote)
			b.WriteString("\n")
		}
	case KindBibliography:
		b.WriteString("References\n\n")
		for _, fc := range formatted {
			b.WriteString(fc.Bibliography)
			b.WriteString("\n")
		}
	default:
		for _, fc := range formatted {
			fmt.Fprintf(&b, "%s %s\n", fc.Inline, fc.Bibliography)
		}
	}
	return b.String()
}
