// Package draft splits a generated answer into ordered paragraphs.
package draft

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/ppiankov/groundcheck/internal/model"
)

// Format is the markup of a draft
type Format string

const (
	FormatAuto     Format = "auto"
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

var (
	htmlTag         = regexp.MustCompile(`(?i)<(?:p|div|li|br|h[1-6]|ul|ol|body|html|section|article)[\s>/]`)
	markdownHeading = regexp.MustCompile(`^#{1,6}\s`)
	markdownRule    = regexp.MustCompile(`^(?:-{3,}|\*{3,}|_{3,})$`)
)

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatAuto, FormatText, FormatMarkdown, FormatHTML:
		return f, nil
	case "":
		return FormatAuto, nil
	case "md":
		return FormatMarkdown, nil
	case "txt":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown draft format %q (want auto, text, markdown or html)", s)
	}
}

// Detect guesses the format of a draft
func Detect(text string) Format {
	if htmlTag.MatchString(text) {
		return FormatHTML
	}
	for _, line := range strings.Split(text, "\n") {
		if markdownHeading.MatchString(strings.TrimSpace(line)) {
			return FormatMarkdown
		}
	}
	return FormatText
}

// Parse splits text into paragraphs. It never fails: unparsable HTML falls
// back to plain text and empty input yields no paragraphs.
func Parse(text string, format Format) []model.Paragraph {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if format == FormatAuto || format == "" {
		format = Detect(text)
	}

	switch format {
	case FormatHTML:
		blocks, err := htmlBlocks(text)
		if err != nil {
			return splitBlankLines(text, false)
		}
		return joinBlocks(blocks)
	case FormatMarkdown:
		return splitBlankLines(text, true)
	default:
		return splitBlankLines(text, false)
	}
}

// splitBlankLines treats blank-line separated runs as paragraphs; offsets
// refer to text. Markdown headings and rules are structure, not prose, and
// are skipped.
func splitBlankLines(text string, markdown bool) []model.Paragraph {
	var paragraphs []model.Paragraph
	start := -1
	end := 0

	flush := func() {
		if start < 0 {
			return
		}
		body := text[start:end]
		if trimmed := strings.TrimSpace(body); trimmed != "" {
			lead := strings.Index(body, trimmed)
			paragraphs = append(paragraphs, model.Paragraph{
				ID:       fmt.Sprintf("p%d", len(paragraphs)+1),
				Position: len(paragraphs),
				Text:     trimmed,
				Offset:   start + lead,
			})
		}
		start = -1
	}

	offset := 0
	for _, line := range strings.SplitAfter(text, "\n") {
		lineStart := offset
		offset += len(line)
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			flush()
			continue
		}
		if markdown && (markdownHeading.MatchString(trimmed) || markdownRule.MatchString(trimmed)) {
			flush()
			continue
		}
		if start < 0 {
			start = lineStart
		}
		end = lineStart + len(strings.TrimRight(line, "\n"))
	}
	flush()

	return paragraphs
}

// joinBlocks lays extracted blocks out as a blank-line separated document
func joinBlocks(blocks []string) []model.Paragraph {
	var paragraphs []model.Paragraph
	offset := 0
	for _, b := range blocks {
		paragraphs = append(paragraphs, model.Paragraph{
			ID:       fmt.Sprintf("p%d", len(paragraphs)+1),
			Position: len(paragraphs),
			Text:     b,
			Offset:   offset,
		})
		offset += len(b) + 2
	}
	return paragraphs
}

var (
	skipElements = map[string]bool{
		"script": true, "style": true, "noscript": true, "iframe": true,
		"head": true, "title": true, "nav": true, "footer": true,
		"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	}
	blockElements = map[string]bool{
		"p": true, "li": true, "blockquote": true, "dd": true, "dt": true,
		"td": true, "th": true, "pre": true, "figcaption": true,
	}
	containerElements = map[string]bool{
		"html": true, "body": true, "div": true, "section": true, "article": true,
		"main": true, "ul": true, "ol": true, "dl": true, "table": true,
		"thead": true, "tbody": true, "tr": true, "header": true, "aside": true,
	}
)

// htmlBlocks extracts the visible text of block elements in document order
func htmlBlocks(content string) ([]string, error) {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return nil, err
	}

	var blocks []string
	var walk func(*html.Node)

	addBlock := func(text string) {
		if text = collapse(text); text != "" {
			blocks = append(blocks, text)
		}
	}

	walk = func(n *html.Node) {
		var inline strings.Builder
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				switch {
				case skipElements[c.Data]:
					addBlock(inline.String())
					inline.Reset()
					continue
				case blockElements[c.Data]:
					addBlock(inline.String())
					inline.Reset()
					addBlock(visibleText(c))
					continue
				case containerElements[c.Data]:
					addBlock(inline.String())
					inline.Reset()
					walk(c)
					continue
				}
			}
			if c.Type == html.DocumentNode {
				walk(c)
				continue
			}
			inline.WriteString(visibleText(c))
		}
		addBlock(inline.String())
	}

	walk(doc)
	return blocks, nil
}

// visibleText concatenates text nodes, skipping scripts and styles
func visibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			case "br":
				buf.WriteString(" ")
			}
		}
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return buf.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
