package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ppiankov/groundcheck/internal/model"
)

const banner = "═══════════════════════════════════════════════════════════"

// Renderer writes reports as JSON, Markdown and terminal summaries
type Renderer struct {
	includeFooter bool
	out           io.Writer // Summaries
	progress      io.Writer // Progress lines
}

// NewRenderer creates a renderer that prints summaries to stdout and
// progress to stderr
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{
		includeFooter: includeFooter,
		out:           os.Stdout,
		progress:      os.Stderr,
	}
}

// Progress prints a progress line
func (r *Renderer) Progress(format string, a ...any) {
	_, _ = fmt.Fprintf(r.progress, format, a...)
}

// RenderJSON writes v as indented JSON
func (r *Renderer) RenderJSON(v any, path string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderMarkdown writes the Markdown report to path
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	if err := os.WriteFile(path, []byte(r.Markdown(report)), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Markdown renders a report as a Markdown document
func (r *Renderer) Markdown(report *model.Report) string {
	var b strings.Builder
	a := report.Assessment

	fmt.Fprintf(&b, "# Grounding Report: %s\n\n", report.Subject)
	if !report.GeneratedAt.IsZero() {
		fmt.Fprintf(&b, "_Generated %s_\n\n", report.GeneratedAt.Format("2006-01-02 15:04 MST"))
	}

	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Overall grounding | %.2f |\n", a.OverallScore)
	fmt.Fprintf(&b, "| Citation coverage | %.0f%% |\n", a.CitationCoverage)
	fmt.Fprintf(&b, "| Hallucination risk | %s |\n", a.HallucinationRisk)
	fmt.Fprintf(&b, "| Weakly grounded paragraphs | %d of %d |\n", a.LowGroundingCount, len(a.Paragraphs))
	fmt.Fprintf(&b, "| Sourced claims | %d of %d |\n", len(report.ValidCitations()), len(report.Citations))
	fmt.Fprintf(&b, "| Candidate sources | %d |\n\n", report.SourceCount)

	issues := append(append([]model.ValidationIssue{}, a.Issues...), report.Issues...)
	if len(issues) > 0 {
		b.WriteString("## Issues\n\n")
		for _, issue := range issues {
			fmt.Fprintf(&b, "- **%s** `%s`", strings.ToUpper(string(issue.Severity)), issue.Type)
			if issue.ParagraphID != "" {
				fmt.Fprintf(&b, " (%s)", issue.ParagraphID)
			}
			fmt.Fprintf(&b, ": %s\n", issue.Message)
			if issue.ClaimText != "" {
				fmt.Fprintf(&b, "  - Claim: %q\n", issue.ClaimText)
			}
			if issue.Suggestion != "" {
				fmt.Fprintf(&b, "  - Suggestion: %s\n", issue.Suggestion)
			}
		}
		b.WriteString("\n")
	}

	if len(a.Suggestions) > 0 {
		b.WriteString("## Suggestions\n\n")
		for _, s := range a.Suggestions {
			fmt.Fprintf(&b, "- %s\n", s)
		}
		b.WriteString("\n")
	}

	if len(a.Paragraphs) > 0 {
		b.WriteString("## Paragraphs\n\n")
		b.WriteString("| Paragraph | Grounding | Claims | Needing citation | Citations |\n|---|---|---|---|---|\n")
		for _, p := range a.Paragraphs {
			needing := 0
			for _, c := range p.Claims {
				if c.NeedsCitation {
					needing++
				}
			}
			fmt.Fprintf(&b, "| %s | %.2f | %d | %d | %d |\n", p.ParagraphID, p.GroundingScore, len(p.Claims), needing, p.CitationCount)
		}
		b.WriteString("\n")
	}

	if len(report.Citations) > 0 {
		b.WriteString("## Sources by Claim\n\n")
		for _, c := range report.Citations {
			if !c.IsValid {
				fmt.Fprintf(&b, "- ✗ %q: no supporting source\n", c.ClaimText)
				continue
			}
			fmt.Fprintf(&b, "- ✓ %q: %s, chunk `%s` (%s, similarity %.2f)\n", c.ClaimText, c.DocumentTitle, c.ChunkID, c.Method, c.Similarity)
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\n")
		b.WriteString("_Generated by groundcheck. Scores measure lexical overlap between claims and the supplied sources; they are not judgments of truth._\n")
	}

	return b.String()
}

// RenderSummary prints a terminal summary of a report
func (r *Renderer) RenderSummary(report *model.Report) {
	a := report.Assessment
	w := r.out

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, banner)
	_, _ = fmt.Fprintf(w, "  %s\n", report.Subject)
	_, _ = fmt.Fprintln(w, banner)
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "  Grounding:   %.2f\n", a.OverallScore)
	_, _ = fmt.Fprintf(w, "  Coverage:    %.0f%%\n", a.CitationCoverage)
	_, _ = fmt.Fprintf(w, "  Risk:        %s\n", a.HallucinationRisk)
	_, _ = fmt.Fprintf(w, "  Sourced:     %d/%d claims\n", len(report.ValidCitations()), len(report.Citations))
	_, _ = fmt.Fprintf(w, "  Issues:      %d\n", len(a.Issues)+len(report.Issues))
	_, _ = fmt.Fprintln(w)
}

// RenderSuiteSummary prints a terminal summary of a suite run
func (r *Renderer) RenderSuiteSummary(res model.SuiteResult) {
	w := r.out

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, banner)
	_, _ = fmt.Fprintf(w, "  Quality Suite: %s\n", res.Name)
	_, _ = fmt.Fprintln(w, banner)
	_, _ = fmt.Fprintln(w)

	for _, t := range res.Results {
		mark := "✓"
		switch {
		case t.Errored:
			mark = "!"
		case !t.Passed:
			mark = "✗"
		}
		_, _ = fmt.Fprintf(w, "  %s %-24s %-14s %.2f (threshold %.2f)\n", mark, t.TestID, t.Type, t.Score, t.Threshold)
	}
	_, _ = fmt.Fprintln(w)

	for _, m := range res.Summary.Metrics {
		status := "met"
		if !m.Met {
			status = "MISSED"
		}
		_, _ = fmt.Fprintf(w, "  %-14s avg %.2f  threshold %.2f  %s\n", m.Type, m.Average, m.Threshold, status)
	}

	s := res.Summary
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "  Total: %d  Passed: %d  Failed: %d  Errored: %d  Pass rate: %.0f%%\n",
		s.Total, s.Passed, s.Failed, s.Errored, s.PassRate*100)

	if len(res.Recommendations) > 0 {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, "  Recommendations:")
		for _, rec := range res.Recommendations {
			_, _ = fmt.Fprintf(w, "    - %s\n", rec)
		}
	}
	_, _ = fmt.Fprintln(w)
}
