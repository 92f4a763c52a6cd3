// Demo program that runs representative drafts through the grounding engine
// and prints what it finds
package main

import (
	"fmt"
	"strings"

	"github.com/ppiankov/groundcheck/internal/format"
	"github.com/ppiankov/groundcheck/internal/model"
	"github.com/ppiankov/groundcheck/internal/score"
)

type scenario struct {
	name  string
	draft string
	pool  []model.CandidateSource
}

func main() {
	fmt.Println("=== Grounding Scenarios ===")
	fmt.Println()

	page := 12
	year := 2023
	impact := model.CandidateSource{
		ChunkID:    "impact-2023-p12",
		DocumentID: "impact-2023",
		Content:    "We served 5,000 people in 2023 (Impact Report).",
		Metadata: model.SourceMetadata{
			DocumentTitle: "2023 Impact Report",
			PageNumber:    &page,
			Year:          &year,
		},
	}

	scenarios := []scenario{
		{
			name:  "Statistic backed by a source",
			draft: "Our org served 5,000 people in 2023.",
			pool:  []model.CandidateSource{impact},
		},
		{
			name:  "Statistic with no source",
			draft: "Our clinic reduced emergency visits by 40% last year.",
			pool:  []model.CandidateSource{impact},
		},
		{
			name: "Mixed paragraphs",
			draft: strings.Join([]string{
				"Our org served 5,000 people in 2023 [1].",
				"We believe every family deserves a safe place to live.",
				"Enrollment rose 18% after the pilot.",
				"Our team brings years of community experience.",
			}, "\n\n"),
			pool: []model.CandidateSource{impact},
		},
	}

	scorer := score.NewScorer(model.DefaultScoringConfig())
	formatter := format.NewFormatter(year)

	for _, sc := range scenarios {
		fmt.Printf("Scenario: %s\n", sc.name)
		fmt.Println(strings.Repeat("-", 60))

		doc := scorer.ParseContent(sc.draft, sc.pool)
		fmt.Printf("  Grounding: %.2f  Coverage: %.0f%%  Risk: %s\n",
			doc.OverallScore, doc.CitationCoverage, doc.HallucinationRisk)

		var citations []model.CitationSource
		for _, p := range doc.Paragraphs {
			resp := scorer.GenerateCitationsForParagraph(model.ValidationRequest{
				Text:        p.Text,
				ParagraphID: p.ParagraphID,
				Position:    p.Position,
			}, sc.pool)
			citations = append(citations, resp.Citations...)

			for _, c := range resp.Citations {
				if c.IsValid {
					fmt.Printf("  ✓ %q -> %s (%.2f, %s)\n", c.ClaimText, c.ChunkID, c.Similarity, c.Method)
				} else {
					fmt.Printf("  ✗ %q has no supporting passage\n", c.ClaimText)
				}
			}
		}

		if text := format.RenderText(formatter.Format(citations, format.StyleAPA, format.KindBibliography), format.KindBibliography); text != "" {
			fmt.Println()
			for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
				fmt.Printf("  %s\n", line)
			}
		}

		fmt.Println()
	}

	fmt.Println("=== Demo Complete ===")
	fmt.Println("\nNote: similarity is lexical token overlap, not a semantic judgment.")
}
