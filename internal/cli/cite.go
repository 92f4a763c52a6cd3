package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ppiankov/groundcheck/internal/format"
	"github.com/ppiankov/groundcheck/internal/pipeline"
)

var (
	citeStyle  string
	citeFormat string
	citeOut    string
	citeJSON   string
)

// citeCmd represents the cite command
var citeCmd = &cobra.Command{
	Use:   "cite <draft>",
	Short: "Generate export-ready citations for a draft",
	Long: `Cite finds a supporting passage for every claim in the draft that needs
one and renders the matches as inline markers, footnotes or a
bibliography. Claims without a supporting passage are reported, never
rendered.

Example:
  groundcheck cite answer.md --sources pool.yaml
  groundcheck cite answer.md --sources pool.yaml --style apa --format bibliography
  groundcheck cite answer.md --sources pool.yaml --format footnote --out notes.md`,
	Args: cobra.ExactArgs(1),
	RunE: runCite,
}

func init() {
	rootCmd.AddCommand(citeCmd)

	citeCmd.Flags().StringVarP(&sourcesPath, "sources", "s", "", "candidate pool file (YAML or JSON)")
	citeCmd.Flags().StringVar(&citeStyle, "style", "", "citation style (apa, grant_standard, default)")
	citeCmd.Flags().StringVar(&citeFormat, "format", "", "citation format (inline, footnote, bibliography)")
	citeCmd.Flags().StringVar(&citeOut, "out", "", "write the rendered citations to a file instead of stdout")
	citeCmd.Flags().StringVar(&citeJSON, "json", "", "write formatted citations as JSON (optional)")
	addDraftFlags(citeCmd, "draft-format")
	_ = citeCmd.MarkFlagRequired("sources")
}

func runCite(cmd *cobra.Command, args []string) error {
	draftPath := args[0]

	cfg, err := commandConfig(cmd, "draft-format")
	if err != nil {
		return err
	}
	if citeStyle != "" {
		cfg.Format.Style = citeStyle
	}
	if citeFormat != "" {
		cfg.Format.Format = citeFormat
	}

	style, err := format.ParseStyle(cfg.Format.Style)
	if err != nil {
		return err
	}
	kind, err := format.ParseKind(cfg.Format.Format)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	p, logger, err := newPipeline(cmd, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	pool, err := pipeline.LoadSources(sourcesPath)
	if err != nil {
		return err
	}
	text, err := pipeline.ReadDraft(draftPath)
	if err != nil {
		return err
	}

	res, err := p.Cite(ctx, filepath.Base(draftPath), text, pool, style, kind)
	if err != nil {
		return fmt.Errorf("cite failed: %w", err)
	}

	if citeJSON != "" {
		if err := p.Renderer().RenderJSON(res.Formatted, citeJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
	}

	if citeOut != "" {
		if err := os.WriteFile(citeOut, []byte(res.Text), 0o644); err != nil {
			return fmt.Errorf("write citations: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ Wrote %d citations: %s\n", len(res.Formatted), citeOut)
	} else {
		fmt.Fprint(cmd.OutOrStdout(), res.Text)
	}

	unsupported := len(res.Report.Citations) - len(res.Formatted)
	if unsupported > 0 {
		fmt.Fprintf(os.Stderr, "✗ %d claim(s) need a citation but matched no source\n", unsupported)
		if cfg.Output.Verbose {
			for _, c := range res.Report.Citations {
				if !c.IsValid {
					fmt.Fprintf(os.Stderr, "  - %s: %q\n", c.ParagraphID, c.ClaimText)
				}
			}
		}
	}

	return nil
}
