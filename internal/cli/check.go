package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ppiankov/groundcheck/internal/model"
	"github.com/ppiankov/groundcheck/internal/pipeline"
)

const banner = "═══════════════════════════════════════════════════════════"

var (
	sourcesPath   string
	outJSON       string
	outMD         string
	draftFormat   string
	minSimilarity float64
	noCache       bool
	noFooter      bool
	failOn        string
	timeout       time.Duration
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <draft>",
	Short: "Check a draft's grounding against a pool of source passages",
	Long: `Check analyzes one draft to:
- Split it into paragraphs and claims
- Decide which claims need a citation
- Validate the citation markers already present
- Find a supporting passage for every claim that needs one
- Score grounding, citation coverage and hallucination risk

Example:
  groundcheck check answer.md --sources pool.yaml
  groundcheck check answer.md --sources pool.yaml --json report.json --md report.md
  groundcheck check answer.html --sources pool.json --fail-on medium`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&sourcesPath, "sources", "s", "", "candidate pool file (YAML or JSON)")
	checkCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	checkCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	addDraftFlags(checkCmd, "format")
	checkCmd.Flags().StringVar(&failOn, "fail-on", "", "exit non-zero when hallucination risk reaches this level (low, medium, high)")
	_ = checkCmd.MarkFlagRequired("sources")
}

// addDraftFlags registers the flags shared by commands that check drafts
func addDraftFlags(cmd *cobra.Command, formatFlag string) {
	cmd.Flags().StringVar(&draftFormat, formatFlag, "auto", "draft format (auto, text, markdown, html)")
	cmd.Flags().Float64Var(&minSimilarity, "min-similarity", 0, "minimum claim/source similarity (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the report cache")
	cmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall timeout")
}

// commandConfig loads configuration and applies flags the user set
func commandConfig(cmd *cobra.Command, formatFlag string) (*model.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if f := flags.Lookup(formatFlag); f != nil && f.Changed {
		cfg.Draft.Format = draftFormat
	}
	if flags.Changed("min-similarity") && (minSimilarity < 0 || minSimilarity > 1) {
		return nil, fmt.Errorf("invalid --min-similarity %v (want a value in [0,1])", minSimilarity)
	}
	if flags.Changed("no-cache") {
		cfg.Cache.Enabled = !noCache
	}
	if flags.Changed("no-footer") {
		cfg.Output.IncludeFooter = !noFooter
	}
	if verbose {
		cfg.Output.Verbose = true
	}

	return cfg, nil
}

// newPipeline builds the logger and pipeline for a command
func newPipeline(cmd *cobra.Command, cfg *model.Config) (*pipeline.Pipeline, *zap.Logger, error) {
	logger, err := newLogger(cfg.Log, cfg.Output.Verbose)
	if err != nil {
		return nil, nil, err
	}

	p, err := pipeline.NewPipeline(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	if cmd.Flags().Changed("min-similarity") {
		p.SetMinimumSimilarity(minSimilarity)
	}
	return p, logger, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	draftPath := args[0]

	var threshold model.RiskLevel
	if failOn != "" {
		threshold = model.RiskLevel(failOn)
		if threshold != model.RiskLow && threshold != model.RiskMedium && threshold != model.RiskHigh {
			return fmt.Errorf("invalid --fail-on %q (want low, medium or high)", failOn)
		}
	}

	cfg, err := commandConfig(cmd, "format")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Checking: %s\n", draftPath)
		fmt.Fprintf(os.Stderr, "Sources:  %s\n", sourcesPath)
		fmt.Fprintf(os.Stderr, "Cache:    %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

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

	report, err := p.Check(ctx, filepath.Base(draftPath), text, pool)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "✓ Loaded %d candidate sources\n", len(pool))
		fmt.Fprintf(os.Stderr, "✓ Assessed %d paragraphs\n", len(report.Assessment.Paragraphs))
		fmt.Fprintf(os.Stderr, "✓ Sourced %d of %d claims needing citation\n", len(report.ValidCitations()), len(report.Citations))
		fmt.Fprintln(os.Stderr)
	}

	if err := p.RenderReport(report, outJSON, outMD, cfg.Output.Verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	if threshold != "" && report.Assessment.HallucinationRisk.Rank() >= threshold.Rank() {
		return fmt.Errorf("hallucination risk %s reaches --fail-on %s", report.Assessment.HallucinationRisk, threshold)
	}

	return nil
}
