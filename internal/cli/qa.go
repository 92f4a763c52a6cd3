package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/groundcheck/internal/qa"
)

var (
	qaJSON    string
	qaWorkers int
)

// errThresholdsMissed is returned when a suite misses its quality bars
var errThresholdsMissed = errors.New("quality thresholds not met")

// qaCmd represents the qa command
var qaCmd = &cobra.Command{
	Use:   "qa <suite.yaml>",
	Short: "Run a quality test suite and gate on its thresholds",
	Long: `QA runs a declarative suite of test cases (grounding, accuracy,
hallucination, coverage, consistency) and compares the averages with the
suite's thresholds. The command exits non-zero when any threshold is
missed or a test case could not run, so it can gate a deployment.

Example:
  groundcheck qa suites/baseline.yaml
  groundcheck qa suites/baseline.yaml --json qa-result.json --workers 8`,
	Args: cobra.ExactArgs(1),
	RunE: runQA,
}

func init() {
	rootCmd.AddCommand(qaCmd)

	qaCmd.Flags().StringVar(&qaJSON, "json", "", "output JSON path (optional)")
	qaCmd.Flags().IntVar(&qaWorkers, "workers", 0, "concurrent test cases (default from config)")
}

func runQA(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if verbose {
		cfg.Output.Verbose = true
	}

	suite, err := qa.LoadSuite(args[0])
	if err != nil {
		return err
	}

	p, logger, err := newPipeline(cmd, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Suite:   %s (%d tests)\n", suite.Name, len(suite.Tests))
		fmt.Fprintln(os.Stderr)
	}

	result := p.Harness(qaWorkers).RunSuite(context.Background(), suite)

	if qaJSON != "" {
		if err := p.Renderer().RenderJSON(result, qaJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if cfg.Output.Verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", qaJSON)
		}
	}

	p.Renderer().RenderSuiteSummary(result)

	if !result.ThresholdsMet {
		return errThresholdsMissed
	}
	return nil
}
