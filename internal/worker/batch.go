package worker

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/groundcheck/internal/model"
)

// Checker defines the interface for checking one draft
type Checker interface {
	Check(ctx context.Context, subject, text string) (*model.Report, error)
}

// CheckJob represents a draft file check job
type CheckJob struct {
	Path    string
	Checker Checker
}

// Execute reads the draft and runs the check
func (j *CheckJob) Execute(ctx context.Context) Result {
	if ctx.Err() != nil {
		return &CheckResult{Path: j.Path, Error: notChecked(ctx)}
	}

	data, err := os.ReadFile(j.Path)
	if err != nil {
		return &CheckResult{Path: j.Path, Error: fmt.Errorf("read draft: %w", err)}
	}

	report, err := j.Checker.Check(ctx, filepath.Base(j.Path), string(data))
	if err != nil {
		return &CheckResult{Path: j.Path, Error: err}
	}
	return &CheckResult{Path: j.Path, Report: report}
}

// CheckResult represents the result of a check job
type CheckResult struct {
	Path   string
	Report *model.Report
	Error  error
}

// GetError returns the error from the check result
func (r *CheckResult) GetError() error {
	return r.Error
}

// BatchProcessor checks multiple drafts concurrently
type BatchProcessor struct {
	checker     Checker
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(checker Checker, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		checker:     checker,
		concurrency: concurrency,
	}
}

// ProcessPaths checks the drafts at paths and returns one result per path in
// input order. Drafts skipped because ctx ended carry the context error.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*CheckResult {
	results := Map(ctx, b.concurrency, len(paths), func(ctx context.Context, i int) *CheckResult {
		job := &CheckJob{Path: paths[i], Checker: b.checker}
		return job.Execute(ctx).(*CheckResult)
	})

	for i, res := range results {
		if res == nil {
			results[i] = &CheckResult{Path: paths[i], Error: notChecked(ctx)}
		}
	}
	return results
}

func notChecked(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("draft was not checked: %w", err)
	}
	return errors.New("draft was not checked")
}

// ProcessFile reads draft paths from a list file and checks them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, listPath string) ([]*CheckResult, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read paths: %w", err)
	}

	return b.ProcessPaths(ctx, paths), nil
}

// ReadPathsFromFile reads draft paths from a file (one per line). Relative
// paths resolve against the list file's directory.
func ReadPathsFromFile(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	base := filepath.Dir(listPath)
	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !filepath.IsAbs(line) {
			line = filepath.Join(base, line)
		}

		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
