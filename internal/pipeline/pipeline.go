package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ppiankov/groundcheck/internal/cache"
	"github.com/ppiankov/groundcheck/internal/draft"
	"github.com/ppiankov/groundcheck/internal/format"
	"github.com/ppiankov/groundcheck/internal/model"
	"github.com/ppiankov/groundcheck/internal/qa"
	"github.com/ppiankov/groundcheck/internal/score"
	"github.com/ppiankov/groundcheck/internal/worker"
)

// Pipeline orchestrates the complete check process
type Pipeline struct {
	scorer      *score.Scorer
	formatter   *format.Formatter
	renderer    *Renderer
	cache       cache.Cache // nil when caching is disabled
	draftFormat draft.Format
	minimum     *float64 // Claim similarity override, nil uses the scoring config
	config      *model.Config
	logger      *zap.Logger
	now         func() time.Time
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config, logger *zap.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	draftFormat, err := draft.ParseFormat(cfg.Draft.Format)
	if err != nil {
		return nil, fmt.Errorf("draft format: %w", err)
	}

	year := cfg.Format.DefaultYear
	if year == 0 {
		year = time.Now().Year()
	}

	p := &Pipeline{
		scorer:      score.NewScorer(cfg.Scoring),
		formatter:   format.NewFormatter(year),
		renderer:    NewRenderer(cfg.Output.IncludeFooter),
		draftFormat: draftFormat,
		config:      cfg,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}

	if cfg.Cache.Enabled {
		p.cache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	return p, nil
}

// SetMinimumSimilarity overrides the claim similarity bar for generated
// citations. Unlike the scoring config, zero is honored.
func (p *Pipeline) SetMinimumSimilarity(v float64) {
	p.minimum = &v
}

// Scorer returns the scorer the pipeline runs
func (p *Pipeline) Scorer() *score.Scorer {
	return p.scorer
}

// Renderer returns the report renderer
func (p *Pipeline) Renderer() *Renderer {
	return p.renderer
}

// Check assesses a draft against the pool and generates citations for every
// claim that needs one
func (p *Pipeline) Check(ctx context.Context, subject, text string, pool []model.CandidateSource) (*model.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key, err := p.cacheKey(text, pool)
	if err != nil {
		return nil, err
	}

	if p.cache != nil {
		var cached model.Report
		if cache.GetJSON(p.cache, key, &cached) {
			p.logger.Debug("report cache hit", zap.String("subject", subject))
			cached.Subject = subject
			cached.GeneratedAt = p.now()
			return &cached, nil
		}
	}

	paragraphs := draft.Parse(text, p.draftFormat)
	p.logger.Debug("parsed draft",
		zap.String("subject", subject),
		zap.Int("paragraphs", len(paragraphs)),
		zap.Int("sources", len(pool)))

	report := &model.Report{
		Subject:     subject,
		GeneratedAt: p.now(),
		Assessment:  p.scorer.Assess(paragraphs, pool),
		Citations:   []model.CitationSource{},
		Issues:      []model.ValidationIssue{},
		SourceCount: len(pool),
	}

	needing := 0
	for _, para := range paragraphs {
		resp := p.scorer.GenerateCitationsForParagraph(model.ValidationRequest{
			Text:              para.Text,
			ParagraphID:       para.ID,
			Position:          para.Position,
			MinimumSimilarity: p.minimum,
		}, pool)
		report.Citations = append(report.Citations, resp.Citations...)
		report.Issues = append(report.Issues, resp.ValidationIssues...)
		needing += len(resp.Citations)
	}
	valid := len(report.ValidCitations())

	report.GroundingQuality = 1.0
	if needing > 0 {
		report.GroundingQuality = float64(valid) / float64(needing)
	}

	p.logger.Info("checked draft",
		zap.String("subject", subject),
		zap.Float64("overall_score", report.Assessment.OverallScore),
		zap.String("risk", string(report.Assessment.HallucinationRisk)),
		zap.Int("citations", valid),
		zap.Int("claims_needing_citation", needing))

	if p.cache != nil {
		if err := cache.SetJSON(p.cache, key, report, 0); err != nil {
			p.logger.Warn("failed to cache report", zap.String("subject", subject), zap.Error(err))
		}
	}

	return report, nil
}

// CiteResult is a checked draft with its export-ready citations
type CiteResult struct {
	Report    *model.Report
	Formatted []model.FormattedCitation
	Text      string // Rendered export block
}

// Cite checks a draft and formats its valid citations for export
func (p *Pipeline) Cite(ctx context.Context, subject, text string, pool []model.CandidateSource, style format.Style, kind format.Kind) (*CiteResult, error) {
	report, err := p.Check(ctx, subject, text, pool)
	if err != nil {
		return nil, err
	}

	formatted := p.formatter.Format(report.Citations, style, kind)
	return &CiteResult{
		Report:    report,
		Formatted: formatted,
		Text:      format.RenderText(formatted, kind),
	}, nil
}

// Harness returns a quality harness that shares the pipeline's scorer
func (p *Pipeline) Harness(workers int) *qa.Harness {
	if workers <= 0 {
		workers = p.config.Concurrency.Workers
	}
	return qa.NewHarness(p.scorer, p.config.Quality, workers, p.logger)
}

// Checker binds the pipeline to a pool for batch processing
func (p *Pipeline) Checker(pool []model.CandidateSource) worker.Checker {
	return &poolChecker{pipeline: p, pool: pool}
}

type poolChecker struct {
	pipeline *Pipeline
	pool     []model.CandidateSource
}

func (c *poolChecker) Check(ctx context.Context, subject, text string) (*model.Report, error) {
	return c.pipeline.Check(ctx, subject, text, c.pool)
}

// cacheKey covers every input that changes a report
func (p *Pipeline) cacheKey(text string, pool []model.CandidateSource) (string, error) {
	poolJSON, err := json.Marshal(pool)
	if err != nil {
		return "", fmt.Errorf("encode pool: %w", err)
	}
	scoringJSON, err := json.Marshal(p.scorer.Config())
	if err != nil {
		return "", fmt.Errorf("encode scoring config: %w", err)
	}
	minimumJSON, err := json.Marshal(p.minimum)
	if err != nil {
		return "", fmt.Errorf("encode minimum similarity: %w", err)
	}
	return cache.Key("report", []byte(text), poolJSON, scoringJSON, minimumJSON, []byte(p.draftFormat)), nil
}

// RenderReport renders the report to the specified outputs
func (p *Pipeline) RenderReport(report *model.Report, jsonPath string, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			p.renderer.Progress("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			p.renderer.Progress("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	p.renderer.RenderSummary(report)

	return nil
}
