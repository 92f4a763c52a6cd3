// Package qa runs declarative quality suites against the grounding engine
// and decides whether a generation pipeline meets its quality bars.
package qa

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/ppiankov/groundcheck/internal/draft"
	"github.com/ppiankov/groundcheck/internal/extract"
	"github.com/ppiankov/groundcheck/internal/model"
	"github.com/ppiankov/groundcheck/internal/score"
	"github.com/ppiankov/groundcheck/internal/worker"
)

// Harness executes test suites. It holds no per-run state.
type Harness struct {
	scorer    *score.Scorer
	citations *extract.CitationExtractor
	defaults  model.QualityThresholds
	workers   int
	logger    *zap.Logger
}

// NewHarness creates a harness. defaults fill thresholds a suite leaves unset.
func NewHarness(scorer *score.Scorer, defaults model.QualityThresholds, workers int, logger *zap.Logger) *Harness {
	if logger == nil {
		logger = zap.NewNop()
	}
	if workers <= 0 {
		workers = 1
	}
	return &Harness{
		scorer:    scorer,
		citations: extract.NewCitationExtractor(),
		defaults:  defaults,
		workers:   workers,
		logger:    logger,
	}
}

type caseOutcome struct {
	result model.TestResult
	ran    bool
}

// RunSuite executes every test case and summarizes the run. Cases run
// concurrently; results keep declaration order.
func (h *Harness) RunSuite(ctx context.Context, suite model.Suite) model.SuiteResult {
	thresholds := suite.Thresholds.WithDefaults(h.defaults)

	h.logger.Info("running quality suite",
		zap.String("suite", suite.Name),
		zap.Int("tests", len(suite.Tests)),
		zap.Int("workers", h.workers))

	outcomes := worker.Map(ctx, h.workers, len(suite.Tests), func(ctx context.Context, i int) caseOutcome {
		if ctx.Err() != nil {
			return caseOutcome{}
		}
		return caseOutcome{result: h.RunCase(suite.Tests[i], thresholds), ran: true}
	})

	results := make([]model.TestResult, len(outcomes))
	for i, o := range outcomes {
		if !o.ran {
			o.result = erroredResult(suite.Tests[i], thresholds, "test case was not run: suite canceled")
		}
		results[i] = o.result
	}

	summary := summarize(results, thresholds)
	met := summary.Errored == 0
	for _, m := range summary.Metrics {
		if !m.Met {
			met = false
		}
	}

	h.logger.Info("quality suite finished",
		zap.String("suite", suite.Name),
		zap.Int("passed", summary.Passed),
		zap.Int("failed", summary.Failed),
		zap.Int("errored", summary.Errored),
		zap.Bool("thresholds_met", met))

	return model.SuiteResult{
		Name:            suite.Name,
		Thresholds:      thresholds,
		Results:         results,
		Summary:         summary,
		ThresholdsMet:   met,
		Recommendations: recommendations(summary),
	}
}

// RunCase executes one test case. Malformed cases and panics become errored
// results rather than failures of the run.
func (h *Harness) RunCase(tc model.TestCase, thresholds model.QualityThresholds) (result model.TestResult) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("test case panicked", zap.String("test", tc.ID), zap.Any("panic", r))
			result = erroredResult(tc, thresholds, fmt.Sprintf("test case panicked: %v", r))
		}
	}()

	if msg := validateCase(tc); msg != "" {
		h.logger.Warn("malformed test case", zap.String("test", tc.ID), zap.String("reason", msg))
		return erroredResult(tc, thresholds, msg)
	}

	threshold := thresholds.For(tc.Type)
	if tc.Expected != nil {
		threshold = *tc.Expected
	}

	var value float64
	var details map[string]any
	var issues []model.ValidationIssue

	switch tc.Type {
	case model.TestGrounding:
		value, details, issues = h.grounding(tc)
	case model.TestAccuracy:
		value, details, issues = h.accuracy(tc)
	case model.TestHallucination:
		value, details, issues = h.hallucination(tc)
	case model.TestCoverage:
		value, details = h.coverage(tc)
	case model.TestConsistency:
		value, details = h.consistency(tc)
	}

	passed := value >= threshold
	if tc.Type.LowerIsBetter() {
		passed = value <= threshold
	}

	h.logger.Debug("test case scored",
		zap.String("test", tc.ID),
		zap.String("type", string(tc.Type)),
		zap.Float64("score", value),
		zap.Float64("threshold", threshold),
		zap.Bool("passed", passed))

	return model.TestResult{
		TestID:    tc.ID,
		Name:      tc.Name,
		Type:      tc.Type,
		Score:     value,
		Threshold: threshold,
		Passed:    passed,
		Issues:    issues,
		Details:   details,
	}
}

func validateCase(tc model.TestCase) string {
	switch {
	case strings.TrimSpace(tc.ID) == "":
		return "test case has no id"
	case !tc.Type.Valid():
		return fmt.Sprintf("unknown test type %q", tc.Type)
	case strings.TrimSpace(tc.Input) == "":
		return "test case has empty input"
	}
	return ""
}

func erroredResult(tc model.TestCase, thresholds model.QualityThresholds, msg string) model.TestResult {
	return model.TestResult{
		TestID:    tc.ID,
		Name:      tc.Name,
		Type:      tc.Type,
		Threshold: thresholds.For(tc.Type),
		Passed:    false,
		Errored:   true,
		Issues: []model.ValidationIssue{{
			Type:     model.IssueExecutionError,
			Severity: model.SeverityHigh,
			Message:  msg,
		}},
	}
}

// grounding scores the document's overall grounding
func (h *Harness) grounding(tc model.TestCase) (float64, map[string]any, []model.ValidationIssue) {
	doc := h.scorer.ParseContent(tc.Input, tc.Sources)
	return doc.OverallScore, map[string]any{
		"paragraphs":        len(doc.Paragraphs),
		"citationCoverage":  doc.CitationCoverage,
		"hallucinationRisk": string(doc.HallucinationRisk),
	}, doc.Issues
}

// generate produces citations for every paragraph of the input
func (h *Harness) generate(tc model.TestCase) ([]model.CitationSource, []model.ValidationIssue) {
	var citations []model.CitationSource
	var issues []model.ValidationIssue
	for _, p := range draft.Parse(tc.Input, draft.FormatAuto) {
		resp := h.scorer.GenerateCitationsForParagraph(model.ValidationRequest{
			Text:        p.Text,
			ParagraphID: p.ID,
			Position:    p.Position,
		}, tc.Sources)
		citations = append(citations, resp.Citations...)
		issues = append(issues, resp.ValidationIssues...)
	}
	return citations, issues
}

// accuracy is the share of generated citations that matched a source
func (h *Harness) accuracy(tc model.TestCase) (float64, map[string]any, []model.ValidationIssue) {
	citations, issues := h.generate(tc)
	valid := countValid(citations)

	value := 1.0
	if len(citations) > 0 {
		value = float64(valid) / float64(len(citations))
	}
	return value, map[string]any{
		"generated": len(citations),
		"valid":     valid,
	}, issues
}

// hallucination is the share of citation-requiring claims with no source
func (h *Harness) hallucination(tc model.TestCase) (float64, map[string]any, []model.ValidationIssue) {
	citations, issues := h.generate(tc)
	unsupported := len(citations) - countValid(citations)

	value := 0.0
	if len(citations) > 0 {
		value = float64(unsupported) / float64(len(citations))
	}
	return value, map[string]any{
		"claimsNeedingCitation": len(citations),
		"unsupported":           unsupported,
	}, issues
}

// coverage is the share of sentences carrying a citation marker
func (h *Harness) coverage(tc model.TestCase) (float64, map[string]any) {
	minLength := h.scorer.Config().MinSentenceLength
	total := 0
	cited := 0

	for _, p := range draft.Parse(tc.Input, draft.FormatAuto) {
		marked := make(map[string]bool)
		for _, c := range h.citations.Extract(p.Text, p.ID, 0) {
			marked[c.ClaimText] = true
		}
		for _, s := range extract.SplitSentences(p.Text, minLength) {
			total++
			if marked[s.Text] {
				cited++
			}
		}
	}

	value := 1.0
	if total > 0 {
		value = float64(cited) / float64(total)
	}
	return value, map[string]any{
		"sentences":     total,
		"cited":         cited,
		"uncited":       total - cited,
		"coverageRatio": value,
	}
}

// consistency is the share of valid-citation pairs that agree on method and
// land within the tolerance of each other's similarity
func (h *Harness) consistency(tc model.TestCase) (float64, map[string]any) {
	all, _ := h.generate(tc)
	var valid []model.CitationSource
	for _, c := range all {
		if c.IsValid {
			valid = append(valid, c)
		}
	}

	tolerance := h.scorer.Config().ConsistencyTolerance
	pairs := 0
	consistent := 0
	for i := 0; i < len(valid); i++ {
		for j := i + 1; j < len(valid); j++ {
			pairs++
			if valid[i].Method == valid[j].Method &&
				math.Abs(valid[i].Similarity-valid[j].Similarity) <= tolerance {
				consistent++
			}
		}
	}

	value := 1.0
	if pairs > 0 {
		value = float64(consistent) / float64(pairs)
	}
	return value, map[string]any{
		"citations":       len(valid),
		"pairs":           pairs,
		"consistentPairs": consistent,
	}
}

func countValid(citations []model.CitationSource) int {
	n := 0
	for _, c := range citations {
		if c.IsValid {
			n++
		}
	}
	return n
}
