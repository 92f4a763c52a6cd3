package qa

import (
	"fmt"

	"github.com/ppiankov/groundcheck/internal/model"
)

// summarize counts outcomes and averages each exercised metric. Errored
// cases are excluded from the averages.
func summarize(results []model.TestResult, thresholds model.QualityThresholds) model.SuiteSummary {
	s := model.SuiteSummary{
		Total:   len(results),
		Metrics: []model.MetricSummary{},
	}

	sums := make(map[model.TestType]float64)
	counts := make(map[model.TestType]int)

	for _, r := range results {
		switch {
		case r.Errored:
			s.Errored++
			continue
		case r.Passed:
			s.Passed++
		default:
			s.Failed++
		}
		sums[r.Type] += r.Score
		counts[r.Type]++
	}

	if s.Total > 0 {
		s.PassRate = float64(s.Passed) / float64(s.Total)
	}

	for _, t := range model.TestTypes {
		n := counts[t]
		if n == 0 {
			continue
		}
		avg := sums[t] / float64(n)
		threshold := thresholds.For(t)
		met := avg >= threshold
		if t.LowerIsBetter() {
			met = avg <= threshold
		}
		s.Metrics = append(s.Metrics, model.MetricSummary{
			Type:      t,
			Count:     n,
			Average:   avg,
			Threshold: threshold,
			Met:       met,
		})
	}

	return s
}

// recommendations returns one remediation line per missed metric, then one
// for execution errors
func recommendations(s model.SuiteSummary) []string {
	recs := []string{}

	for _, m := range s.Metrics {
		if m.Met {
			continue
		}
		recs = append(recs, recommendation(m))
	}

	if s.Errored > 0 {
		recs = append(recs, fmt.Sprintf(
			"execution: %d test case(s) could not run; fix their id, type or input before trusting the results",
			s.Errored))
	}

	return recs
}

func recommendation(m model.MetricSummary) string {
	switch m.Type {
	case model.TestGrounding:
		return fmt.Sprintf("grounding: average score %.2f is below %.2f; place a citation next to every statistical and data-bearing claim",
			m.Average, m.Threshold)
	case model.TestAccuracy:
		return fmt.Sprintf("accuracy: only %.0f%% of generated citations matched a source (minimum %.0f%%); retrieve more relevant passages or narrow the claims",
			m.Average*100, m.Threshold*100)
	case model.TestHallucination:
		return fmt.Sprintf("hallucination: %.0f%% of claims needing a source have none (maximum %.0f%%); remove or source unsupported claims",
			m.Average*100, m.Threshold*100)
	case model.TestCoverage:
		return fmt.Sprintf("coverage: %.0f%% of sentences carry a citation (minimum %.0f%%); add citation markers to uncited sentences",
			m.Average*100, m.Threshold*100)
	case model.TestConsistency:
		return fmt.Sprintf("consistency: score %.2f is below %.2f; citations match their sources unevenly, so align wording with the cited passages",
			m.Average, m.Threshold)
	default:
		return fmt.Sprintf("%s: average %.2f misses threshold %.2f", m.Type, m.Average, m.Threshold)
	}
}
