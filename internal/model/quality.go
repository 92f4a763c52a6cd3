package model

// TestType selects the metric a quality test case measures
type TestType string

const (
	TestGrounding     TestType = "grounding"
	TestAccuracy      TestType = "accuracy"
	TestHallucination TestType = "hallucination"
	TestCoverage      TestType = "coverage"
	TestConsistency   TestType = "consistency"
)

// TestTypes lists the supported test types in reporting order
var TestTypes = []TestType{TestGrounding, TestAccuracy, TestHallucination, TestCoverage, TestConsistency}

// Valid reports whether t is a known test type
func (t TestType) Valid() bool {
	for _, known := range TestTypes {
		if t == known {
			return true
		}
	}
	return false
}

// LowerIsBetter reports whether the metric passes at or below its threshold
func (t TestType) LowerIsBetter() bool {
	return t == TestHallucination
}

// QualityThresholds are the suite-wide pass bars, all in [0,1]
type QualityThresholds struct {
	MinimumGroundingScore    float64 `json:"minimumGroundingScore" yaml:"minimumGroundingScore" mapstructure:"minimumGroundingScore"`
	MinimumCitationAccuracy  float64 `json:"minimumCitationAccuracy" yaml:"minimumCitationAccuracy" mapstructure:"minimumCitationAccuracy"`
	MaximumHallucinationRate float64 `json:"maximumHallucinationRate" yaml:"maximumHallucinationRate" mapstructure:"maximumHallucinationRate"`
	MinimumCoverage          float64 `json:"minimumCoverage" yaml:"minimumCoverage" mapstructure:"minimumCoverage"`
	MinimumConsistencyScore  float64 `json:"minimumConsistencyScore" yaml:"minimumConsistencyScore" mapstructure:"minimumConsistencyScore"`
}

// For returns the threshold governing a test type
func (q QualityThresholds) For(t TestType) float64 {
	switch t {
	case TestGrounding:
		return q.MinimumGroundingScore
	case TestAccuracy:
		return q.MinimumCitationAccuracy
	case TestHallucination:
		return q.MaximumHallucinationRate
	case TestCoverage:
		return q.MinimumCoverage
	case TestConsistency:
		return q.MinimumConsistencyScore
	default:
		return 0
	}
}

// WithDefaults fills unset (zero) thresholds from defaults.
// A zero maximum hallucination rate is a legitimate setting, so it is kept
// whenever any other knob was set explicitly.
func (q QualityThresholds) WithDefaults(defaults QualityThresholds) QualityThresholds {
	if q == (QualityThresholds{}) {
		return defaults
	}
	if q.MinimumGroundingScore == 0 {
		q.MinimumGroundingScore = defaults.MinimumGroundingScore
	}
	if q.MinimumCitationAccuracy == 0 {
		q.MinimumCitationAccuracy = defaults.MinimumCitationAccuracy
	}
	if q.MinimumCoverage == 0 {
		q.MinimumCoverage = defaults.MinimumCoverage
	}
	if q.MinimumConsistencyScore == 0 {
		q.MinimumConsistencyScore = defaults.MinimumConsistencyScore
	}
	return q
}

// Suite is a declarative quality test suite
type Suite struct {
	Name       string            `json:"name" yaml:"name"`
	Tests      []TestCase        `json:"tests" yaml:"tests"`
	Thresholds QualityThresholds `json:"thresholds" yaml:"thresholds"`
}

// TestCase is one fixture: a draft, its candidate pool and an optional expectation
type TestCase struct {
	ID          string            `json:"id" yaml:"id"`
	Name        string            `json:"name,omitempty" yaml:"name,omitempty"`
	Type        TestType          `json:"type" yaml:"type"`
	Input       string            `json:"input" yaml:"input"`
	Sources     []CandidateSource `json:"sources,omitempty" yaml:"sources,omitempty"`
	Expected    *float64          `json:"expected,omitempty" yaml:"expected,omitempty"` // Overrides the suite threshold
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
}

// TestResult is the outcome of one test case
type TestResult struct {
	TestID    string            `json:"testId"`
	Name      string            `json:"name,omitempty"`
	Type      TestType          `json:"type"`
	Score     float64           `json:"score"`
	Threshold float64           `json:"threshold"`
	Passed    bool              `json:"passed"`
	Errored   bool              `json:"errored,omitempty"` // Case could not be executed
	Issues    []ValidationIssue `json:"issues,omitempty"`
	Details   map[string]any    `json:"details,omitempty"`
}

// MetricSummary is the per-type aggregate of a suite run
type MetricSummary struct {
	Type      TestType `json:"type"`
	Count     int      `json:"count"`
	Average   float64  `json:"average"`
	Threshold float64  `json:"threshold"`
	Met       bool     `json:"met"`
}

// SuiteSummary holds suite-level counts and metrics
type SuiteSummary struct {
	Total    int             `json:"total"`
	Passed   int             `json:"passed"`
	Failed   int             `json:"failed"`
	Errored  int             `json:"errored"`
	PassRate float64         `json:"passRate"`
	Metrics  []MetricSummary `json:"metrics"`
}

// Metric returns the summary for a test type, if the suite exercised it
func (s SuiteSummary) Metric(t TestType) (MetricSummary, bool) {
	for _, m := range s.Metrics {
		if m.Type == t {
			return m, true
		}
	}
	return MetricSummary{}, false
}

// SuiteResult is the full outcome of a suite run
type SuiteResult struct {
	Name            string            `json:"name"`
	Thresholds      QualityThresholds `json:"thresholds"`
	Results         []TestResult      `json:"results"`
	Summary         SuiteSummary      `json:"summary"`
	ThresholdsMet   bool              `json:"thresholdsMet"`
	Recommendations []string          `json:"recommendations"`
}
