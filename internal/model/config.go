package model

import "time"

// Config is the complete groundcheck configuration.
// Values come from DefaultConfig, then the config file, then GROUNDCHECK_* env vars, then flags.
type Config struct {
	Scoring     ScoringConfig     `yaml:"scoring" mapstructure:"scoring"`
	Quality     QualityThresholds `yaml:"quality" mapstructure:"quality"`
	Format      FormatConfig      `yaml:"format" mapstructure:"format"`
	Draft       DraftConfig       `yaml:"draft" mapstructure:"draft"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
}

// ScoringConfig holds the grounding policy constants.
// These are uncalibrated heuristics; tune them against labeled drafts.
type ScoringConfig struct {
	ClaimMatchThreshold    float64 `yaml:"claim_match_threshold" mapstructure:"claim_match_threshold"`       // Min similarity to cite a source for a claim
	CitationMatchThreshold float64 `yaml:"citation_match_threshold" mapstructure:"citation_match_threshold"` // Min similarity for an existing citation to be valid
	SuggestionThreshold    float64 `yaml:"suggestion_threshold" mapstructure:"suggestion_threshold"`         // Min similarity to suggest a source
	MarginalSlack          float64 `yaml:"marginal_slack" mapstructure:"marginal_slack"`                     // Matches within threshold+slack are flagged weak
	ProximityWindow        int     `yaml:"proximity_window" mapstructure:"proximity_window"`                 // Chars around a claim in which a citation covers it
	LowGroundingCutoff     float64 `yaml:"low_grounding_cutoff" mapstructure:"low_grounding_cutoff"`
	HighRiskRatio          float64 `yaml:"high_risk_ratio" mapstructure:"high_risk_ratio"`
	MediumRiskRatio        float64 `yaml:"medium_risk_ratio" mapstructure:"medium_risk_ratio"`
	WeakOverallScore       float64 `yaml:"weak_overall_score" mapstructure:"weak_overall_score"`
	MinCitationCoverage    float64 `yaml:"min_citation_coverage" mapstructure:"min_citation_coverage"` // Percent
	InvalidConfidence      float64 `yaml:"invalid_confidence" mapstructure:"invalid_confidence"`
	ConsistencyTolerance   float64 `yaml:"consistency_tolerance" mapstructure:"consistency_tolerance"`
	MinSentenceLength      int     `yaml:"min_sentence_length" mapstructure:"min_sentence_length"`
	MaxSuggestions         int     `yaml:"max_suggestions" mapstructure:"max_suggestions"`
}

// FormatConfig controls citation export
type FormatConfig struct {
	Style       string `yaml:"style" mapstructure:"style"`               // apa, grant_standard, default
	Format      string `yaml:"format" mapstructure:"format"`             // inline, footnote, bibliography
	DefaultYear int    `yaml:"default_year" mapstructure:"default_year"` // 0 = current year
}

// DraftConfig controls how drafts are split into paragraphs
type DraftConfig struct {
	Format string `yaml:"format" mapstructure:"format"` // auto, text, markdown, html
}

// ConcurrencyConfig controls worker pools
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// CacheConfig controls the report cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// LogConfig controls the zap logger
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // console, json
}

// DefaultScoringConfig returns the scoring defaults
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		ClaimMatchThreshold:    0.5,
		CitationMatchThreshold: 0.6,
		SuggestionThreshold:    0.3,
		MarginalSlack:          0.1,
		ProximityWindow:        100,
		LowGroundingCutoff:     0.5,
		HighRiskRatio:          0.30,
		MediumRiskRatio:        0.15,
		WeakOverallScore:       0.6,
		MinCitationCoverage:    70,
		InvalidConfidence:      0.3,
		ConsistencyTolerance:   0.3,
		MinSentenceLength:      10,
		MaxSuggestions:         3,
	}
}

// DefaultQualityThresholds returns the suite thresholds used when a suite sets none
func DefaultQualityThresholds() QualityThresholds {
	return QualityThresholds{
		MinimumGroundingScore:    0.7,
		MinimumCitationAccuracy:  0.8,
		MaximumHallucinationRate: 0.2,
		MinimumCoverage:          0.7,
		MinimumConsistencyScore:  0.7,
	}
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		Scoring: DefaultScoringConfig(),
		Quality: DefaultQualityThresholds(),
		Format: FormatConfig{
			Style:  "grant_standard",
			Format: "bibliography",
		},
		Draft: DraftConfig{
			Format: "auto",
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       ".groundcheck-cache",
			MemoryTTL: 10 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// WithDefaults replaces zero and negative scoring fields with the values
// from DefaultScoringConfig. Zero therefore means "use the default"; a knob
// that should be effectively off takes a small positive value instead
// (marginal_slack: 0.001, proximity_window: 1). Per-request similarity
// overrides go through ValidationRequest.MinimumSimilarity, which honors 0.
func (c ScoringConfig) WithDefaults() ScoringConfig {
	d := DefaultScoringConfig()
	if c.ClaimMatchThreshold <= 0 {
		c.ClaimMatchThreshold = d.ClaimMatchThreshold
	}
	if c.CitationMatchThreshold <= 0 {
		c.CitationMatchThreshold = d.CitationMatchThreshold
	}
	if c.SuggestionThreshold <= 0 {
		c.SuggestionThreshold = d.SuggestionThreshold
	}
	if c.MarginalSlack <= 0 {
		c.MarginalSlack = d.MarginalSlack
	}
	if c.ProximityWindow <= 0 {
		c.ProximityWindow = d.ProximityWindow
	}
	if c.LowGroundingCutoff <= 0 {
		c.LowGroundingCutoff = d.LowGroundingCutoff
	}
	if c.HighRiskRatio <= 0 {
		c.HighRiskRatio = d.HighRiskRatio
	}
	if c.MediumRiskRatio <= 0 {
		c.MediumRiskRatio = d.MediumRiskRatio
	}
	if c.WeakOverallScore <= 0 {
		c.WeakOverallScore = d.WeakOverallScore
	}
	if c.MinCitationCoverage <= 0 {
		c.MinCitationCoverage = d.MinCitationCoverage
	}
	if c.InvalidConfidence <= 0 {
		c.InvalidConfidence = d.InvalidConfidence
	}
	if c.ConsistencyTolerance <= 0 {
		c.ConsistencyTolerance = d.ConsistencyTolerance
	}
	if c.MinSentenceLength <= 0 {
		c.MinSentenceLength = d.MinSentenceLength
	}
	if c.MaxSuggestions <= 0 {
		c.MaxSuggestions = d.MaxSuggestions
	}
	return c
}
