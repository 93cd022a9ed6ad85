// Package config holds the evaluation settings that the generator, assessor,
// and aggregator receive at construction time. Settings are explicit values
// rather than process-wide state so concurrent batches with different
// configurations cannot interfere.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"toolgauge/internal/llm"
)

// GenerationConfig controls test-case synthesis.
type GenerationConfig struct {
	MaxCases int `yaml:"max_cases"`

	// Per-category sampling temperatures. Realistic cases use a higher
	// temperature for diversity; adversarial categories stay conservative.
	RealisticTemperature float64 `yaml:"realistic_temperature"`
	EdgeTemperature      float64 `yaml:"edge_temperature"`
	InvalidTemperature   float64 `yaml:"invalid_temperature"`
	StressTemperature    float64 `yaml:"stress_temperature"`

	MaxTokens int `yaml:"max_tokens"`
}

// AssessmentConfig controls response scoring.
type AssessmentConfig struct {
	Temperature      float64 `yaml:"temperature"`
	MaxResponseChars int     `yaml:"max_response_chars"`
	MaxTokens        int     `yaml:"max_tokens"`
}

// RetryConfig bounds oracle retries.
type RetryConfig struct {
	MaxAttempts int `yaml:"max_attempts"` // total oracle calls per request
	BaseDelayMS int `yaml:"base_delay_ms"`
	MaxDelayMS  int `yaml:"max_delay_ms"`
	TimeoutSecs int `yaml:"timeout_seconds"` // per-call deadline
}

// TierThresholds partition overall scores into named buckets for
// distribution reporting. Must be monotonically decreasing.
type TierThresholds struct {
	Excellent float64 `yaml:"excellent"`
	Good      float64 `yaml:"good"`
	Fair      float64 `yaml:"fair"`
}

// ReportConfig controls aggregation output.
type ReportConfig struct {
	TopCommonThemes int            `yaml:"top_common_themes"`
	Tiers           TierThresholds `yaml:"tiers"`
}

// Config is the root evaluation configuration.
type Config struct {
	LLM         llm.Config       `yaml:"llm"`
	Generation  GenerationConfig `yaml:"generation"`
	Assessment  AssessmentConfig `yaml:"assessment"`
	Retry       RetryConfig      `yaml:"retry"`
	Report      ReportConfig     `yaml:"report"`
	Concurrency int              `yaml:"concurrency"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		LLM: llm.Config{
			Model:   "gpt-4o-mini",
			Timeout: 120,
		},
		Generation: GenerationConfig{
			MaxCases:             8,
			RealisticTemperature: 0.7,
			EdgeTemperature:      0.5,
			InvalidTemperature:   0.3,
			StressTemperature:    0.3,
			MaxTokens:            2000,
		},
		Assessment: AssessmentConfig{
			Temperature:      0.3,
			MaxResponseChars: 2000,
			MaxTokens:        1500,
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			BaseDelayMS: 1000,
			MaxDelayMS:  30000,
			TimeoutSecs: 60,
		},
		Report: ReportConfig{
			TopCommonThemes: 5,
			Tiers:           TierThresholds{Excellent: 9.0, Good: 7.0, Fair: 5.0},
		},
		Concurrency: 4,
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration for inconsistencies.
func (c Config) Validate() error {
	if c.Generation.MaxCases < 1 {
		return fmt.Errorf("generation.max_cases must be at least 1")
	}
	if c.Assessment.MaxResponseChars < 100 {
		return fmt.Errorf("assessment.max_response_chars must be at least 100")
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry.max_attempts must be at least 1")
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1")
	}
	if c.Report.TopCommonThemes < 1 {
		return fmt.Errorf("report.top_common_themes must be at least 1")
	}
	t := c.Report.Tiers
	if !(t.Excellent > t.Good && t.Good > t.Fair) {
		return fmt.Errorf("report.tiers must be strictly decreasing (excellent > good > fair)")
	}
	for name, temp := range map[string]float64{
		"generation.realistic_temperature": c.Generation.RealisticTemperature,
		"generation.edge_temperature":      c.Generation.EdgeTemperature,
		"generation.invalid_temperature":   c.Generation.InvalidTemperature,
		"generation.stress_temperature":    c.Generation.StressTemperature,
		"assessment.temperature":           c.Assessment.Temperature,
	} {
		if temp < 0 || temp > 2 {
			return fmt.Errorf("%s must be within [0, 2]", name)
		}
	}
	return nil
}
