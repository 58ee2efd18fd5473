// Package config loads lyriclens configuration from a YAML file with
// environment-variable overrides. All scoring magnitudes live here as
// tunable policy; the ordering invariants they must respect are validated
// at load time so the core never sees an inconsistent table.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"lyriclens/internal/analysis"
)

// Config holds all lyriclens configuration.
type Config struct {
	Provider   ProviderConfig   `yaml:"provider"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Thresholds ThresholdsConfig `yaml:"thresholds"`
	Chunking   ChunkingConfig   `yaml:"chunking"`
	Scripture  ScriptureConfig  `yaml:"scripture"`
	Store      StoreConfig      `yaml:"store"`
	Batch      BatchConfig      `yaml:"batch"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ProviderConfig configures the capability provider.
type ProviderConfig struct {
	// Kind selects the provider: keyword, openai, gemini.
	Kind    string `yaml:"kind"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`

	// Sentiment enables the local sentiment/emotion provider.
	Sentiment bool `yaml:"sentiment"`
}

// TimeoutDuration parses the provider timeout, defaulting to 60s.
func (p ProviderConfig) TimeoutDuration() time.Duration {
	if p.Timeout == "" {
		return 60 * time.Second
	}
	d, err := time.ParseDuration(p.Timeout)
	if err != nil || d <= 0 {
		return 60 * time.Second
	}
	return d
}

// ScoringConfig holds the aggregation policy knobs. Zero values fall back
// to the built-in defaults; maps are merged over the default tables.
type ScoringConfig struct {
	BaseScore        float64  `yaml:"base_score"`
	SentimentMax     float64  `yaml:"sentiment_max"`
	EmotionMax       float64  `yaml:"emotion_max"`
	NegativeEmotions []string `yaml:"negative_emotions"`

	Lament      LamentConfig      `yaml:"lament"`
	Formational FormationalConfig `yaml:"formational"`

	ThemePoints map[string]float64 `yaml:"theme_points"`
	Multipliers map[string]float64 `yaml:"multipliers"`
	Penalties   map[string]float64 `yaml:"penalties"`
}

// LamentConfig configures the sorrow-with-hope exemption.
type LamentConfig struct {
	Disabled          bool     `yaml:"disabled"`
	HopeThemes        []string `yaml:"hope_themes"`
	HopeConfidenceMin float64  `yaml:"hope_confidence_min"`
}

// FormationalConfig configures the no-redemptive-frame bulk penalty.
type FormationalConfig struct {
	Penalty                float64 `yaml:"penalty"`
	MinSevereConcerns      int     `yaml:"min_severe_concerns"`
	GospelCounterweightMin float64 `yaml:"gospel_counterweight_min"`
	NegativeSentimentMin   float64 `yaml:"negative_sentiment_min"`
}

// ThresholdsConfig holds the verdict score bands.
type ThresholdsConfig struct {
	VeryLow                    float64 `yaml:"very_low"`
	Low                        float64 `yaml:"low"`
	Medium                     float64 `yaml:"medium"`
	High                       float64 `yaml:"high"`
	CriticalOverrideConfidence float64 `yaml:"critical_override_confidence"`
}

// ChunkingConfig controls when and how lyrics are split.
type ChunkingConfig struct {
	MaxChars int `yaml:"max_chars"`
	Parallel int `yaml:"parallel"`
}

// ScriptureConfig configures the verse resolver.
type ScriptureConfig struct {
	DBPath string `yaml:"db_path"`
}

// StoreConfig configures result persistence.
type StoreConfig struct {
	DBPath string `yaml:"db_path"`
}

// BatchConfig configures the batch worker pool.
type BatchConfig struct {
	Workers int `yaml:"workers"`
}

// LoggingConfig configures the category file logger.
type LoggingConfig struct {
	Debug      bool   `yaml:"debug"`
	Level      string `yaml:"level"`
	Dir        string `yaml:"dir"`
	JSONFormat bool   `yaml:"json_format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	home := DefaultHome()
	return &Config{
		Provider: ProviderConfig{
			Kind:      "keyword",
			Timeout:   "60s",
			Sentiment: true,
		},
		Scoring: ScoringConfig{
			BaseScore:    50,
			SentimentMax: 10,
			EmotionMax:   8,
		},
		Thresholds: ThresholdsConfig{
			VeryLow:                    90,
			Low:                        75,
			Medium:                     50,
			High:                       25,
			CriticalOverrideConfidence: 0.8,
		},
		Chunking: ChunkingConfig{
			MaxChars: 4000,
			Parallel: 4,
		},
		Scripture: ScriptureConfig{
			DBPath: filepath.Join(home, "scripture.db"),
		},
		Store: StoreConfig{
			DBPath: filepath.Join(home, "results.db"),
		},
		Batch: BatchConfig{
			Workers: 4,
		},
		Logging: LoggingConfig{
			Level: "info",
			Dir:   filepath.Join(home, "logs"),
		},
	}
}

// DefaultHome returns the lyriclens state directory.
func DefaultHome() string {
	if dir := os.Getenv("LYRICLENS_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lyriclens"
	}
	return filepath.Join(home, ".lyriclens")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(DefaultHome(), "config.yaml")
}

// Load reads the config file at path (missing file means defaults), merges
// environment overrides on top, and validates.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field invariants the core depends on.
func (c *Config) Validate() error {
	switch c.Provider.Kind {
	case "keyword", "openai", "gemini":
	default:
		return fmt.Errorf("unknown provider kind %q", c.Provider.Kind)
	}
	if _, err := c.Weights(); err != nil {
		return err
	}
	if err := c.AnalysisThresholds().Validate(); err != nil {
		return err
	}
	if c.Batch.Workers < 0 {
		return fmt.Errorf("batch workers must be >= 0")
	}
	return nil
}

// Weights builds the analysis weighting table from the config overrides.
func (c *Config) Weights() (*analysis.Weights, error) {
	var mults map[analysis.ThemeCategory]float64
	if len(c.Scoring.Multipliers) > 0 {
		mults = make(map[analysis.ThemeCategory]float64, len(c.Scoring.Multipliers))
		for k, v := range c.Scoring.Multipliers {
			mults[analysis.ThemeCategory(k)] = v
		}
	}
	var pens map[analysis.Severity]float64
	if len(c.Scoring.Penalties) > 0 {
		pens = make(map[analysis.Severity]float64, len(c.Scoring.Penalties))
		for k, v := range c.Scoring.Penalties {
			pens[analysis.Severity(k)] = v
		}
	}
	return analysis.NewWeights(c.Scoring.ThemePoints, mults, pens)
}

// Policy builds the score policy, filling unset knobs from the defaults.
func (c *Config) Policy() analysis.ScorePolicy {
	p := analysis.DefaultScorePolicy()
	if c.Scoring.BaseScore != 0 {
		p.BaseScore = c.Scoring.BaseScore
	}
	if c.Scoring.SentimentMax != 0 {
		p.SentimentMax = c.Scoring.SentimentMax
	}
	if c.Scoring.EmotionMax != 0 {
		p.EmotionMax = c.Scoring.EmotionMax
	}
	if len(c.Scoring.NegativeEmotions) > 0 {
		p.NegativeEmotions = c.Scoring.NegativeEmotions
	}
	p.Lament.Enabled = !c.Scoring.Lament.Disabled
	if len(c.Scoring.Lament.HopeThemes) > 0 {
		p.Lament.HopeThemes = c.Scoring.Lament.HopeThemes
	}
	if c.Scoring.Lament.HopeConfidenceMin != 0 {
		p.Lament.HopeConfidenceMin = c.Scoring.Lament.HopeConfidenceMin
	}
	if c.Scoring.Formational.Penalty != 0 {
		p.Formational.Penalty = c.Scoring.Formational.Penalty
	}
	if c.Scoring.Formational.MinSevereConcerns != 0 {
		p.Formational.MinSevereConcerns = c.Scoring.Formational.MinSevereConcerns
	}
	if c.Scoring.Formational.GospelCounterweightMin != 0 {
		p.Formational.GospelCounterweightMin = c.Scoring.Formational.GospelCounterweightMin
	}
	if c.Scoring.Formational.NegativeSentimentMin != 0 {
		p.Formational.NegativeSentimentMin = c.Scoring.Formational.NegativeSentimentMin
	}
	return p
}

// AnalysisThresholds builds the verdict thresholds.
func (c *Config) AnalysisThresholds() analysis.Thresholds {
	t := analysis.DefaultThresholds()
	if c.Thresholds.VeryLow != 0 {
		t.VeryLow = c.Thresholds.VeryLow
	}
	if c.Thresholds.Low != 0 {
		t.Low = c.Thresholds.Low
	}
	if c.Thresholds.Medium != 0 {
		t.Medium = c.Thresholds.Medium
	}
	if c.Thresholds.High != 0 {
		t.High = c.Thresholds.High
	}
	if c.Thresholds.CriticalOverrideConfidence != 0 {
		t.CriticalOverrideConfidence = c.Thresholds.CriticalOverrideConfidence
	}
	return t
}
