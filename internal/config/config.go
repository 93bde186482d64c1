package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Punctuation modes.
const (
	PunctNone  = "none"
	PunctRules = "rules"
	PunctHTTP  = "http"
)

// AlignConfig tunes the merge engine.
type AlignConfig struct {
	Strict bool `yaml:"strict" toml:"strict"`
}

// SubtitleConfig tunes subtitle rendering.
type SubtitleConfig struct {
	Names     map[string]string `yaml:"names" toml:"names"`
	NamesFile string            `yaml:"names_file" toml:"names_file"`
}

// PunctConfig selects and configures the punctuation restorer.
type PunctConfig struct {
	Mode          string   `yaml:"mode" toml:"mode"`
	Language      string   `yaml:"language" toml:"language"`
	QuestionWords []string `yaml:"questions" toml:"questions"`
	Endpoint      string   `yaml:"endpoint" toml:"endpoint"`
	Timeout       int      `yaml:"timeout" toml:"timeout"` // seconds
	MaxRetries    int      `yaml:"max_retries" toml:"max_retries"`
	RatePerMin    int      `yaml:"rate_per_min" toml:"rate_per_min"`
}

// WorkerConfig bounds batch conversion.
type WorkerConfig struct {
	MaxConcurrent int `yaml:"max_concurrent" toml:"max_concurrent"`
	ProgressSec   int `yaml:"progress_interval" toml:"progress_interval"`
}

// AudioConfig controls audio extraction.
type AudioConfig struct {
	SampleRate int `yaml:"sample_rate" toml:"sample_rate"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level" toml:"level"`
}

// MetricsConfig names the Prometheus textfile to write on exit.
type MetricsConfig struct {
	File string `yaml:"file" toml:"file"`
}

// Config holds the full application configuration.
type Config struct {
	Align    AlignConfig    `yaml:"align" toml:"align"`
	Subtitle SubtitleConfig `yaml:"subtitle" toml:"subtitle"`
	Punct    PunctConfig    `yaml:"punct" toml:"punct"`
	Worker   WorkerConfig   `yaml:"worker" toml:"worker"`
	Audio    AudioConfig    `yaml:"audio" toml:"audio"`
	Logging  LoggingConfig  `yaml:"logging" toml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics" toml:"metrics"`
}

// Default returns a Config with hardcoded defaults.
func Default() *Config {
	return &Config{
		Punct: PunctConfig{
			Mode:       PunctNone,
			Language:   "en",
			Timeout:    30,
			MaxRetries: 3,
			RatePerMin: 60,
		},
		Worker: WorkerConfig{
			MaxConcurrent: 4,
			ProgressSec:   5,
		},
		Audio:   AudioConfig{SampleRate: 16000},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads a YAML or TOML file (chosen by extension) over the defaults
// and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", filepath.Ext(path))
	}

	if cfg.Subtitle.NamesFile != "" {
		names, err := LoadNames(cfg.Subtitle.NamesFile)
		if err != nil {
			return nil, err
		}
		cfg.Subtitle.Names = mergeNames(cfg.Subtitle.Names, names)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// LoadNames reads a flat speaker id to display name map from YAML or TOML.
func LoadNames(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read names file %s: %w", path, err)
	}
	names := make(map[string]string)
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		_, err = toml.Decode(string(data), &names)
	} else {
		err = yaml.Unmarshal(data, &names)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse names file %s: %w", path, err)
	}
	return names, nil
}

func mergeNames(base, extra map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(extra))
	for k, v := range extra {
		out[k] = v
	}
	for k, v := range base {
		out[k] = v
	}
	return out
}

// Validate performs validation of every section.
func (c *Config) Validate() error {
	if err := c.Punct.Validate(); err != nil {
		return fmt.Errorf("punct config: %w", err)
	}
	if err := c.Worker.Validate(); err != nil {
		return fmt.Errorf("worker config: %w", err)
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("audio config: sample_rate must be positive, got %d", c.Audio.SampleRate)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}
	return nil
}

// Validate validates punctuation configuration.
func (p *PunctConfig) Validate() error {
	switch p.Mode {
	case PunctNone, PunctRules:
	case PunctHTTP:
		if p.Endpoint == "" {
			return fmt.Errorf("endpoint is required for mode %q", p.Mode)
		}
	default:
		return fmt.Errorf("unknown mode %q", p.Mode)
	}
	if p.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative, got %d", p.Timeout)
	}
	if p.MaxRetries < 0 {
		return fmt.Errorf("max_retries must be non-negative, got %d", p.MaxRetries)
	}
	if p.RatePerMin < 0 {
		return fmt.Errorf("rate_per_min must be non-negative, got %d", p.RatePerMin)
	}
	return nil
}

// Validate validates worker configuration.
func (w *WorkerConfig) Validate() error {
	if w.MaxConcurrent < 1 {
		return fmt.Errorf("max_concurrent must be at least 1, got %d", w.MaxConcurrent)
	}
	if w.ProgressSec < 0 {
		return fmt.Errorf("progress_interval must be non-negative, got %d", w.ProgressSec)
	}
	return nil
}

// Validate validates logging configuration.
func (l *LoggingConfig) Validate() error {
	switch strings.ToLower(l.Level) {
	case "debug", "info", "warn", "error":
		return nil
	}
	return fmt.Errorf("invalid log level %q", l.Level)
}

// GetTimeoutDuration returns the punctuation request timeout.
func (p *PunctConfig) GetTimeoutDuration() time.Duration {
	return time.Duration(p.Timeout) * time.Second
}

// GetProgressInterval returns the minimum delay between progress reports.
func (w *WorkerConfig) GetProgressInterval() time.Duration {
	return time.Duration(w.ProgressSec) * time.Second
}
