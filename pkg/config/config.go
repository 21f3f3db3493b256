// Package config loads and validates the pipeline configuration from YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/VIJAYANANDANJM/Disaster-Tweets-MultiClass-Classifier/pkg/labels"
)

// Config is the root configuration for the classification pipeline.
type Config struct {
	Model       ModelConfig       `yaml:"model" validate:"required"`
	EntityModel EntityModelConfig `yaml:"entity_model"`
	Extraction  ExtractionConfig  `yaml:"extraction"`
	Metrics     MetricsConfig     `yaml:"metrics"`
}

// ModelConfig locates the classifier artifacts. Weights and tokenizer are
// loaded together at startup; compatibility between them is verified at
// load time, not assumed.
type ModelConfig struct {
	ModelPath         string `yaml:"model_path" validate:"required"`
	TokenizerPath     string `yaml:"tokenizer_path" validate:"required"`
	MaxSequenceLength int    `yaml:"max_sequence_length" validate:"gte=8,lte=512"`
	UseCPU            bool   `yaml:"use_cpu"`
}

// EntityModelConfig locates the optional NER model. An empty ModelPath
// disables entity recognition; location extraction then runs in the
// rule-based fallback mode.
type EntityModelConfig struct {
	ModelPath string `yaml:"model_path"`
	UseCPU    bool   `yaml:"use_cpu"`
}

// ExtractionConfig holds the actionable-label policy table and vocabulary
// extensions for the rule-based extractors.
type ExtractionConfig struct {
	// ActionableLabels lists canonical label names for which structured
	// extraction runs. Labels outside this set yield an empty record.
	ActionableLabels    []string `yaml:"actionable_labels" validate:"required,min=1,dive,required"`
	ExtraNeedsKeywords  []string `yaml:"extra_needs_keywords"`
	ExtraDamageKeywords []string `yaml:"extra_damage_keywords"`
	ExtraStatusWords    []string `yaml:"extra_status_words"`
	ExtraPlaceWords     []string `yaml:"extra_place_words"`
}

// MetricsConfig controls the optional Prometheus listener.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port" validate:"omitempty,gte=1,lte=65535"`
}

var validate = validator.New()

// Default returns the built-in configuration defaults.
func Default() *Config {
	return &Config{
		Model: ModelConfig{
			MaxSequenceLength: 128,
			UseCPU:            true,
		},
		Extraction: ExtractionConfig{
			ActionableLabels: []string{
				labels.AffectedIndividuals.Name(),
				labels.InfrastructureAndUtilityDamage.Name(),
				labels.RescueVolunteeringOrDonation.Name(),
			},
		},
		Metrics: MetricsConfig{Port: 9190},
	}
}

// Parse reads and validates the YAML config file at path. Missing optional
// fields take the Default values.
func Parse(path string) (*Config, error) {
	// Resolve symlinks so config mounted through a symlinked directory works.
	resolved, _ := filepath.EvalSymlinks(path)
	if resolved == "" {
		resolved = path
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints and cross-field consistency.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := c.ActionableSet(); err != nil {
		return err
	}
	return nil
}

// ActionableSet resolves the configured actionable label names into a
// label-id set.
func (c *Config) ActionableSet() (map[labels.Label]bool, error) {
	set := make(map[labels.Label]bool, len(c.Extraction.ActionableLabels))
	for _, name := range c.Extraction.ActionableLabels {
		l, ok := labels.FromName(name)
		if !ok {
			return nil, fmt.Errorf("invalid config: unknown actionable label %q", name)
		}
		set[l] = true
	}
	return set, nil
}
