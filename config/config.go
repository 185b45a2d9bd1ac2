// Package config loads combustion settings from a YAML file and the environment.
//
// Precedence, lowest first: Default(), the YAML file, COMBUSTION_* variables.
//
//	log_level: debug
//	training_delay: 2.5s
//	prediction_delay: 1s
//	evaluator: trained   # simulated | trained
//	scorer: heuristic    # heuristic | trained
//	seed: 42
//	folds: 5
//	language: ru         # en | ru
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	scigoErrors "github.com/ezoic/combustion/pkg/errors"
)

// Evaluator kinds.
const (
	EvaluatorSimulated = "simulated"
	EvaluatorTrained   = "trained"
)

// Scorer kinds.
const (
	ScorerHeuristic = "heuristic"
	ScorerTrained   = "trained"
)

// Config holds the runtime settings.
type Config struct {
	LogLevel        string        `yaml:"log_level"`
	TrainingDelay   time.Duration `yaml:"training_delay"`
	PredictionDelay time.Duration `yaml:"prediction_delay"`
	Evaluator       string        `yaml:"evaluator"`
	Scorer          string        `yaml:"scorer"`
	Seed            uint64        `yaml:"seed"`
	Folds           int           `yaml:"folds"`
	Language        string        `yaml:"language"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:        "info",
		TrainingDelay:   2500 * time.Millisecond,
		PredictionDelay: time.Second,
		Evaluator:       EvaluatorSimulated,
		Scorer:          ScorerHeuristic,
		Seed:            42,
		Folds:           5,
		Language:        "en",
	}
}

// Load reads path (skipped when empty), applies environment overrides and
// validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, scigoErrors.Wrapf(err, "failed to read config %s", path)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, scigoErrors.Wrapf(err, "failed to parse config %s", path)
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// ApplyEnv overrides fields from COMBUSTION_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("COMBUSTION_LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := lookup("COMBUSTION_EVALUATOR"); ok {
		c.Evaluator = v
	}
	if v, ok := lookup("COMBUSTION_SCORER"); ok {
		c.Scorer = v
	}
	if v, ok := lookup("COMBUSTION_LANGUAGE"); ok {
		c.Language = v
	}
	if v, ok := lookup("COMBUSTION_TRAINING_DELAY"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return scigoErrors.Wrap(err, "COMBUSTION_TRAINING_DELAY")
		}
		c.TrainingDelay = d
	}
	if v, ok := lookup("COMBUSTION_PREDICTION_DELAY"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return scigoErrors.Wrap(err, "COMBUSTION_PREDICTION_DELAY")
		}
		c.PredictionDelay = d
	}
	if v, ok := lookup("COMBUSTION_SEED"); ok {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return scigoErrors.Wrap(err, "COMBUSTION_SEED")
		}
		c.Seed = seed
	}
	if v, ok := lookup("COMBUSTION_FOLDS"); ok {
		folds, err := strconv.Atoi(v)
		if err != nil {
			return scigoErrors.Wrap(err, "COMBUSTION_FOLDS")
		}
		c.Folds = folds
	}
	return nil
}

// Validate checks enumerations and ranges.
func (c *Config) Validate() error {
	c.Evaluator = strings.ToLower(strings.TrimSpace(c.Evaluator))
	c.Scorer = strings.ToLower(strings.TrimSpace(c.Scorer))

	switch c.Evaluator {
	case EvaluatorSimulated, EvaluatorTrained:
	default:
		return scigoErrors.NewValidationError("evaluator", fmt.Sprintf("must be %q or %q", EvaluatorSimulated, EvaluatorTrained), c.Evaluator)
	}
	switch c.Scorer {
	case ScorerHeuristic, ScorerTrained:
	default:
		return scigoErrors.NewValidationError("scorer", fmt.Sprintf("must be %q or %q", ScorerHeuristic, ScorerTrained), c.Scorer)
	}
	if c.TrainingDelay < 0 {
		return scigoErrors.NewValidationError("training_delay", "must not be negative", c.TrainingDelay)
	}
	if c.PredictionDelay < 0 {
		return scigoErrors.NewValidationError("prediction_delay", "must not be negative", c.PredictionDelay)
	}
	if c.Evaluator == EvaluatorTrained && c.Folds < 2 {
		return scigoErrors.NewValidationError("folds", "must be at least 2", c.Folds)
	}
	switch strings.ToLower(strings.TrimSpace(c.Language)) {
	case "", "en", "ru":
	default:
		return scigoErrors.NewValidationError("language", "supported languages are en and ru", c.Language)
	}
	return nil
}
