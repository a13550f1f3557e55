// Package config loads the settings of the transship binary with viper.
//
// Values come from, in increasing priority: built-in defaults, an
// optional YAML file, and TRANSSHIP_* environment variables where dots
// in the key become underscores (TRANSSHIP_ANALYSIS_WORKERS=8).
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/katalvlaran/transship/flow"
	"github.com/katalvlaran/transship/logging"
	"github.com/katalvlaran/transship/sensitivity"
	"github.com/katalvlaran/transship/simplex"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TRANSSHIP"

// ErrInvalid wraps every Validate failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the full application configuration.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Solver   SolverConfig   `mapstructure:"solver"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Network  NetworkConfig  `mapstructure:"network"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// AppConfig holds process-wide settings.
type AppConfig struct {
	Name     string `mapstructure:"name"`
	LogLevel string `mapstructure:"log_level"`
}

// SolverConfig tunes the simplex backend.
type SolverConfig struct {
	Tolerance float64 `mapstructure:"tolerance"`
	Duals     bool    `mapstructure:"duals"`
}

// AnalysisConfig tunes the sensitivity and capacity runs.
type AnalysisConfig struct {
	Tolerance     float64                `mapstructure:"tolerance"`
	Workers       int                    `mapstructure:"workers"`
	Perturbation  float64                `mapstructure:"perturbation"`
	LowThreshold  float64                `mapstructure:"low_threshold"`
	HighThreshold float64                `mapstructure:"high_threshold"`
	LowerProbes   []float64              `mapstructure:"lower_probes"`
	UpperProbes   []float64              `mapstructure:"upper_probes"`
	Capacitated   bool                   `mapstructure:"capacitated"`
	Scenarios     []sensitivity.Scenario `mapstructure:"scenarios"`
}

// NetworkConfig selects the network definition. An empty File selects
// the embedded reference network.
type NetworkConfig struct {
	File string `mapstructure:"file"`
}

// MetricsConfig toggles solver instrumentation.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "transship")
	v.SetDefault("app.log_level", logging.DefaultLevel)

	v.SetDefault("solver.tolerance", simplex.DefaultTolerance)
	v.SetDefault("solver.duals", true)

	v.SetDefault("analysis.tolerance", flow.DefaultTolerance)
	v.SetDefault("analysis.workers", 4)
	v.SetDefault("analysis.perturbation", sensitivity.DefaultPerturbation)
	v.SetDefault("analysis.low_threshold", sensitivity.DefaultLowThreshold)
	v.SetDefault("analysis.high_threshold", sensitivity.DefaultHighThreshold)
	v.SetDefault("analysis.lower_probes", sensitivity.DefaultLowerProbes)
	v.SetDefault("analysis.upper_probes", sensitivity.DefaultUpperProbes)
	v.SetDefault("analysis.capacitated", false)
	scenarios := make([]map[string]any, 0, 3)
	for _, s := range sensitivity.DefaultScenarios() {
		scenarios = append(scenarios, map[string]any{"name": s.Name, "factor": s.Factor})
	}
	v.SetDefault("analysis.scenarios", scenarios)

	v.SetDefault("network.file", "")
	v.SetDefault("metrics.enabled", true)
}

// Load reads path (YAML) on top of the defaults and applies environment
// overrides. An empty path loads defaults and environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config failed: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks ranges and cross-field constraints.
func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("%w: app.name is required", ErrInvalid)
	}
	if _, err := logging.ParseLevel(c.App.LogLevel); err != nil {
		return fmt.Errorf("%w: app.log_level: %w", ErrInvalid, err)
	}
	if c.Solver.Tolerance <= 0 {
		return fmt.Errorf("%w: solver.tolerance must be positive", ErrInvalid)
	}

	a := c.Analysis
	if a.Tolerance <= 0 {
		return fmt.Errorf("%w: analysis.tolerance must be positive", ErrInvalid)
	}
	if a.Workers < 1 {
		return fmt.Errorf("%w: analysis.workers must be at least 1", ErrInvalid)
	}
	if a.Perturbation <= 0 || a.Perturbation >= 1 {
		return fmt.Errorf("%w: analysis.perturbation must lie in (0, 1)", ErrInvalid)
	}
	if a.LowThreshold < 0 || a.LowThreshold > a.HighThreshold {
		return fmt.Errorf("%w: analysis thresholds need 0 <= low <= high", ErrInvalid)
	}
	for _, m := range a.LowerProbes {
		if m <= 0 || m >= 1 {
			return fmt.Errorf("%w: analysis.lower_probes must lie in (0, 1), got %g", ErrInvalid, m)
		}
	}
	for _, m := range a.UpperProbes {
		if m <= 1 {
			return fmt.Errorf("%w: analysis.upper_probes must exceed 1, got %g", ErrInvalid, m)
		}
	}
	if err := sensitivity.ValidateScenarios(a.Scenarios); err != nil {
		return fmt.Errorf("%w: analysis.scenarios: %w", ErrInvalid, err)
	}

	return nil
}

// SolverOptions translates the solver section.
func (c *Config) SolverOptions() []simplex.Option {
	return []simplex.Option{
		simplex.WithTolerance(c.Solver.Tolerance),
		simplex.WithDuals(c.Solver.Duals),
	}
}

// AnalysisOptions translates the analysis section. Capacities are
// supplied by the caller since they belong to the network.
func (c *Config) AnalysisOptions() []sensitivity.Option {
	a := c.Analysis
	opts := []sensitivity.Option{
		sensitivity.WithTolerance(a.Tolerance),
		sensitivity.WithWorkers(a.Workers),
		sensitivity.WithPerturbation(a.Perturbation),
		sensitivity.WithThresholds(a.LowThreshold, a.HighThreshold),
	}
	if len(a.LowerProbes) > 0 || len(a.UpperProbes) > 0 {
		opts = append(opts, sensitivity.WithRangeProbes(a.LowerProbes, a.UpperProbes))
	}

	return opts
}
