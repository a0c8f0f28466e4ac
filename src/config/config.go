// Package config holds the run configuration. A Config is loaded once,
// validated once, and passed by value through the pipeline entry point;
// nothing in the engine reads ambient state.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ResearchLuxembourg/restimator/src/nowcast"
)

// GridConfig bounds the candidate-R grid.
type GridConfig struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Step float64 `yaml:"step"`
}

// NowcastConfig selects the tail-correction policy.
type NowcastConfig struct {
	Policy string `yaml:"policy"`
	// Window is how many trailing days are considered right-censored.
	Window int `yaml:"window"`
	// Factors are the per-lag inflation multipliers, oldest lag first.
	// Required (length == Window) for the inflate policy, ignored
	// otherwise.
	Factors []float64 `yaml:"factors"`
}

// Config is the full set of model constants for one run.
type Config struct {
	// SerialInterval is the mean generation time of the disease in days.
	SerialInterval float64    `yaml:"serial_interval"`
	Grid           GridConfig `yaml:"grid"`
	// SmoothingWindow is the trailing rolling-mean width in days.
	SmoothingWindow int `yaml:"smoothing_window"`
	// ProcessSigma is the day-to-day Gaussian drift of R. Larger values
	// track changes faster at the cost of noisier estimates.
	ProcessSigma float64       `yaml:"process_sigma"`
	Nowcast      NowcastConfig `yaml:"nowcast"`
}

// Default returns the deployment defaults: SI 4 days, grid 0.01..10 at
// 0.01, 7-day smoothing, sigma 0.15, 3 provisional tail days.
func Default() Config {
	return Config{
		SerialInterval:  4.0,
		Grid:            GridConfig{Min: 0.01, Max: 10.0, Step: 0.01},
		SmoothingWindow: 7,
		ProcessSigma:    0.15,
		Nowcast: NowcastConfig{
			Policy: string(nowcast.PolicyFlag),
			Window: 3,
		},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults untouched.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects an unusable configuration. Fatal at startup: no day
// is processed with a config that fails here.
func (c Config) Validate() error {
	if c.SerialInterval <= 0 {
		return fmt.Errorf("serial_interval must be positive, got %g", c.SerialInterval)
	}
	if c.Grid.Step <= 0 || c.Grid.Max < c.Grid.Min || c.Grid.Min < 0 {
		return fmt.Errorf("invalid R grid: min=%g max=%g step=%g", c.Grid.Min, c.Grid.Max, c.Grid.Step)
	}
	if c.SmoothingWindow < 1 {
		return fmt.Errorf("smoothing_window must be >= 1, got %d", c.SmoothingWindow)
	}
	if c.ProcessSigma <= 0 {
		return fmt.Errorf("process_sigma must be positive, got %g", c.ProcessSigma)
	}
	policy, err := nowcast.ParsePolicy(c.Nowcast.Policy)
	if err != nil {
		return err
	}
	if c.Nowcast.Window < 0 {
		return fmt.Errorf("nowcast window must be >= 0, got %d", c.Nowcast.Window)
	}
	if policy == nowcast.PolicyInflate && len(c.Nowcast.Factors) != c.Nowcast.Window {
		return fmt.Errorf("nowcast inflate policy needs %d factors, got %d",
			c.Nowcast.Window, len(c.Nowcast.Factors))
	}
	return nil
}
