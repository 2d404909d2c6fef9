/*
PURPOSE:
  Defines the configuration structure and loading logic for Quad Runner.
  Adheres to "Config IS Code" philosophy: the defaults ARE the reference run.

REQUIREMENTS:
  User-specified:
  - The default run needs no file, no flags and no environment.
  - Tolerances and iteration limit: epsrel 1e-13, epsabs 0, limit 10000.
  - 500 plot samples per integrand.

  Implementation-discovered:
  - Needs to support YAML parsing.
  - Batches can be repeated for timing statistics.

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli, internal/engine
  - Dependencies: gopkg.in/yaml.v3 (standard for Go config)

ERROR HANDLING:
  - Returns explicit error if config file is invalid.
  - A missing default file is not an error (falls back to defaults).
  - Validate() rejects values quadrature or plotting cannot use.

IMPLEMENTATION RULES:
  - Config struct tags should support yaml.
  - CLI flags override file values; file values override defaults.

USAGE:
  cfg, err := config.Load("quad_runner.yaml")

SELF-HEALING INSTRUCTIONS:
  - If new fields are needed, add to Config struct, DefaultConfig() and Validate().

RELATED FILES:
  - internal/cli/run.go

MAINTENANCE:
  - Update when adding new tuning parameters.
*/

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/daryltucker/quad-runner/internal/integrand"
	"github.com/daryltucker/quad-runner/internal/quadrature"
)

// Config represents the full configuration for Quad Runner.
type Config struct {
	// Integrands selects and orders the integrands to run. Empty means all.
	Integrands []string `yaml:"integrands"`

	AbsTol   float64 `yaml:"epsabs"`
	RelTol   float64 `yaml:"epsrel"`
	Limit    int     `yaml:"limit"`
	MaxWidth float64 `yaml:"max_width"`
	// Breakpoints passes each integrand's known discontinuities to quadrature.
	Breakpoints bool `yaml:"breakpoints"`

	// Repeat runs the timed batch this many times.
	Repeat int `yaml:"repeat"`

	Plot    bool   `yaml:"plot"`
	PlotDir string `yaml:"plot_dir"`
	Samples int    `yaml:"samples"`

	// OutputDir enables CSV/JSON result files when set.
	OutputDir string `yaml:"output_dir"`

	LogLevel string `yaml:"log_level"`
}

// DefaultFiles are searched, in order, when no config path is given.
var DefaultFiles = []string{"quad_runner.yaml", "quad-runner.yaml"}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	opts := quadrature.DefaultOptions()
	return &Config{
		Integrands: integrand.Names(),
		AbsTol:     opts.AbsTol,
		RelTol:     opts.RelTol,
		Limit:      opts.Limit,
		Repeat:     1,
		Plot:       true,
		PlotDir:    "plots",
		Samples:    500,
		LogLevel:   "info",
	}
}

// Load reads configuration from a file.
// If path is specified, it attempts to load that file.
// If path is empty, it searches DefaultFiles in order.
// If no file found, returns default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
	} else {
		found := false
		for _, name := range DefaultFiles {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name
				found = true
				break
			}
		}
		if !found {
			return cfg, nil
		}
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// Options converts the tolerance settings into quadrature options.
func (c *Config) Options() quadrature.Options {
	return quadrature.Options{
		AbsTol:   c.AbsTol,
		RelTol:   c.RelTol,
		Limit:    c.Limit,
		MaxWidth: c.MaxWidth,
	}
}

// Validate checks the configuration for values the run cannot use.
func (c *Config) Validate() error {
	if err := c.Options().Validate(); err != nil {
		return err
	}
	if c.Repeat < 1 {
		return fmt.Errorf("repeat must be at least 1, got %d", c.Repeat)
	}
	if c.Plot && c.Samples < 2 {
		return fmt.Errorf("samples must be at least 2, got %d", c.Samples)
	}
	if c.Plot && c.PlotDir == "" {
		return fmt.Errorf("plot_dir must be set when plotting is enabled")
	}
	if _, err := integrand.Select(c.Integrands); err != nil {
		return err
	}
	return nil
}
