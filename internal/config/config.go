// Package config provides unified configuration loading for followflee.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config contains all followflee configuration settings.
type Config struct {
	// Graph describes the regular graph the population lives on.
	Graph GraphConfig `json:"graph" yaml:"graph"`

	// Model holds the per-generation algorithm parameters.
	Model ModelConfig `json:"model" yaml:"model"`

	// Run controls the simulation schedule and initial population.
	Run RunConfig `json:"run" yaml:"run"`

	// Logging contains settings for operational and trace logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// GraphConfig describes the regular graph topology.
type GraphConfig struct {
	// Topology is "ring" (degree 2) or "torus" (degree 4).
	Topology string `json:"topology" yaml:"topology"`

	// Nodes is the ring size. Used only when Topology is "ring".
	Nodes int `json:"nodes,omitempty" yaml:"nodes,omitempty"`

	// Width and Height are the torus dimensions. Used only when
	// Topology is "torus".
	Width  int `json:"width,omitempty" yaml:"width,omitempty"`
	Height int `json:"height,omitempty" yaml:"height,omitempty"`
}

// ModelConfig holds the follow/flee model parameters.
type ModelConfig struct {
	// RepMode selects the replacement strategy: "simpleBD" or
	// "neighbourBD".
	RepMode string `json:"rep_mode" yaml:"rep_mode"`

	// RepRate is the fraction of the population replaced per
	// generation. Range: 0.0 to 1.0.
	RepRate float64 `json:"rep_rate" yaml:"rep_rate"`

	// StepsPerGen is the number of scan+move sub-steps each agent takes
	// per generation.
	StepsPerGen int `json:"steps_per_gen" yaml:"steps_per_gen"`
}

// RunConfig controls the simulation schedule and initial population.
type RunConfig struct {
	// Generations is the number of generations to run.
	Generations int `json:"generations" yaml:"generations"`

	// Seed initializes the shared pseudo-random source. The same seed
	// reproduces the same run exactly.
	Seed uint64 `json:"seed" yaml:"seed"`

	// CoopFraction is the fraction of nodes seeded as cooperators.
	CoopFraction float64 `json:"coop_fraction" yaml:"coop_fraction"`

	// DefectFraction is the fraction of nodes seeded as defectors.
	DefectFraction float64 `json:"defect_fraction" yaml:"defect_fraction"`
}

// LoggingConfig configures followflee's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or
	// "trace". "debug" enables generation tracing to
	// .followflee/generations.jsonl.
	Level string `json:"level" yaml:"level"`
}

// Default returns a Config with sensible defaults: a 30x30 torus, half
// cooperators and a quarter defectors, neighbour-biased replacement.
func Default() *Config {
	return &Config{
		Graph: GraphConfig{
			Topology: "torus",
			Width:    30,
			Height:   30,
		},
		Model: ModelConfig{
			RepMode:     "neighbourBD",
			RepRate:     0.1,
			StepsPerGen: 1,
		},
		Run: RunConfig{
			Generations:    100,
			Seed:           1,
			CoopFraction:   0.5,
			DefectFraction: 0.25,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the default location and environment
// variables. Order: defaults -> root/.followflee/config.yaml ->
// environment variables.
func Load(root string) (*Config, error) {
	config := Default()

	configPath := filepath.Join(root, ".followflee", "config.yaml")
	if _, statErr := os.Stat(configPath); statErr == nil {
		fileConfig, loadErr := LoadFromFile(configPath)
		if loadErr != nil {
			return nil, fmt.Errorf("loading config file: %w", loadErr)
		}
		config = fileConfig
	}

	applyEnvOverrides(config)

	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return config, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	switch c.Graph.Topology {
	case "ring":
		if c.Graph.Nodes < 3 {
			return fmt.Errorf("ring topology requires at least 3 nodes, got %d", c.Graph.Nodes)
		}
	case "torus":
		if c.Graph.Width < 3 || c.Graph.Height < 3 {
			return fmt.Errorf("torus topology requires dimensions of at least 3, got %dx%d",
				c.Graph.Width, c.Graph.Height)
		}
	default:
		return fmt.Errorf("invalid topology: %s (valid: ring, torus)", c.Graph.Topology)
	}

	validModes := map[string]bool{"simpleBD": true, "neighbourBD": true}
	if !validModes[c.Model.RepMode] {
		return fmt.Errorf("invalid rep_mode: %s (valid: simpleBD, neighbourBD)", c.Model.RepMode)
	}

	if c.Model.RepRate < 0 || c.Model.RepRate > 1 {
		return fmt.Errorf("rep_rate must be between 0 and 1, got %f", c.Model.RepRate)
	}

	if c.Model.StepsPerGen < 1 {
		return fmt.Errorf("steps_per_gen must be positive, got %d", c.Model.StepsPerGen)
	}

	if c.Run.Generations < 1 {
		return fmt.Errorf("generations must be positive, got %d", c.Run.Generations)
	}

	if c.Run.CoopFraction < 0 || c.Run.DefectFraction < 0 {
		return fmt.Errorf("population fractions must be non-negative, got coop=%f defect=%f",
			c.Run.CoopFraction, c.Run.DefectFraction)
	}
	if c.Run.CoopFraction+c.Run.DefectFraction > 1 {
		return fmt.Errorf("population fractions must sum to at most 1, got %f",
			c.Run.CoopFraction+c.Run.DefectFraction)
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("FOLLOWFLEE_REP_MODE"); v != "" {
		config.Model.RepMode = v
	}

	if v := os.Getenv("FOLLOWFLEE_REP_RATE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Model.RepRate = f
		}
	}

	if v := os.Getenv("FOLLOWFLEE_STEPS_PER_GEN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Model.StepsPerGen = n
		}
	}

	if v := os.Getenv("FOLLOWFLEE_GENERATIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Run.Generations = n
		}
	}

	if v := os.Getenv("FOLLOWFLEE_SEED"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			config.Run.Seed = n
		}
	}

	if v := os.Getenv("FOLLOWFLEE_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
}
