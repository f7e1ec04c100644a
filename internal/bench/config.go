package bench

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Validate for unusable settings.
var ErrInvalidConfig = errors.New("invalid benchmark config")

// Config controls a benchmark run. Problem sizes are the perfect squares
// i*i for i = MinRoot, MinRoot+Step, ..., MaxRoot.
type Config struct {
	MinRoot int `yaml:"min_root"`
	MaxRoot int `yaml:"max_root"`
	Step    int `yaml:"step"`

	// Extent is the side of the square [0, Extent)² points are drawn from
	Extent float64 `yaml:"extent"`

	// Seed drives point generation and the randomized solver (0 = default stream)
	Seed int64 `yaml:"seed"`

	// BruteForceMax skips brute force for sizes above it (0 = never skip)
	BruteForceMax int `yaml:"brute_force_max"`

	// Verify checks that all solvers agree on the distance
	Verify bool `yaml:"verify"`
}

// DefaultConfig returns the full sweep n = 4 .. 160000
func DefaultConfig() Config {
	return Config{
		MinRoot: 2,
		MaxRoot: 400,
		Step:    1,
		Extent:  1000,
	}
}

// LoadConfig reads a YAML file over DefaultConfig and validates the result
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Validate checks ranges
func (c Config) Validate() error {
	if c.MinRoot < 2 {
		return fmt.Errorf("%w: min_root must be at least 2, got %d", ErrInvalidConfig, c.MinRoot)
	}
	if c.MaxRoot < c.MinRoot {
		return fmt.Errorf("%w: max_root %d is below min_root %d", ErrInvalidConfig, c.MaxRoot, c.MinRoot)
	}
	if c.Step < 1 {
		return fmt.Errorf("%w: step must be positive, got %d", ErrInvalidConfig, c.Step)
	}
	if !(c.Extent > 0) || math.IsInf(c.Extent, 1) {
		return fmt.Errorf("%w: extent must be positive and finite, got %v", ErrInvalidConfig, c.Extent)
	}
	if c.BruteForceMax < 0 {
		return fmt.Errorf("%w: brute_force_max must not be negative, got %d", ErrInvalidConfig, c.BruteForceMax)
	}
	return nil
}

// Sizes returns the point counts of the sweep in increasing order
func (c Config) Sizes() []int {
	var sizes []int
	for i := c.MinRoot; i <= c.MaxRoot; i += c.Step {
		sizes = append(sizes, i*i)
	}
	return sizes
}

// WriteYAML saves the config, e.g. to seed a config file from defaults
func (c Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}
