// Package config holds the simulation constants and their YAML overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the root configuration structure.
type Config struct {
	Capacity          int           `yaml:"capacity"`
	Initial           *int          `yaml:"initial,omitempty"` // nil = start full
	ReplenishInterval time.Duration `yaml:"replenish_interval"`
	Duration          time.Duration `yaml:"simulation_duration"`
	Collectors        int           `yaml:"collectors"`
	SleepMin          time.Duration `yaml:"collector_sleep_min"`
	SleepMax          time.Duration `yaml:"collector_sleep_max"`
	StatusInterval    time.Duration `yaml:"status_interval"` // 0 disables the status line
	MaxAttempts       int           `yaml:"max_attempts"`    // per hunter, 0 = unlimited
}

// Default returns the compiled-in configuration.
func Default() *Config {
	return &Config{
		Capacity:          10,
		ReplenishInterval: 2 * time.Second,
		Duration:          300 * time.Second,
		Collectors:        5,
		SleepMin:          100 * time.Millisecond,
		SleepMax:          500 * time.Millisecond,
	}
}

// InitialCount returns the starting wallet count.
func (c *Config) InitialCount() int {
	if c.Initial == nil {
		return c.Capacity
	}
	return *c.Initial
}

// Validate checks the configuration for values the simulation cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Capacity < 1:
		return fmt.Errorf("%w: capacity must be >= 1, got %d", ErrInvalidConfig, c.Capacity)
	case c.InitialCount() < 0 || c.InitialCount() > c.Capacity:
		return fmt.Errorf("%w: initial must be within [0, %d], got %d", ErrInvalidConfig, c.Capacity, c.InitialCount())
	case c.Collectors < 1:
		return fmt.Errorf("%w: collectors must be >= 1, got %d", ErrInvalidConfig, c.Collectors)
	case c.ReplenishInterval <= 0:
		return fmt.Errorf("%w: replenish_interval must be positive, got %v", ErrInvalidConfig, c.ReplenishInterval)
	case c.Duration <= 0:
		return fmt.Errorf("%w: simulation_duration must be positive, got %v", ErrInvalidConfig, c.Duration)
	case c.SleepMin <= 0:
		return fmt.Errorf("%w: collector_sleep_min must be positive, got %v", ErrInvalidConfig, c.SleepMin)
	case c.SleepMin > c.SleepMax:
		return fmt.Errorf("%w: collector_sleep_min %v exceeds collector_sleep_max %v", ErrInvalidConfig, c.SleepMin, c.SleepMax)
	case c.StatusInterval < 0:
		return fmt.Errorf("%w: status_interval must not be negative, got %v", ErrInvalidConfig, c.StatusInterval)
	case c.MaxAttempts < 0:
		return fmt.Errorf("%w: max_attempts must not be negative, got %d", ErrInvalidConfig, c.MaxAttempts)
	}
	return nil
}

// LoadConfig reads a YAML configuration file on top of Default.
// Keys missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}
