// Package config handles tool configuration loading.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmelnik/go-randomwalk-sss/pkg/sss"
)

// Config holds all ssswalk tool settings.
type Config struct {
	Walk     WalkConfig             `yaml:"walk"`
	Material sss.MaterialDescriptor `yaml:"material"`
	Logging  LoggingConfig          `yaml:"logging"`
}

// WalkConfig holds batch execution settings.
type WalkConfig struct {
	Samples  int     `yaml:"samples"`
	Workers  int     `yaml:"workers"`
	Seed     int64   `yaml:"seed"`
	Geometry string  `yaml:"geometry"` // "sphere" or "slab"
	Radius   float64 `yaml:"radius"`   // sphere radius
	Depth    float64 `yaml:"depth"`    // slab thickness
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Walk: WalkConfig{
			Samples:  10000,
			Workers:  0, // NumCPU
			Seed:     42,
			Geometry: "sphere",
			Radius:   1.0,
			Depth:    1.0,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration with priority: defaults < file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
