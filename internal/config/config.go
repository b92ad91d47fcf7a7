// Package config holds the settings of the navmesh command: mesh building
// defaults, logging and debug rendering. Values come from defaults, then an
// optional YAML file, then command line flags.
package config

import (
	"os"
	"path/filepath"

	"github.com/osuushi/navmesh/internal/logger"
	"github.com/osuushi/navmesh/triangulate"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds all settings.
type Config struct {
	Mesh    MeshConfig    `yaml:"mesh"`
	Logging LoggingConfig `yaml:"logging"`
	Debug   DebugConfig   `yaml:"debug"`
}

// MeshConfig holds mesh building settings.
type MeshConfig struct {
	CellSize int64  `yaml:"cell_size"` // Spatial grid cell size, in floor plan units
	Strategy string `yaml:"strategy"`  // "delaunay" or "earclip"
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// DebugConfig holds debug rendering settings.
type DebugConfig struct {
	DrawScale float64 `yaml:"draw_scale"` // Pixels per floor plan unit
	Preview   bool    `yaml:"preview"`    // Print rendered images to the terminal
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Mesh: MeshConfig{
			CellSize: 64,
			Strategy: triangulate.ConstrainedDelaunay.String(),
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Debug: DebugConfig{
			DrawScale: 4,
			Preview:   false,
		},
	}
}

// Load returns the defaults overlaid with the YAML file at path. An empty path
// gives just the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if err := loadFromFile(cfg, path); err != nil {
		return nil, errors.Wrapf(err, "loading config from %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks the values that would otherwise only fail deep inside mesh
// building.
func (c *Config) Validate() error {
	if c.Mesh.CellSize <= 0 {
		return errors.Errorf("mesh.cell_size must be positive, got %d", c.Mesh.CellSize)
	}
	if _, err := c.Strategy(); err != nil {
		return err
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return errors.WithMessage(err, "logging.level")
	}
	if c.Debug.DrawScale <= 0 {
		return errors.Errorf("debug.draw_scale must be positive, got %g", c.Debug.DrawScale)
	}
	return nil
}

// Strategy parses the configured triangulation strategy.
func (c *Config) Strategy() (triangulate.Strategy, error) {
	return triangulate.ParseStrategy(c.Mesh.Strategy)
}

// SaveTo writes the config to a specific path.
func (c *Config) SaveTo(path string) error {
	// Create parent directory if needed
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
