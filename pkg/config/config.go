// Package config loads ClientSphere settings from YAML with environment
// overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all ClientSphere configuration.
type Config struct {
	Store      StoreConfig      `yaml:"store"`
	Source     SourceConfig     `yaml:"source"`
	Clustering ClusteringConfig `yaml:"clustering"`
	Importance ImportanceConfig `yaml:"importance"`
	Charts     ChartsConfig     `yaml:"charts"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// StoreConfig configures the SQLite client store.
type StoreConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// SourceConfig configures the fallback dataset.
type SourceConfig struct {
	ExportCSV string `yaml:"export_csv"`
}

// ClusteringConfig holds the default clustering parameters.
type ClusteringConfig struct {
	K          int     `yaml:"k"`
	Seed       int64   `yaml:"seed"`
	MaxIter    int     `yaml:"max_iter"`
	NInit      int     `yaml:"n_init"`
	Eps        float64 `yaml:"eps"`
	MinSamples int     `yaml:"min_samples"`
}

// ImportanceConfig configures the random forest behind feature importance.
type ImportanceConfig struct {
	Trees     int    `yaml:"trees"`
	Seed      int64  `yaml:"seed"`
	Criterion string `yaml:"criterion"` // gini or entropy
}

// ChartsConfig configures PNG rendering.
type ChartsConfig struct {
	Dir         string  `yaml:"dir"`
	WidthInches float64 `yaml:"width_inches"`
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or console
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Store:  StoreConfig{DatabasePath: "data/clientsphere.db"},
		Source: SourceConfig{ExportCSV: "data/processed_clients.csv"},
		Clustering: ClusteringConfig{
			K:          3,
			Seed:       42,
			MaxIter:    300,
			NInit:      1,
			Eps:        0.5,
			MinSamples: 5,
		},
		Importance: ImportanceConfig{Trees: 200, Seed: 42, Criterion: "gini"},
		Charts:     ChartsConfig{Dir: "charts", WidthInches: 8},
		Logging:    LoggingConfig{Level: "info", Format: "json"},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if path := os.Getenv("CLIENTSPHERE_DB"); path != "" {
		c.Store.DatabasePath = path
	}
	if path := os.Getenv("CLIENTSPHERE_EXPORT_CSV"); path != "" {
		c.Source.ExportCSV = path
	}
	if level := os.Getenv("CLIENTSPHERE_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if dir := os.Getenv("CLIENTSPHERE_CHARTS_DIR"); dir != "" {
		c.Charts.Dir = dir
	}
}

var validLevels = []string{"debug", "info", "warn", "error"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Store.DatabasePath == "" {
		return fmt.Errorf("store.database_path is empty")
	}
	if c.Clustering.K < 1 {
		return fmt.Errorf("clustering.k must be >= 1, got %d", c.Clustering.K)
	}
	if c.Clustering.Eps <= 0 {
		return fmt.Errorf("clustering.eps must be > 0, got %g", c.Clustering.Eps)
	}
	if c.Clustering.MinSamples < 1 {
		return fmt.Errorf("clustering.min_samples must be >= 1, got %d", c.Clustering.MinSamples)
	}
	if c.Clustering.MaxIter < 1 || c.Clustering.NInit < 1 {
		return fmt.Errorf("clustering.max_iter and clustering.n_init must be >= 1")
	}
	if c.Importance.Trees < 1 {
		return fmt.Errorf("importance.trees must be >= 1, got %d", c.Importance.Trees)
	}
	if c.Importance.Criterion != "gini" && c.Importance.Criterion != "entropy" {
		return fmt.Errorf("invalid importance.criterion: %s (valid: gini, entropy)", c.Importance.Criterion)
	}

	valid := false
	for _, l := range validLevels {
		if c.Logging.Level == l {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.Logging.Level, validLevels)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("invalid log format: %s (valid: json, console)", c.Logging.Format)
	}
	return nil
}
