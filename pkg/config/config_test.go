package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clientsphere.yaml")
	body := "clustering:\n  k: 5\n  eps: 0.8\nlogging:\n  level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Clustering.K)
	assert.Equal(t, 0.8, cfg.Clustering.Eps)
	assert.Equal(t, 5, cfg.Clustering.MinSamples, "unset keys keep defaults")
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("clustering: [1, 2"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CLIENTSPHERE_DB", "/tmp/x.db")
	t.Setenv("CLIENTSPHERE_EXPORT_CSV", "/tmp/x.csv")
	t.Setenv("CLIENTSPHERE_LOG_LEVEL", "warn")
	t.Setenv("CLIENTSPHERE_CHARTS_DIR", "/tmp/charts")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.db", cfg.Store.DatabasePath)
	assert.Equal(t, "/tmp/x.csv", cfg.Source.ExportCSV)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "/tmp/charts", cfg.Charts.Dir)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "clientsphere.yaml")
	cfg := DefaultConfig()
	cfg.Clustering.K = 4
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"k":        func(c *Config) { c.Clustering.K = 0 },
		"eps":      func(c *Config) { c.Clustering.Eps = 0 },
		"min":      func(c *Config) { c.Clustering.MinSamples = 0 },
		"max_iter": func(c *Config) { c.Clustering.MaxIter = 0 },
		"trees":    func(c *Config) { c.Importance.Trees = 0 },
		"split":    func(c *Config) { c.Importance.Criterion = "mse" },
		"level":    func(c *Config) { c.Logging.Level = "loud" },
		"format":   func(c *Config) { c.Logging.Format = "xml" },
		"no_db":    func(c *Config) { c.Store.DatabasePath = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
