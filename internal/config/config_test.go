package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := LoadWithDefaults(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "stockcast", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "3months", cfg.Forecast.DefaultRange)
	assert.Equal(t, 100, cfg.Model.ForestTrees)
	assert.Equal(t, int64(42), cfg.Model.ForestSeed)
	assert.False(t, cfg.Cache.Enabled)

	require.NoError(t, Validate(cfg))
}

func TestLoadExpandsEnvironmentVariables(t *testing.T) {
	os.Setenv("TEST_MARKET_URL", "https://example.com")
	defer os.Unsetenv("TEST_MARKET_URL")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
app:
  name: stockcast
  environment: development
  log_level: debug
market_data:
  base_url: ${TEST_MARKET_URL}
  timeout_seconds: 5
  max_retries: 2
  retry_wait_min_millis: 50
  retry_wait_max_millis: 500
  rate_limit: 2.0
  min_bars: 20
forecast:
  default_range: 1month
  min_rows: 30
  train_ratio: 0.8
model:
  forest_trees: 10
  forest_max_depth: 5
  forest_seed: 7
metrics:
  enabled: true
  port: 9090
  path: /metrics
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", cfg.MarketData.BaseURL)
	assert.Equal(t, "1month", cfg.Forecast.DefaultRange)
	require.NoError(t, Validate(cfg))
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad environment", func(c *Config) { c.App.Environment = "qa" }},
		{"bad log level", func(c *Config) { c.App.LogLevel = "verbose" }},
		{"bad range token", func(c *Config) { c.Forecast.DefaultRange = "2weeks" }},
		{"inverted retry waits", func(c *Config) {
			c.MarketData.RetryWaitMinMillis = 5000
			c.MarketData.RetryWaitMaxMillis = 100
		}},
		{"cache enabled without ttl", func(c *Config) {
			c.Cache.Enabled = true
			c.Cache.TTLSeconds = 0
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadWithDefaults(filepath.Join(t.TempDir(), "missing.yaml"))
			require.NoError(t, err)
			tt.mutate(cfg)
			assert.Error(t, Validate(cfg))
		})
	}
}
