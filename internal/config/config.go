// Package config provides configuration management for the Stockcast service.
package config

import "time"

// Config represents the complete application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app" validate:"required"`
	MarketData MarketDataConfig `mapstructure:"market_data" validate:"required"`
	Forecast   ForecastConfig   `mapstructure:"forecast" validate:"required"`
	Model      ModelConfig      `mapstructure:"model" validate:"required"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Metrics    MetricsConfig    `mapstructure:"metrics" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// MarketDataConfig represents the external market-data source configuration
type MarketDataConfig struct {
	BaseURL            string  `mapstructure:"base_url" validate:"required,url"`
	TimeoutSeconds     int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	MaxRetries         int     `mapstructure:"max_retries" validate:"gte=0,lte=10"`
	RetryWaitMinMillis int     `mapstructure:"retry_wait_min_millis" validate:"required,gt=0"`
	RetryWaitMaxMillis int     `mapstructure:"retry_wait_max_millis" validate:"required,gt=0"`
	RateLimit          float64 `mapstructure:"rate_limit" validate:"required,gt=0"`
	MinBars            int     `mapstructure:"min_bars" validate:"required,gt=0"`
	SyntheticSeed      int64   `mapstructure:"synthetic_seed"`
}

// ForecastConfig represents forecast pipeline configuration
type ForecastConfig struct {
	DefaultRange string `mapstructure:"default_range" validate:"required,daterange"`
	MinRows      int    `mapstructure:"min_rows" validate:"required,gte=10"`
	TrainRatio   float64 `mapstructure:"train_ratio" validate:"required,gt=0,lt=1"`
}

// ModelConfig represents regressor hyperparameters. These are process-wide
// constructor inputs; fitted instances are always per request.
type ModelConfig struct {
	ForestTrees    int   `mapstructure:"forest_trees" validate:"required,gt=0"`
	ForestMaxDepth int   `mapstructure:"forest_max_depth" validate:"required,gt=0"`
	ForestSeed     int64 `mapstructure:"forest_seed"`
}

// CacheConfig represents the optional forecast-result cache
type CacheConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	TTLSeconds int  `mapstructure:"ttl_seconds" validate:"omitempty,gt=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// RequestTimeout returns the market-data request timeout as a duration
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.MarketData.TimeoutSeconds) * time.Second
}

// CacheTTL returns the forecast-result cache TTL as a duration
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}
