package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/stockcast/internal/config"
	"github.com/yourusername/stockcast/internal/features"
	"github.com/yourusername/stockcast/internal/logger"
	"github.com/yourusername/stockcast/internal/marketdata"
	"github.com/yourusername/stockcast/internal/metrics"
	"github.com/yourusername/stockcast/internal/ml"
	"github.com/yourusername/stockcast/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	symbol     string
	dateRange  string
	cfg        *config.Config
	appLogger  *logrus.Logger
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to configuration file (defaults apply when omitted)")
	rootCmd.Flags().StringVarP(&symbol, "symbol", "s", "", "Stock symbol to forecast")
	rootCmd.Flags().StringVarP(&dateRange, "range", "r", "", "Date range: 1month, 3months, or 1year")
	rootCmd.MarkFlagRequired("symbol")
}

var rootCmd = &cobra.Command{
	Use:     "forecast",
	Short:   "Forecast stock prices from daily bars",
	Long:    `Fetches daily bars for a symbol, trains random forest and linear regression models on derived features, and prints the forecast as JSON.`,
	Version: fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadWithDefaults(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		appLogger = logger.New(cfg.App.LogLevel, cfg.App.Environment)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runForecast()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func runForecast() error {
	if dateRange == "" {
		dateRange = cfg.Forecast.DefaultRange
	}

	if cfg.Metrics.Enabled {
		serveMetrics()
	}

	svc := buildService()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := svc.Forecast(ctx, symbol, dateRange)
	if err != nil {
		return fmt.Errorf("forecast failed: %w", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}

func buildService() *service.ForecastService {
	httpClient := marketdata.NewRateLimitedHTTPClient(marketdata.HTTPClientConfig{
		Timeout:      cfg.RequestTimeout(),
		MaxRetries:   cfg.MarketData.MaxRetries,
		RetryWaitMin: time.Duration(cfg.MarketData.RetryWaitMinMillis) * time.Millisecond,
		RetryWaitMax: time.Duration(cfg.MarketData.RetryWaitMaxMillis) * time.Millisecond,
		RateLimit:    cfg.MarketData.RateLimit,
	}, nil)
	yahoo := marketdata.NewYahooClient(httpClient, cfg.MarketData.BaseURL, nil)

	provider := marketdata.NewProvider(yahoo, marketdata.ProviderConfig{
		MinBars:       cfg.MarketData.MinBars,
		SyntheticSeed: cfg.MarketData.SyntheticSeed,
	}, appLogger)

	cacheTTL := time.Duration(0)
	if cfg.Cache.Enabled {
		cacheTTL = cfg.CacheTTL()
	}

	return service.NewForecastService(provider, service.ForecastConfig{
		Builder: features.BuilderConfig{
			MinRows:    cfg.Forecast.MinRows,
			TrainRatio: cfg.Forecast.TrainRatio,
		},
		Forest: ml.ForestConfig{
			Trees:    cfg.Model.ForestTrees,
			MaxDepth: cfg.Model.ForestMaxDepth,
			Seed:     cfg.Model.ForestSeed,
		},
		CacheTTL: cacheTTL,
	}, appLogger)
}

// serveMetrics exposes the Prometheus endpoint for the lifetime of the run.
func serveMetrics() {
	mux := http.NewServeMux()
	mux.Handle(cfg.Metrics.Path, metrics.Handler())
	addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			appLogger.WithError(err).Warn("Metrics server stopped")
		}
	}()
}
