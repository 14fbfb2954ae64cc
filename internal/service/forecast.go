// Package service orchestrates the forecast pipeline: bar retrieval,
// indicator derivation, feature building, dual-model training, and result
// assembly.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/stockcast/internal/features"
	"github.com/yourusername/stockcast/internal/indicators"
	"github.com/yourusername/stockcast/internal/marketdata"
	"github.com/yourusername/stockcast/internal/metrics"
	"github.com/yourusername/stockcast/internal/ml"
	"github.com/yourusername/stockcast/internal/models"
)

// Pipeline stage names used in errors, logs, and failure metrics.
const (
	stageData       = "data"
	stageIndicators = "indicators"
	stageFeatures   = "features"
	stageTraining   = "training"
	stageAssembly   = "assembly"
)

// ForecastConfig tunes the pipeline.
type ForecastConfig struct {
	Builder  features.BuilderConfig
	Forest   ml.ForestConfig
	CacheTTL time.Duration // 0 disables the result cache
}

// ForecastService runs one stateless pipeline invocation per request.
// Model instances are constructed fresh for every call; only constructor
// hyperparameters are shared, so concurrent requests never touch common
// fitted state.
type ForecastService struct {
	provider *marketdata.Provider
	cfg      ForecastConfig
	cache    *cache.Cache
	logger   *logrus.Logger
}

// NewForecastService creates a forecast service over the given provider.
func NewForecastService(provider *marketdata.Provider, cfg ForecastConfig, logger *logrus.Logger) *ForecastService {
	if logger == nil {
		logger = logrus.New()
	}
	s := &ForecastService{
		provider: provider,
		cfg:      cfg,
		logger:   logger,
	}
	if cfg.CacheTTL > 0 {
		s.cache = cache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	}
	return s
}

// Forecast runs the full pipeline for one symbol and date-range token.
// It fails with models.ErrInsufficientData or models.ErrTraining for the
// contract failure modes; any other fault is re-raised as a PipelineError
// carrying the symbol and stage, never collapsed into an empty result.
func (s *ForecastService) Forecast(ctx context.Context, symbol, rangeToken string) (result *models.ForecastResult, err error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, models.ErrSymbolRequired
	}

	requestID := uuid.New()
	log := s.logger.WithFields(logrus.Fields{
		"request_id": requestID,
		"symbol":     symbol,
		"range":      rangeToken,
	})

	metrics.RecordForecastRequest()
	start := time.Now()
	defer func() {
		metrics.RecordPipelineDuration(time.Since(start).Seconds())
	}()

	if cached, ok := s.cachedResult(symbol, rangeToken); ok {
		metrics.RecordCacheHit()
		log.Debug("Forecast served from cache")
		return cached, nil
	}

	stage := stageData
	defer func() {
		if r := recover(); r != nil {
			err = models.NewPipelineError(symbol, stage, fmt.Errorf("panic: %v", r))
			result = nil
		}
		if err != nil {
			metrics.RecordForecastFailure(stage)
			log.WithField("stage", stage).WithError(err).Error("Forecast pipeline failed")
		}
	}()

	bars, err := s.provider.Fetch(ctx, symbol, rangeToken)
	if err != nil {
		return nil, s.classify(symbol, stage, err)
	}

	stage = stageIndicators
	indicatorBars := indicators.Compute(bars)

	stage = stageFeatures
	split, err := features.Build(indicatorBars, s.cfg.Builder)
	if err != nil {
		return nil, s.classify(symbol, stage, err)
	}

	stage = stageTraining
	trainer := ml.NewTrainer(s.cfg.Forest)
	trained, err := trainer.Train(split)
	if err != nil {
		return nil, s.classify(symbol, stage, err)
	}

	stage = stageAssembly
	result = assembleResult(symbol, rangeToken, displayWindow(indicatorBars, rangeToken), trained)

	s.storeResult(symbol, rangeToken, result)
	log.WithFields(logrus.Fields{
		"bars":        len(bars),
		"train_rows":  len(split.Train),
		"test_rows":   len(split.Test),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("Forecast completed")

	return result, nil
}

// displayWindow trims the fetched series back to the requested range for
// the result; the warmup margin exists for the lookbacks, not the caller.
func displayWindow(bars []models.IndicatorBar, rangeToken string) []models.IndicatorBar {
	if len(bars) == 0 {
		return bars
	}
	cutoff := bars[len(bars)-1].Date.AddDate(0, 0, -marketdata.WindowDays(rangeToken))
	for i, bar := range bars {
		if bar.Date.After(cutoff) {
			return bars[i:]
		}
	}
	return bars
}

// classify passes the contract failure modes through untouched and wraps
// everything else with symbol and stage.
func (s *ForecastService) classify(symbol, stage string, err error) error {
	if errors.Is(err, models.ErrInsufficientData) || errors.Is(err, models.ErrTraining) {
		return err
	}
	return models.NewPipelineError(symbol, stage, err)
}

func cacheKey(symbol, rangeToken string) string {
	return symbol + "|" + rangeToken
}

func (s *ForecastService) cachedResult(symbol, rangeToken string) (*models.ForecastResult, bool) {
	if s.cache == nil {
		return nil, false
	}
	if v, found := s.cache.Get(cacheKey(symbol, rangeToken)); found {
		if result, ok := v.(*models.ForecastResult); ok {
			return result, true
		}
	}
	return nil, false
}

func (s *ForecastService) storeResult(symbol, rangeToken string, result *models.ForecastResult) {
	if s.cache == nil {
		return
	}
	s.cache.SetDefault(cacheKey(symbol, rangeToken), result)
}
