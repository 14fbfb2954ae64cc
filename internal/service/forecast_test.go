package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/stockcast/internal/features"
	"github.com/yourusername/stockcast/internal/marketdata"
	"github.com/yourusername/stockcast/internal/ml"
	"github.com/yourusername/stockcast/internal/models"
)

func fixedClock() time.Time {
	return time.Date(2024, 6, 14, 12, 0, 0, 0, time.UTC)
}

// downSource always fails, forcing the synthetic fallback.
type downSource struct{}

func (downSource) GetDailyBars(ctx context.Context, symbol string, windowDays int) ([]models.Bar, error) {
	return nil, errors.New("connection refused")
}

func (downSource) Name() string { return "down" }

// panicSource panics to exercise the pipeline boundary.
type panicSource struct{}

func (panicSource) GetDailyBars(ctx context.Context, symbol string, windowDays int) ([]models.Bar, error) {
	panic("quote feed corrupted")
}

func (panicSource) Name() string { return "panic" }

func newTestService(source marketdata.Source, cacheTTL time.Duration) *ForecastService {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	provider := marketdata.NewProvider(source, marketdata.ProviderConfig{
		SyntheticSeed: 42,
		Now:           fixedClock,
	}, log)

	return NewForecastService(provider, ForecastConfig{
		Builder:  features.BuilderConfig{MinRows: 30, TrainRatio: 0.8},
		Forest:   ml.ForestConfig{Trees: 15, MaxDepth: 6, Seed: 42},
		CacheTTL: cacheTTL,
	}, log)
}

func TestForecastEndToEnd(t *testing.T) {
	svc := newTestService(downSource{}, 0)

	result, err := svc.Forecast(context.Background(), "AAPL", "1month")
	require.NoError(t, err)

	// The displayed series covers the requested 30-day window.
	assert.GreaterOrEqual(t, len(result.Historical), 20)
	assert.LessOrEqual(t, len(result.Historical), 23)

	assert.Equal(t, "AAPL", result.Symbol)
	assert.Equal(t, "1month", result.DateRange)
	assert.Greater(t, result.CurrentPrice, 0.0)

	require.NotEmpty(t, result.Predictions.RandomForest)
	require.NotEmpty(t, result.Predictions.LinearRegression)
	assert.Len(t, result.Predictions.LinearRegression, len(result.Predictions.RandomForest))

	for _, m := range []models.ModelMetrics{
		result.ModelMetrics.RandomForest,
		result.ModelMetrics.LinearRegression,
	} {
		assert.GreaterOrEqual(t, m.RMSE, 0.0)
		assert.GreaterOrEqual(t, m.Accuracy, 0.0)
		assert.LessOrEqual(t, m.Accuracy, 100.0)
		assert.GreaterOrEqual(t, m.DirectionalAccuracy, 0.0)
		assert.LessOrEqual(t, m.DirectionalAccuracy, 100.0)
	}

	// Every moving average is defined for every displayed row.
	for i, bar := range result.Historical {
		assert.NotZero(t, bar.MA5, "ma5 missing at row %d", i)
		assert.NotZero(t, bar.MA10, "ma10 missing at row %d", i)
		assert.NotZero(t, bar.MA20, "ma20 missing at row %d", i)
	}
}

func TestForecastUnknownRangeTokenDefaults(t *testing.T) {
	svc := newTestService(downSource{}, 0)

	result, err := svc.Forecast(context.Background(), "AAPL", "bogus")
	require.NoError(t, err)
	assert.Equal(t, "bogus", result.DateRange)

	// The 90-day default window shows roughly 62-66 weekday bars.
	assert.GreaterOrEqual(t, len(result.Historical), 60)
	assert.LessOrEqual(t, len(result.Historical), 67)
}

func TestForecastDeterministicForSeed(t *testing.T) {
	first, err := newTestService(downSource{}, 0).Forecast(context.Background(), "AAPL", "1month")
	require.NoError(t, err)
	second, err := newTestService(downSource{}, 0).Forecast(context.Background(), "AAPL", "1month")
	require.NoError(t, err)

	assert.Equal(t, first.Historical, second.Historical)
	assert.Equal(t, first.Predictions.RandomForest, second.Predictions.RandomForest)
	assert.Equal(t, first.Predictions.LinearRegression, second.Predictions.LinearRegression)
}

func TestForecastEmptySymbolRejected(t *testing.T) {
	svc := newTestService(downSource{}, 0)

	_, err := svc.Forecast(context.Background(), "   ", "1month")
	assert.ErrorIs(t, err, models.ErrSymbolRequired)
}

func TestForecastSymbolNormalized(t *testing.T) {
	svc := newTestService(downSource{}, 0)

	result, err := svc.Forecast(context.Background(), " aapl ", "1month")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", result.Symbol)
}

func TestForecastPanicBecomesPipelineError(t *testing.T) {
	svc := newTestService(panicSource{}, 0)

	// The provider recovers source errors, so panic past it: a panicking
	// source escapes Fetch's error path and hits the service boundary.
	_, err := svc.Forecast(context.Background(), "AAPL", "1month")
	require.Error(t, err)

	var pipeErr *models.PipelineError
	require.ErrorAs(t, err, &pipeErr)
	assert.Equal(t, "AAPL", pipeErr.Symbol)
	assert.Equal(t, "data", pipeErr.Stage)
}

func TestForecastCacheServesRepeatCalls(t *testing.T) {
	svc := newTestService(downSource{}, time.Minute)

	first, err := svc.Forecast(context.Background(), "AAPL", "1month")
	require.NoError(t, err)
	second, err := svc.Forecast(context.Background(), "AAPL", "1month")
	require.NoError(t, err)
	assert.Same(t, first, second)

	// A different symbol must never see the cached result.
	other, err := svc.Forecast(context.Background(), "MSFT", "1month")
	require.NoError(t, err)
	assert.NotSame(t, first, other)
	assert.Equal(t, "MSFT", other.Symbol)
}

func TestDisplayWindowTrimsWarmup(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]models.IndicatorBar, 100)
	for i := range bars {
		bars[i] = models.IndicatorBar{Bar: models.Bar{Date: day.AddDate(0, 0, i), Close: 100}}
	}

	trimmed := displayWindow(bars, "1month")
	assert.Len(t, trimmed, 30)
	assert.Equal(t, bars[99].Date, trimmed[len(trimmed)-1].Date)

	// Unknown tokens trim to the 90-day default.
	assert.Len(t, displayWindow(bars, "bogus"), 90)
}
