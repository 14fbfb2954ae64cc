package marketdata

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/stockcast/internal/metrics"
	"github.com/yourusername/stockcast/internal/models"
)

// Range tokens understood by the provider. Unknown tokens resolve to the
// default window.
const (
	RangeOneMonth    = "1month"
	RangeThreeMonths = "3months"
	RangeOneYear     = "1year"

	defaultWindowDays = 90

	// WarmupDays extends every fetch window so the indicator and feature
	// lookbacks have history behind the requested range; short ranges
	// would otherwise leave too few usable rows to train on. Callers trim
	// the displayed series back to the requested window.
	WarmupDays = 60
)

var rangeWindows = map[string]int{
	RangeOneMonth:    30,
	RangeThreeMonths: 90,
	RangeOneYear:     365,
}

// WindowDays maps a date-range token to a calendar-day window length.
func WindowDays(rangeToken string) int {
	if days, ok := rangeWindows[rangeToken]; ok {
		return days
	}
	return defaultWindowDays
}

// ProviderConfig configures the bar series provider.
type ProviderConfig struct {
	// MinBars is the minimum accepted series length for both the real
	// source and the synthetic fallback.
	MinBars int
	// SyntheticSeed seeds the fallback generator. Each fetch re-seeds, so
	// identical inputs yield identical synthetic series.
	SyntheticSeed int64
	// Now resolves the current date; defaults to time.Now.
	Now func() time.Time
}

// Provider resolves a symbol and range token into an ordered bar series.
// When the real source fails or returns too little data it recovers with
// the synthetic generator; that recovery is never surfaced to callers.
type Provider struct {
	source Source
	cfg    ProviderConfig
	logger *logrus.Logger
}

// NewProvider creates a bar series provider over the given source.
func NewProvider(source Source, cfg ProviderConfig, logger *logrus.Logger) *Provider {
	if cfg.MinBars <= 0 {
		cfg.MinBars = 20
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Provider{source: source, cfg: cfg, logger: logger}
}

// Fetch returns an ordered daily bar series for the symbol covering the
// window named by rangeToken plus the warmup margin.
func (p *Provider) Fetch(ctx context.Context, symbol, rangeToken string) ([]models.Bar, error) {
	windowDays := WindowDays(rangeToken) + WarmupDays

	bars, err := p.fetchReal(ctx, symbol, windowDays)
	if err == nil {
		p.logger.WithFields(logrus.Fields{
			"symbol": symbol,
			"bars":   len(bars),
			"source": p.source.Name(),
		}).Info("Fetched real market data")
		return bars, nil
	}

	p.logger.WithFields(logrus.Fields{
		"symbol": symbol,
		"window": windowDays,
	}).WithError(err).Warn("Market data unavailable, using synthetic fallback")
	metrics.RecordSyntheticFallback()

	generator := NewSyntheticGenerator(p.cfg.SyntheticSeed, p.cfg.Now)
	synthetic := generator.Generate(symbol, windowDays)
	if len(synthetic) < p.cfg.MinBars {
		return nil, fmt.Errorf("%w: synthetic fallback produced %d bars, need %d",
			models.ErrInsufficientData, len(synthetic), p.cfg.MinBars)
	}
	return synthetic, nil
}

// fetchReal retrieves and validates a series from the external source.
func (p *Provider) fetchReal(ctx context.Context, symbol string, windowDays int) ([]models.Bar, error) {
	if p.source == nil {
		return nil, fmt.Errorf("%w: no source configured", models.ErrDataUnavailable)
	}

	start := time.Now()
	bars, err := p.source.GetDailyBars(ctx, symbol, windowDays)
	metrics.RecordDataFetch(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	if len(bars) < p.cfg.MinBars {
		return nil, fmt.Errorf("%w: got %d bars, need %d", ErrTooFewBars, len(bars), p.cfg.MinBars)
	}
	if err := models.ValidateBars(bars); err != nil {
		return nil, NewSourceError(p.source.Name(), ErrCodeInvalidData, "series failed validation", err)
	}
	return bars, nil
}
