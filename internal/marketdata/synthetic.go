package marketdata

import (
	"math"
	"math/rand"
	"time"

	"github.com/yourusername/stockcast/internal/models"
)

// Base prices for common symbols; unknown symbols start at the fallback.
var basePrices = map[string]float64{
	"AAPL":  150.0,
	"TSLA":  250.0,
	"GOOGL": 140.0,
	"MSFT":  340.0,
	"AMZN":  135.0,
	"NVDA":  450.0,
	"META":  300.0,
	"NFLX":  400.0,
}

const (
	fallbackBasePrice = 100.0
	dailyVolatility   = 0.02   // stdev of the simulated daily return
	intradayNoise     = 0.01   // stdev of intraday noise as a close fraction
	driftPerDay       = 0.0001 // linear drift across the window
	meanVolume        = 50_000_000
	volumeStdev       = 15_000_000
	minVolume         = 1_000_000
)

// SyntheticGenerator produces a plausible daily bar series via a seeded
// random walk. The random source is injected so callers control
// reproducibility.
type SyntheticGenerator struct {
	rng *rand.Rand
	now func() time.Time
}

// NewSyntheticGenerator creates a generator seeded with the given seed.
func NewSyntheticGenerator(seed int64, now func() time.Time) *SyntheticGenerator {
	if now == nil {
		now = time.Now
	}
	return &SyntheticGenerator{
		rng: rand.New(rand.NewSource(seed)),
		now: now,
	}
}

// Generate walks forward one simulated trading day at a time over the
// trailing windowDays calendar days, weekdays only.
func (g *SyntheticGenerator) Generate(symbol string, windowDays int) []models.Bar {
	base, ok := basePrices[symbol]
	if !ok {
		base = fallbackBasePrice
	}

	end := g.now().UTC().Truncate(24 * time.Hour)
	start := end.AddDate(0, 0, -windowDays)

	days := make([]time.Time, 0, windowDays)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days = append(days, d)
		}
	}

	bars := make([]models.Bar, 0, len(days))
	price := base
	half := float64(len(days)) / 2

	for i, day := range days {
		dailyReturn := g.rng.NormFloat64() * dailyVolatility
		trend := driftPerDay * (float64(i) - half)

		price *= 1 + dailyReturn + trend
		if floor := base * 0.5; price < floor {
			price = floor
		}

		noise := price * intradayNoise
		open := price + g.rng.NormFloat64()*noise
		closePrice := price
		high := math.Max(open, closePrice) + math.Abs(g.rng.NormFloat64()*noise)
		low := math.Min(open, closePrice) - math.Abs(g.rng.NormFloat64()*noise)

		volume := int64(g.rng.NormFloat64()*volumeStdev + meanVolume)
		if volume < minVolume {
			volume = minVolume
		}

		bars = append(bars, models.Bar{
			Date:   day,
			Open:   open,
			High:   high,
			Low:    low,
			Close:  closePrice,
			Volume: volume,
		})
	}

	return bars
}
