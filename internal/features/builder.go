// Package features derives per-bar numeric feature vectors and the
// one-step-ahead target, and splits them chronologically for training.
package features

import (
	"fmt"
	"math"
	"time"

	"github.com/yourusername/stockcast/internal/models"
)

// Feature column order. Kept stable so the scaler and both regressors see
// identical matrices.
var ColumnNames = []string{
	"open", "high", "low", "volume", "ma5", "ma10", "ma20",
	"price_change", "high_low_ratio", "volume_change",
	"price_ma5_ratio", "price_ma10_ratio", "price_ma20_ratio",
	"volatility_5", "volatility_10",
	"prev_close", "prev_volume", "prev_change",
}

const (
	volWindowShort = 5
	volWindowLong  = 10

	// The 10-bar rolling std-dev is the deepest lookback, so the first
	// usable row is index volWindowLong-1; the last row has no next-day
	// target. Usable rows = bars - (volWindowLong-1) - 1.
	headTrim = volWindowLong - 1

	// DefaultMinRows is the hard minimum of usable rows for a meaningful
	// 80/20 split with a non-trivial test tail.
	DefaultMinRows = 30

	syntheticTestRows = 3
)

// Row is one derived feature vector with its next-day close target.
type Row struct {
	Date     time.Time
	Features []float64
	Target   float64
}

// Split is a chronological train/test partition of feature rows. Single-use
// per training call; never shuffled.
type Split struct {
	Train []Row
	Test  []Row
}

// BuilderConfig tunes row minimums and the split point.
type BuilderConfig struct {
	MinRows    int     // minimum usable rows, default 30
	TrainRatio float64 // training prefix fraction, default 0.8
}

// Build derives feature rows from an indicator series and partitions them
// chronologically. Fails with models.ErrInsufficientData when fewer than
// MinRows usable rows remain after trimming.
func Build(bars []models.IndicatorBar, cfg BuilderConfig) (Split, error) {
	if cfg.MinRows <= 0 {
		cfg.MinRows = DefaultMinRows
	}
	if cfg.TrainRatio <= 0 || cfg.TrainRatio > 1 {
		cfg.TrainRatio = 0.8
	}

	rows := deriveRows(bars)
	if len(rows) < cfg.MinRows {
		return Split{}, fmt.Errorf("%w: %d usable rows, need %d", models.ErrInsufficientData, len(rows), cfg.MinRows)
	}

	splitIdx := int(math.Floor(cfg.TrainRatio * float64(len(rows))))
	train := rows[:splitIdx]
	test := rows[splitIdx:]

	// Tiny inputs can leave the suffix empty; reuse the final training
	// rows as a synthetic test slice so metric computation stays defined.
	if len(test) == 0 {
		n := syntheticTestRows
		if n > len(train) {
			n = len(train)
		}
		test = train[len(train)-n:]
	}

	return Split{Train: train, Test: test}, nil
}

// deriveRows computes the feature vector for every index where all lag and
// rolling inputs exist, dropping the series head and the target-less tail.
func deriveRows(bars []models.IndicatorBar) []Row {
	if len(bars) < headTrim+2 {
		return nil
	}

	rows := make([]Row, 0, len(bars)-headTrim-1)
	for i := headTrim; i < len(bars)-1; i++ {
		cur := bars[i]
		prev := bars[i-1]

		features := []float64{
			cur.Open,
			cur.High,
			cur.Low,
			float64(cur.Volume),
			cur.MA5,
			cur.MA10,
			cur.MA20,
			priceChange(bars, i),
			cur.High / cur.Low,
			float64(cur.Volume)/float64(prev.Volume) - 1,
			cur.Close / cur.MA5,
			cur.Close / cur.MA10,
			cur.Close / cur.MA20,
			rollingStd(bars, i, volWindowShort),
			rollingStd(bars, i, volWindowLong),
			prev.Close,
			float64(prev.Volume),
			priceChange(bars, i-1),
		}

		rows = append(rows, Row{
			Date:     cur.Date,
			Features: features,
			Target:   bars[i+1].Close,
		})
	}
	return rows
}

func priceChange(bars []models.IndicatorBar, i int) float64 {
	return bars[i].Close/bars[i-1].Close - 1
}

// rollingStd is the sample standard deviation of close over the trailing
// window ending at i.
func rollingStd(bars []models.IndicatorBar, i, window int) float64 {
	start := i - window + 1
	mean := 0.0
	for j := start; j <= i; j++ {
		mean += bars[j].Close
	}
	mean /= float64(window)

	variance := 0.0
	for j := start; j <= i; j++ {
		diff := bars[j].Close - mean
		variance += diff * diff
	}
	variance /= float64(window - 1)
	return math.Sqrt(variance)
}
