// Package indicators derives rolling technical indicators over a bar series.
package indicators

import "github.com/yourusername/stockcast/internal/models"

// Moving-average windows computed over close.
const (
	WindowShort  = 5
	WindowMedium = 10
	WindowLong   = 20
)

// Compute returns the input series augmented with 5/10/20-bar simple moving
// averages. The first (window-1) rows average over the shorter available
// window, so every output row has all three values defined. Output length
// always equals input length.
func Compute(bars []models.Bar) []models.IndicatorBar {
	out := make([]models.IndicatorBar, len(bars))

	var sum5, sum10, sum20 float64
	for i, bar := range bars {
		sum5 += bar.Close
		sum10 += bar.Close
		sum20 += bar.Close
		if i >= WindowShort {
			sum5 -= bars[i-WindowShort].Close
		}
		if i >= WindowMedium {
			sum10 -= bars[i-WindowMedium].Close
		}
		if i >= WindowLong {
			sum20 -= bars[i-WindowLong].Close
		}

		out[i] = models.IndicatorBar{
			Bar:  bar,
			MA5:  sum5 / float64(min(i+1, WindowShort)),
			MA10: sum10 / float64(min(i+1, WindowMedium)),
			MA20: sum20 / float64(min(i+1, WindowLong)),
		}
	}

	return out
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
