package indicators

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/stockcast/internal/models"
)

func seriesWithCloses(closes []float64) []models.Bar {
	bars := make([]models.Bar, len(closes))
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		bars[i] = models.Bar{
			Date:   day.AddDate(0, 0, i),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1_500_000,
		}
	}
	return bars
}

func TestComputePreservesRowCount(t *testing.T) {
	closes := make([]float64, 35)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	out := Compute(seriesWithCloses(closes))
	require.Len(t, out, 35)

	for i, row := range out {
		assert.NotZero(t, row.MA5, "ma5 missing at row %d", i)
		assert.NotZero(t, row.MA10, "ma10 missing at row %d", i)
		assert.NotZero(t, row.MA20, "ma20 missing at row %d", i)
	}
}

func TestComputeShortWindowHead(t *testing.T) {
	out := Compute(seriesWithCloses([]float64{10, 20, 30, 40, 50, 60}))

	// Head rows average over the available prefix.
	assert.InDelta(t, 10.0, out[0].MA5, 1e-9)
	assert.InDelta(t, 15.0, out[1].MA5, 1e-9)
	assert.InDelta(t, 20.0, out[2].MA20, 1e-9)

	// From index 4 the 5-bar window is full.
	assert.InDelta(t, 30.0, out[4].MA5, 1e-9)
	assert.InDelta(t, 40.0, out[5].MA5, 1e-9)
}

func TestComputeFullWindows(t *testing.T) {
	closes := make([]float64, 25)
	for i := range closes {
		closes[i] = float64(i + 1)
	}
	out := Compute(seriesWithCloses(closes))

	last := out[24]
	assert.InDelta(t, 23.0, last.MA5, 1e-9)  // mean of 21..25
	assert.InDelta(t, 20.5, last.MA10, 1e-9) // mean of 16..25
	assert.InDelta(t, 15.5, last.MA20, 1e-9) // mean of 6..25
}

func TestComputeEmptyInput(t *testing.T) {
	assert.Empty(t, Compute(nil))
}
