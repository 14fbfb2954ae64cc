package models

import (
	"fmt"
	"time"
)

// Bar represents one trading day's OHLCV record. Bars are immutable once
// created and sequences are sorted ascending by date with no duplicates.
type Bar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// Validate checks the OHLCV envelope invariants for a single bar.
func (b Bar) Validate() error {
	if b.Date.IsZero() {
		return fmt.Errorf("bar date is required")
	}
	if b.High < b.Open || b.High < b.Close {
		return fmt.Errorf("high %.4f below open/close on %s", b.High, b.Date.Format("2006-01-02"))
	}
	if b.Low > b.Open || b.Low > b.Close {
		return fmt.Errorf("low %.4f above open/close on %s", b.Low, b.Date.Format("2006-01-02"))
	}
	if b.Volume < 0 {
		return fmt.Errorf("negative volume %d on %s", b.Volume, b.Date.Format("2006-01-02"))
	}
	return nil
}

// IndicatorBar is a Bar augmented with rolling simple moving averages over
// close. The averages are defined for every row: the first (window-1) rows
// use the shorter available window.
type IndicatorBar struct {
	Bar
	MA5  float64 `json:"ma5"`
	MA10 float64 `json:"ma10"`
	MA20 float64 `json:"ma20"`
}

// ValidateBars checks ordering and per-bar invariants for a series.
func ValidateBars(bars []Bar) error {
	for i, b := range bars {
		if err := b.Validate(); err != nil {
			return err
		}
		if i > 0 && !bars[i-1].Date.Before(b.Date) {
			return fmt.Errorf("bars out of order at %s", b.Date.Format("2006-01-02"))
		}
	}
	return nil
}
