// Package marketdata resolves a symbol and date-range token into an ordered
// daily bar series, falling back to a deterministic synthetic generator when
// the external source is unavailable or returns too little data.
package marketdata

import (
	"context"
	"errors"

	"github.com/yourusername/stockcast/internal/models"
)

// Source defines the interface for fetching daily bars from an external
// market-data provider.
type Source interface {
	// GetDailyBars retrieves daily bars for symbol covering the trailing
	// windowDays calendar days, sorted ascending by date.
	GetDailyBars(ctx context.Context, symbol string, windowDays int) ([]models.Bar, error)

	// Name returns the name of the data source
	Name() string
}

// SourceError represents errors from data source operations
type SourceError struct {
	Source  string // Data source name
	Code    string // Error code (e.g., "rate_limit_exceeded")
	Message string // Error message
	Err     error  // Underlying error
}

func (e SourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

func (e SourceError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return models.ErrDataUnavailable
}

// Common error codes
const (
	ErrCodeRateLimitExceeded = "rate_limit_exceeded"
	ErrCodeNotFound          = "not_found"
	ErrCodeInvalidData       = "invalid_data"
	ErrCodeNetworkError      = "network_error"
	ErrCodeServerError       = "server_error"
)

var (
	// ErrTooFewBars marks a real series rejected for falling short of the
	// minimum bar count.
	ErrTooFewBars = errors.New("too few bars in series")
)

// NewSourceError creates a new data source error
func NewSourceError(source, code, message string, err error) SourceError {
	return SourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
