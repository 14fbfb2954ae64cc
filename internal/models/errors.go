package models

import (
	"errors"
	"fmt"
)

// Custom errors
var (
	// ErrInsufficientData signals that fewer than the minimum usable
	// feature rows remain even after the synthetic fallback. Terminal for
	// the request; no partial result is returned.
	ErrInsufficientData = errors.New("insufficient data for model training")

	// ErrTraining signals an empty or numerically degenerate training
	// prefix. Callers should treat it like insufficient data.
	ErrTraining = errors.New("model training failed")

	// ErrDataUnavailable signals that the real market-data source failed
	// or returned too little data. Always recovered locally via the
	// synthetic fallback and never surfaced to callers.
	ErrDataUnavailable = errors.New("market data unavailable")

	ErrSymbolRequired = errors.New("symbol is required")
)

// PipelineError wraps an unexpected fault with the symbol and stage that
// triggered it, so failures stay distinguishable from a valid zero-signal
// forecast.
type PipelineError struct {
	Symbol string
	Stage  string
	Err    error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("forecast pipeline failed for %s at %s: %v", e.Symbol, e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// NewPipelineError creates a pipeline error for the given symbol and stage.
func NewPipelineError(symbol, stage string, err error) *PipelineError {
	return &PipelineError{Symbol: symbol, Stage: stage, Err: err}
}
