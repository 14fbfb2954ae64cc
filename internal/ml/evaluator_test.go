package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluatePerfectPrediction(t *testing.T) {
	actual := []float64{100, 101, 102, 103, 104}
	predicted := append([]float64{}, actual...)

	m := Evaluate(predicted, actual)
	assert.Zero(t, m.RMSE)
	assert.Equal(t, 100.0, m.Accuracy)
	assert.Equal(t, 100.0, m.DirectionalAccuracy)
}

func TestEvaluateSinglePointReturnsNeutralDirection(t *testing.T) {
	m := Evaluate([]float64{100}, []float64{105})
	assert.Equal(t, 50.0, m.DirectionalAccuracy)
}

func TestEvaluateAccuracyFloorsAtZero(t *testing.T) {
	// RMSE far above the mean of actuals must floor at 0, not go negative.
	m := Evaluate([]float64{1000, 1000, 1000}, []float64{10, 11, 12})
	assert.Equal(t, 0.0, m.Accuracy)
	assert.Greater(t, m.RMSE, 0.0)
}

func TestEvaluateAccuracyClampsAtHundred(t *testing.T) {
	// A negative mean flips the normalized RMSE sign; the clamp keeps the
	// score meaningful.
	m := Evaluate([]float64{-10, -11}, []float64{-10.5, -11.5})
	assert.LessOrEqual(t, m.Accuracy, 100.0)
	assert.GreaterOrEqual(t, m.Accuracy, 0.0)
}

func TestEvaluateZeroMeanActuals(t *testing.T) {
	m := Evaluate([]float64{1, -1}, []float64{5, -5})
	assert.Equal(t, 0.0, m.Accuracy)
}

func TestDirectionalAccuracyCountsMatches(t *testing.T) {
	actual := []float64{10, 11, 10, 12, 11}    // up, down, up, down
	predicted := []float64{10, 12, 11, 10, 12} // up, down, down, up

	m := Evaluate(predicted, actual)
	assert.InDelta(t, 50.0, m.DirectionalAccuracy, 1e-9)
}

func TestEvaluateKnownRMSE(t *testing.T) {
	// Errors of +1/-1 on two points: RMSE = 1.
	m := Evaluate([]float64{101, 99}, []float64{100, 100})
	assert.InDelta(t, 1.0, m.RMSE, 1e-12)
	assert.InDelta(t, 99.0, m.Accuracy, 1e-9)
}
