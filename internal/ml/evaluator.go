package ml

import (
	"math"

	"github.com/yourusername/stockcast/internal/models"
)

// neutralDirectionalAccuracy is reported when the test suffix is too short
// to compare adjacent movements.
const neutralDirectionalAccuracy = 50.0

// Evaluate computes error and directional-accuracy statistics for one model
// variant over the test suffix.
//
// Accuracy is 100 minus the mean-normalized RMSE as a percentage, floored
// at 0 and clamped at 100: with a near-zero or negative mean the raw
// formula is unbounded, and a score above 100 would be meaningless.
func Evaluate(predicted, actual []float64) models.ModelMetrics {
	rmse := rootMeanSquareError(predicted, actual)

	accuracy := 0.0
	if mean := mean(actual); mean != 0 {
		accuracy = 100 - (rmse/mean)*100
		if accuracy < 0 {
			accuracy = 0
		}
		if accuracy > 100 {
			accuracy = 100
		}
	}

	return models.ModelMetrics{
		Accuracy:            accuracy,
		RMSE:                rmse,
		DirectionalAccuracy: directionalAccuracy(predicted, actual),
	}
}

func rootMeanSquareError(predicted, actual []float64) float64 {
	n := len(actual)
	if n == 0 || len(predicted) != n {
		return 0
	}
	sum := 0.0
	for i := range actual {
		diff := predicted[i] - actual[i]
		sum += diff * diff
	}
	return math.Sqrt(sum / float64(n))
}

// directionalAccuracy reports the percentage of adjacent test pairs whose
// day-over-day sign the model predicted correctly.
func directionalAccuracy(predicted, actual []float64) float64 {
	if len(actual) < 2 || len(predicted) != len(actual) {
		return neutralDirectionalAccuracy
	}

	matches := 0
	pairs := len(actual) - 1
	for i := 0; i < pairs; i++ {
		actualUp := actual[i+1]-actual[i] > 0
		predictedUp := predicted[i+1]-predicted[i] > 0
		if actualUp == predictedUp {
			matches++
		}
	}
	return float64(matches) / float64(pairs) * 100
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
