package ml

import (
	"fmt"
	"time"

	"github.com/yourusername/stockcast/internal/features"
	"github.com/yourusername/stockcast/internal/metrics"
	"github.com/yourusername/stockcast/internal/models"
)

// Model variant names used in logs and metric labels.
const (
	VariantRandomForest     = "random_forest"
	VariantLinearRegression = "linear_regression"
)

// TrainResult carries the per-variant test-suffix predictions and the raw
// test actuals.
type TrainResult struct {
	RandomForest     []float64
	LinearRegression []float64
	Actuals          []float64
	TestDates        []time.Time
}

// Trainer fits both regressor variants on a normalized feature matrix and
// produces predictions over the held-out tail. A Trainer is cheap and holds
// no fitted state; construct one per request.
type Trainer struct {
	forestCfg ForestConfig
}

// NewTrainer creates a trainer with the given ensemble hyperparameters.
func NewTrainer(forestCfg ForestConfig) *Trainer {
	return &Trainer{forestCfg: forestCfg}
}

// Train normalizes the split, fits both variants independently on the
// training prefix, and predicts the test suffix. Fails with
// models.ErrTraining when the prefix is empty or the target is degenerate.
func (t *Trainer) Train(split features.Split) (*TrainResult, error) {
	if len(split.Train) == 0 {
		return nil, fmt.Errorf("%w: empty training prefix", models.ErrTraining)
	}

	trainX, trainY := toMatrix(split.Train)
	testX, testY := toMatrix(split.Test)

	if constant(trainY) {
		return nil, fmt.Errorf("%w: constant target over training prefix", models.ErrTraining)
	}

	// Scaling parameters come from the training prefix only; applying them
	// unchanged to the test suffix avoids leakage.
	scaler := &StandardScaler{}
	trainScaled := scaler.FitTransform(trainX)
	testScaled := scaler.Transform(testX)

	forest := NewRandomForest(t.forestCfg)
	start := time.Now()
	if err := forest.Fit(trainScaled, trainY); err != nil {
		return nil, err
	}
	forestPreds := forest.Predict(testScaled)
	metrics.RecordTraining(VariantRandomForest, time.Since(start).Seconds())

	linear := NewLinearRegression()
	start = time.Now()
	if err := linear.Fit(trainScaled, trainY); err != nil {
		return nil, err
	}
	linearPreds := linear.Predict(testScaled)
	metrics.RecordTraining(VariantLinearRegression, time.Since(start).Seconds())

	dates := make([]time.Time, len(split.Test))
	for i, row := range split.Test {
		dates[i] = row.Date
	}

	return &TrainResult{
		RandomForest:     forestPreds,
		LinearRegression: linearPreds,
		Actuals:          testY,
		TestDates:        dates,
	}, nil
}

func toMatrix(rows []features.Row) ([][]float64, []float64) {
	x := make([][]float64, len(rows))
	y := make([]float64, len(rows))
	for i, row := range rows {
		x[i] = row.Features
		y[i] = row.Target
	}
	return x, y
}

func constant(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}
