package ml

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/stockcast/internal/features"
	"github.com/yourusername/stockcast/internal/models"
)

func trainingSplit(trainN, testN int) features.Split {
	day := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	row := func(i int) features.Row {
		a := float64(i)
		return features.Row{
			Date:     day.AddDate(0, 0, i),
			Features: []float64{a, math.Sin(a / 2), a * a / 100},
			Target:   100 + a*0.5 + math.Sin(a/2),
		}
	}

	split := features.Split{}
	for i := 0; i < trainN; i++ {
		split.Train = append(split.Train, row(i))
	}
	for i := trainN; i < trainN+testN; i++ {
		split.Test = append(split.Test, row(i))
	}
	return split
}

func TestTrainProducesBothVariants(t *testing.T) {
	trainer := NewTrainer(ForestConfig{Trees: 10, MaxDepth: 5, Seed: 42})
	result, err := trainer.Train(trainingSplit(40, 10))
	require.NoError(t, err)

	assert.Len(t, result.RandomForest, 10)
	assert.Len(t, result.LinearRegression, 10)
	assert.Len(t, result.Actuals, 10)
	assert.Len(t, result.TestDates, 10)

	// The target is nearly linear, so OLS extrapolates it tightly.
	for i, pred := range result.LinearRegression {
		assert.InDelta(t, result.Actuals[i], pred, 2.0, "linear prediction %d", i)
	}
}

func TestTrainEmptyPrefixFails(t *testing.T) {
	trainer := NewTrainer(DefaultForestConfig())
	_, err := trainer.Train(features.Split{})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrTraining)
}

func TestTrainConstantTargetFails(t *testing.T) {
	split := trainingSplit(20, 5)
	for i := range split.Train {
		split.Train[i].Target = 50
	}

	_, err := NewTrainer(DefaultForestConfig()).Train(split)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrTraining)
}

func TestTrainDeterministicForSeed(t *testing.T) {
	split := trainingSplit(35, 8)

	first, err := NewTrainer(ForestConfig{Trees: 12, MaxDepth: 6, Seed: 42}).Train(split)
	require.NoError(t, err)
	second, err := NewTrainer(ForestConfig{Trees: 12, MaxDepth: 6, Seed: 42}).Train(split)
	require.NoError(t, err)

	assert.Equal(t, first.RandomForest, second.RandomForest)
	assert.Equal(t, first.LinearRegression, second.LinearRegression)
}

func TestScalerNoLeakage(t *testing.T) {
	train := [][]float64{{0}, {10}}
	test := [][]float64{{20}}

	scaler := &StandardScaler{}
	trainScaled := scaler.FitTransform(train)
	testScaled := scaler.Transform(test)

	// mean 5, std 5: train maps to -1/+1, the unseen point to +3.
	assert.InDelta(t, -1.0, trainScaled[0][0], 1e-9)
	assert.InDelta(t, 1.0, trainScaled[1][0], 1e-9)
	assert.InDelta(t, 3.0, testScaled[0][0], 1e-9)
}

func TestScalerConstantColumn(t *testing.T) {
	scaler := &StandardScaler{}
	out := scaler.FitTransform([][]float64{{5, 1}, {5, 2}, {5, 3}})
	for _, row := range out {
		assert.Zero(t, row[0])
	}
}
