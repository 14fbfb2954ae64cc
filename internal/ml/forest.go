package ml

import (
	"fmt"
	"math/rand"

	"github.com/yourusername/stockcast/internal/models"
)

// ForestConfig holds the bagged-ensemble hyperparameters. These are
// process-wide constructor inputs; fitted forests are per request.
type ForestConfig struct {
	Trees    int
	MaxDepth int
	Seed     int64
}

// DefaultForestConfig mirrors the ensemble defaults: 100 trees, depth 10,
// seed 42.
func DefaultForestConfig() ForestConfig {
	return ForestConfig{Trees: 100, MaxDepth: 10, Seed: 42}
}

// RandomForest is a bagged ensemble of CART regression trees. With a fixed
// seed its predictions are reproducible across runs for identical inputs.
type RandomForest struct {
	cfg   ForestConfig
	trees []*regressionTree
}

// NewRandomForest creates an unfitted forest.
func NewRandomForest(cfg ForestConfig) *RandomForest {
	if cfg.Trees <= 0 {
		cfg.Trees = 100
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 10
	}
	return &RandomForest{cfg: cfg}
}

// Fit grows each tree on a bootstrap sample of the training rows.
func (f *RandomForest) Fit(x [][]float64, y []float64) error {
	if len(x) == 0 {
		return fmt.Errorf("%w: empty training set", models.ErrTraining)
	}
	if len(x) != len(y) {
		return fmt.Errorf("%w: %d feature rows vs %d targets", models.ErrTraining, len(x), len(y))
	}

	rng := rand.New(rand.NewSource(f.cfg.Seed))
	n := len(x)

	f.trees = make([]*regressionTree, f.cfg.Trees)
	for t := 0; t < f.cfg.Trees; t++ {
		sampleX := make([][]float64, n)
		sampleY := make([]float64, n)
		for i := 0; i < n; i++ {
			j := rng.Intn(n)
			sampleX[i] = x[j]
			sampleY[i] = y[j]
		}

		tree := &regressionTree{maxDepth: f.cfg.MaxDepth}
		tree.fit(sampleX, sampleY)
		f.trees[t] = tree
	}
	return nil
}

// Predict averages the per-tree predictions for each row.
func (f *RandomForest) Predict(x [][]float64) []float64 {
	out := make([]float64, len(x))
	for i, row := range x {
		sum := 0.0
		for _, tree := range f.trees {
			sum += tree.predict(row)
		}
		out[i] = sum / float64(len(f.trees))
	}
	return out
}
