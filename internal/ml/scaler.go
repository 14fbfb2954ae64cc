// Package ml provides the in-process regression models and their training
// and evaluation pipeline.
package ml

import "math"

// StandardScaler normalizes features to zero mean and unit variance.
// Scaling parameters are fit on the training prefix only and applied
// unchanged to the test suffix.
type StandardScaler struct {
	mean []float64
	std  []float64
}

// Fit computes per-column mean and population standard deviation.
// Zero-variance columns scale by 1 so constant features pass through.
func (s *StandardScaler) Fit(matrix [][]float64) {
	if len(matrix) == 0 {
		return
	}
	cols := len(matrix[0])
	s.mean = make([]float64, cols)
	s.std = make([]float64, cols)

	for j := 0; j < cols; j++ {
		sum := 0.0
		for _, row := range matrix {
			sum += row[j]
		}
		mean := sum / float64(len(matrix))

		variance := 0.0
		for _, row := range matrix {
			diff := row[j] - mean
			variance += diff * diff
		}
		variance /= float64(len(matrix))

		s.mean[j] = mean
		if variance > 0 {
			s.std[j] = math.Sqrt(variance)
		} else {
			s.std[j] = 1
		}
	}
}

// Transform returns a scaled copy of the matrix.
func (s *StandardScaler) Transform(matrix [][]float64) [][]float64 {
	out := make([][]float64, len(matrix))
	for i, row := range matrix {
		scaled := make([]float64, len(row))
		for j, v := range row {
			scaled[j] = (v - s.mean[j]) / s.std[j]
		}
		out[i] = scaled
	}
	return out
}

// FitTransform fits the scaler and returns the scaled matrix.
func (s *StandardScaler) FitTransform(matrix [][]float64) [][]float64 {
	s.Fit(matrix)
	return s.Transform(matrix)
}
