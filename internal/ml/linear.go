package ml

import (
	"fmt"
	"math"

	"github.com/yourusername/stockcast/internal/models"
)

// LinearRegression fits ordinary least squares with an intercept by solving
// the normal equations. Closed form, so predictions are exactly
// reproducible.
type LinearRegression struct {
	intercept float64
	weights   []float64
}

// NewLinearRegression creates an unfitted OLS regressor.
func NewLinearRegression() *LinearRegression {
	return &LinearRegression{}
}

// Fit solves (X'X)w = X'y over the training matrix.
func (m *LinearRegression) Fit(x [][]float64, y []float64) error {
	if len(x) == 0 {
		return fmt.Errorf("%w: empty training set", models.ErrTraining)
	}
	if len(x) != len(y) {
		return fmt.Errorf("%w: %d feature rows vs %d targets", models.ErrTraining, len(x), len(y))
	}

	// Augment with a leading 1 column for the intercept.
	cols := len(x[0]) + 1
	xtx := make([][]float64, cols)
	for i := range xtx {
		xtx[i] = make([]float64, cols)
	}
	xty := make([]float64, cols)

	for r, row := range x {
		aug := make([]float64, cols)
		aug[0] = 1
		copy(aug[1:], row)
		for i := 0; i < cols; i++ {
			for j := i; j < cols; j++ {
				xtx[i][j] += aug[i] * aug[j]
			}
			xty[i] += aug[i] * y[r]
		}
	}
	for i := 0; i < cols; i++ {
		for j := 0; j < i; j++ {
			xtx[i][j] = xtx[j][i]
		}
	}

	// Tiny diagonal jitter keeps the system solvable when scaled features
	// are collinear (the MA ratios often are).
	for i := 0; i < cols; i++ {
		xtx[i][i] += 1e-8
	}

	coeffs, err := solve(xtx, xty)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrTraining, err)
	}

	m.intercept = coeffs[0]
	m.weights = coeffs[1:]
	return nil
}

// Predict returns point predictions for each row.
func (m *LinearRegression) Predict(x [][]float64) []float64 {
	out := make([]float64, len(x))
	for i, row := range x {
		v := m.intercept
		for j, w := range m.weights {
			v += w * row[j]
		}
		out[i] = v
	}
	return out
}

// solve performs Gaussian elimination with partial pivoting on a copy of
// the inputs.
func solve(a [][]float64, b []float64) ([]float64, error) {
	n := len(a)
	m := make([][]float64, n)
	for i := range m {
		m[i] = append(append([]float64{}, a[i]...), b[i])
	}

	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(m[r][col]) > math.Abs(m[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(m[pivot][col]) < 1e-12 {
			return nil, fmt.Errorf("singular system at column %d", col)
		}
		m[col], m[pivot] = m[pivot], m[col]

		for r := col + 1; r < n; r++ {
			factor := m[r][col] / m[col][col]
			for c := col; c <= n; c++ {
				m[r][c] -= factor * m[col][c]
			}
		}
	}

	coeffs := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		v := m[i][n]
		for j := i + 1; j < n; j++ {
			v -= m[i][j] * coeffs[j]
		}
		coeffs[i] = v / m[i][i]
	}
	return coeffs, nil
}
