// Package forecast provides the least-squares regression engine behind sales forecasting.
package forecast

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"inventra/internal/domain/service"
	"inventra/internal/errors"
)

// polynomialEngine implements service.ForecastEngine with an ordinary
// least-squares polynomial fit solved through gonum's QR decomposition.
type polynomialEngine struct{}

// NewPolynomialEngine is the constructor for polynomialEngine.
func NewPolynomialEngine() service.ForecastEngine {
	return &polynomialEngine{}
}

// Fit solves min ||V*beta - y|| over the Vandermonde matrix V of xs.
// beta[0] is the intercept; beta[1..degree] are the returned coefficients.
func (e *polynomialEngine) Fit(xs, ys []float64, degree int) ([]float64, float64, error) {
	if degree < 1 {
		return nil, 0, errors.Errorf("polynomial degree must be at least 1, got %d", degree)
	}
	if len(xs) != len(ys) {
		return nil, 0, errors.Errorf("mismatched sample lengths: %d xs, %d ys", len(xs), len(ys))
	}
	if len(xs) <= degree {
		return nil, 0, errors.Errorf("need more than %d samples to fit degree %d, got %d", degree, degree, len(xs))
	}

	rows := len(xs)
	cols := degree + 1

	vandermonde := mat.NewDense(rows, cols, nil)
	for i, x := range xs {
		pow := 1.0
		for j := 0; j < cols; j++ {
			vandermonde.Set(i, j, pow)
			pow *= x
		}
	}

	target := mat.NewVecDense(rows, ys)

	var beta mat.VecDense
	if err := beta.SolveVec(vandermonde, target); err != nil {
		return nil, 0, errors.Wrap(err, "least squares solve failed")
	}

	intercept := beta.AtVec(0)
	coefficients := make([]float64, degree)
	for i := 1; i <= degree; i++ {
		coefficients[i-1] = beta.AtVec(i)
	}

	return coefficients, intercept, nil
}

// Predict evaluates the fitted polynomial at x. Non-finite results collapse
// to zero so downstream consumers never see NaN or Inf.
func (e *polynomialEngine) Predict(coefficients []float64, intercept float64, x float64) float64 {
	result := intercept
	pow := x
	for _, c := range coefficients {
		result += c * pow
		pow *= x
	}

	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0
	}

	return result
}
