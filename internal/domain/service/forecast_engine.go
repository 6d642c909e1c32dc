package service

// ForecastEngine defines the interface for fitting and evaluating the sales
// regression curve. Coefficients cover x^1..x^degree; the intercept is the
// constant term.
type ForecastEngine interface {
	// Fit performs a least-squares polynomial fit of ys over xs.
	Fit(xs, ys []float64, degree int) (coefficients []float64, intercept float64, err error)

	// Predict evaluates the fitted polynomial at x.
	Predict(coefficients []float64, intercept float64, x float64) float64
}
