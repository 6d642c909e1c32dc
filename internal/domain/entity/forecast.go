package entity

import (
	"time"

	"github.com/google/uuid"
)

// SalesForecastModel holds the persisted regression parameters for a business.
// Each business has at most one model; retraining replaces it.
type SalesForecastModel struct {
	ID               uuid.UUID // The Global Unique Identifier (GUID) for the model row.
	BusinessID       uuid.UUID // Foreign Key to the Business. Unique.
	Coefficients     []float64 // Polynomial coefficients for x^1..x^degree.
	Intercept        float64   // Constant term of the fitted polynomial.
	PolynomialDegree int       // Degree the model was trained with.
	TrainedAt        time.Time // Timestamp of the last training run.
}
