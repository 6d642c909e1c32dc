package usecase

import (
	"context"

	"github.com/google/uuid"
)

// Forecast record types in the combined output series.
const (
	ForecastRecordHistorical = "historical"
	ForecastRecordForecast   = "forecast"
)

// ForecastUsecase defines the sales forecasting operations.
type ForecastUsecase interface {
	// SalesForecast returns combined historical and projected daily sales.
	// With too little history it returns the historical series plus an
	// explanatory message instead of an error.
	SalesForecast(ctx context.Context, ownerID, businessID uuid.UUID) (*ForecastOutput, error)

	// RetrainModel discards the persisted regression model so the next
	// forecast request trains a fresh one.
	RetrainModel(ctx context.Context, ownerID, businessID uuid.UUID) (string, error)
}

// ForecastRecord is one day of the combined series.
type ForecastRecord struct {
	Date  string  `json:"date"`
	Sales float64 `json:"sales"`
	Type  string  `json:"type"`
}

// ForecastOutput carries the combined series and an optional message.
type ForecastOutput struct {
	Records []ForecastRecord `json:"records"`
	Message string           `json:"message,omitempty"`
}
