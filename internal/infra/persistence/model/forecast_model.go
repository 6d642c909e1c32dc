package model

import (
	"time"

	"github.com/google/uuid"
)

// SalesForecastModelModel mirrors the 'sales_forecast_models' table.
// Coefficients are stored as a JSON array.
type SalesForecastModelModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	BusinessID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Coefficients     string    `gorm:"type:jsonb;not null"`
	Intercept        float64   `gorm:"not null"`
	PolynomialDegree int       `gorm:"not null"`
	TrainedAt        time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName explicitly sets the table name for GORM.
func (SalesForecastModelModel) TableName() string {
	return "sales_forecast_models"
}
