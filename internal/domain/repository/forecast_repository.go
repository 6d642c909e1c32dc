package repository

import (
	"context"
	"errors"

	"inventra/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrForecastModelNotFound is a domain-specific error returned when no trained model exists.
var ErrForecastModelNotFound = errors.New("forecast model not found")

// ForecastModelRepository defines the operations for persisted regression models.
type ForecastModelRepository interface {
	// FindByBusiness retrieves the trained model of a business.
	FindByBusiness(ctx context.Context, businessID uuid.UUID) (*entity.SalesForecastModel, error)

	// Save creates or replaces the model of a business.
	Save(ctx context.Context, model *entity.SalesForecastModel) error

	// DeleteByBusiness removes the trained model of a business, if any.
	DeleteByBusiness(ctx context.Context, businessID uuid.UUID) error
}
