package repository

import (
	"context"
	"errors"

	"inventra/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrReturnNotFound is a domain-specific error returned when a return is not found.
var ErrReturnNotFound = errors.New("return not found")

// ReturnRepository defines the standard operations for return persistence.
type ReturnRepository interface {
	// FindByID retrieves a single return by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Return, error)

	// ListByBusiness retrieves returns of a business inside the date range,
	// newest first.
	ListByBusiness(ctx context.Context, businessID uuid.UUID, dateRange DateRange) ([]*entity.Return, error)

	// Create persists a new return entity to the storage.
	Create(ctx context.Context, ret *entity.Return) error

	// Delete removes a return by its ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
