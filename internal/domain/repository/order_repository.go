package repository

import (
	"context"
	"errors"
	"time"

	"inventra/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOrderNotFound is a domain-specific error returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// DateRange bounds a list query by date. Nil bounds are open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// OrderRepository defines the standard operations for order persistence.
type OrderRepository interface {
	// FindByID retrieves a single order by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// ListByBusiness retrieves orders of a business inside the date range,
	// newest first.
	ListByBusiness(ctx context.Context, businessID uuid.UUID, dateRange DateRange) ([]*entity.Order, error)

	// Create persists a new order entity to the storage.
	Create(ctx context.Context, order *entity.Order) error

	// Update modifies an existing order entity in the storage.
	Update(ctx context.Context, order *entity.Order) error

	// Delete removes an order by its ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
