package repository

import (
	"context"
	"errors"

	"inventra/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProductNotFound is a domain-specific error returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// ErrStockConflict is returned by AdjustStock when the conditional update
// matched no row, meaning the product vanished or the stock guard failed.
var ErrStockConflict = errors.New("stock update matched no row")

// ProductRepository defines the standard operations for product persistence.
type ProductRepository interface {
	// FindByID retrieves a single product by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindByName retrieves a product by exact name within a business.
	FindByName(ctx context.Context, businessID uuid.UUID, name string) (*entity.Product, error)

	// FindBySKU retrieves a product by SKU within a business.
	FindBySKU(ctx context.Context, businessID uuid.UUID, sku string) (*entity.Product, error)

	// ListByBusiness retrieves every product of the given business.
	ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]*entity.Product, error)

	// Create persists a new product entity to the storage.
	Create(ctx context.Context, product *entity.Product) error

	// Update modifies an existing product entity in the storage.
	Update(ctx context.Context, product *entity.Product) error

	// DeleteBySKU removes a product identified by SKU within a business.
	DeleteBySKU(ctx context.Context, businessID uuid.UUID, sku string) error

	// AdjustStock applies delta to current_stock in a single conditional UPDATE.
	// With guardAvailable set, the update only matches when the resulting stock
	// stays non-negative; a non-matching update returns ErrStockConflict.
	AdjustStock(ctx context.Context, productID uuid.UUID, delta int, guardAvailable bool) error

	// DecrementStockClamped lowers current_stock by qty, flooring the result at
	// zero instead of failing when qty exceeds the on-hand quantity.
	DecrementStockClamped(ctx context.Context, productID uuid.UUID, qty int) error
}
