package usecase

import (
	"context"
	"time"

	"inventra/internal/domain/entity"

	"github.com/google/uuid"
)

// OrderUsecase defines the interface for the stock reconciliation operations:
// placing and deleting orders, registering and removing returns. Every
// operation keeps order/return rows and product stock consistent inside a
// single transaction.
type OrderUsecase interface {
	PlaceOrder(ctx context.Context, ownerID uuid.UUID, input *PlaceOrderInput) (*entity.Order, error)
	ListOrders(ctx context.Context, ownerID, businessID uuid.UUID, from, to *time.Time) ([]*entity.Order, error)

	// DeleteOrder restores stock and removes the order. When the order row
	// carries no business, explicitBusinessID disambiguates; owners of a
	// single business may omit it.
	DeleteOrder(ctx context.Context, ownerID, orderID uuid.UUID, explicitBusinessID *uuid.UUID) error

	RegisterReturn(ctx context.Context, ownerID, orderID uuid.UUID) (*entity.Return, error)
	ListReturns(ctx context.Context, ownerID, businessID uuid.UUID, from, to *time.Time) ([]*entity.Return, error)

	// RemoveReturn deletes the return first, then restores order and stock on
	// a best-effort basis. Restoration problems surface as warnings, not errors.
	RemoveReturn(ctx context.Context, ownerID, returnID uuid.UUID) (*RemoveReturnOutput, error)
}

// --- Input DTOs ---

// PlaceOrderInput defines the data required to record a sale.
type PlaceOrderInput struct {
	BusinessID   uuid.UUID `json:"business_id" validate:"required"`
	ProductName  string    `json:"product_name" validate:"required"`
	Quantity     int       `json:"quantity" validate:"required"`
	CustomerName string    `json:"customer_name"`
	Date         time.Time `json:"date"`
	OrderID      string    `json:"order_id"`
	TrackingID   string    `json:"tracking_id"`
}

// --- Output DTOs ---

// RemoveReturnOutput carries the primary result of a return removal plus any
// warnings from the best-effort restoration steps.
type RemoveReturnOutput struct {
	Message  string   `json:"message"`
	Warnings []string `json:"warnings,omitempty"`
}
