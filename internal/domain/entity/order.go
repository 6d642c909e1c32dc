package entity

import (
	"time"

	"github.com/google/uuid"
)

// Order records a sale. The product is referenced by name, snapshotted at
// order time; pricing is never stored here and is always resolved against the
// current catalog when computing analytics.
type Order struct {
	ID           uuid.UUID // The Global Unique Identifier (GUID) for the order row.
	BusinessID   uuid.UUID // Foreign Key to the owning Business.
	OrderID      string    // External order reference supplied by the caller.
	TrackingID   string    // Shipment tracking reference.
	ProductName  string    // Denormalized product name at order time.
	Quantity     int       // Units sold. Always positive.
	CustomerName string    // Customer display name.
	Date         time.Time // Sale date, date-granular.
	IsReturned   bool      // Set once a return has been registered for this order.
	CreatedAt    time.Time // Timestamp of when this order was recorded.
	UpdatedAt    time.Time // Timestamp of the last modification.
}
