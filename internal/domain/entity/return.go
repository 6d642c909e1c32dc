package entity

import (
	"time"

	"github.com/google/uuid"
)

// Return records a customer return against an order. Product and customer
// names are copied from the order at registration time so the return stays
// meaningful even if the catalog changes afterwards.
type Return struct {
	ID           uuid.UUID // The Global Unique Identifier (GUID) for the return row.
	BusinessID   uuid.UUID // Foreign Key to the owning Business.
	OrderID      uuid.UUID // Foreign Key to the returned Order. Required.
	ProductName  string    // Product name copied from the order.
	CustomerName string    // Customer name copied from the order.
	Quantity     int       // Units returned.
	Date         time.Time // Return date, date-granular.
	CreatedAt    time.Time // Timestamp of when this return was recorded.
	UpdatedAt    time.Time // Timestamp of the last modification.
}
