package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category classifies a product within a fixed choice list.
type Category string

const (
	CategoryElectronics Category = "electronics"
	CategoryClothing    Category = "clothing"
	CategoryFood        Category = "food"
	CategoryFurniture   Category = "furniture"
	CategoryOther       Category = "other"
)

// Categories lists the accepted category values.
var Categories = []Category{
	CategoryElectronics,
	CategoryClothing,
	CategoryFood,
	CategoryFurniture,
	CategoryOther,
}

// IsValid reports whether the category is one of the accepted values.
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}

	return false
}

// Product is a catalog item scoped to a single business. The SKU is unique
// per business, not globally. CurrentStock is the live on-hand quantity that
// the reconciliation operations mutate.
type Product struct {
	ID           uuid.UUID       // The Global Unique Identifier (GUID) for the product.
	BusinessID   uuid.UUID       // Foreign Key to the owning Business.
	Name         string          // Product name. Orders reference products by exact name.
	SKU          string          // Stock keeping unit, unique within the business.
	Category     Category        // Classification within the fixed category list.
	CurrentStock int             // Live on-hand quantity.
	MinStock     int             // Low-stock threshold. current <= min flags the product.
	MaxStock     int             // Upper stocking guideline. Informational only.
	Price        decimal.Decimal // Unit cost price.
	SellingPrice decimal.Decimal // Unit selling price. All revenue math uses this.
	Supplier     string          // Supplier name.
	CreatedAt    time.Time       // Timestamp of when this product was created.
	UpdatedAt    time.Time       // Timestamp of the last modification.
}

// IsLowStock reports whether the product sits at or below its low-stock threshold.
func (p *Product) IsLowStock() bool {
	return p.CurrentStock <= p.MinStock
}

// InventoryValue returns current stock valued at cost price.
func (p *Product) InventoryValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.CurrentStock)))
}
