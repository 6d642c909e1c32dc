package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductModel mirrors the 'products' table. The (business_id, sku) pair is
// unique; the same SKU may appear under different businesses.
type ProductModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	BusinessID   uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_products_business_sku"`
	Name         string          `gorm:"type:varchar(200);not null;index"`
	SKU          string          `gorm:"column:sku;type:varchar(100);not null;uniqueIndex:idx_products_business_sku"`
	Category     string          `gorm:"type:varchar(50);not null"`
	CurrentStock int             `gorm:"not null;default:0"`
	MinStock     int             `gorm:"not null;default:0"`
	MaxStock     int             `gorm:"not null;default:0"`
	Price        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	SellingPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Supplier     string          `gorm:"type:varchar(200)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
