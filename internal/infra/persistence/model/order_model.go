package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderModel mirrors the 'orders' table. ProductName is a snapshot taken at
// order time; it is deliberately not a foreign key.
type OrderModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	BusinessID   uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderID      string    `gorm:"type:varchar(100)"`
	TrackingID   string    `gorm:"type:varchar(100)"`
	ProductName  string    `gorm:"type:varchar(200);not null"`
	Quantity     int       `gorm:"not null"`
	CustomerName string    `gorm:"type:varchar(200)"`
	Date         time.Time `gorm:"type:date;not null;index"`
	IsReturned   bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}
