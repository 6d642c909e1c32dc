package model

import (
	"time"

	"github.com/google/uuid"
)

// ReturnModel mirrors the 'returns' table. OrderRef references orders.id.
type ReturnModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	BusinessID   uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderRef     uuid.UUID `gorm:"column:order_id;type:uuid;not null;index"`
	ProductName  string    `gorm:"type:varchar(200);not null"`
	CustomerName string    `gorm:"type:varchar(200)"`
	Quantity     int       `gorm:"not null"`
	Date         time.Time `gorm:"type:date;not null;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (ReturnModel) TableName() string {
	return "returns"
}
