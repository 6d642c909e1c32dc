package model

import (
	"time"

	"github.com/google/uuid"
)

// BusinessModel mirrors the 'businesses' table. OwnerID references users.id (UUID).
type BusinessModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OwnerID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Name         string    `gorm:"type:varchar(100);not null"`
	Department   string    `gorm:"type:varchar(50);not null"`
	ContactEmail string    `gorm:"type:varchar(255)"`
	ContactPhone string    `gorm:"type:varchar(50)"`
	Address      string    `gorm:"type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Products []ProductModel `gorm:"foreignKey:BusinessID"`
	Orders   []OrderModel   `gorm:"foreignKey:BusinessID"`
	Returns  []ReturnModel  `gorm:"foreignKey:BusinessID"`
}

// TableName explicitly sets the table name for GORM.
func (BusinessModel) TableName() string {
	return "businesses"
}
