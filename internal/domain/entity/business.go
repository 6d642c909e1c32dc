package entity

import (
	"time"

	"github.com/google/uuid"
)

// Department classifies a business within a fixed choice list.
type Department string

const (
	DepartmentRetail        Department = "retail"
	DepartmentWholesale     Department = "wholesale"
	DepartmentManufacturing Department = "manufacturing"
	DepartmentDistribution  Department = "distribution"
	DepartmentServices      Department = "services"
)

// Departments lists the accepted department values.
var Departments = []Department{
	DepartmentRetail,
	DepartmentWholesale,
	DepartmentManufacturing,
	DepartmentDistribution,
	DepartmentServices,
}

// IsValid reports whether the department is one of the accepted values.
func (d Department) IsValid() bool {
	for _, known := range Departments {
		if d == known {
			return true
		}
	}

	return false
}

// Business is the tenant entity. Products, orders, returns and forecast models
// all hang off a business, and the owner is the only user allowed to touch them.
type Business struct {
	ID           uuid.UUID  // The Global Unique Identifier (GUID) for the business.
	OwnerID      uuid.UUID  // Foreign Key to the owning User.
	Name         string     // The business display name.
	Department   Department // Classification within the fixed department list.
	ContactEmail string     // Contact email for the business.
	ContactPhone string     // Contact phone number for the business.
	Address      string     // Physical address of the business.
	CreatedAt    time.Time  // Timestamp of when this business was created.
	UpdatedAt    time.Time  // Timestamp of the last modification.
}
