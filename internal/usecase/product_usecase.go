package usecase

import (
	"context"

	"inventra/internal/domain/entity"

	"github.com/google/uuid"
)

// ProductUsecase defines the interface for catalog management operations.
type ProductUsecase interface {
	CreateProduct(ctx context.Context, ownerID, businessID uuid.UUID, input *CreateProductInput) (*entity.Product, error)
	ListProducts(ctx context.Context, ownerID, businessID uuid.UUID) ([]*entity.Product, error)
	GetProduct(ctx context.Context, ownerID, productID uuid.UUID) (*entity.Product, error)
	UpdateProduct(ctx context.Context, ownerID, productID uuid.UUID, input *UpdateProductInput) (*entity.Product, error)
	DeleteProductBySKU(ctx context.Context, ownerID, businessID uuid.UUID, sku string) error
	AdjustStock(ctx context.Context, ownerID, productID uuid.UUID, delta int) (*entity.Product, error)
}

// --- Input DTOs ---

// CreateProductInput defines the data required to create a catalog item.
// Prices travel as strings to keep exact decimal semantics on the wire.
type CreateProductInput struct {
	Name         string `json:"name" validate:"required"`
	SKU          string `json:"sku" validate:"required"`
	Category     string `json:"category" validate:"required"`
	CurrentStock int    `json:"current_stock" validate:"gte=0"`
	MinStock     int    `json:"min_stock" validate:"gte=0"`
	MaxStock     int    `json:"max_stock" validate:"gte=0"`
	Price        string `json:"price" validate:"required"`
	SellingPrice string `json:"selling_price" validate:"required"`
	Supplier     string `json:"supplier"`
}

// UpdateProductInput defines the data for a partial product update.
type UpdateProductInput struct {
	Name         *string `json:"name,omitempty"`
	SKU          *string `json:"sku,omitempty"`
	Category     *string `json:"category,omitempty"`
	CurrentStock *int    `json:"current_stock,omitempty"`
	MinStock     *int    `json:"min_stock,omitempty"`
	MaxStock     *int    `json:"max_stock,omitempty"`
	Price        *string `json:"price,omitempty"`
	SellingPrice *string `json:"selling_price,omitempty"`
	Supplier     *string `json:"supplier,omitempty"`
}
