package usecase

import (
	"context"

	"inventra/internal/domain/entity"

	"github.com/google/uuid"
)

// BusinessUsecase defines the interface for tenant management operations.
// Every method authorizes against the calling user's ownership.
type BusinessUsecase interface {
	CreateBusiness(ctx context.Context, ownerID uuid.UUID, input *CreateBusinessInput) (*entity.Business, error)
	ListBusinesses(ctx context.Context, ownerID uuid.UUID) ([]*entity.Business, error)
	GetBusiness(ctx context.Context, ownerID, businessID uuid.UUID) (*entity.Business, error)
	UpdateBusiness(ctx context.Context, ownerID, businessID uuid.UUID, input *UpdateBusinessInput) (*entity.Business, error)
	DeleteBusiness(ctx context.Context, ownerID, businessID uuid.UUID) error
}

// --- Input DTOs ---

// CreateBusinessInput defines the data required to create a business.
// CopyFromBusinessID optionally clones the catalog of another owned business.
type CreateBusinessInput struct {
	Name               string     `json:"name" validate:"required"`
	Department         string     `json:"department" validate:"required"`
	ContactEmail       string     `json:"contact_email" validate:"omitempty,email"`
	ContactPhone       string     `json:"contact_phone"`
	Address            string     `json:"address"`
	CopyFromBusinessID *uuid.UUID `json:"copy_from_business_id,omitempty"`
}

// UpdateBusinessInput defines the data for a partial business update.
type UpdateBusinessInput struct {
	Name         *string `json:"name,omitempty"`
	Department   *string `json:"department,omitempty"`
	ContactEmail *string `json:"contact_email,omitempty"`
	ContactPhone *string `json:"contact_phone,omitempty"`
	Address      *string `json:"address,omitempty"`
}
