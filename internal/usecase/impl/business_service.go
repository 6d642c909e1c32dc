package impl

import (
	"context"
	"log/slog"

	"inventra/internal/domain/entity"
	domainerrors "inventra/internal/domain/errors"
	"inventra/internal/domain/repository"
	"inventra/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// businessService implements the BusinessUsecase interface.
type businessService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewBusinessService is the constructor for businessService.
func NewBusinessService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.BusinessUsecase {
	return &businessService{
		txManager: txManager,
		logger:    logger,
	}
}

// CreateBusiness creates a business and optionally clones the catalog of
// another owned business into it.
func (srv *businessService) CreateBusiness(ctx context.Context, ownerID uuid.UUID, input *usecase.CreateBusinessInput) (*entity.Business, error) {
	srv.logger.Info("Creating business", "ownerID", ownerID, "name", input.Name)

	department := entity.Department(input.Department)
	if !department.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown department")
	}

	business := &entity.Business{
		OwnerID:      ownerID,
		Name:         input.Name,
		Department:   department,
		ContactEmail: input.ContactEmail,
		ContactPhone: input.ContactPhone,
		Address:      input.Address,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.BusinessRepo().Create(ctx, business); err != nil {
			return errors.Wrap(err, "failed to create business")
		}

		if input.CopyFromBusinessID == nil {
			return nil
		}

		// Catalog cloning: the source must be owned by the caller. Individual
		// copy failures (duplicate SKUs, mostly) are skipped, never fatal.
		source, err := findOwnedBusiness(ctx, repoFactory, ownerID, *input.CopyFromBusinessID)
		if err != nil {
			return errors.Wrap(err, "failed to resolve source business for catalog copy")
		}

		products, err := repoFactory.ProductRepo().ListByBusiness(ctx, source.ID)
		if err != nil {
			return errors.Wrap(err, "failed to list source products")
		}

		for _, product := range products {
			clone := *product
			clone.ID = uuid.Nil
			clone.BusinessID = business.ID

			if err := repoFactory.ProductRepo().Create(ctx, &clone); err != nil {
				srv.logger.Warn("Skipping product during catalog copy",
					"sku", product.SKU, "error", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create business")
	}

	return business, nil
}

// ListBusinesses returns every business owned by the caller.
func (srv *businessService) ListBusinesses(ctx context.Context, ownerID uuid.UUID) ([]*entity.Business, error) {
	var businesses []*entity.Business

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.BusinessRepo().ListByOwner(ctx, ownerID)
		if err != nil {
			return errors.Wrap(err, "failed to list businesses")
		}
		businesses = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list businesses")
	}

	return businesses, nil
}

// GetBusiness returns a single owned business.
func (srv *businessService) GetBusiness(ctx context.Context, ownerID, businessID uuid.UUID) (*entity.Business, error) {
	var business *entity.Business

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := findOwnedBusiness(ctx, repoFactory, ownerID, businessID)
		if err != nil {
			return err
		}
		business = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get business")
	}

	return business, nil
}

// UpdateBusiness applies a partial update to an owned business.
func (srv *businessService) UpdateBusiness(ctx context.Context, ownerID, businessID uuid.UUID, input *usecase.UpdateBusinessInput) (*entity.Business, error) {
	srv.logger.Info("Updating business", "businessID", businessID)

	var business *entity.Business

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := findOwnedBusiness(ctx, repoFactory, ownerID, businessID)
		if err != nil {
			return err
		}

		if input.Name != nil {
			found.Name = *input.Name
		}
		if input.Department != nil {
			department := entity.Department(*input.Department)
			if !department.IsValid() {
				return errors.Wrap(domainerrors.ErrValidationFailed, "unknown department")
			}
			found.Department = department
		}
		if input.ContactEmail != nil {
			found.ContactEmail = *input.ContactEmail
		}
		if input.ContactPhone != nil {
			found.ContactPhone = *input.ContactPhone
		}
		if input.Address != nil {
			found.Address = *input.Address
		}

		if err := repoFactory.BusinessRepo().Update(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update business")
		}
		business = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update business")
	}

	return business, nil
}

// DeleteBusiness removes an owned business.
func (srv *businessService) DeleteBusiness(ctx context.Context, ownerID, businessID uuid.UUID) error {
	srv.logger.Info("Deleting business", "businessID", businessID)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := findOwnedBusiness(ctx, repoFactory, ownerID, businessID); err != nil {
			return err
		}

		if err := repoFactory.BusinessRepo().Delete(ctx, businessID); err != nil {
			return errors.Wrap(err, "failed to delete business")
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete business")
	}

	return nil
}
