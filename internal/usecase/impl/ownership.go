package impl

import (
	"context"

	"inventra/internal/domain/entity"
	domainerrors "inventra/internal/domain/errors"
	"inventra/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// findOwnedBusiness resolves a business and enforces that the caller owns it.
// Every tenant-scoped operation funnels through this check.
func findOwnedBusiness(ctx context.Context, repoFactory repository.RepositoryFactory, ownerID, businessID uuid.UUID) (*entity.Business, error) {
	business, err := repoFactory.BusinessRepo().FindByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, repository.ErrBusinessNotFound) {
			return nil, errors.Wrap(domainerrors.ErrBusinessNotFound, "business not found")
		}

		return nil, errors.Wrap(err, "failed to find business")
	}

	if business.OwnerID != ownerID {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "business not owned by caller")
	}

	return business, nil
}
