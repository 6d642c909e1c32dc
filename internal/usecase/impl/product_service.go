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
	"github.com/shopspring/decimal"
)

// productService implements the ProductUsecase interface.
type productService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.ProductUsecase {
	return &productService{
		txManager: txManager,
		logger:    logger,
	}
}

// CreateProduct adds a catalog item to an owned business.
func (srv *productService) CreateProduct(ctx context.Context, ownerID, businessID uuid.UUID, input *usecase.CreateProductInput) (*entity.Product, error) {
	srv.logger.Info("Creating product", "businessID", businessID, "sku", input.SKU)

	category := entity.Category(input.Category)
	if !category.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown category")
	}

	price, err := decimal.NewFromString(input.Price)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "invalid price")
	}
	sellingPrice, err := decimal.NewFromString(input.SellingPrice)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "invalid selling price")
	}
	if price.IsNegative() || sellingPrice.IsNegative() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "prices must not be negative")
	}

	product := &entity.Product{
		BusinessID:   businessID,
		Name:         input.Name,
		SKU:          input.SKU,
		Category:     category,
		CurrentStock: input.CurrentStock,
		MinStock:     input.MinStock,
		MaxStock:     input.MaxStock,
		Price:        price,
		SellingPrice: sellingPrice,
		Supplier:     input.Supplier,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := findOwnedBusiness(ctx, repoFactory, ownerID, businessID); err != nil {
			return err
		}

		productRepo := repoFactory.ProductRepo()

		// The per-business unique index backstops this check.
		if _, err := productRepo.FindBySKU(ctx, businessID, input.SKU); err == nil {
			return errors.Wrap(domainerrors.ErrDuplicateSKU, "sku already in use")
		} else if !errors.Is(err, repository.ErrProductNotFound) {
			return errors.Wrap(err, "failed to check existing sku")
		}

		if err := productRepo.Create(ctx, product); err != nil {
			return errors.Wrap(err, "failed to create product")
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create product")
	}

	return product, nil
}

// ListProducts returns the full catalog of an owned business.
func (srv *productService) ListProducts(ctx context.Context, ownerID, businessID uuid.UUID) ([]*entity.Product, error) {
	var products []*entity.Product

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := findOwnedBusiness(ctx, repoFactory, ownerID, businessID); err != nil {
			return err
		}

		found, err := repoFactory.ProductRepo().ListByBusiness(ctx, businessID)
		if err != nil {
			return errors.Wrap(err, "failed to list products")
		}
		products = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

// GetProduct returns a single product after checking business ownership.
func (srv *productService) GetProduct(ctx context.Context, ownerID, productID uuid.UUID) (*entity.Product, error) {
	var product *entity.Product

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := srv.findOwnedProduct(ctx, repoFactory, ownerID, productID)
		if err != nil {
			return err
		}
		product = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get product")
	}

	return product, nil
}

// UpdateProduct applies a partial update to a product.
func (srv *productService) UpdateProduct(ctx context.Context, ownerID, productID uuid.UUID, input *usecase.UpdateProductInput) (*entity.Product, error) {
	srv.logger.Info("Updating product", "productID", productID)

	var product *entity.Product

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := srv.findOwnedProduct(ctx, repoFactory, ownerID, productID)
		if err != nil {
			return err
		}

		if input.SKU != nil && *input.SKU != found.SKU {
			if _, err := repoFactory.ProductRepo().FindBySKU(ctx, found.BusinessID, *input.SKU); err == nil {
				return errors.Wrap(domainerrors.ErrDuplicateSKU, "sku already in use")
			} else if !errors.Is(err, repository.ErrProductNotFound) {
				return errors.Wrap(err, "failed to check existing sku")
			}
			found.SKU = *input.SKU
		}

		if input.Name != nil {
			found.Name = *input.Name
		}
		if input.Category != nil {
			category := entity.Category(*input.Category)
			if !category.IsValid() {
				return errors.Wrap(domainerrors.ErrValidationFailed, "unknown category")
			}
			found.Category = category
		}
		if input.CurrentStock != nil {
			if *input.CurrentStock < 0 {
				return errors.Wrap(domainerrors.ErrValidationFailed, "stock must not be negative")
			}
			found.CurrentStock = *input.CurrentStock
		}
		if input.MinStock != nil {
			found.MinStock = *input.MinStock
		}
		if input.MaxStock != nil {
			found.MaxStock = *input.MaxStock
		}
		if input.Price != nil {
			price, err := decimal.NewFromString(*input.Price)
			if err != nil || price.IsNegative() {
				return errors.Wrap(domainerrors.ErrValidationFailed, "invalid price")
			}
			found.Price = price
		}
		if input.SellingPrice != nil {
			sellingPrice, err := decimal.NewFromString(*input.SellingPrice)
			if err != nil || sellingPrice.IsNegative() {
				return errors.Wrap(domainerrors.ErrValidationFailed, "invalid selling price")
			}
			found.SellingPrice = sellingPrice
		}
		if input.Supplier != nil {
			found.Supplier = *input.Supplier
		}

		if err := repoFactory.ProductRepo().Update(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update product")
		}
		product = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update product")
	}

	return product, nil
}

// DeleteProductBySKU removes a catalog item identified by its SKU.
func (srv *productService) DeleteProductBySKU(ctx context.Context, ownerID, businessID uuid.UUID, sku string) error {
	srv.logger.Info("Deleting product", "businessID", businessID, "sku", sku)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := findOwnedBusiness(ctx, repoFactory, ownerID, businessID); err != nil {
			return err
		}

		if _, err := repoFactory.ProductRepo().FindBySKU(ctx, businessID, sku); err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return errors.Wrap(domainerrors.ErrProductNotFound, "unknown sku")
			}

			return errors.Wrap(err, "failed to find product")
		}

		if err := repoFactory.ProductRepo().DeleteBySKU(ctx, businessID, sku); err != nil {
			return errors.Wrap(err, "failed to delete product")
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete product")
	}

	return nil
}

// AdjustStock applies a manual stock correction and returns the updated product.
// Negative deltas are guarded so the result never goes below zero.
func (srv *productService) AdjustStock(ctx context.Context, ownerID, productID uuid.UUID, delta int) (*entity.Product, error) {
	srv.logger.Info("Adjusting stock", "productID", productID, "delta", delta)

	var product *entity.Product

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := srv.findOwnedProduct(ctx, repoFactory, ownerID, productID); err != nil {
			return err
		}

		guard := delta < 0
		if err := repoFactory.ProductRepo().AdjustStock(ctx, productID, delta, guard); err != nil {
			if errors.Is(err, repository.ErrStockConflict) {
				return errors.Wrap(domainerrors.ErrInsufficientStock, "adjustment would go below zero")
			}

			return errors.Wrap(err, "failed to adjust stock")
		}

		found, err := repoFactory.ProductRepo().FindByID(ctx, productID)
		if err != nil {
			return errors.Wrap(err, "failed to reload product")
		}
		product = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to adjust stock")
	}

	return product, nil
}

// findOwnedProduct resolves a product and checks that its business belongs to
// the caller.
func (srv *productService) findOwnedProduct(ctx context.Context, repoFactory repository.RepositoryFactory, ownerID, productID uuid.UUID) (*entity.Product, error) {
	product, err := repoFactory.ProductRepo().FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProductNotFound, "product not found")
		}

		return nil, errors.Wrap(err, "failed to find product")
	}

	if _, err := findOwnedBusiness(ctx, repoFactory, ownerID, product.BusinessID); err != nil {
		return nil, err
	}

	return product, nil
}
