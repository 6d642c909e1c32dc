package postgres

import (
	"context"

	"inventra/internal/domain/entity"
	domainerrors "inventra/internal/domain/errors"
	"inventra/internal/domain/repository"
	"inventra/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// productRepository implements the domain.ProductRepository interface using GORM.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

// FindByID retrieves a single product by its unique ID.
func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&productM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return toProductDomain(&productM), nil
}

// FindByName retrieves a product by exact name within a business.
func (repo *productRepository) FindByName(ctx context.Context, businessID uuid.UUID, name string) (*entity.Product, error) {
	var productM model.ProductModel
	if err := repo.db.WithContext(ctx).
		Where("business_id = ? AND name = ?", businessID, name).
		First(&productM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by name")
	}

	return toProductDomain(&productM), nil
}

// FindBySKU retrieves a product by SKU within a business.
func (repo *productRepository) FindBySKU(ctx context.Context, businessID uuid.UUID, sku string) (*entity.Product, error) {
	var productM model.ProductModel
	if err := repo.db.WithContext(ctx).
		Where("business_id = ? AND sku = ?", businessID, sku).
		First(&productM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by sku")
	}

	return toProductDomain(&productM), nil
}

// ListByBusiness retrieves every product of the given business ordered by name.
func (repo *productRepository) ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]*entity.Product, error) {
	var productMs []model.ProductModel
	if err := repo.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("name ASC").
		Find(&productMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list products by business")
	}

	products := make([]*entity.Product, 0, len(productMs))
	for i := range productMs {
		products = append(products, toProductDomain(&productMs[i]))
	}

	return products, nil
}

// Create persists a new product entity to the database.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrDuplicateSKU.WrapMessage("sku already exists for this business")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrBusinessNotFound.WrapMessage("business does not exist")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required product information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
	}

	product.ID = productM.ID
	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

// Update modifies an existing product entity in the database.
func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Save(productM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrDuplicateSKU.WrapMessage("sku already exists for this business")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update product")
	}

	product.UpdatedAt = productM.UpdatedAt

	return nil
}

// DeleteBySKU removes a product identified by SKU within a business.
func (repo *productRepository) DeleteBySKU(ctx context.Context, businessID uuid.UUID, sku string) error {
	result := repo.db.WithContext(ctx).
		Where("business_id = ? AND sku = ?", businessID, sku).
		Delete(&model.ProductModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// AdjustStock applies delta to current_stock in a single conditional UPDATE.
// With guardAvailable set, the WHERE clause only matches while enough stock
// remains, making concurrent decrements safe without row locks.
func (repo *productRepository) AdjustStock(ctx context.Context, productID uuid.UUID, delta int, guardAvailable bool) error {
	tx := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", productID)

	if guardAvailable && delta < 0 {
		tx = tx.Where("current_stock >= ?", -delta)
	}

	result := tx.UpdateColumn("current_stock", gorm.Expr("current_stock + ?", delta))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to adjust product stock")
	}
	if result.RowsAffected == 0 {
		return repository.ErrStockConflict
	}

	return nil
}

// DecrementStockClamped lowers current_stock by qty, flooring the result at zero.
func (repo *productRepository) DecrementStockClamped(ctx context.Context, productID uuid.UUID, qty int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", productID).
		UpdateColumn("current_stock", gorm.Expr("GREATEST(current_stock - ?, 0)", qty))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to decrement product stock")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toProductDomain converts a GORM ProductModel to a domain Product entity.
func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	return &entity.Product{
		ID:           data.ID,
		BusinessID:   data.BusinessID,
		Name:         data.Name,
		SKU:          data.SKU,
		Category:     entity.Category(data.Category),
		CurrentStock: data.CurrentStock,
		MinStock:     data.MinStock,
		MaxStock:     data.MaxStock,
		Price:        data.Price,
		SellingPrice: data.SellingPrice,
		Supplier:     data.Supplier,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromProductDomain converts a domain Product entity to a GORM ProductModel for persistence.
func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	return &model.ProductModel{
		ID:           data.ID,
		BusinessID:   data.BusinessID,
		Name:         data.Name,
		SKU:          data.SKU,
		Category:     string(data.Category),
		CurrentStock: data.CurrentStock,
		MinStock:     data.MinStock,
		MaxStock:     data.MaxStock,
		Price:        data.Price,
		SellingPrice: data.SellingPrice,
		Supplier:     data.Supplier,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
