package impl

import (
	"context"
	"testing"

	"inventra/internal/domain/entity"
	domainerrors "inventra/internal/domain/errors"
	"inventra/internal/domain/repository"
	"inventra/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestProductService(f *fixtures) usecase.ProductUsecase {
	return NewProductService(f.tx, f.logger)
}

func TestCreateProduct(t *testing.T) {
	f := newFixtures(t)
	srv := createTestProductService(f)

	product, err := srv.CreateProduct(context.Background(), f.ownerID, f.businessID, &usecase.CreateProductInput{
		Name:         "Widget",
		SKU:          "SKU-1",
		Category:     "electronics",
		CurrentStock: 10,
		MinStock:     2,
		MaxStock:     50,
		Price:        "5.00",
		SellingPrice: "8.50",
	})

	require.NoError(t, err)
	assert.Equal(t, "8.5", product.SellingPrice.String())
	assert.Contains(t, f.store.products, product.ID)
}

func TestCreateProduct_DuplicateSKU(t *testing.T) {
	f := newFixtures(t)
	f.addProduct(t, "Widget", "SKU-1", 10, "5.00", "8.00")
	srv := createTestProductService(f)

	_, err := srv.CreateProduct(context.Background(), f.ownerID, f.businessID, &usecase.CreateProductInput{
		Name:         "Other Widget",
		SKU:          "SKU-1",
		Category:     "electronics",
		Price:        "5.00",
		SellingPrice: "8.00",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrDuplicateSKU))
}

func TestProductRepoCreate_DuplicateSKUBackstop(t *testing.T) {
	f := newFixtures(t)
	f.addProduct(t, "Widget", "SKU-1", 5, "1.00", "2.00")

	// The repository-level unique constraint surfaces the same conflict as
	// the service's pre-check.
	err := f.tx.Execute(context.Background(), func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.ProductRepo().Create(context.Background(), &entity.Product{
			BusinessID: f.businessID,
			Name:       "Other Widget",
			SKU:        "SKU-1",
			Category:   entity.CategoryElectronics,
		})
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrDuplicateSKU))
}

func TestCreateProduct_InvalidInput(t *testing.T) {
	f := newFixtures(t)
	srv := createTestProductService(f)

	cases := []struct {
		name  string
		input usecase.CreateProductInput
	}{
		{"bad category", usecase.CreateProductInput{Name: "W", SKU: "S", Category: "spaceships", Price: "1", SellingPrice: "2"}},
		{"bad price", usecase.CreateProductInput{Name: "W", SKU: "S", Category: "electronics", Price: "abc", SellingPrice: "2"}},
		{"negative price", usecase.CreateProductInput{Name: "W", SKU: "S", Category: "electronics", Price: "-1", SellingPrice: "2"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := srv.CreateProduct(context.Background(), f.ownerID, f.businessID, &tc.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
		})
	}
}

func TestUpdateProduct_SKUConflict(t *testing.T) {
	f := newFixtures(t)
	f.addProduct(t, "Widget", "SKU-1", 10, "5.00", "8.00")
	otherID := f.addProduct(t, "Gadget", "SKU-2", 5, "3.00", "6.00")
	srv := createTestProductService(f)

	taken := "SKU-1"
	_, err := srv.UpdateProduct(context.Background(), f.ownerID, otherID, &usecase.UpdateProductInput{
		SKU: &taken,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrDuplicateSKU))
}

func TestUpdateProduct_Partial(t *testing.T) {
	f := newFixtures(t)
	productID := f.addProduct(t, "Widget", "SKU-1", 10, "5.00", "8.00")
	srv := createTestProductService(f)

	sellingPrice := "9.99"
	product, err := srv.UpdateProduct(context.Background(), f.ownerID, productID, &usecase.UpdateProductInput{
		SellingPrice: &sellingPrice,
	})

	require.NoError(t, err)
	assert.Equal(t, "9.99", product.SellingPrice.String())
	assert.Equal(t, "Widget", product.Name)
	assert.Equal(t, 10, product.CurrentStock)
}

func TestDeleteProductBySKU(t *testing.T) {
	f := newFixtures(t)
	productID := f.addProduct(t, "Widget", "SKU-1", 10, "5.00", "8.00")
	srv := createTestProductService(f)

	err := srv.DeleteProductBySKU(context.Background(), f.ownerID, f.businessID, "SKU-1")

	require.NoError(t, err)
	assert.NotContains(t, f.store.products, productID)
}

func TestDeleteProductBySKU_Unknown(t *testing.T) {
	f := newFixtures(t)
	srv := createTestProductService(f)

	err := srv.DeleteProductBySKU(context.Background(), f.ownerID, f.businessID, "NOPE")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))
}

func TestAdjustStock(t *testing.T) {
	f := newFixtures(t)
	productID := f.addProduct(t, "Widget", "SKU-1", 10, "5.00", "8.00")
	srv := createTestProductService(f)

	product, err := srv.AdjustStock(context.Background(), f.ownerID, productID, 5)
	require.NoError(t, err)
	assert.Equal(t, 15, product.CurrentStock)

	product, err = srv.AdjustStock(context.Background(), f.ownerID, productID, -15)
	require.NoError(t, err)
	assert.Equal(t, 0, product.CurrentStock)
}

func TestAdjustStock_CannotGoNegative(t *testing.T) {
	f := newFixtures(t)
	productID := f.addProduct(t, "Widget", "SKU-1", 10, "5.00", "8.00")
	srv := createTestProductService(f)

	_, err := srv.AdjustStock(context.Background(), f.ownerID, productID, -11)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInsufficientStock))
	assert.Equal(t, 10, f.productStock(t, productID))
}
