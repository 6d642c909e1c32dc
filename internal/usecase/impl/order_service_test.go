package impl

import (
	"context"
	"testing"
	"time"

	domainerrors "inventra/internal/domain/errors"
	"inventra/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestOrderService(f *fixtures) usecase.OrderUsecase {
	return NewOrderService(f.tx, f.logger)
}

func TestPlaceOrder_DecrementsStock(t *testing.T) {
	f := newFixtures(t)
	productID := f.addProduct(t, "Widget", "SKU-1", 10, "5.00", "8.00")
	srv := createTestOrderService(f)

	order, err := srv.PlaceOrder(context.Background(), f.ownerID, &usecase.PlaceOrderInput{
		BusinessID:   f.businessID,
		ProductName:  "Widget",
		Quantity:     4,
		CustomerName: "Alice",
	})

	require.NoError(t, err)
	assert.Equal(t, 6, f.productStock(t, productID))
	assert.Equal(t, "Widget", order.ProductName)
	assert.False(t, order.IsReturned)
	assert.False(t, order.Date.IsZero())
}

func TestPlaceOrder_InsufficientStock(t *testing.T) {
	f := newFixtures(t)
	productID := f.addProduct(t, "Widget", "SKU-1", 3, "5.00", "8.00")
	srv := createTestOrderService(f)

	_, err := srv.PlaceOrder(context.Background(), f.ownerID, &usecase.PlaceOrderInput{
		BusinessID:  f.businessID,
		ProductName: "Widget",
		Quantity:    4,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInsufficientStock))
	// The failed order must not touch stock or leave a row behind.
	assert.Equal(t, 3, f.productStock(t, productID))
	assert.Empty(t, f.store.orders)
}

func TestPlaceOrder_RejectsNonPositiveQuantity(t *testing.T) {
	f := newFixtures(t)
	f.addProduct(t, "Widget", "SKU-1", 10, "5.00", "8.00")
	srv := createTestOrderService(f)

	for _, qty := range []int{0, -3} {
		_, err := srv.PlaceOrder(context.Background(), f.ownerID, &usecase.PlaceOrderInput{
			BusinessID:  f.businessID,
			ProductName: "Widget",
			Quantity:    qty,
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	}
}

func TestPlaceOrder_UnknownProduct(t *testing.T) {
	f := newFixtures(t)
	srv := createTestOrderService(f)

	_, err := srv.PlaceOrder(context.Background(), f.ownerID, &usecase.PlaceOrderInput{
		BusinessID:  f.businessID,
		ProductName: "Ghost",
		Quantity:    1,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))
}

func TestPlaceOrder_ForeignBusinessRejected(t *testing.T) {
	f := newFixtures(t)
	stranger := uuid.New()
	srv := createTestOrderService(f)

	_, err := srv.PlaceOrder(context.Background(), stranger, &usecase.PlaceOrderInput{
		BusinessID:  f.businessID,
		ProductName: "Widget",
		Quantity:    1,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestDeleteOrder_RestoresStockWithoutClamp(t *testing.T) {
	f := newFixtures(t)
	productID := f.addProduct(t, "Widget", "SKU-1", 100, "5.00", "8.00")
	orderID := f.addOrder(t, "Widget", 7, time.Now(), false)
	srv := createTestOrderService(f)

	err := srv.DeleteOrder(context.Background(), f.ownerID, orderID, nil)

	require.NoError(t, err)
	// The deletion puts the full quantity back, even beyond any max.
	assert.Equal(t, 107, f.productStock(t, productID))
	assert.Empty(t, f.store.orders)
}

func TestDeleteOrder_AmbiguousBusiness(t *testing.T) {
	f := newFixtures(t)
	f.addBusiness(t, f.ownerID, "Second Store")
	f.addProduct(t, "Widget", "SKU-1", 10, "5.00", "8.00")
	orderID := f.addOrder(t, "Widget", 1, time.Now(), false)
	// Strip the business reference so resolution has to guess.
	f.store.orders[orderID].BusinessID = uuid.Nil
	srv := createTestOrderService(f)

	err := srv.DeleteOrder(context.Background(), f.ownerID, orderID, nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAmbiguousBusiness))
}

func TestDeleteOrder_ExplicitBusinessResolvesAmbiguity(t *testing.T) {
	f := newFixtures(t)
	f.addBusiness(t, f.ownerID, "Second Store")
	productID := f.addProduct(t, "Widget", "SKU-1", 10, "5.00", "8.00")
	orderID := f.addOrder(t, "Widget", 2, time.Now(), false)
	f.store.orders[orderID].BusinessID = uuid.Nil
	srv := createTestOrderService(f)

	err := srv.DeleteOrder(context.Background(), f.ownerID, orderID, &f.businessID)

	require.NoError(t, err)
	assert.Equal(t, 12, f.productStock(t, productID))
}

func TestDeleteOrder_SingleBusinessInferred(t *testing.T) {
	f := newFixtures(t)
	productID := f.addProduct(t, "Widget", "SKU-1", 10, "5.00", "8.00")
	orderID := f.addOrder(t, "Widget", 2, time.Now(), false)
	f.store.orders[orderID].BusinessID = uuid.Nil
	srv := createTestOrderService(f)

	err := srv.DeleteOrder(context.Background(), f.ownerID, orderID, nil)

	require.NoError(t, err)
	assert.Equal(t, 12, f.productStock(t, productID))
}

func TestRegisterReturn_RestoresStockAndFlagsOrder(t *testing.T) {
	f := newFixtures(t)
	productID := f.addProduct(t, "Widget", "SKU-1", 10, "5.00", "8.00")
	orderID := f.addOrder(t, "Widget", 3, time.Now(), false)
	srv := createTestOrderService(f)

	ret, err := srv.RegisterReturn(context.Background(), f.ownerID, orderID)

	require.NoError(t, err)
	assert.Equal(t, 13, f.productStock(t, productID))
	assert.Equal(t, orderID, ret.OrderID)
	assert.Equal(t, "Widget", ret.ProductName)
	assert.Equal(t, 3, ret.Quantity)
	assert.True(t, f.store.orders[orderID].IsReturned)
}

func TestRegisterReturn_AlreadyReturned(t *testing.T) {
	f := newFixtures(t)
	productID := f.addProduct(t, "Widget", "SKU-1", 10, "5.00", "8.00")
	orderID := f.addOrder(t, "Widget", 3, time.Now(), true)
	srv := createTestOrderService(f)

	_, err := srv.RegisterReturn(context.Background(), f.ownerID, orderID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrOrderAlreadyReturned))
	assert.Equal(t, 10, f.productStock(t, productID))
	assert.Empty(t, f.store.returns)
}

func TestRegisterReturn_UnknownOrder(t *testing.T) {
	f := newFixtures(t)
	srv := createTestOrderService(f)

	_, err := srv.RegisterReturn(context.Background(), f.ownerID, uuid.New())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrOrderNotFound))
}

func TestRemoveReturn_RestoresOrderAndStock(t *testing.T) {
	f := newFixtures(t)
	productID := f.addProduct(t, "Widget", "SKU-1", 13, "5.00", "8.00")
	orderID := f.addOrder(t, "Widget", 3, time.Now(), true)
	returnID := f.addReturn(t, orderID, "Widget", 3, time.Now())
	srv := createTestOrderService(f)

	output, err := srv.RemoveReturn(context.Background(), f.ownerID, returnID)

	require.NoError(t, err)
	assert.Equal(t, "Return successfully removed and order restored.", output.Message)
	assert.Empty(t, output.Warnings)
	assert.Equal(t, 10, f.productStock(t, productID))
	assert.False(t, f.store.orders[orderID].IsReturned)
	assert.Empty(t, f.store.returns)
}

func TestRemoveReturn_StockFloorsAtZero(t *testing.T) {
	f := newFixtures(t)
	productID := f.addProduct(t, "Widget", "SKU-1", 1, "5.00", "8.00")
	orderID := f.addOrder(t, "Widget", 5, time.Now(), true)
	returnID := f.addReturn(t, orderID, "Widget", 5, time.Now())
	srv := createTestOrderService(f)

	_, err := srv.RemoveReturn(context.Background(), f.ownerID, returnID)

	require.NoError(t, err)
	assert.Equal(t, 0, f.productStock(t, productID))
}

func TestRemoveReturn_MissingProductIsWarning(t *testing.T) {
	f := newFixtures(t)
	orderID := f.addOrder(t, "Vanished", 2, time.Now(), true)
	returnID := f.addReturn(t, orderID, "Vanished", 2, time.Now())
	srv := createTestOrderService(f)

	output, err := srv.RemoveReturn(context.Background(), f.ownerID, returnID)

	require.NoError(t, err)
	require.Len(t, output.Warnings, 1)
	assert.Contains(t, output.Warnings[0], "Vanished")
	// The return row is gone and the order flag is still cleared.
	assert.Empty(t, f.store.returns)
	assert.False(t, f.store.orders[orderID].IsReturned)
}

func TestRemoveReturn_MissingOrderIsWarning(t *testing.T) {
	f := newFixtures(t)
	productID := f.addProduct(t, "Widget", "SKU-1", 5, "5.00", "8.00")
	returnID := f.addReturn(t, uuid.New(), "Widget", 2, time.Now())
	srv := createTestOrderService(f)

	output, err := srv.RemoveReturn(context.Background(), f.ownerID, returnID)

	require.NoError(t, err)
	require.Len(t, output.Warnings, 1)
	assert.Contains(t, output.Warnings[0], "order")
	assert.Equal(t, 3, f.productStock(t, productID))
	assert.Empty(t, f.store.returns)
}

func TestRemoveReturn_Unknown(t *testing.T) {
	f := newFixtures(t)
	srv := createTestOrderService(f)

	_, err := srv.RemoveReturn(context.Background(), f.ownerID, uuid.New())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrReturnNotFound))
}

func TestListOrders_FiltersByDateRange(t *testing.T) {
	f := newFixtures(t)
	f.addProduct(t, "Widget", "SKU-1", 10, "5.00", "8.00")
	now := time.Now()
	f.addOrder(t, "Widget", 1, now, false)
	f.addOrder(t, "Widget", 1, now.AddDate(0, 0, -40), false)
	srv := createTestOrderService(f)

	from := now.AddDate(0, 0, -7)
	orders, err := srv.ListOrders(context.Background(), f.ownerID, f.businessID, &from, nil)

	require.NoError(t, err)
	assert.Len(t, orders, 1)
}
