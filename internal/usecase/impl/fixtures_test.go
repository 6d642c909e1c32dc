package impl

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"inventra/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// fixtures wires the in-memory store behind a fake transaction manager and
// seeds one owner with one business.
type fixtures struct {
	store      *fakeStore
	tx         *fakeTxManager
	logger     *slog.Logger
	ownerID    uuid.UUID
	businessID uuid.UUID
}

func newFixtures(t *testing.T) *fixtures {
	t.Helper()

	store := newFakeStore()
	ownerID := uuid.New()
	store.users[ownerID] = &entity.User{
		ID:           ownerID,
		Email:        "owner@example.com",
		PasswordHash: "hashed:secret",
		Name:         "Owner",
	}

	businessID := uuid.New()
	store.business[businessID] = &entity.Business{
		ID:         businessID,
		OwnerID:    ownerID,
		Name:       "Main Store",
		Department: entity.DepartmentRetail,
	}

	return &fixtures{
		store:      store,
		tx:         &fakeTxManager{store: store},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		ownerID:    ownerID,
		businessID: businessID,
	}
}

// addBusiness seeds another business for the given owner.
func (f *fixtures) addBusiness(t *testing.T, ownerID uuid.UUID, name string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	f.store.business[id] = &entity.Business{
		ID:         id,
		OwnerID:    ownerID,
		Name:       name,
		Department: entity.DepartmentRetail,
	}

	return id
}

// addProduct seeds a catalog item for the default business.
func (f *fixtures) addProduct(t *testing.T, name, sku string, stock int, price, sellingPrice string) uuid.UUID {
	t.Helper()

	cost, err := decimal.NewFromString(price)
	require.NoError(t, err)
	selling, err := decimal.NewFromString(sellingPrice)
	require.NoError(t, err)

	id := uuid.New()
	f.store.products[id] = &entity.Product{
		ID:           id,
		BusinessID:   f.businessID,
		Name:         name,
		SKU:          sku,
		Category:     entity.CategoryElectronics,
		CurrentStock: stock,
		MinStock:     2,
		MaxStock:     100,
		Price:        cost,
		SellingPrice: selling,
	}

	return id
}

// addOrder seeds an order for the default business.
func (f *fixtures) addOrder(t *testing.T, productName string, qty int, date time.Time, returned bool) uuid.UUID {
	t.Helper()

	id := uuid.New()
	f.store.orders[id] = &entity.Order{
		ID:          id,
		BusinessID:  f.businessID,
		ProductName: productName,
		Quantity:    qty,
		Date:        date,
		IsReturned:  returned,
	}

	return id
}

// addReturn seeds a return row for the default business.
func (f *fixtures) addReturn(t *testing.T, orderID uuid.UUID, productName string, qty int, date time.Time) uuid.UUID {
	t.Helper()

	id := uuid.New()
	f.store.returns[id] = &entity.Return{
		ID:          id,
		BusinessID:  f.businessID,
		OrderID:     orderID,
		ProductName: productName,
		Quantity:    qty,
		Date:        date,
	}

	return id
}

func (f *fixtures) productStock(t *testing.T, productID uuid.UUID) int {
	t.Helper()

	product, ok := f.store.products[productID]
	require.True(t, ok, "product should exist")

	return product.CurrentStock
}
