package impl

import (
	"context"
	"testing"

	domainerrors "inventra/internal/domain/errors"
	"inventra/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestBusinessService(f *fixtures) usecase.BusinessUsecase {
	return NewBusinessService(f.tx, f.logger)
}

func TestCreateBusiness(t *testing.T) {
	f := newFixtures(t)
	srv := createTestBusinessService(f)

	business, err := srv.CreateBusiness(context.Background(), f.ownerID, &usecase.CreateBusinessInput{
		Name:       "Warehouse",
		Department: "wholesale",
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, business.ID)
	assert.Equal(t, f.ownerID, business.OwnerID)
	assert.Contains(t, f.store.business, business.ID)
}

func TestCreateBusiness_UnknownDepartment(t *testing.T) {
	f := newFixtures(t)
	srv := createTestBusinessService(f)

	_, err := srv.CreateBusiness(context.Background(), f.ownerID, &usecase.CreateBusinessInput{
		Name:       "Warehouse",
		Department: "aerospace",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestCreateBusiness_CopiesCatalog(t *testing.T) {
	f := newFixtures(t)
	f.addProduct(t, "Widget", "SKU-1", 10, "5.00", "8.00")
	f.addProduct(t, "Gadget", "SKU-2", 5, "3.00", "6.00")
	srv := createTestBusinessService(f)

	business, err := srv.CreateBusiness(context.Background(), f.ownerID, &usecase.CreateBusinessInput{
		Name:               "Branch",
		Department:         "retail",
		CopyFromBusinessID: &f.businessID,
	})

	require.NoError(t, err)

	var copied int
	for _, product := range f.store.products {
		if product.BusinessID == business.ID {
			copied++
		}
	}
	assert.Equal(t, 2, copied)
}

func TestCreateBusiness_CopyFromForeignBusinessRejected(t *testing.T) {
	f := newFixtures(t)
	otherOwner := uuid.New()
	foreign := f.addBusiness(t, otherOwner, "Not Yours")
	srv := createTestBusinessService(f)

	_, err := srv.CreateBusiness(context.Background(), f.ownerID, &usecase.CreateBusinessInput{
		Name:               "Branch",
		Department:         "retail",
		CopyFromBusinessID: &foreign,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestGetBusiness_OwnershipEnforced(t *testing.T) {
	f := newFixtures(t)
	stranger := uuid.New()
	srv := createTestBusinessService(f)

	_, err := srv.GetBusiness(context.Background(), stranger, f.businessID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestUpdateBusiness_PartialUpdate(t *testing.T) {
	f := newFixtures(t)
	srv := createTestBusinessService(f)

	name := "Renamed"
	business, err := srv.UpdateBusiness(context.Background(), f.ownerID, f.businessID, &usecase.UpdateBusinessInput{
		Name: &name,
	})

	require.NoError(t, err)
	assert.Equal(t, "Renamed", business.Name)
	// Untouched fields keep their values.
	assert.Equal(t, "retail", string(business.Department))
}

func TestDeleteBusiness(t *testing.T) {
	f := newFixtures(t)
	srv := createTestBusinessService(f)

	err := srv.DeleteBusiness(context.Background(), f.ownerID, f.businessID)

	require.NoError(t, err)
	assert.NotContains(t, f.store.business, f.businessID)
}

func TestListBusinesses_OnlyOwn(t *testing.T) {
	f := newFixtures(t)
	f.addBusiness(t, uuid.New(), "Someone Else's")
	srv := createTestBusinessService(f)

	businesses, err := srv.ListBusinesses(context.Background(), f.ownerID)

	require.NoError(t, err)
	require.Len(t, businesses, 1)
	assert.Equal(t, f.businessID, businesses[0].ID)
}
