package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"inventra/internal/domain/entity"
	domainerrors "inventra/internal/domain/errors"
	"inventra/internal/domain/repository"
	"inventra/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// orderService implements the OrderUsecase interface. All four reconciliation
// operations run inside a single transaction so order rows, return rows and
// product stock never drift apart.
type orderService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.OrderUsecase {
	return &orderService{
		txManager: txManager,
		logger:    logger,
	}
}

// PlaceOrder records a sale and decrements stock atomically. The decrement is
// conditional on enough stock being available; two concurrent orders for the
// last unit cannot both succeed.
func (srv *orderService) PlaceOrder(ctx context.Context, ownerID uuid.UUID, input *usecase.PlaceOrderInput) (*entity.Order, error) {
	srv.logger.Info("Placing order", "businessID", input.BusinessID, "product", input.ProductName, "quantity", input.Quantity)

	if input.Quantity <= 0 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "quantity must be positive")
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	order := &entity.Order{
		BusinessID:   input.BusinessID,
		OrderID:      input.OrderID,
		TrackingID:   input.TrackingID,
		ProductName:  input.ProductName,
		Quantity:     input.Quantity,
		CustomerName: input.CustomerName,
		Date:         date,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := findOwnedBusiness(ctx, repoFactory, ownerID, input.BusinessID); err != nil {
			return err
		}

		product, err := repoFactory.ProductRepo().FindByName(ctx, input.BusinessID, input.ProductName)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return errors.Wrap(domainerrors.ErrProductNotFound, "no product with this name")
			}

			return errors.Wrap(err, "failed to find product")
		}

		if err := repoFactory.ProductRepo().AdjustStock(ctx, product.ID, -input.Quantity, true); err != nil {
			if errors.Is(err, repository.ErrStockConflict) {
				return errors.Wrap(domainerrors.ErrInsufficientStock, "not enough stock")
			}

			return errors.Wrap(err, "failed to decrement stock")
		}

		if err := repoFactory.OrderRepo().Create(ctx, order); err != nil {
			return errors.Wrap(err, "failed to create order")
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to place order")
	}

	return order, nil
}

// ListOrders returns orders of an owned business inside an optional date range.
func (srv *orderService) ListOrders(ctx context.Context, ownerID, businessID uuid.UUID, from, to *time.Time) ([]*entity.Order, error) {
	var orderList []*entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := findOwnedBusiness(ctx, repoFactory, ownerID, businessID); err != nil {
			return err
		}

		found, err := repoFactory.OrderRepo().ListByBusiness(ctx, businessID, repository.DateRange{From: from, To: to})
		if err != nil {
			return errors.Wrap(err, "failed to list orders")
		}
		orderList = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orderList, nil
}

// DeleteOrder restores the sold quantity to stock and removes the order row.
// The restock is unguarded on purpose: deleting an order always puts the full
// quantity back, even past any previous manual corrections.
func (srv *orderService) DeleteOrder(ctx context.Context, ownerID, orderID uuid.UUID, explicitBusinessID *uuid.UUID) error {
	srv.logger.Info("Deleting order", "orderID", orderID)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		order, err := repoFactory.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return errors.Wrap(domainerrors.ErrOrderNotFound, "order not found")
			}

			return errors.Wrap(err, "failed to find order")
		}

		businessID, err := srv.resolveBusiness(ctx, repoFactory, ownerID, order.BusinessID, explicitBusinessID)
		if err != nil {
			return err
		}

		if _, err := findOwnedBusiness(ctx, repoFactory, ownerID, businessID); err != nil {
			return err
		}
		if order.BusinessID != uuid.Nil && order.BusinessID != businessID {
			return errors.Wrap(domainerrors.ErrForbidden, "order belongs to a different business")
		}

		product, err := repoFactory.ProductRepo().FindByName(ctx, businessID, order.ProductName)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return errors.Wrap(domainerrors.ErrProductNotFound, "product no longer in catalog")
			}

			return errors.Wrap(err, "failed to find product")
		}

		if err := repoFactory.ProductRepo().AdjustStock(ctx, product.ID, order.Quantity, false); err != nil {
			return errors.Wrap(err, "failed to restore stock")
		}

		if err := repoFactory.OrderRepo().Delete(ctx, order.ID); err != nil {
			return errors.Wrap(err, "failed to delete order")
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete order")
	}

	return nil
}

// RegisterReturn records a customer return for an order: stock goes back up,
// the order is flagged as returned and a return row snapshots the order data.
func (srv *orderService) RegisterReturn(ctx context.Context, ownerID, orderID uuid.UUID) (*entity.Return, error) {
	srv.logger.Info("Registering return", "orderID", orderID)

	var ret *entity.Return

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		order, err := repoFactory.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return errors.Wrap(domainerrors.ErrOrderNotFound, "order not found")
			}

			return errors.Wrap(err, "failed to find order")
		}

		if _, err := findOwnedBusiness(ctx, repoFactory, ownerID, order.BusinessID); err != nil {
			return err
		}

		if order.IsReturned {
			return errors.Wrap(domainerrors.ErrOrderAlreadyReturned, "return already registered")
		}

		product, err := repoFactory.ProductRepo().FindByName(ctx, order.BusinessID, order.ProductName)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return errors.Wrap(domainerrors.ErrProductNotFound, "product no longer in catalog")
			}

			return errors.Wrap(err, "failed to find product")
		}

		if err := repoFactory.ProductRepo().AdjustStock(ctx, product.ID, order.Quantity, false); err != nil {
			return errors.Wrap(err, "failed to restore stock")
		}

		ret = &entity.Return{
			BusinessID:   order.BusinessID,
			OrderID:      order.ID,
			ProductName:  order.ProductName,
			CustomerName: order.CustomerName,
			Quantity:     order.Quantity,
			Date:         time.Now(),
		}
		if err := repoFactory.ReturnRepo().Create(ctx, ret); err != nil {
			return errors.Wrap(err, "failed to create return")
		}

		order.IsReturned = true
		if err := repoFactory.OrderRepo().Update(ctx, order); err != nil {
			return errors.Wrap(err, "failed to flag order as returned")
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to register return")
	}

	return ret, nil
}

// ListReturns returns the returns of an owned business inside an optional date range.
func (srv *orderService) ListReturns(ctx context.Context, ownerID, businessID uuid.UUID, from, to *time.Time) ([]*entity.Return, error) {
	var returnList []*entity.Return

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := findOwnedBusiness(ctx, repoFactory, ownerID, businessID); err != nil {
			return err
		}

		found, err := repoFactory.ReturnRepo().ListByBusiness(ctx, businessID, repository.DateRange{From: from, To: to})
		if err != nil {
			return errors.Wrap(err, "failed to list returns")
		}
		returnList = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list returns")
	}

	return returnList, nil
}

// RemoveReturn deletes a return row and then restores the world to the
// pre-return state on a best-effort basis. The deletion is the primary effect;
// a missing order or product downgrades the restoration to a warning instead
// of failing the call. The stock decrement floors at zero so a removal never
// drives stock negative.
func (srv *orderService) RemoveReturn(ctx context.Context, ownerID, returnID uuid.UUID) (*usecase.RemoveReturnOutput, error) {
	srv.logger.Info("Removing return", "returnID", returnID)

	output := &usecase.RemoveReturnOutput{
		Message: "Return successfully removed and order restored.",
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		ret, err := repoFactory.ReturnRepo().FindByID(ctx, returnID)
		if err != nil {
			if errors.Is(err, repository.ErrReturnNotFound) {
				return errors.Wrap(domainerrors.ErrReturnNotFound, "return not found")
			}

			return errors.Wrap(err, "failed to find return")
		}

		if _, err := findOwnedBusiness(ctx, repoFactory, ownerID, ret.BusinessID); err != nil {
			return err
		}

		if err := repoFactory.ReturnRepo().Delete(ctx, ret.ID); err != nil {
			return errors.Wrap(err, "failed to delete return")
		}

		if product, err := repoFactory.ProductRepo().FindByName(ctx, ret.BusinessID, ret.ProductName); err != nil {
			output.Warnings = append(output.Warnings,
				fmt.Sprintf("product %q not found, stock not adjusted", ret.ProductName))
		} else if err := repoFactory.ProductRepo().DecrementStockClamped(ctx, product.ID, ret.Quantity); err != nil {
			return errors.Wrap(err, "failed to decrement stock")
		}

		if order, err := repoFactory.OrderRepo().FindByID(ctx, ret.OrderID); err != nil {
			output.Warnings = append(output.Warnings, "original order not found, returned flag not cleared")
		} else {
			order.IsReturned = false
			if err := repoFactory.OrderRepo().Update(ctx, order); err != nil {
				return errors.Wrap(err, "failed to clear returned flag")
			}
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to remove return")
	}

	for _, warning := range output.Warnings {
		srv.logger.Warn("Return removal incomplete", "returnID", returnID, "warning", warning)
	}

	return output, nil
}

// resolveBusiness picks the business an order belongs to. The order row wins;
// otherwise the explicit hint is used; an owner of exactly one business may
// omit both. Anything else is ambiguous.
func (srv *orderService) resolveBusiness(ctx context.Context, repoFactory repository.RepositoryFactory, ownerID, orderBusinessID uuid.UUID, explicit *uuid.UUID) (uuid.UUID, error) {
	if orderBusinessID != uuid.Nil {
		return orderBusinessID, nil
	}
	if explicit != nil && *explicit != uuid.Nil {
		return *explicit, nil
	}

	owned, err := repoFactory.BusinessRepo().ListByOwner(ctx, ownerID)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to list businesses")
	}
	if len(owned) == 1 {
		return owned[0].ID, nil
	}

	return uuid.Nil, errors.Wrap(domainerrors.ErrAmbiguousBusiness, "cannot infer business for order")
}
