package handler

import (
	"log/slog"
	"net/http"
	"time"

	"inventra/internal/delivery/http/response"
	"inventra/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OrderHandler holds dependencies for order and return handlers.
type OrderHandler struct {
	uc     usecase.OrderUsecase
	logger *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(uc usecase.OrderUsecase, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		logger: logger,
	}
}

// Place records a sale and decrements stock.
func (h *OrderHandler) Place(c echo.Context) error {
	ownerID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var input usecase.PlaceOrderInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	order, err := h.uc.PlaceOrder(c.Request().Context(), ownerID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, order, "Order placed successfully")
}

// List returns the orders of a business, optionally bounded by from/to dates.
func (h *OrderHandler) List(c echo.Context) error {
	ownerID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}
	businessID, err := pathUUID(c, "businessID")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid business id")
	}
	from, to, err := dateRangeQuery(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid date, expected YYYY-MM-DD")
	}

	orders, err := h.uc.ListOrders(c.Request().Context(), ownerID, businessID, from, to)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "")
}

// Delete removes an order and restores its stock. An optional business_id
// query parameter disambiguates orders without a business reference.
func (h *OrderHandler) Delete(c echo.Context) error {
	ownerID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}
	orderID, err := pathUUID(c, "orderID")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order id")
	}

	var explicitBusinessID *uuid.UUID
	if raw := c.QueryParam("business_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid business id")
		}
		explicitBusinessID = &parsed
	}

	if err := h.uc.DeleteOrder(c.Request().Context(), ownerID, orderID, explicitBusinessID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Order deleted and stock restored")
}

// RegisterReturn records a customer return for an order.
func (h *OrderHandler) RegisterReturn(c echo.Context) error {
	ownerID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}
	orderID, err := pathUUID(c, "orderID")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order id")
	}

	ret, err := h.uc.RegisterReturn(c.Request().Context(), ownerID, orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, ret, "Return registered successfully")
}

// ListReturns returns the returns of a business.
func (h *OrderHandler) ListReturns(c echo.Context) error {
	ownerID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}
	businessID, err := pathUUID(c, "businessID")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid business id")
	}
	from, to, err := dateRangeQuery(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid date, expected YYYY-MM-DD")
	}

	returns, err := h.uc.ListReturns(c.Request().Context(), ownerID, businessID, from, to)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, returns, "")
}

// RemoveReturn deletes a return and restores the order best-effort.
func (h *OrderHandler) RemoveReturn(c echo.Context) error {
	ownerID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}
	returnID, err := pathUUID(c, "returnID")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid return id")
	}

	output, err := h.uc.RemoveReturn(c.Request().Context(), ownerID, returnID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, output.Message)
}

// dateRangeQuery parses optional from/to query parameters as YYYY-MM-DD.
func dateRangeQuery(c echo.Context) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if raw := c.QueryParam("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, nil, err
		}
		from = &parsed
	}
	if raw := c.QueryParam("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, nil, err
		}
		to = &parsed
	}

	return from, to, nil
}
