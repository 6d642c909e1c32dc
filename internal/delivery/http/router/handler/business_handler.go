package handler

import (
	"log/slog"
	"net/http"

	"inventra/internal/delivery/http/response"
	"inventra/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// BusinessHandler holds dependencies for business management handlers.
type BusinessHandler struct {
	uc     usecase.BusinessUsecase
	logger *slog.Logger
}

// NewBusinessHandler is the constructor for BusinessHandler, injected by Fx.
func NewBusinessHandler(uc usecase.BusinessUsecase, logger *slog.Logger) *BusinessHandler {
	return &BusinessHandler{
		uc:     uc,
		logger: logger,
	}
}

// Create handles business creation, optionally cloning another catalog.
func (h *BusinessHandler) Create(c echo.Context) error {
	ownerID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var input usecase.CreateBusinessInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid business input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	business, err := h.uc.CreateBusiness(c.Request().Context(), ownerID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, business, "Business created successfully")
}

// List returns every business of the caller.
func (h *BusinessHandler) List(c echo.Context) error {
	ownerID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	businesses, err := h.uc.ListBusinesses(c.Request().Context(), ownerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, businesses, "")
}

// Get returns one business.
func (h *BusinessHandler) Get(c echo.Context) error {
	ownerID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}
	businessID, err := pathUUID(c, "businessID")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid business id")
	}

	business, err := h.uc.GetBusiness(c.Request().Context(), ownerID, businessID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, business, "")
}

// Update applies a partial update to a business.
func (h *BusinessHandler) Update(c echo.Context) error {
	ownerID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}
	businessID, err := pathUUID(c, "businessID")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid business id")
	}

	var input usecase.UpdateBusinessInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid business input")
	}

	business, err := h.uc.UpdateBusiness(c.Request().Context(), ownerID, businessID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, business, "Business updated successfully")
}

// Delete removes a business.
func (h *BusinessHandler) Delete(c echo.Context) error {
	ownerID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}
	businessID, err := pathUUID(c, "businessID")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid business id")
	}

	if err := h.uc.DeleteBusiness(c.Request().Context(), ownerID, businessID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Business deleted successfully")
}
