package handler

import (
	"log/slog"
	"net/http"

	"inventra/internal/delivery/http/response"
	"inventra/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ForecastHandler holds dependencies for the sales forecast handlers.
type ForecastHandler struct {
	uc     usecase.ForecastUsecase
	logger *slog.Logger
}

// NewForecastHandler is the constructor for ForecastHandler, injected by Fx.
func NewForecastHandler(uc usecase.ForecastUsecase, logger *slog.Logger) *ForecastHandler {
	return &ForecastHandler{
		uc:     uc,
		logger: logger,
	}
}

// SalesForecast returns the combined historical and projected series.
func (h *ForecastHandler) SalesForecast(c echo.Context) error {
	ownerID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}
	businessID, err := pathUUID(c, "businessID")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid business id")
	}

	output, err := h.uc.SalesForecast(c.Request().Context(), ownerID, businessID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, output.Message)
}

// Retrain discards the persisted model so the next forecast trains afresh.
func (h *ForecastHandler) Retrain(c echo.Context) error {
	ownerID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}
	businessID, err := pathUUID(c, "businessID")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid business id")
	}

	message, err := h.uc.RetrainModel(c.Request().Context(), ownerID, businessID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, message)
}
