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

// AnalyticsHandler holds dependencies for the analytics views and exports.
type AnalyticsHandler struct {
	uc     usecase.AnalyticsUsecase
	logger *slog.Logger
}

// NewAnalyticsHandler is the constructor for AnalyticsHandler, injected by Fx.
func NewAnalyticsHandler(uc usecase.AnalyticsUsecase, logger *slog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		uc:     uc,
		logger: logger,
	}
}

// rangeQuery parses the range/start_date/end_date query parameters.
func rangeQuery(c echo.Context) (usecase.RangeInput, error) {
	input := usecase.RangeInput{Range: c.QueryParam("range")}
	if raw := c.QueryParam("start_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return input, err
		}
		input.StartDate = &parsed
	}
	if raw := c.QueryParam("end_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return input, err
		}
		input.EndDate = &parsed
	}

	return input, nil
}

func (h *AnalyticsHandler) params(c echo.Context) (uuid.UUID, uuid.UUID, usecase.RangeInput, error) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return uuid.Nil, uuid.Nil, usecase.RangeInput{}, echo.NewHTTPError(http.StatusUnauthorized, "Invalid user ID in token")
	}
	businessID, err := pathUUID(c, "businessID")
	if err != nil {
		return uuid.Nil, uuid.Nil, usecase.RangeInput{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid business id")
	}
	timeRange, err := rangeQuery(c)
	if err != nil {
		return uuid.Nil, uuid.Nil, usecase.RangeInput{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
	}

	return ownerID, businessID, timeRange, nil
}

// Dashboard returns today's metrics and catalog health.
func (h *AnalyticsHandler) Dashboard(c echo.Context) error {
	ownerID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}
	businessID, err := pathUUID(c, "businessID")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid business id")
	}

	output, err := h.uc.DashboardMetrics(c.Request().Context(), ownerID, businessID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}

// SalesOverview returns the sales overview view.
func (h *AnalyticsHandler) SalesOverview(c echo.Context) error {
	ownerID, businessID, timeRange, err := h.params(c)
	if err != nil {
		return err
	}

	output, err := h.uc.SalesOverview(c.Request().Context(), ownerID, businessID, timeRange)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}

// ReturnsAnalysis returns the returns view.
func (h *AnalyticsHandler) ReturnsAnalysis(c echo.Context) error {
	ownerID, businessID, timeRange, err := h.params(c)
	if err != nil {
		return err
	}

	output, err := h.uc.ReturnsAnalysis(c.Request().Context(), ownerID, businessID, timeRange)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}

// RevenueProfit returns the revenue and profit view.
func (h *AnalyticsHandler) RevenueProfit(c echo.Context) error {
	ownerID, businessID, timeRange, err := h.params(c)
	if err != nil {
		return err
	}

	output, err := h.uc.RevenueProfit(c.Request().Context(), ownerID, businessID, timeRange)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}

// InventoryAnalysis returns the inventory view.
func (h *AnalyticsHandler) InventoryAnalysis(c echo.Context) error {
	ownerID, businessID, timeRange, err := h.params(c)
	if err != nil {
		return err
	}

	output, err := h.uc.InventoryAnalysis(c.Request().Context(), ownerID, businessID, timeRange)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}

// CustomerSales returns the customer view.
func (h *AnalyticsHandler) CustomerSales(c echo.Context) error {
	ownerID, businessID, timeRange, err := h.params(c)
	if err != nil {
		return err
	}

	output, err := h.uc.CustomerSales(c.Request().Context(), ownerID, businessID, timeRange)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}

// Export renders one analytics view as a CSV download.
func (h *AnalyticsHandler) Export(c echo.Context) error {
	ownerID, businessID, timeRange, err := h.params(c)
	if err != nil {
		return err
	}
	view := c.Param("view")

	var payload []byte
	switch view {
	case "sales-overview":
		output, err := h.uc.SalesOverview(c.Request().Context(), ownerID, businessID, timeRange)
		if err != nil {
			return errors.WithStack(err)
		}
		payload, err = salesOverviewCSV(output)
		if err != nil {
			return errors.WithStack(err)
		}
	case "returns":
		output, err := h.uc.ReturnsAnalysis(c.Request().Context(), ownerID, businessID, timeRange)
		if err != nil {
			return errors.WithStack(err)
		}
		payload, err = returnsAnalysisCSV(output)
		if err != nil {
			return errors.WithStack(err)
		}
	case "revenue-profit":
		output, err := h.uc.RevenueProfit(c.Request().Context(), ownerID, businessID, timeRange)
		if err != nil {
			return errors.WithStack(err)
		}
		payload, err = revenueProfitCSV(output)
		if err != nil {
			return errors.WithStack(err)
		}
	case "inventory":
		output, err := h.uc.InventoryAnalysis(c.Request().Context(), ownerID, businessID, timeRange)
		if err != nil {
			return errors.WithStack(err)
		}
		payload, err = inventoryAnalysisCSV(output)
		if err != nil {
			return errors.WithStack(err)
		}
	case "customers":
		output, err := h.uc.CustomerSales(c.Request().Context(), ownerID, businessID, timeRange)
		if err != nil {
			return errors.WithStack(err)
		}
		payload, err = customerSalesCSV(output)
		if err != nil {
			return errors.WithStack(err)
		}
	default:
		return response.BadRequest(c, "INVALID_INPUT", "Unknown analytics view")
	}

	return response.CSV(c, view+".csv", payload)
}
