package impl

import (
	"context"
	"testing"
	"time"

	"inventra/internal/domain/entity"
	domainerrors "inventra/internal/domain/errors"
	"inventra/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestAnalyticsService(f *fixtures) usecase.AnalyticsUsecase {
	return NewAnalyticsService(f.tx, noopCache{}, f.logger)
}

func TestResolveWindow(t *testing.T) {
	now := time.Date(2026, 8, 31, 15, 4, 5, 0, time.UTC)

	t.Run("weekly covers seven days", func(t *testing.T) {
		w, err := resolveWindow(usecase.RangeInput{Range: usecase.RangeWeekly}, now)
		require.NoError(t, err)
		assert.Equal(t, "2026-08-25", w.start.Format("2006-01-02"))
		assert.Equal(t, "2026-08-31", w.end.Format("2006-01-02"))
		assert.Len(t, w.labels(), 7)
	})

	t.Run("default is thirty days", func(t *testing.T) {
		w, err := resolveWindow(usecase.RangeInput{}, now)
		require.NoError(t, err)
		assert.Len(t, w.labels(), 30)
		assert.False(t, w.monthly)
	})

	t.Run("yearly buckets monthly", func(t *testing.T) {
		w, err := resolveWindow(usecase.RangeInput{Range: usecase.RangeYearly}, now)
		require.NoError(t, err)
		assert.True(t, w.monthly)
		labels := w.labels()
		require.Len(t, labels, 12)
		assert.Equal(t, "2025-09", labels[0])
		assert.Equal(t, "2026-08", labels[11])
	})

	t.Run("explicit dates override the named range", func(t *testing.T) {
		start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
		w, err := resolveWindow(usecase.RangeInput{Range: usecase.RangeYearly, StartDate: &start, EndDate: &end}, now)
		require.NoError(t, err)
		assert.False(t, w.monthly)
		assert.Len(t, w.labels(), 10)
	})

	t.Run("start after end fails", func(t *testing.T) {
		start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		_, err := resolveWindow(usecase.RangeInput{StartDate: &start, EndDate: &end}, now)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	})

	t.Run("unknown range fails", func(t *testing.T) {
		_, err := resolveWindow(usecase.RangeInput{Range: "decennial"}, now)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	})
}

func TestDashboardMetrics(t *testing.T) {
	f := newFixtures(t)
	f.addProduct(t, "Widget", "SKU-1", 1, "5.00", "8.00") // low stock, min is 2
	f.addProduct(t, "Gadget", "SKU-2", 50, "3.00", "6.00")
	now := time.Now()
	f.addOrder(t, "Widget", 2, now, false)
	f.addOrder(t, "Gadget", 1, now, false)
	f.addOrder(t, "Gadget", 4, now.AddDate(0, 0, -2), false)
	returned := f.addOrder(t, "Widget", 9, now, true)
	f.addReturn(t, returned, "Widget", 9, now) // cancels the returned order
	srv := createTestAnalyticsService(f)

	output, err := srv.DashboardMetrics(context.Background(), f.ownerID, f.businessID)

	require.NoError(t, err)
	assert.Equal(t, 3, output.TodayOrders)
	assert.InDelta(t, 2*8.00+1*6.00, output.TodayRevenue, 0.001)
	require.Len(t, output.LowStock, 1)
	assert.Equal(t, "Widget", output.LowStock[0].Name)
	// Top sales is today-only net quantity: Widget 2+9-9, Gadget 1.
	require.Len(t, output.TopSales, 2)
	assert.Equal(t, "Widget", output.TopSales[0].Name)
	assert.Equal(t, 2, output.TopSales[0].Quantity)
	assert.Len(t, output.SalesChart, 30)
}

func TestDashboardMetrics_TodayNetsReturns(t *testing.T) {
	f := newFixtures(t)
	f.addProduct(t, "Widget", "SKU-1", 20, "5.00", "8.00")
	now := time.Now()
	orderID := f.addOrder(t, "Widget", 5, now, false)
	f.addReturn(t, orderID, "Widget", 2, now)
	srv := createTestAnalyticsService(f)

	output, err := srv.DashboardMetrics(context.Background(), f.ownerID, f.businessID)

	require.NoError(t, err)
	assert.InDelta(t, 3*8.00, output.TodayRevenue, 0.001)
	require.Len(t, output.TopSales, 1)
	assert.Equal(t, 3, output.TopSales[0].Quantity)
	// The chart's last bucket is today, netted the same way.
	require.Len(t, output.SalesChart, 30)
	assert.InDelta(t, 3*8.00, output.SalesChart[29].Value, 0.001)
}

func TestSalesOverview_PricesFromCurrentCatalog(t *testing.T) {
	f := newFixtures(t)
	f.addProduct(t, "Widget", "SKU-1", 10, "5.00", "8.00")
	now := time.Now()
	f.addOrder(t, "Widget", 3, now, false)
	returned := f.addOrder(t, "Widget", 2, now.AddDate(0, 0, -1), true)
	f.addReturn(t, returned, "Widget", 2, now.AddDate(0, 0, -1))
	f.addOrder(t, "Vanished", 5, now, false) // product gone from catalog
	srv := createTestAnalyticsService(f)

	output, err := srv.SalesOverview(context.Background(), f.ownerID, f.businessID, usecase.RangeInput{Range: usecase.RangeWeekly})

	require.NoError(t, err)
	require.Len(t, output.TopProducts, 1)
	assert.Equal(t, "Widget", output.TopProducts[0].Name)
	assert.InDelta(t, 24.00, output.TopProducts[0].Value, 0.001)

	// The returned order and its refund cancel out, leaving the live sale.
	var total float64
	for _, point := range output.Trend {
		total += point.Value
	}
	assert.InDelta(t, 24.00, total, 0.001)
}

func TestSalesOverview_TrendNetsReturns(t *testing.T) {
	f := newFixtures(t)
	f.addProduct(t, "Widget", "SKU-1", 500, "0.50", "1.00")
	now := time.Now()
	orderID := f.addOrder(t, "Widget", 100, now, false)
	f.addReturn(t, orderID, "Widget", 20, now)
	srv := createTestAnalyticsService(f)

	output, err := srv.SalesOverview(context.Background(), f.ownerID, f.businessID, usecase.RangeInput{Range: usecase.RangeWeekly})

	require.NoError(t, err)
	var total float64
	for _, point := range output.Trend {
		total += point.Value
	}
	assert.InDelta(t, 80.00, total, 0.001)
}

func TestSalesOverview_CategorySharesArePercentages(t *testing.T) {
	f := newFixtures(t)
	f.addProduct(t, "Widget", "SKU-1", 500, "0.50", "1.00")
	shirtID := f.addProduct(t, "Shirt", "SKU-2", 500, "0.50", "1.00")
	f.store.products[shirtID].Category = entity.CategoryClothing
	now := time.Now()
	f.addOrder(t, "Widget", 150, now, false)
	f.addOrder(t, "Shirt", 50, now, false)
	srv := createTestAnalyticsService(f)

	output, err := srv.SalesOverview(context.Background(), f.ownerID, f.businessID, usecase.RangeInput{Range: usecase.RangeWeekly})

	require.NoError(t, err)
	// A 150/50 revenue split becomes a 75/25 percentage split.
	require.Len(t, output.CategoryShares, 2)
	assert.Equal(t, "electronics", output.CategoryShares[0].Name)
	assert.InDelta(t, 75.00, output.CategoryShares[0].Value, 0.001)
	assert.Equal(t, "clothing", output.CategoryShares[1].Name)
	assert.InDelta(t, 25.00, output.CategoryShares[1].Value, 0.001)

	var sum float64
	for _, share := range output.CategoryShares {
		sum += share.Value
	}
	assert.InDelta(t, 100.00, sum, 0.001)
}

func TestReturnsAnalysis(t *testing.T) {
	f := newFixtures(t)
	f.addProduct(t, "Widget", "SKU-1", 10, "5.00", "8.00")
	now := time.Now()
	orderID := f.addOrder(t, "Widget", 3, now, true)
	f.addOrder(t, "Widget", 1, now, false)
	f.addReturn(t, orderID, "Widget", 3, now)
	srv := createTestAnalyticsService(f)

	output, err := srv.ReturnsAnalysis(context.Background(), f.ownerID, f.businessID, usecase.RangeInput{Range: usecase.RangeWeekly})

	require.NoError(t, err)
	assert.Equal(t, 2, output.SalesCount)
	assert.Equal(t, 1, output.ReturnsCount)
	// The sales-vs-returns split is also valued at current selling prices.
	assert.InDelta(t, 4*8.00, output.SalesValue, 0.001)
	assert.InDelta(t, 3*8.00, output.ReturnsValue, 0.001)
	require.Len(t, output.TopReturned, 1)
	assert.Equal(t, 3, output.TopReturned[0].Quantity)
}

func TestRevenueProfit(t *testing.T) {
	f := newFixtures(t)
	f.addProduct(t, "Widget", "SKU-1", 10, "5.00", "8.00")
	f.addOrder(t, "Widget", 2, time.Now(), false)
	srv := createTestAnalyticsService(f)

	output, err := srv.RevenueProfit(context.Background(), f.ownerID, f.businessID, usecase.RangeInput{})

	require.NoError(t, err)
	require.Len(t, output.Products, 1)
	assert.InDelta(t, 16.00, output.Products[0].Revenue, 0.001)
	assert.InDelta(t, 10.00, output.Products[0].Cost, 0.001)
	require.Len(t, output.ProfitMatrix, 1)
	assert.Equal(t, "electronics", output.ProfitMatrix[0].Category)
	assert.InDelta(t, 6.00, output.ProfitMatrix[0].Products[0].Value, 0.001)
}

func TestRevenueProfit_NetsReturns(t *testing.T) {
	f := newFixtures(t)
	f.addProduct(t, "Widget", "SKU-1", 10, "5.00", "8.00")
	now := time.Now()
	orderID := f.addOrder(t, "Widget", 5, now, true)
	f.addReturn(t, orderID, "Widget", 2, now)
	srv := createTestAnalyticsService(f)

	output, err := srv.RevenueProfit(context.Background(), f.ownerID, f.businessID, usecase.RangeInput{})

	require.NoError(t, err)
	// Returns subtract revenue and margin; cost stays orders-only.
	require.Len(t, output.Products, 1)
	assert.InDelta(t, 5*8.00-2*8.00, output.Products[0].Revenue, 0.001)
	assert.InDelta(t, 5*5.00, output.Products[0].Cost, 0.001)
	require.Len(t, output.ProfitMatrix, 1)
	assert.InDelta(t, 3*3.00, output.ProfitMatrix[0].Products[0].Value, 0.001)

	var growth float64
	for _, point := range output.Growth {
		growth += point.Value
	}
	assert.InDelta(t, 24.00, growth, 0.001)
}

func TestInventoryAnalysis(t *testing.T) {
	f := newFixtures(t)
	f.addProduct(t, "Widget", "SKU-1", 1, "5.00", "8.00")
	f.addProduct(t, "Gadget", "SKU-2", 10, "3.00", "6.00")
	srv := createTestAnalyticsService(f)

	output, err := srv.InventoryAnalysis(context.Background(), f.ownerID, f.businessID, usecase.RangeInput{})

	require.NoError(t, err)
	assert.InDelta(t, 1*5.00+10*3.00, output.InventoryValue, 0.001)
	require.Len(t, output.LowStock, 1)
	require.Len(t, output.StockMovement, 12)
	// The latest bucket reflects the current total stock.
	assert.InDelta(t, 11, output.StockMovement[11].Value, 0.001)
}

func TestInventoryAnalysis_StockMovementUndoesHistory(t *testing.T) {
	f := newFixtures(t)
	f.addProduct(t, "Widget", "SKU-1", 10, "5.00", "8.00")
	// Sold 4 two months ago: stock back then must have been 14.
	twoMonthsAgo := time.Now().AddDate(0, -2, 0)
	f.addOrder(t, "Widget", 4, twoMonthsAgo, false)
	srv := createTestAnalyticsService(f)

	output, err := srv.InventoryAnalysis(context.Background(), f.ownerID, f.businessID, usecase.RangeInput{})

	require.NoError(t, err)
	require.Len(t, output.StockMovement, 12)
	assert.InDelta(t, 10, output.StockMovement[11].Value, 0.001)
	assert.InDelta(t, 14, output.StockMovement[8].Value, 0.001)
}

func TestInventoryAnalysis_ExplicitRangeChartsDailyNet(t *testing.T) {
	f := newFixtures(t)
	f.addProduct(t, "Widget", "SKU-1", 10, "5.00", "8.00")
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	orderID := f.addOrder(t, "Widget", 4, day, false)
	f.addReturn(t, orderID, "Widget", 1, day.AddDate(0, 0, 1))
	srv := createTestAnalyticsService(f)

	start := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	output, err := srv.InventoryAnalysis(context.Background(), f.ownerID, f.businessID, usecase.RangeInput{
		StartDate: &start,
		EndDate:   &end,
	})

	require.NoError(t, err)
	require.Len(t, output.StockMovement, 4)
	assert.InDelta(t, 0, output.StockMovement[0].Value, 0.001)
	assert.InDelta(t, -4, output.StockMovement[1].Value, 0.001)
	assert.InDelta(t, 1, output.StockMovement[2].Value, 0.001)
}

func TestCustomerSales(t *testing.T) {
	f := newFixtures(t)
	f.addProduct(t, "Widget", "SKU-1", 10, "5.00", "8.00")
	now := time.Now()
	alice := f.addOrder(t, "Widget", 3, now, false)
	f.store.orders[alice].CustomerName = "Alice"
	bob := f.addOrder(t, "Widget", 1, now, false)
	f.store.orders[bob].CustomerName = "Bob"
	f.addOrder(t, "Widget", 2, now, false) // anonymous
	srv := createTestAnalyticsService(f)

	output, err := srv.CustomerSales(context.Background(), f.ownerID, f.businessID, usecase.RangeInput{Range: usecase.RangeWeekly})

	require.NoError(t, err)
	require.Len(t, output.TopCustomers, 2)
	assert.Equal(t, "Alice", output.TopCustomers[0].Name)
	assert.InDelta(t, 24.00, output.TopCustomers[0].Value, 0.001)
}

func TestAnalytics_ForeignBusinessRejected(t *testing.T) {
	f := newFixtures(t)
	foreign := f.addBusiness(t, uuid.New(), "Second")
	srv := createTestAnalyticsService(f)

	_, err := srv.DashboardMetrics(context.Background(), f.ownerID, foreign)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}
