package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Named time range keywords accepted by analytics operations.
const (
	RangeWeekly  = "weekly"
	RangeMonthly = "monthly"
	RangeYearly  = "yearly"
)

// AnalyticsUsecase defines the read-side aggregates over orders, returns and
// the catalog. Pricing always resolves against the current catalog by product
// name; orders whose product has vanished contribute zero revenue.
type AnalyticsUsecase interface {
	DashboardMetrics(ctx context.Context, ownerID, businessID uuid.UUID) (*DashboardMetricsOutput, error)
	SalesOverview(ctx context.Context, ownerID, businessID uuid.UUID, timeRange RangeInput) (*SalesOverviewOutput, error)
	ReturnsAnalysis(ctx context.Context, ownerID, businessID uuid.UUID, timeRange RangeInput) (*ReturnsAnalysisOutput, error)
	RevenueProfit(ctx context.Context, ownerID, businessID uuid.UUID, timeRange RangeInput) (*RevenueProfitOutput, error)
	InventoryAnalysis(ctx context.Context, ownerID, businessID uuid.UUID, timeRange RangeInput) (*InventoryAnalysisOutput, error)
	CustomerSales(ctx context.Context, ownerID, businessID uuid.UUID, timeRange RangeInput) (*CustomerSalesOutput, error)
}

// RangeInput selects the analytics window. Explicit dates override the named
// range; a start after the end is a validation error. Without anything the
// window defaults to the last 30 days.
type RangeInput struct {
	Range     string     `json:"range"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

// --- Shared chart primitives ---

// TimePoint is one bucket of a trend series. Daily labels are YYYY-MM-DD,
// yearly buckets use YYYY-MM.
type TimePoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// NameValue pairs a display name with a monetary value.
type NameValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// NameQty pairs a display name with a unit count.
type NameQty struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// LowStockItem describes a product at or below its low-stock threshold.
type LowStockItem struct {
	Name         string `json:"name"`
	SKU          string `json:"sku"`
	CurrentStock int    `json:"current_stock"`
	MinStock     int    `json:"min_stock"`
}

// --- Output DTOs ---

// DashboardMetricsOutput summarizes today's activity and catalog health.
type DashboardMetricsOutput struct {
	TodayOrders    int          `json:"today_orders"`
	TodayRevenue   float64      `json:"today_revenue"`
	TopSales       []NameQty    `json:"top_sales"`
	LowStock       []LowStockItem `json:"low_stock"`
	SalesChart     []TimePoint  `json:"sales_chart"`
	CategoryCounts []NameQty    `json:"category_counts"`
}

// SalesOverviewOutput backs the sales overview view: net revenue trend,
// top products by revenue and category shares as percentages of the
// positive category revenue total.
type SalesOverviewOutput struct {
	Trend          []TimePoint `json:"trend"`
	TopProducts    []NameValue `json:"top_products"`
	CategoryShares []NameValue `json:"category_shares"`
}

// ReturnsAnalysisOutput backs the returns view: returned quantity trend,
// most returned products and the sales-versus-returns split, as row counts
// and as monetary value at current selling prices.
type ReturnsAnalysisOutput struct {
	Trend        []TimePoint `json:"trend"`
	TopReturned  []NameQty   `json:"top_returned"`
	SalesCount   int         `json:"sales_count"`
	ReturnsCount int         `json:"returns_count"`
	SalesValue   float64     `json:"sales_value"`
	ReturnsValue float64     `json:"returns_value"`
}

// ProductRevenue pairs a product with its revenue and cost over the window.
type ProductRevenue struct {
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
	Cost    float64 `json:"cost"`
}

// CategoryProfit groups per-product profit under a category.
type CategoryProfit struct {
	Category string      `json:"category"`
	Products []NameValue `json:"products"`
}

// RevenueProfitOutput backs the revenue and profit view.
type RevenueProfitOutput struct {
	Products     []ProductRevenue `json:"products"`
	Growth       []TimePoint      `json:"growth"`
	ProfitMatrix []CategoryProfit `json:"profit_matrix"`
}

// InventoryAnalysisOutput backs the inventory view: low stock, total value
// at cost and the stock movement series.
type InventoryAnalysisOutput struct {
	LowStock       []LowStockItem `json:"low_stock"`
	InventoryValue float64        `json:"inventory_value"`
	StockMovement  []TimePoint    `json:"stock_movement"`
}

// CustomerSalesOutput backs the customer view: top customers by revenue,
// top products by quantity and the orders-only sales trend.
type CustomerSalesOutput struct {
	TopCustomers []NameValue `json:"top_customers"`
	TopProducts  []NameQty   `json:"top_products"`
	Trend        []TimePoint `json:"trend"`
}
