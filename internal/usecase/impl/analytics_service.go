package impl

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"inventra/internal/domain/entity"
	domainerrors "inventra/internal/domain/errors"
	"inventra/internal/domain/repository"
	"inventra/internal/domain/service"
	"inventra/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const topItemLimit = 5

// analyticsService implements the AnalyticsUsecase interface. All aggregates
// are computed in memory from the business's orders, returns and catalog;
// pricing always resolves against the current catalog by product name, and
// return rows net against gross order revenue.
type analyticsService struct {
	txManager repository.TransactionManager
	cache     service.AnalyticsCache
	logger    *slog.Logger
}

// NewAnalyticsService is the constructor for analyticsService.
func NewAnalyticsService(
	txManager repository.TransactionManager,
	cache service.AnalyticsCache,
	logger *slog.Logger,
) usecase.AnalyticsUsecase {
	return &analyticsService{
		txManager: txManager,
		cache:     cache,
		logger:    logger,
	}
}

// window is a resolved analytics time range. explicit marks a caller-supplied
// start/end pair.
type window struct {
	start    time.Time
	end      time.Time
	monthly  bool
	explicit bool
}

// contains reports whether t falls inside the window, date-granular.
func (w window) contains(t time.Time) bool {
	day := dateOnly(t)

	return !day.Before(w.start) && !day.After(w.end)
}

// bucket returns the trend bucket label for t.
func (w window) bucket(t time.Time) string {
	if w.monthly {
		return t.Format("2006-01")
	}

	return t.Format("2006-01-02")
}

// labels returns every bucket label of the window in order, so trend series
// carry zero-valued buckets instead of gaps.
func (w window) labels() []string {
	var out []string
	if w.monthly {
		for cursor := time.Date(w.start.Year(), w.start.Month(), 1, 0, 0, 0, 0, time.UTC); !cursor.After(w.end); cursor = cursor.AddDate(0, 1, 0) {
			out = append(out, cursor.Format("2006-01"))
		}

		return out
	}
	for cursor := w.start; !cursor.After(w.end); cursor = cursor.AddDate(0, 0, 1) {
		out = append(out, cursor.Format("2006-01-02"))
	}

	return out
}

// resolveWindow turns a RangeInput into a concrete window. Explicit dates win
// over the named range; without either the window defaults to the last 30
// days. Yearly windows cover the current and the eleven preceding calendar
// months and bucket monthly.
func resolveWindow(timeRange usecase.RangeInput, now time.Time) (window, error) {
	today := dateOnly(now)

	if timeRange.StartDate != nil || timeRange.EndDate != nil {
		if timeRange.StartDate == nil || timeRange.EndDate == nil {
			return window{}, errors.Wrap(domainerrors.ErrValidationFailed, "start and end date must both be set")
		}
		start := dateOnly(*timeRange.StartDate)
		end := dateOnly(*timeRange.EndDate)
		if start.After(end) {
			return window{}, errors.Wrap(domainerrors.ErrValidationFailed, "start date after end date")
		}

		return window{start: start, end: end, explicit: true}, nil
	}

	switch timeRange.Range {
	case usecase.RangeWeekly:
		return window{start: today.AddDate(0, 0, -6), end: today}, nil
	case usecase.RangeMonthly, "":
		return window{start: today.AddDate(0, 0, -29), end: today}, nil
	case usecase.RangeYearly:
		firstOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

		return window{start: firstOfMonth.AddDate(0, -11, 0), end: today, monthly: true}, nil
	default:
		return window{}, errors.Wrap(domainerrors.ErrValidationFailed, "unknown time range")
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// businessData is the raw material for every analytics view.
type businessData struct {
	products []*entity.Product
	orders   []*entity.Order
	returns  []*entity.Return
}

// productsByName indexes the catalog for price lookups.
func (d *businessData) productsByName() map[string]*entity.Product {
	byName := make(map[string]*entity.Product, len(d.products))
	for _, product := range d.products {
		byName[product.Name] = product
	}

	return byName
}

// orderRevenue values an order at the current catalog selling price. Orders
// whose product has left the catalog contribute zero.
func orderRevenue(order *entity.Order, byName map[string]*entity.Product) decimal.Decimal {
	product, ok := byName[order.ProductName]
	if !ok {
		return decimal.Zero
	}

	return product.SellingPrice.Mul(decimal.NewFromInt(int64(order.Quantity)))
}

// orderCost values an order at the current catalog cost price.
func orderCost(order *entity.Order, byName map[string]*entity.Product) decimal.Decimal {
	product, ok := byName[order.ProductName]
	if !ok {
		return decimal.Zero
	}

	return product.Price.Mul(decimal.NewFromInt(int64(order.Quantity)))
}

// returnRefund values a return at the current catalog selling price. Returns
// whose product has left the catalog refund zero.
func returnRefund(ret *entity.Return, byName map[string]*entity.Product) decimal.Decimal {
	product, ok := byName[ret.ProductName]
	if !ok {
		return decimal.Zero
	}

	return product.SellingPrice.Mul(decimal.NewFromInt(int64(ret.Quantity)))
}

// loadData checks ownership and pulls the catalog plus orders and returns for
// the date range in one transaction.
func (srv *analyticsService) loadData(ctx context.Context, ownerID, businessID uuid.UUID, dateRange repository.DateRange) (*businessData, error) {
	data := &businessData{}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := findOwnedBusiness(ctx, repoFactory, ownerID, businessID); err != nil {
			return err
		}

		products, err := repoFactory.ProductRepo().ListByBusiness(ctx, businessID)
		if err != nil {
			return errors.Wrap(err, "failed to list products")
		}
		orderList, err := repoFactory.OrderRepo().ListByBusiness(ctx, businessID, dateRange)
		if err != nil {
			return errors.Wrap(err, "failed to list orders")
		}
		returnList, err := repoFactory.ReturnRepo().ListByBusiness(ctx, businessID, dateRange)
		if err != nil {
			return errors.Wrap(err, "failed to list returns")
		}

		data.products = products
		data.orders = orderList
		data.returns = returnList

		return nil
	})
	if err != nil {
		return nil, err
	}

	return data, nil
}

// cached runs compute behind the analytics cache. Cache failures are logged
// and ignored so analytics keep working without Redis.
func cached[T any](ctx context.Context, srv *analyticsService, key string, compute func() (*T, error)) (*T, error) {
	if payload, hit, err := srv.cache.Get(ctx, key); err != nil {
		srv.logger.Warn("Analytics cache read failed", "key", key, "error", err)
	} else if hit {
		out := new(T)
		if err := json.Unmarshal(payload, out); err == nil {
			return out, nil
		}
		srv.logger.Warn("Analytics cache payload corrupt", "key", key)
	}

	out, err := compute()
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(out); err == nil {
		if err := srv.cache.Set(ctx, key, payload); err != nil {
			srv.logger.Warn("Analytics cache write failed", "key", key, "error", err)
		}
	}

	return out, nil
}

func cacheKey(businessID uuid.UUID, view string, w window) string {
	return fmt.Sprintf("%s:%s:%s_%s", businessID, view, w.start.Format("2006-01-02"), w.end.Format("2006-01-02"))
}

// lowStockLimit caps the dashboard low-stock list.
const lowStockLimit = 50

// DashboardMetrics summarizes today's activity and overall catalog health.
func (srv *analyticsService) DashboardMetrics(ctx context.Context, ownerID, businessID uuid.UUID) (*usecase.DashboardMetricsOutput, error) {
	now := time.Now()
	chartWindow := window{start: dateOnly(now).AddDate(0, 0, -29), end: dateOnly(now)}

	return cached(ctx, srv, cacheKey(businessID, "dashboard", chartWindow), func() (*usecase.DashboardMetricsOutput, error) {
		data, err := srv.loadData(ctx, ownerID, businessID, repository.DateRange{})
		if err != nil {
			return nil, err
		}
		byName := data.productsByName()
		today := dateOnly(now)

		output := &usecase.DashboardMetricsOutput{
			TopSales:       []usecase.NameQty{},
			LowStock:       []usecase.LowStockItem{},
			SalesChart:     []usecase.TimePoint{},
			CategoryCounts: []usecase.NameQty{},
		}

		// Today's totals and top sales net returns against orders; the 30-day
		// chart subtracts refunds from each day's gross revenue.
		todayRevenue := decimal.Zero
		qtyByProduct := make(map[string]int)
		revenueByDay := make(map[string]decimal.Decimal)
		for _, order := range data.orders {
			if dateOnly(order.Date).Equal(today) {
				output.TodayOrders++
				todayRevenue = todayRevenue.Add(orderRevenue(order, byName))
				qtyByProduct[order.ProductName] += order.Quantity
			}
			if chartWindow.contains(order.Date) {
				label := chartWindow.bucket(order.Date)
				revenueByDay[label] = revenueByDay[label].Add(orderRevenue(order, byName))
			}
		}
		for _, ret := range data.returns {
			refund := returnRefund(ret, byName)
			if dateOnly(ret.Date).Equal(today) {
				todayRevenue = todayRevenue.Sub(refund)
				qtyByProduct[ret.ProductName] -= ret.Quantity
			}
			if chartWindow.contains(ret.Date) {
				label := chartWindow.bucket(ret.Date)
				revenueByDay[label] = revenueByDay[label].Sub(refund)
			}
		}
		output.TodayRevenue = round2(todayRevenue)
		output.TopSales = topQuantities(qtyByProduct, topItemLimit)

		for _, label := range chartWindow.labels() {
			output.SalesChart = append(output.SalesChart, usecase.TimePoint{
				Label: label,
				Value: round2(revenueByDay[label]),
			})
		}

		countByCategory := make(map[string]int)
		for _, product := range data.products {
			countByCategory[string(product.Category)]++
			if product.IsLowStock() && len(output.LowStock) < lowStockLimit {
				output.LowStock = append(output.LowStock, usecase.LowStockItem{
					Name:         product.Name,
					SKU:          product.SKU,
					CurrentStock: product.CurrentStock,
					MinStock:     product.MinStock,
				})
			}
		}
		for _, category := range entity.Categories {
			if count := countByCategory[string(category)]; count > 0 {
				output.CategoryCounts = append(output.CategoryCounts, usecase.NameQty{
					Name:     string(category),
					Quantity: count,
				})
			}
		}

		return output, nil
	})
}

// SalesOverview backs the sales overview view.
func (srv *analyticsService) SalesOverview(ctx context.Context, ownerID, businessID uuid.UUID, timeRange usecase.RangeInput) (*usecase.SalesOverviewOutput, error) {
	w, err := resolveWindow(timeRange, time.Now())
	if err != nil {
		return nil, err
	}

	return cached(ctx, srv, cacheKey(businessID, "sales_overview", w), func() (*usecase.SalesOverviewOutput, error) {
		data, err := srv.loadData(ctx, ownerID, businessID, repository.DateRange{From: &w.start, To: &w.end})
		if err != nil {
			return nil, err
		}
		byName := data.productsByName()

		// The trend nets refunds against gross order revenue per bucket. Top
		// products and category shares only count orders that stayed sold.
		netByBucket := make(map[string]decimal.Decimal)
		revenueByProduct := make(map[string]decimal.Decimal)
		revenueByCategory := make(map[string]decimal.Decimal)
		for _, order := range data.orders {
			if !w.contains(order.Date) {
				continue
			}
			revenue := orderRevenue(order, byName)
			netByBucket[w.bucket(order.Date)] = netByBucket[w.bucket(order.Date)].Add(revenue)
			if order.IsReturned {
				continue
			}
			revenueByProduct[order.ProductName] = revenueByProduct[order.ProductName].Add(revenue)
			if product, ok := byName[order.ProductName]; ok {
				revenueByCategory[string(product.Category)] = revenueByCategory[string(product.Category)].Add(revenue)
			}
		}
		for _, ret := range data.returns {
			if !w.contains(ret.Date) {
				continue
			}
			netByBucket[w.bucket(ret.Date)] = netByBucket[w.bucket(ret.Date)].Sub(returnRefund(ret, byName))
		}

		output := &usecase.SalesOverviewOutput{
			Trend:          trendSeries(w, netByBucket),
			TopProducts:    topValues(revenueByProduct, 2*topItemLimit),
			CategoryShares: categoryShares(revenueByCategory),
		}

		return output, nil
	})
}

// ReturnsAnalysis backs the returns view.
func (srv *analyticsService) ReturnsAnalysis(ctx context.Context, ownerID, businessID uuid.UUID, timeRange usecase.RangeInput) (*usecase.ReturnsAnalysisOutput, error) {
	w, err := resolveWindow(timeRange, time.Now())
	if err != nil {
		return nil, err
	}

	return cached(ctx, srv, cacheKey(businessID, "returns_analysis", w), func() (*usecase.ReturnsAnalysisOutput, error) {
		data, err := srv.loadData(ctx, ownerID, businessID, repository.DateRange{From: &w.start, To: &w.end})
		if err != nil {
			return nil, err
		}
		byName := data.productsByName()

		qtyByBucket := make(map[string]decimal.Decimal)
		qtyByProduct := make(map[string]int)
		salesValue := decimal.Zero
		returnsValue := decimal.Zero
		output := &usecase.ReturnsAnalysisOutput{}
		for _, ret := range data.returns {
			if !w.contains(ret.Date) {
				continue
			}
			output.ReturnsCount++
			returnsValue = returnsValue.Add(returnRefund(ret, byName))
			qty := decimal.NewFromInt(int64(ret.Quantity))
			qtyByBucket[w.bucket(ret.Date)] = qtyByBucket[w.bucket(ret.Date)].Add(qty)
			qtyByProduct[ret.ProductName] += ret.Quantity
		}
		for _, order := range data.orders {
			if w.contains(order.Date) {
				output.SalesCount++
				salesValue = salesValue.Add(orderRevenue(order, byName))
			}
		}

		output.SalesValue = round2(salesValue)
		output.ReturnsValue = round2(returnsValue)
		output.Trend = trendSeries(w, qtyByBucket)
		output.TopReturned = topQuantities(qtyByProduct, topItemLimit)

		return output, nil
	})
}

// RevenueProfit backs the revenue and profit view.
func (srv *analyticsService) RevenueProfit(ctx context.Context, ownerID, businessID uuid.UUID, timeRange usecase.RangeInput) (*usecase.RevenueProfitOutput, error) {
	w, err := resolveWindow(timeRange, time.Now())
	if err != nil {
		return nil, err
	}

	return cached(ctx, srv, cacheKey(businessID, "revenue_profit", w), func() (*usecase.RevenueProfitOutput, error) {
		data, err := srv.loadData(ctx, ownerID, businessID, repository.DateRange{From: &w.start, To: &w.end})
		if err != nil {
			return nil, err
		}
		byName := data.productsByName()

		// Orders contribute revenue, cost and margin; returns net revenue and
		// margin back out. Cost stays orders-only.
		revenueByProduct := make(map[string]decimal.Decimal)
		costByProduct := make(map[string]decimal.Decimal)
		profitByProduct := make(map[string]decimal.Decimal)
		revenueByBucket := make(map[string]decimal.Decimal)
		for _, order := range data.orders {
			if !w.contains(order.Date) {
				continue
			}
			revenue := orderRevenue(order, byName)
			cost := orderCost(order, byName)
			revenueByProduct[order.ProductName] = revenueByProduct[order.ProductName].Add(revenue)
			costByProduct[order.ProductName] = costByProduct[order.ProductName].Add(cost)
			profitByProduct[order.ProductName] = profitByProduct[order.ProductName].Add(revenue.Sub(cost))
			revenueByBucket[w.bucket(order.Date)] = revenueByBucket[w.bucket(order.Date)].Add(revenue)
		}
		for _, ret := range data.returns {
			if !w.contains(ret.Date) {
				continue
			}
			product, ok := byName[ret.ProductName]
			if !ok {
				continue
			}
			qty := decimal.NewFromInt(int64(ret.Quantity))
			refund := product.SellingPrice.Mul(qty)
			marginBack := product.SellingPrice.Sub(product.Price).Mul(qty)
			revenueByProduct[ret.ProductName] = revenueByProduct[ret.ProductName].Sub(refund)
			profitByProduct[ret.ProductName] = profitByProduct[ret.ProductName].Sub(marginBack)
			revenueByBucket[w.bucket(ret.Date)] = revenueByBucket[w.bucket(ret.Date)].Sub(refund)
		}

		output := &usecase.RevenueProfitOutput{
			Growth:       trendSeries(w, revenueByBucket),
			Products:     []usecase.ProductRevenue{},
			ProfitMatrix: []usecase.CategoryProfit{},
		}

		names := make([]string, 0, len(revenueByProduct))
		for name, revenue := range revenueByProduct {
			if revenue.IsPositive() {
				names = append(names, name)
			}
		}
		sort.Slice(names, func(i, j int) bool {
			return revenueByProduct[names[i]].GreaterThan(revenueByProduct[names[j]])
		})
		for _, name := range names {
			output.Products = append(output.Products, usecase.ProductRevenue{
				Name:    name,
				Revenue: round2(revenueByProduct[name]),
				Cost:    round2(costByProduct[name]),
			})
		}

		// Profit matrix groups positive per-product net margin under the category.
		profitByCategory := make(map[string][]usecase.NameValue)
		for _, name := range names {
			product, ok := byName[name]
			if !ok {
				continue
			}
			profit := profitByProduct[name]
			if !profit.IsPositive() {
				continue
			}
			category := string(product.Category)
			profitByCategory[category] = append(profitByCategory[category], usecase.NameValue{
				Name:  name,
				Value: round2(profit),
			})
		}
		for _, category := range entity.Categories {
			if products, ok := profitByCategory[string(category)]; ok {
				output.ProfitMatrix = append(output.ProfitMatrix, usecase.CategoryProfit{
					Category: string(category),
					Products: products,
				})
			}
		}

		return output, nil
	})
}

// InventoryAnalysis backs the inventory view. The stock movement series is
// reconstructed backwards from the current stock level using the order and
// return history of the last twelve calendar months.
func (srv *analyticsService) InventoryAnalysis(ctx context.Context, ownerID, businessID uuid.UUID, timeRange usecase.RangeInput) (*usecase.InventoryAnalysisOutput, error) {
	w, err := resolveWindow(timeRange, time.Now())
	if err != nil {
		return nil, err
	}

	return cached(ctx, srv, cacheKey(businessID, "inventory_analysis", w), func() (*usecase.InventoryAnalysisOutput, error) {
		data, err := srv.loadData(ctx, ownerID, businessID, repository.DateRange{})
		if err != nil {
			return nil, err
		}

		output := &usecase.InventoryAnalysisOutput{
			LowStock:      []usecase.LowStockItem{},
			StockMovement: []usecase.TimePoint{},
		}

		totalValue := decimal.Zero
		totalStock := 0
		for _, product := range data.products {
			totalValue = totalValue.Add(product.InventoryValue())
			totalStock += product.CurrentStock
			if product.IsLowStock() {
				output.LowStock = append(output.LowStock, usecase.LowStockItem{
					Name:         product.Name,
					SKU:          product.SKU,
					CurrentStock: product.CurrentStock,
					MinStock:     product.MinStock,
				})
			}
		}
		output.InventoryValue = round2(totalValue)

		// An explicit range charts daily net movement inside the range. Orders
		// take stock out, returns put it back.
		if w.explicit {
			netByDay := make(map[string]decimal.Decimal)
			for _, order := range data.orders {
				if w.contains(order.Date) {
					day := order.Date.Format("2006-01-02")
					netByDay[day] = netByDay[day].Sub(decimal.NewFromInt(int64(order.Quantity)))
				}
			}
			for _, ret := range data.returns {
				if w.contains(ret.Date) {
					day := ret.Date.Format("2006-01-02")
					netByDay[day] = netByDay[day].Add(decimal.NewFromInt(int64(ret.Quantity)))
				}
			}
			output.StockMovement = trendSeries(window{start: w.start, end: w.end}, netByDay)

			return output, nil
		}

		// Otherwise walk backwards month by month: undo the orders (stock goes
		// back up) and the returns (stock goes back down) of each month.
		now := dateOnly(time.Now())
		firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		soldByMonth := make(map[string]int)
		returnedByMonth := make(map[string]int)
		for _, order := range data.orders {
			soldByMonth[order.Date.Format("2006-01")] += order.Quantity
		}
		for _, ret := range data.returns {
			returnedByMonth[ret.Date.Format("2006-01")] += ret.Quantity
		}

		points := make([]usecase.TimePoint, 12)
		level := totalStock
		for i := 0; i < 12; i++ {
			month := firstOfMonth.AddDate(0, -i, 0).Format("2006-01")
			points[11-i] = usecase.TimePoint{Label: month, Value: float64(level)}
			level += soldByMonth[month] - returnedByMonth[month]
		}
		output.StockMovement = points

		return output, nil
	})
}

// CustomerSales backs the customer view.
func (srv *analyticsService) CustomerSales(ctx context.Context, ownerID, businessID uuid.UUID, timeRange usecase.RangeInput) (*usecase.CustomerSalesOutput, error) {
	w, err := resolveWindow(timeRange, time.Now())
	if err != nil {
		return nil, err
	}

	return cached(ctx, srv, cacheKey(businessID, "customer_sales", w), func() (*usecase.CustomerSalesOutput, error) {
		data, err := srv.loadData(ctx, ownerID, businessID, repository.DateRange{From: &w.start, To: &w.end})
		if err != nil {
			return nil, err
		}
		byName := data.productsByName()

		revenueByCustomer := make(map[string]decimal.Decimal)
		qtyByProduct := make(map[string]int)
		revenueByBucket := make(map[string]decimal.Decimal)
		for _, order := range data.orders {
			if order.IsReturned || !w.contains(order.Date) {
				continue
			}
			revenue := orderRevenue(order, byName)
			if order.CustomerName != "" {
				revenueByCustomer[order.CustomerName] = revenueByCustomer[order.CustomerName].Add(revenue)
			}
			qtyByProduct[order.ProductName] += order.Quantity
			revenueByBucket[w.bucket(order.Date)] = revenueByBucket[w.bucket(order.Date)].Add(revenue)
		}

		output := &usecase.CustomerSalesOutput{
			TopCustomers: topValues(revenueByCustomer, topItemLimit),
			TopProducts:  topQuantities(qtyByProduct, topItemLimit),
			Trend:        trendSeries(w, revenueByBucket),
		}

		return output, nil
	})
}

// trendSeries expands the bucket map into the window's full label sequence.
func trendSeries(w window, byBucket map[string]decimal.Decimal) []usecase.TimePoint {
	labels := w.labels()
	points := make([]usecase.TimePoint, 0, len(labels))
	for _, label := range labels {
		points = append(points, usecase.TimePoint{
			Label: label,
			Value: round2(byBucket[label]),
		})
	}

	return points
}

// topValues sorts a name/value map descending and keeps the positive top n.
func topValues(byName map[string]decimal.Decimal, n int) []usecase.NameValue {
	out := make([]usecase.NameValue, 0, len(byName))
	for name, value := range byName {
		if value.IsPositive() {
			out = append(out, usecase.NameValue{Name: name, Value: round2(value)})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}

		return out[i].Name < out[j].Name
	})
	if len(out) > n {
		out = out[:n]
	}

	return out
}

// categoryShares converts positive category revenue into percentages of the
// positive total, sorted descending.
func categoryShares(byCategory map[string]decimal.Decimal) []usecase.NameValue {
	total := decimal.Zero
	for _, revenue := range byCategory {
		if revenue.IsPositive() {
			total = total.Add(revenue)
		}
	}
	if !total.IsPositive() {
		return []usecase.NameValue{}
	}

	hundred := decimal.NewFromInt(100)
	out := make([]usecase.NameValue, 0, len(byCategory))
	for name, revenue := range byCategory {
		if revenue.IsPositive() {
			out = append(out, usecase.NameValue{
				Name:  name,
				Value: round2(revenue.Mul(hundred).Div(total)),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}

		return out[i].Name < out[j].Name
	})

	return out
}

// topQuantities sorts a name/quantity map descending and keeps the positive top n.
func topQuantities(byName map[string]int, n int) []usecase.NameQty {
	out := make([]usecase.NameQty, 0, len(byName))
	for name, qty := range byName {
		if qty > 0 {
			out = append(out, usecase.NameQty{Name: name, Quantity: qty})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}

		return out[i].Name < out[j].Name
	})
	if len(out) > n {
		out = out[:n]
	}

	return out
}

// sanitize zeroes a non-finite float so chart payloads stay valid JSON.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}

	return v
}
