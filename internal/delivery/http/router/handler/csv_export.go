package handler

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"inventra/internal/usecase"

	"github.com/pkg/errors"
)

// csvSection is one titled block of an export.
type csvSection struct {
	title  string
	header []string
	rows   [][]string
}

// renderCSV writes the sections as a single CSV document. The first line is a
// `sep=,` hint so spreadsheet apps pick the right delimiter regardless of
// locale; date labels are prefixed with an apostrophe by the callers to stop
// them being coerced into locale-formatted dates.
func renderCSV(sections []csvSection) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("sep=,\n")

	writer := csv.NewWriter(&buf)
	for i, section := range sections {
		if i > 0 {
			if err := writer.Write([]string{}); err != nil {
				return nil, errors.Wrap(err, "failed to write csv")
			}
		}
		if err := writer.Write([]string{section.title}); err != nil {
			return nil, errors.Wrap(err, "failed to write csv")
		}
		if err := writer.Write(section.header); err != nil {
			return nil, errors.Wrap(err, "failed to write csv")
		}
		for _, row := range section.rows {
			if err := writer.Write(row); err != nil {
				return nil, errors.Wrap(err, "failed to write csv")
			}
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, errors.Wrap(err, "failed to flush csv")
	}

	return buf.Bytes(), nil
}

// dateLabel guards a date string against spreadsheet coercion.
func dateLabel(label string) string {
	return "'" + label
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func trendRows(points []usecase.TimePoint) [][]string {
	rows := make([][]string, 0, len(points))
	for _, point := range points {
		rows = append(rows, []string{dateLabel(point.Label), money(point.Value)})
	}

	return rows
}

func salesOverviewCSV(output *usecase.SalesOverviewOutput) ([]byte, error) {
	topRows := make([][]string, 0, len(output.TopProducts))
	for _, item := range output.TopProducts {
		topRows = append(topRows, []string{item.Name, money(item.Value)})
	}
	shareRows := make([][]string, 0, len(output.CategoryShares))
	for _, item := range output.CategoryShares {
		shareRows = append(shareRows, []string{item.Name, money(item.Value)})
	}

	return renderCSV([]csvSection{
		{title: "Sales Trend", header: []string{"Date", "Net Revenue"}, rows: trendRows(output.Trend)},
		{title: "Top Products", header: []string{"Product", "Revenue"}, rows: topRows},
		{title: "Category Shares", header: []string{"Category", "Share %"}, rows: shareRows},
	})
}

func returnsAnalysisCSV(output *usecase.ReturnsAnalysisOutput) ([]byte, error) {
	topRows := make([][]string, 0, len(output.TopReturned))
	for _, item := range output.TopReturned {
		topRows = append(topRows, []string{item.Name, strconv.Itoa(item.Quantity)})
	}

	return renderCSV([]csvSection{
		{title: "Returns Trend", header: []string{"Date", "Returned Quantity"}, rows: trendRows(output.Trend)},
		{title: "Most Returned Products", header: []string{"Product", "Quantity"}, rows: topRows},
		{title: "Sales vs Returns", header: []string{"Sales Value", "Returns Value"}, rows: [][]string{{
			money(output.SalesValue), money(output.ReturnsValue),
		}}},
	})
}

func revenueProfitCSV(output *usecase.RevenueProfitOutput) ([]byte, error) {
	productRows := make([][]string, 0, len(output.Products))
	for _, item := range output.Products {
		productRows = append(productRows, []string{item.Name, money(item.Revenue), money(item.Cost)})
	}
	var matrixRows [][]string
	for _, category := range output.ProfitMatrix {
		for _, product := range category.Products {
			matrixRows = append(matrixRows, []string{category.Category, product.Name, money(product.Value)})
		}
	}

	return renderCSV([]csvSection{
		{title: "Revenue vs Cost", header: []string{"Product", "Revenue", "Cost"}, rows: productRows},
		{title: "Revenue Growth", header: []string{"Date", "Revenue"}, rows: trendRows(output.Growth)},
		{title: "Profit Matrix", header: []string{"Category", "Product", "Profit"}, rows: matrixRows},
	})
}

func inventoryAnalysisCSV(output *usecase.InventoryAnalysisOutput) ([]byte, error) {
	lowStockRows := make([][]string, 0, len(output.LowStock))
	for _, item := range output.LowStock {
		lowStockRows = append(lowStockRows, []string{
			item.Name, item.SKU, strconv.Itoa(item.CurrentStock), strconv.Itoa(item.MinStock),
		})
	}

	return renderCSV([]csvSection{
		{title: "Low Stock", header: []string{"Product", "SKU", "Current Stock", "Min Stock"}, rows: lowStockRows},
		{title: "Inventory Value", header: []string{"Total Value"}, rows: [][]string{{money(output.InventoryValue)}}},
		{title: "Stock Movement", header: []string{"Date", "Stock"}, rows: trendRows(output.StockMovement)},
	})
}

func customerSalesCSV(output *usecase.CustomerSalesOutput) ([]byte, error) {
	customerRows := make([][]string, 0, len(output.TopCustomers))
	for _, item := range output.TopCustomers {
		customerRows = append(customerRows, []string{item.Name, money(item.Value)})
	}
	productRows := make([][]string, 0, len(output.TopProducts))
	for _, item := range output.TopProducts {
		productRows = append(productRows, []string{item.Name, strconv.Itoa(item.Quantity)})
	}

	return renderCSV([]csvSection{
		{title: "Top Customers", header: []string{"Customer", "Revenue"}, rows: customerRows},
		{title: "Top Products", header: []string{"Product", "Quantity"}, rows: productRows},
		{title: "Sales Trend", header: []string{"Date", "Revenue"}, rows: trendRows(output.Trend)},
	})
}
