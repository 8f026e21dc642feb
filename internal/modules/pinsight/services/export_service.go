package services

import (
	"time"

	"github.com/MuhamadAgungGumelar/pinsight-be/internal/core/analytics"
	"github.com/MuhamadAgungGumelar/pinsight-be/internal/core/export"
)

// DashboardWorkbook lays a dashboard result out as one sheet per section, raw data last
func DashboardWorkbook(res *analytics.Result, title string, createdAt time.Time) *export.Workbook {
	kpis := export.Sheet{
		Name:    "KPIs",
		Headers: []string{"Metric", "Value"},
		Rows: [][]interface{}{
			{"SKUs tracked", res.KPIs.SKUsTracked},
			{"Penetration %", res.KPIs.Penetration},
			{"Availability %", res.KPIs.Availability},
			{"Coverage %", res.KPIs.Coverage},
		},
		ColumnWidths: map[int]float64{1: 20},
	}

	series := export.Sheet{Name: "Time Series", Headers: []string{"Date", "Availability %"}}
	for _, p := range res.TimeSeriesData {
		series.Rows = append(series.Rows, []interface{}{p.Date, p.Value})
	}

	regional := export.Sheet{Name: "Regional", Headers: []string{"City", "Pincode", "Stock Availability %", "Stock Out %"}}
	for _, p := range res.RegionalData {
		regional.Rows = append(regional.Rows, []interface{}{p.City, p.Pincode, p.StockAvailability, p.StockOutPercent})
	}

	platforms := export.Sheet{Name: "Platform Share", Headers: []string{"Platform", "Share %"}}
	for _, p := range res.PlatformShareData {
		platforms.Rows = append(platforms.Rows, []interface{}{p.Name, p.Value})
	}

	brands := export.Sheet{Name: "Brand Coverage", Headers: []string{"Brand", "Coverage %"}}
	for _, b := range res.BrandCoverage {
		brands.Rows = append(brands.Rows, []interface{}{b.Name, b.Coverage})
	}

	raw := export.Sheet{
		Name: "Raw Data",
		Headers: []string{
			"Report Date", "Client", "Category", "Company", "Brand", "Product", "Product ID", "SKU ID",
			"City", "Pincode", "Platform", "MRP", "Selling Price", "Discount", "Availability",
		},
		Rows:         make([][]interface{}, 0, len(res.RawData)),
		ColumnWidths: map[int]float64{6: 40},
	}
	for _, r := range res.RawData {
		raw.Rows = append(raw.Rows, []interface{}{
			analytics.DayKey(r.ReportDate), r.ClientName, r.Category, r.Company, r.Brand, r.Name,
			r.UniqueProductID, r.SKUID, r.City, r.Pincode, r.Platform,
			r.MRP, r.SellingPrice, r.Discount, r.Availability,
		})
	}

	return &export.Workbook{
		Title:     title,
		Author:    "pinsight",
		CreatedAt: createdAt,
		Sheets:    []export.Sheet{kpis, series, regional, platforms, brands, raw},
		Style:     export.DefaultStyle(),
	}
}
