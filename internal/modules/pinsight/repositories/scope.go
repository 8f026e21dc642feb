package repositories

import (
	"gorm.io/gorm"

	"github.com/MuhamadAgungGumelar/pinsight-be/internal/core/analytics"
)

// applyPredicate pushes the SQL-expressible part of a predicate into a query.
// Pincode and (for raw rows) date constraints need normalization and are matched in Go.
func applyPredicate(query *gorm.DB, pred analytics.Predicate) *gorm.DB {
	if client := pred.ClientName(); client != "" {
		query = query.Where("client_name = ?", client)
	}
	if category := pred.Category(); category != "" {
		query = query.Where("category = ?", category)
	}
	if brands := pred.Brands(); len(brands) > 0 {
		query = query.Where("brand IN ?", brands)
	}
	if companies := pred.Companies(); len(companies) > 0 {
		query = query.Where("company IN ?", companies)
	}
	if products := pred.Products(); len(products) > 0 {
		query = query.Where("name IN ?", products)
	}
	if cities := pred.Cities(); len(cities) > 0 {
		// Predicate cities are already lower-cased
		query = query.Where("LOWER(city) IN ?", cities)
	}
	if platforms := pred.Platforms(); len(platforms) > 0 {
		query = query.Where("platform IN ?", platforms)
	}
	return query
}

// applyReportDateRange constrains a DATE column to an inclusive calendar range.
// Bounds are sent as YYYY-MM-DD text and the upper bound is made exclusive on the next day,
// which compares correctly against both Postgres DATE and sqlite's textual timestamps.
func applyReportDateRange(query *gorm.DB, rng analytics.DateRange) *gorm.DB {
	if rng.From != nil {
		query = query.Where("report_date >= ?", analytics.DayKey(*rng.From))
	}
	if rng.To != nil {
		query = query.Where("report_date < ?", analytics.DayKey(rng.To.AddDate(0, 0, 1)))
	}
	return query
}
