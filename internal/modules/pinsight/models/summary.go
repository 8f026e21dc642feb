package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/MuhamadAgungGumelar/pinsight-be/internal/core/analytics"
)

// Summary is one pre-counted rollup row: observations grouped by product, place, platform and day
type Summary struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	// Grouping key (unique together)
	City            string         `gorm:"type:text;uniqueIndex:idx_products_summary_key" json:"city"`
	Company         string         `gorm:"type:text;uniqueIndex:idx_products_summary_key" json:"company"`
	ClientName      string         `gorm:"column:client_name;type:text;uniqueIndex:idx_products_summary_key;index" json:"client_name"`
	Brand           string         `gorm:"type:text;uniqueIndex:idx_products_summary_key" json:"brand"`
	Name            string         `gorm:"type:text;uniqueIndex:idx_products_summary_key" json:"name"`
	UniqueProductID string         `gorm:"column:unique_product_id;type:text;uniqueIndex:idx_products_summary_key" json:"unique_product_id"`
	Platform        string         `gorm:"type:text;uniqueIndex:idx_products_summary_key" json:"platform"`
	Category        string         `gorm:"type:text;uniqueIndex:idx_products_summary_key" json:"category"`
	ReportDate      datatypes.Date `gorm:"column:report_date;uniqueIndex:idx_products_summary_key;index" json:"report_date"`

	// Counts
	TotalCount     int64 `gorm:"column:total_count;not null;default:0" json:"total_count"`
	ListedCount    int64 `gorm:"column:listed_count;not null;default:0" json:"listed_count"`
	AvailableCount int64 `gorm:"column:available_count;not null;default:0" json:"available_count"`

	// Mean pricing over parsable values, NULL when none parsed
	MRP          *float64 `gorm:"column:mrp" json:"mrp"`
	SellingPrice *float64 `gorm:"column:selling_price" json:"selling_price"`
	Discount     *float64 `gorm:"column:discount" json:"discount"`

	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (Summary) TableName() string {
	return "products_summary"
}

// ToAnalytics converts the stored rollup row into the engine's summary row
func (s *Summary) ToAnalytics() analytics.SummaryRow {
	return analytics.SummaryRow{
		City:            s.City,
		Company:         s.Company,
		ClientName:      s.ClientName,
		Brand:           s.Brand,
		Name:            s.Name,
		UniqueProductID: s.UniqueProductID,
		Platform:        s.Platform,
		Category:        s.Category,
		ReportDate:      analytics.Day(time.Time(s.ReportDate)),
		TotalCount:      s.TotalCount,
		ListedCount:     s.ListedCount,
		AvailableCount:  s.AvailableCount,
		MRP:             s.MRP,
		SellingPrice:    s.SellingPrice,
		Discount:        s.Discount,
	}
}
