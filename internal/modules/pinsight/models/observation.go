package models

import (
	"time"

	"github.com/MuhamadAgungGumelar/pinsight-be/internal/core/analytics"
)

// Observation is one scraped availability row (SKU x location x platform x date).
// Rows are written by the scrapers; this service only reads them.
// Every value column is text because the scrapers store whatever the platform rendered.
type Observation struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	// Product identity
	UniqueProductID string `gorm:"column:unique_product_id;type:text;index" json:"unique_product_id"`
	SKUID           string `gorm:"column:sku_id;type:text" json:"sku_id"`
	Name            string `gorm:"type:text" json:"name"`
	Brand           string `gorm:"type:text;index" json:"brand"`
	Company         string `gorm:"type:text" json:"company"`

	// Ownership
	ClientName string `gorm:"column:client_name;type:text;index" json:"client_name"`
	Category   string `gorm:"type:text" json:"category"`

	// Location & platform
	City     string `gorm:"type:text" json:"city"`
	Pincode  string `gorm:"type:text" json:"pincode"`
	Platform string `gorm:"type:text" json:"platform"`

	// Pricing (raw text)
	MRP          string `gorm:"column:mrp;type:text" json:"mrp"`
	SellingPrice string `gorm:"column:selling_price;type:text" json:"selling_price"`
	Discount     string `gorm:"type:text" json:"discount"`

	// Status
	Availability string `gorm:"type:text" json:"availability"` // Yes / No / anything else = unlisted
	ReportDate   string `gorm:"column:report_date;type:text" json:"report_date"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name
func (Observation) TableName() string {
	return "products"
}

// ToAnalytics converts the stored row into the engine's raw observation
func (o *Observation) ToAnalytics() analytics.Observation {
	return analytics.Observation{
		UniqueProductID: o.UniqueProductID,
		SKUID:           o.SKUID,
		Name:            o.Name,
		Brand:           o.Brand,
		Company:         o.Company,
		ClientName:      o.ClientName,
		Category:        o.Category,
		City:            o.City,
		Pincode:         o.Pincode,
		Platform:        o.Platform,
		MRP:             o.MRP,
		SellingPrice:    o.SellingPrice,
		Discount:        o.Discount,
		Availability:    o.Availability,
		ReportDate:      o.ReportDate,
		IngestedAt:      o.CreatedAt,
	}
}
