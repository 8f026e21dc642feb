package analytics

import "time"

// Observation is one raw availability row as stored by the scrapers.
// Every field is kept in its stored textual form; Normalize turns it into a CanonicalRecord.
type Observation struct {
	UniqueProductID string
	SKUID           string
	Name            string
	Brand           string
	Company         string
	ClientName      string
	Category        string
	City            string
	Pincode         string
	Platform        string
	MRP             string
	SellingPrice    string
	Discount        string
	Availability    string // "Yes", "No" or anything else (unlisted)
	ReportDate      string // DD-MM-YYYY or an ISO-ish string
	IngestedAt      time.Time
}

// CanonicalRecord is the typed projection of an Observation for the duration of one call
type CanonicalRecord struct {
	UniqueProductID string    `json:"uniqueProductId"`
	SKUID           string    `json:"skuId"`
	Name            string    `json:"name"`
	Brand           string    `json:"brand"`
	Company         string    `json:"company"`
	ClientName      string    `json:"clientName"`
	Category        string    `json:"category"`
	City            string    `json:"city"`
	Pincode         string    `json:"pincode"`
	Platform        string    `json:"platform"`
	MRP             float64   `json:"mrp"`
	SellingPrice    float64   `json:"sellingPrice"`
	Discount        float64   `json:"discount"`
	Availability    string    `json:"availability"`
	IsListed        bool      `json:"isListed"`
	IsAvailable     bool      `json:"isAvailable"`
	ReportDate      time.Time `json:"reportDate"`
	DateValid       bool      `json:"-"` // false when ReportDate is the processing-time fallback
	IngestedAt      time.Time `json:"ingestedAt"`
}

// SummaryRow is one pre-counted row of the rollup table
type SummaryRow struct {
	City            string
	Company         string
	ClientName      string
	Brand           string
	Name            string
	UniqueProductID string
	Platform        string
	Category        string
	ReportDate      time.Time
	TotalCount      int64
	ListedCount     int64
	AvailableCount  int64
	MRP             *float64
	SellingPrice    *float64
	Discount        *float64
}

// Fact is the unit every aggregator consumes.
// A raw record becomes a fact with Total=1; a summary row carries its own counts.
type Fact struct {
	ProductID string
	Brand     string
	City      string
	Pincode   string
	Platform  string
	Date      time.Time
	Total     int64
	Listed    int64
	Available int64
}

// KPIs are the scalar summary metrics of a dashboard
type KPIs struct {
	SKUsTracked  int64   `json:"skusTracked"`
	Penetration  float64 `json:"penetration"`
	Availability float64 `json:"availability"`
	Coverage     float64 `json:"coverage"`
}

// TimePoint is one bucket of the availability time series
type TimePoint struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Value float64 `json:"value"`
}

// RegionalPoint is one city (and, for raw data, pincode) bucket
type RegionalPoint struct {
	City              string  `json:"city"`
	Pincode           string  `json:"pincode,omitempty"`
	StockAvailability float64 `json:"stockAvailability"`
	StockOutPercent   float64 `json:"stockOutPercent"`
}

// PlatformShare is a platform's share of all observed rows
type PlatformShare struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// BrandCoverage is a brand's available/total ratio across its locations
type BrandCoverage struct {
	Name     string  `json:"name"`
	Coverage float64 `json:"coverage"`
}

// Result is the payload returned by every dashboard query
type Result struct {
	RawData           []CanonicalRecord `json:"rawData"`
	KPIs              KPIs              `json:"kpis"`
	TimeSeriesData    []TimePoint       `json:"timeSeriesData"`
	RegionalData      []RegionalPoint   `json:"regionalData"`
	PlatformShareData []PlatformShare   `json:"platformShareData"`
	BrandCoverage     []BrandCoverage   `json:"brandCoverage"`
}

// EmptyResult returns a result whose sequences are empty rather than nil
func EmptyResult() *Result {
	return &Result{
		RawData:           []CanonicalRecord{},
		TimeSeriesData:    []TimePoint{},
		RegionalData:      []RegionalPoint{},
		PlatformShareData: []PlatformShare{},
		BrandCoverage:     []BrandCoverage{},
	}
}

// DateRange represents an inclusive calendar-date window.
// A nil bound is open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// Active reports whether either bound is set
func (r DateRange) Active() bool {
	return r.From != nil || r.To != nil
}
