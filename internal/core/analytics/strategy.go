package analytics

import "strings"

// Strategy captures how raw observations and pre-counted summary rows differ
// while sharing the same grouping and rounding code.
type Strategy interface {
	Name() string
	// DistinctProducts makes skusTracked count unique product ids instead of rows
	DistinctProducts() bool
	// RegionKey is the regional bucket of a fact
	RegionKey(f Fact) RegionKey
	// LocationKey is the stage-one location of the brand coverage grouping
	LocationKey(f Fact) string
}

// RegionKey identifies a regional bucket; Pincode is empty for rollup data
type RegionKey struct {
	City    string
	Pincode string
}

// RawStrategy aggregates one-row-per-observation data
type RawStrategy struct{}

func (RawStrategy) Name() string           { return "raw" }
func (RawStrategy) DistinctProducts() bool { return false }

func (RawStrategy) RegionKey(f Fact) RegionKey {
	return RegionKey{City: f.City, Pincode: f.Pincode}
}

func (RawStrategy) LocationKey(f Fact) string {
	return f.City + "\x00" + f.Pincode
}

// RollupStrategy aggregates pre-counted summary rows, which have no pincode
type RollupStrategy struct{}

func (RollupStrategy) Name() string           { return "rollup" }
func (RollupStrategy) DistinctProducts() bool { return true }

func (RollupStrategy) RegionKey(f Fact) RegionKey {
	return RegionKey{City: f.City}
}

func (RollupStrategy) LocationKey(f Fact) string {
	return f.City
}

// FactFromRecord turns a canonical record into a single-row fact
func FactFromRecord(r CanonicalRecord) Fact {
	f := Fact{
		ProductID: r.UniqueProductID,
		Brand:     r.Brand,
		City:      r.City,
		Pincode:   strings.TrimSpace(r.Pincode),
		Platform:  r.Platform,
		Date:      r.ReportDate,
		Total:     1,
	}
	if r.IsListed {
		f.Listed = 1
	}
	if r.IsAvailable {
		f.Available = 1
	}
	return f
}

// FactFromSummary turns a rollup row into a fact carrying its counts
func FactFromSummary(s SummaryRow) Fact {
	return Fact{
		ProductID: s.UniqueProductID,
		Brand:     s.Brand,
		City:      s.City,
		Platform:  s.Platform,
		Date:      Day(s.ReportDate),
		Total:     s.TotalCount,
		Listed:    s.ListedCount,
		Available: s.AvailableCount,
	}
}
