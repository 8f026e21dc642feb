package analytics

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	statusYes = "yes"
	statusNo  = "no"
)

// Normalizer turns raw observations into canonical records.
// It never fails: unparsable values degrade to documented fallbacks.
type Normalizer struct {
	now func() time.Time
}

// NewNormalizer creates a normalizer; a nil clock means time.Now
func NewNormalizer(now func() time.Time) *Normalizer {
	if now == nil {
		now = time.Now
	}
	return &Normalizer{now: now}
}

// Normalize converts one observation.
// An unparsable report date becomes the processing date with DateValid=false.
func (n *Normalizer) Normalize(obs Observation) CanonicalRecord {
	date, ok := ParseReportDate(obs.ReportDate)
	if !ok {
		date = Day(n.now())
	}
	listed, available := ParseAvailability(obs.Availability)

	return CanonicalRecord{
		UniqueProductID: obs.UniqueProductID,
		SKUID:           obs.SKUID,
		Name:            obs.Name,
		Brand:           obs.Brand,
		Company:         obs.Company,
		ClientName:      obs.ClientName,
		Category:        obs.Category,
		City:            obs.City,
		Pincode:         strings.TrimSpace(obs.Pincode),
		Platform:        obs.Platform,
		MRP:             ParseNumber(obs.MRP),
		SellingPrice:    ParseNumber(obs.SellingPrice),
		Discount:        ParseNumber(obs.Discount),
		Availability:    obs.Availability,
		IsListed:        listed,
		IsAvailable:     available,
		ReportDate:      date,
		DateValid:       ok,
		IngestedAt:      obs.IngestedAt,
	}
}

// ParseAvailability derives the listed/available flags from a stored status.
// Only "Yes" and "No" (trimmed, any case) are listed; available implies listed.
func ParseAvailability(status string) (listed, available bool) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case statusYes:
		return true, true
	case statusNo:
		return true, false
	default:
		return false, false
	}
}

// ParseNumber coerces a stored numeric string, returning 0 for anything unparsable
func ParseNumber(raw string) float64 {
	f, ok := TryParseNumber(raw)
	if !ok {
		return 0
	}
	return f
}

// TryParseNumber reports whether raw held a finite number.
// Thousands separators, a leading rupee/dollar sign and a trailing % are tolerated.
func TryParseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "₹")
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ParsePincode parses a pincode as an integer
func ParsePincode(raw string) (int64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	// Spreadsheet exports occasionally store pincodes as floats ("560001.0")
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == math.Trunc(f) {
		return int64(f), true
	}
	return 0, false
}
