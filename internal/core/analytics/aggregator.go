package analytics

import (
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Accumulator folds facts one at a time so a pass never has to hold the row set
type Accumulator interface {
	Add(f Fact)
}

type counts struct {
	total     int64
	listed    int64
	available int64
}

func (c *counts) add(f Fact) {
	c.total += f.Total
	c.listed += f.Listed
	c.available += f.Available
}

// KPIAccumulator computes the scalar summary metrics
type KPIAccumulator struct {
	strategy Strategy
	rows     int64
	products map[string]struct{}
	counts   counts
}

// NewKPIAccumulator creates a KPI accumulator for the given strategy
func NewKPIAccumulator(s Strategy) *KPIAccumulator {
	return &KPIAccumulator{strategy: s, products: make(map[string]struct{})}
}

func (a *KPIAccumulator) Add(f Fact) {
	a.rows++
	if a.strategy.DistinctProducts() {
		a.products[f.ProductID] = struct{}{}
	}
	a.counts.add(f)
}

// Result returns the KPIs; every ratio is 0 when its denominator is 0
func (a *KPIAccumulator) Result() KPIs {
	skus := a.rows
	if a.strategy.DistinctProducts() {
		skus = int64(len(a.products))
	}
	return KPIs{
		SKUsTracked:  skus,
		Penetration:  Percent(a.counts.listed, a.counts.total, 0),
		Availability: Percent(a.counts.available, a.counts.listed, 0),
		Coverage:     Percent(a.counts.available, a.counts.total, 0),
	}
}

// TimeSeriesAccumulator buckets facts by calendar date
type TimeSeriesAccumulator struct {
	buckets map[string]*counts
}

func NewTimeSeriesAccumulator() *TimeSeriesAccumulator {
	return &TimeSeriesAccumulator{buckets: make(map[string]*counts)}
}

func (a *TimeSeriesAccumulator) Add(f Fact) {
	key := DayKey(f.Date)
	c, ok := a.buckets[key]
	if !ok {
		c = &counts{}
		a.buckets[key] = c
	}
	c.add(f)
}

// Result returns one point per date in ascending order
func (a *TimeSeriesAccumulator) Result() []TimePoint {
	keys := lo.Keys(a.buckets)
	sort.Strings(keys)

	out := make([]TimePoint, 0, len(keys))
	for _, key := range keys {
		c := a.buckets[key]
		out = append(out, TimePoint{Date: key, Value: Percent(c.available, c.listed, 0)})
	}
	return out
}

// RegionalAccumulator buckets facts by the strategy's region key
type RegionalAccumulator struct {
	strategy Strategy
	buckets  map[RegionKey]*counts
}

func NewRegionalAccumulator(s Strategy) *RegionalAccumulator {
	return &RegionalAccumulator{strategy: s, buckets: make(map[RegionKey]*counts)}
}

func (a *RegionalAccumulator) Add(f Fact) {
	key := a.strategy.RegionKey(f)
	c, ok := a.buckets[key]
	if !ok {
		c = &counts{}
		a.buckets[key] = c
	}
	c.add(f)
}

// Result returns regions sorted by city, then pincode
func (a *RegionalAccumulator) Result() []RegionalPoint {
	keys := lo.Keys(a.buckets)
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].City != keys[j].City {
			return keys[i].City < keys[j].City
		}
		return lessPincode(keys[i].Pincode, keys[j].Pincode)
	})

	out := make([]RegionalPoint, 0, len(keys))
	for _, key := range keys {
		c := a.buckets[key]
		out = append(out, RegionalPoint{
			City:              key.City,
			Pincode:           key.Pincode,
			StockAvailability: Percent(c.available, c.listed, 0),
			StockOutPercent:   Percent(c.listed-c.available, c.listed, 0),
		})
	}
	return out
}

// PlatformShareAccumulator counts rows per platform in first-seen order
type PlatformShareAccumulator struct {
	order  []string
	counts map[string]int64
	grand  int64
}

func NewPlatformShareAccumulator() *PlatformShareAccumulator {
	return &PlatformShareAccumulator{counts: make(map[string]int64)}
}

func (a *PlatformShareAccumulator) Add(f Fact) {
	if _, ok := a.counts[f.Platform]; !ok {
		a.order = append(a.order, f.Platform)
	}
	a.counts[f.Platform] += f.Total
	a.grand += f.Total
}

// Result returns each platform's share of the grand total, largest first.
// Equal shares keep the order in which their platforms were first seen.
func (a *PlatformShareAccumulator) Result() []PlatformShare {
	out := make([]PlatformShare, 0, len(a.order))
	for _, name := range a.order {
		out = append(out, PlatformShare{Name: name, Value: Percent(a.counts[name], a.grand, 0)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value > out[j].Value
	})
	return out
}

// BrandLocation is the stage-one bucket of brand coverage
type BrandLocation struct {
	Brand     string
	Location  string
	Available int64
	Total     int64
}

// BrandCoverageAccumulator performs the brand x location grouping incrementally
type BrandCoverageAccumulator struct {
	strategy Strategy
	order    []brandLocationKey
	buckets  map[brandLocationKey]*BrandLocation
}

type brandLocationKey struct {
	brand    string
	location string
}

func NewBrandCoverageAccumulator(s Strategy) *BrandCoverageAccumulator {
	return &BrandCoverageAccumulator{strategy: s, buckets: make(map[brandLocationKey]*BrandLocation)}
}

func (a *BrandCoverageAccumulator) Add(f Fact) {
	key := brandLocationKey{brand: f.Brand, location: a.strategy.LocationKey(f)}
	b, ok := a.buckets[key]
	if !ok {
		b = &BrandLocation{Brand: key.brand, Location: key.location}
		a.buckets[key] = b
		a.order = append(a.order, key)
	}
	b.Available += f.Available
	b.Total += f.Total
}

// Locations returns the stage-one buckets in first-seen order
func (a *BrandCoverageAccumulator) Locations() []BrandLocation {
	out := make([]BrandLocation, 0, len(a.order))
	for _, key := range a.order {
		out = append(out, *a.buckets[key])
	}
	return out
}

func (a *BrandCoverageAccumulator) Result() []BrandCoverage {
	return SumBrandCoverage(a.Locations())
}

// GroupBrandLocations is stage one of brand coverage: available/total per (brand, location)
func GroupBrandLocations(facts []Fact, s Strategy) []BrandLocation {
	acc := NewBrandCoverageAccumulator(s)
	for _, f := range facts {
		acc.Add(f)
	}
	return acc.Locations()
}

// SumBrandCoverage is stage two: sums each brand's locations and rounds coverage to one decimal.
// Output is sorted by coverage, highest first; ties keep first-seen brand order.
func SumBrandCoverage(locations []BrandLocation) []BrandCoverage {
	var order []string
	totals := make(map[string]*counts)
	for _, loc := range locations {
		c, ok := totals[loc.Brand]
		if !ok {
			c = &counts{}
			totals[loc.Brand] = c
			order = append(order, loc.Brand)
		}
		c.available += loc.Available
		c.total += loc.Total
	}

	out := make([]BrandCoverage, 0, len(order))
	for _, brand := range order {
		c := totals[brand]
		out = append(out, BrandCoverage{Name: brand, Coverage: Percent(c.available, c.total, 1)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Coverage > out[j].Coverage
	})
	return out
}

// Pure helpers over an in-memory fact slice

func ComputeKPIs(facts []Fact, s Strategy) KPIs {
	acc := NewKPIAccumulator(s)
	feed(acc, facts)
	return acc.Result()
}

func ComputeTimeSeries(facts []Fact) []TimePoint {
	acc := NewTimeSeriesAccumulator()
	feed(acc, facts)
	return acc.Result()
}

func ComputeRegional(facts []Fact, s Strategy) []RegionalPoint {
	acc := NewRegionalAccumulator(s)
	feed(acc, facts)
	return acc.Result()
}

func ComputePlatformShare(facts []Fact) []PlatformShare {
	acc := NewPlatformShareAccumulator()
	feed(acc, facts)
	return acc.Result()
}

func ComputeBrandCoverage(facts []Fact, s Strategy) []BrandCoverage {
	return SumBrandCoverage(GroupBrandLocations(facts, s))
}

// Aggregate computes all five metric families over an in-memory fact slice
func Aggregate(facts []Fact, s Strategy) *Result {
	res := EmptyResult()
	res.KPIs = ComputeKPIs(facts, s)
	res.TimeSeriesData = ComputeTimeSeries(facts)
	res.RegionalData = ComputeRegional(facts, s)
	res.PlatformShareData = ComputePlatformShare(facts)
	res.BrandCoverage = ComputeBrandCoverage(facts, s)
	return res
}

func feed(acc Accumulator, facts []Fact) {
	for _, f := range facts {
		acc.Add(f)
	}
}

// lessPincode is a total order: numeric pincodes first in numeric order, then the rest as text.
// Equal numbers ("560001", "560001.0") fall back to the raw string.
func lessPincode(a, b string) bool {
	na, okA := ParsePincode(a)
	nb, okB := ParsePincode(b)
	switch {
	case okA && okB && na != nb:
		return na < nb
	case okA != okB:
		return okA
	}
	return strings.Compare(a, b) < 0
}
