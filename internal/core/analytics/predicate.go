package analytics

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
)

// AccessScope is the caller identity resolved by the auth layer
type AccessScope struct {
	IsAdmin    bool
	ClientName string
	Category   string
}

// Validate rejects non-admin scopes that carry no client name
func (s AccessScope) Validate() error {
	if !s.IsAdmin && strings.TrimSpace(s.ClientName) == "" {
		return fmt.Errorf("%w: non-admin scope without client", ErrAccessDenied)
	}
	return nil
}

// FilterRequest holds the caller's optional narrowing filters.
// Empty lists impose no constraint.
type FilterRequest struct {
	Brands    []string
	Companies []string
	Products  []string
	Cities    []string
	Platforms []string
	Pincode   string
	From      *time.Time
	To        *time.Time
}

// Predicate is the combined access and filter constraint of one call.
// It is built once and never mutated; WithDateRange returns a copy.
type Predicate struct {
	clientName string // empty for admin
	category   string // empty = no category constraint
	brands     []string
	companies  []string
	products   []string
	cities     []string // lower-cased
	platforms  []string
	pincode    *int64
	dates      DateRange
}

// BuildPredicate combines an access scope with a filter request
func BuildPredicate(scope AccessScope, req FilterRequest) (Predicate, error) {
	if err := scope.Validate(); err != nil {
		return Predicate{}, err
	}

	p := Predicate{
		brands:    cleanList(req.Brands),
		companies: cleanList(req.Companies),
		products:  cleanList(req.Products),
		platforms: cleanList(req.Platforms),
		cities: lo.Uniq(lo.Map(cleanList(req.Cities), func(c string, _ int) string {
			return strings.ToLower(c)
		})),
	}

	if !scope.IsAdmin {
		p.clientName = strings.TrimSpace(scope.ClientName)
		// Category narrows only when the scope carries one
		p.category = strings.TrimSpace(scope.Category)
	}

	if strings.TrimSpace(req.Pincode) != "" {
		pin, ok := ParsePincode(req.Pincode)
		if !ok {
			return Predicate{}, fmt.Errorf("%w: pincode %q is not a number", ErrInvalidFilter, req.Pincode)
		}
		p.pincode = &pin
	}

	if req.From != nil && req.To != nil && Day(*req.From).After(Day(*req.To)) {
		return Predicate{}, fmt.Errorf("%w: from %s is after to %s", ErrInvalidFilter, DayKey(*req.From), DayKey(*req.To))
	}
	p.dates = DateRange{From: dayPtr(req.From), To: dayPtr(req.To)}

	return p, nil
}

// WithDateRange returns a copy of p restricted to [from, to]
func (p Predicate) WithDateRange(from, to time.Time) Predicate {
	p.dates = DateRange{From: dayPtr(&from), To: dayPtr(&to)}
	return p
}

// Match reports whether a canonical record satisfies the predicate.
// Once a date range is active, records without a parseable date never match.
func (p Predicate) Match(r CanonicalRecord) bool {
	if !p.matchDimensions(r.ClientName, r.Category, r.Brand, r.Company, r.Name, r.City, r.Platform) {
		return false
	}
	if p.pincode != nil {
		pin, ok := ParsePincode(r.Pincode)
		if !ok || pin != *p.pincode {
			return false
		}
	}
	if p.dates.Active() {
		if !r.DateValid || !p.dates.Contains(r.ReportDate) {
			return false
		}
	}
	return true
}

// MatchSummary reports whether a rollup row satisfies the predicate.
// Summary rows carry no pincode, so the pincode constraint does not apply to them.
func (p Predicate) MatchSummary(s SummaryRow) bool {
	if !p.matchDimensions(s.ClientName, s.Category, s.Brand, s.Company, s.Name, s.City, s.Platform) {
		return false
	}
	return p.dates.Contains(s.ReportDate)
}

func (p Predicate) matchDimensions(client, category, brand, company, product, city, platform string) bool {
	if p.clientName != "" && client != p.clientName {
		return false
	}
	if p.category != "" && category != p.category {
		return false
	}
	return anyOf(p.brands, brand) &&
		anyOf(p.companies, company) &&
		anyOf(p.products, product) &&
		anyOf(p.cities, strings.ToLower(city)) &&
		anyOf(p.platforms, platform)
}

// Accessors used by repositories to push the SQL-expressible part of the predicate down

func (p Predicate) ClientName() string  { return p.clientName }
func (p Predicate) Category() string    { return p.category }
func (p Predicate) Brands() []string    { return p.brands }
func (p Predicate) Companies() []string { return p.companies }
func (p Predicate) Products() []string  { return p.products }
func (p Predicate) Cities() []string    { return p.cities }
func (p Predicate) Platforms() []string { return p.platforms }
func (p Predicate) Dates() DateRange    { return p.dates }
func (p Predicate) HasPincode() bool    { return p.pincode != nil }
func (p Predicate) HasDateFilter() bool { return p.dates.Active() }

func anyOf(allowed []string, value string) bool {
	return len(allowed) == 0 || lo.Contains(allowed, value)
}

func cleanList(values []string) []string {
	trimmed := lo.Map(values, func(v string, _ int) string {
		return strings.TrimSpace(v)
	})
	return lo.Uniq(lo.Compact(trimmed))
}

func dayPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := Day(*t)
	return &d
}
