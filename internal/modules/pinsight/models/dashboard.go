package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/MuhamadAgungGumelar/pinsight-be/internal/core/analytics"
)

// DashboardFilterRequest is the JSON body of the filtered and summary dashboard endpoints
type DashboardFilterRequest struct {
	Brands    []string `json:"brands,omitempty"`
	Companies []string `json:"companies,omitempty"`
	Products  []string `json:"products,omitempty"`
	Cities    []string `json:"cities,omitempty"`
	Platforms []string `json:"platforms,omitempty"`
	Pincode   string   `json:"pincode,omitempty"`
	From      string   `json:"from,omitempty"`   // DD-MM-YYYY or YYYY-MM-DD
	To        string   `json:"to,omitempty"`     // DD-MM-YYYY or YYYY-MM-DD
	Period    string   `json:"period,omitempty"` // today, last_30_days, ... (ignored when from/to given)
}

// ToFilter converts the payload into the engine's filter request
func (r *DashboardFilterRequest) ToFilter(now time.Time) (analytics.FilterRequest, error) {
	from, err := analytics.ParseDateBound(r.From)
	if err != nil {
		return analytics.FilterRequest{}, fmt.Errorf("from: %w", err)
	}
	to, err := analytics.ParseDateBound(r.To)
	if err != nil {
		return analytics.FilterRequest{}, fmt.Errorf("to: %w", err)
	}

	if from == nil && to == nil && strings.TrimSpace(r.Period) != "" {
		rng, err := analytics.GetDateRange(strings.TrimSpace(r.Period), now)
		if err != nil {
			return analytics.FilterRequest{}, err
		}
		from, to = rng.From, rng.To
	}

	return analytics.FilterRequest{
		Brands:    r.Brands,
		Companies: r.Companies,
		Products:  r.Products,
		Cities:    r.Cities,
		Platforms: r.Platforms,
		Pincode:   r.Pincode,
		From:      from,
		To:        to,
	}, nil
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}
