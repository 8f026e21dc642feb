package analytics

import (
	"fmt"
	"strings"
	"time"
)

// DayLayout is the canonical key format of a calendar date
const DayLayout = "2006-01-02"

// reportDateLayout is the scrapers' native encoding and is always tried first
const reportDateLayout = "02-01-2006"

// genericLayouts are tried in order once the native layout fails
var genericLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05Z07:00",
	DayLayout,
	"2006/01/02",
	"01/02/2006",
	time.RFC1123Z,
	time.RFC1123,
	"Jan 2, 2006",
	"2 Jan 2006",
}

// ParseReportDate parses a stored report date into a calendar date at UTC midnight.
// ok is false when no known layout matched.
func ParseReportDate(raw string) (date time.Time, ok bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	if t, err := time.Parse(reportDateLayout, s); err == nil {
		return Day(t), true
	}

	for _, layout := range genericLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Day(t), true
		}
	}

	return time.Time{}, false
}

// ParseDateBound parses a filter bound supplied by a caller. Unlike ParseReportDate it fails.
func ParseDateBound(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	d, ok := ParseReportDate(raw)
	if !ok {
		return nil, fmt.Errorf("%w: unrecognised date %q", ErrInvalidFilter, raw)
	}
	return &d, nil
}

// Day truncates t to its calendar date at UTC midnight, keeping the wall-clock date
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DayKey formats a date as YYYY-MM-DD
func DayKey(t time.Time) string {
	return t.Format(DayLayout)
}

// GetDateRange returns the calendar-date window of a named period relative to now.
// Unknown periods return ErrInvalidFilter.
func GetDateRange(period string, now time.Time) (DateRange, error) {
	today := Day(now)
	var from, to time.Time

	switch period {
	case "today":
		from, to = today, today

	case "yesterday":
		from = today.AddDate(0, 0, -1)
		to = from

	case "this_week":
		// Start of week (Monday)
		weekday := int(today.Weekday())
		if weekday == 0 {
			weekday = 7 // Sunday = 7
		}
		from = today.AddDate(0, 0, -weekday+1)
		to = today

	case "last_week":
		weekday := int(today.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		from = today.AddDate(0, 0, -weekday-6)
		to = today.AddDate(0, 0, -weekday)

	case "this_month":
		from = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		to = today

	case "last_month":
		from = time.Date(today.Year(), today.Month()-1, 1, 0, 0, 0, 0, time.UTC)
		to = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)

	case "this_year":
		from = time.Date(today.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
		to = today

	case "last_30_days":
		from = today.AddDate(0, 0, -30)
		to = today

	case "last_90_days":
		from = today.AddDate(0, 0, -90)
		to = today

	default:
		return DateRange{}, fmt.Errorf("%w: unknown period %q", ErrInvalidFilter, period)
	}

	return DateRange{From: &from, To: &to}, nil
}

// Contains reports whether the calendar date d falls inside the inclusive range
func (r DateRange) Contains(d time.Time) bool {
	day := Day(d)
	if r.From != nil && day.Before(Day(*r.From)) {
		return false
	}
	if r.To != nil && day.After(Day(*r.To)) {
		return false
	}
	return true
}
