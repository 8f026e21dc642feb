package analytics

import "github.com/shopspring/decimal"

// Round rounds half away from zero to the given number of decimal places.
// All percentages are non-negative, so this is half-up in practice.
func Round(value float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(value).Round(places).Float64()
	return f
}

// Percent returns round(part/whole*100, places) with half-up rounding, or 0 when whole is 0.
// The quotient is rounded once, in integer arithmetic, so 2/3 gives 67 and 66.7 rather than
// whatever the nearest float64 happens to round to.
func Percent(part, whole int64, places int32) float64 {
	if whole <= 0 || part <= 0 {
		return 0
	}
	scaled := decimal.NewFromInt(part).Mul(decimal.New(100, places))
	w := decimal.NewFromInt(whole)
	// floor((2n + w) / 2w) == round-half-up(n / w) for non-negative n
	q, _ := scaled.Mul(decimal.NewFromInt(2)).Add(w).QuoRem(w.Mul(decimal.NewFromInt(2)), 0)
	f, _ := q.Shift(-places).Float64()
	return f
}
