package schema

import (
	"math"
	"sort"
	"strconv"
)

// MonthKeyLess orders month keys chronologically. Zero-padded "YYYY-MM" keys
// compare correctly as plain strings; UnknownMonthKey is pinned after every
// real key rather than relying on where it happens to fall lexicographically.
func MonthKeyLess(a, b string) bool {
	if a == b {
		return false
	}
	if a == UnknownMonthKey {
		return false
	}
	if b == UnknownMonthKey {
		return true
	}
	return a < b
}

// SortMonthKeys sorts month keys in place into chronological order with
// UnknownMonthKey last.
func SortMonthKeys(keys []string) {
	sort.Slice(keys, func(i, j int) bool {
		return MonthKeyLess(keys[i], keys[j])
	})
}

// Round2 rounds to two decimal places, the precision used for percentages
// and month-over-month deltas.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatQuantity renders a quantity without a decimal point when it is
// integral, since exports overwhelmingly carry whole-unit quantities.
func FormatQuantity(q float64) string {
	if q == math.Trunc(q) {
		return strconv.FormatInt(int64(q), 10)
	}
	return strconv.FormatFloat(q, 'f', -1, 64)
}

// FormatCurrency renders a nullable monetary value with two decimals, or a
// dash when the value is absent. A nil value must stay distinguishable from
// a true zero.
func FormatCurrency(v *float64) string {
	if v == nil {
		return "–"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}
