package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMonthKeyLess(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"2024-01", "2024-02", true},
		{"2024-02", "2024-01", false},
		{"2023-12", "2024-01", true},
		{"2024-01", "2024-01", false},
		{"2024-12", UnknownMonthKey, true},  // Unknown always last
		{UnknownMonthKey, "2024-01", false}, // even against early months
		{UnknownMonthKey, UnknownMonthKey, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MonthKeyLess(tt.a, tt.b), "MonthKeyLess(%q, %q)", tt.a, tt.b)
	}
}

func TestSortMonthKeys(t *testing.T) {
	keys := []string{UnknownMonthKey, "2024-03", "2023-11", "2024-01"}
	SortMonthKeys(keys)
	assert.Equal(t, []string{"2023-11", "2024-01", "2024-03", UnknownMonthKey}, keys)
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{33.333333, 33.33},
		{66.666666, 66.67},
		{50.0, 50.0},
		{2.345678, 2.35},
		{-33.333333, -33.33},
		{0.125, 0.13},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Round2(tt.in), 1e-9, "Round2(%v)", tt.in)
	}
}

func TestFormatQuantity(t *testing.T) {
	assert.Equal(t, "2", FormatQuantity(2))
	assert.Equal(t, "10", FormatQuantity(10.0))
	assert.Equal(t, "2.5", FormatQuantity(2.5))
	assert.Equal(t, "0", FormatQuantity(0))
}

func TestFormatCurrency(t *testing.T) {
	v := 70.0
	assert.Equal(t, "70.00", FormatCurrency(&v))
	zero := 0.0
	assert.Equal(t, "0.00", FormatCurrency(&zero))
	assert.Equal(t, "–", FormatCurrency(nil))
}
