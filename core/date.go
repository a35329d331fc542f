package core

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/orderscope/orderscope/schema"
)

// Spreadsheet serial dates outside (serialLowerBound, serialUpperBound) are
// rejected: below covers the 1900 leap-year ghost region, above lands past
// the year 2064 and is far more likely a row id or price that leaked into the
// date column.
const (
	serialLowerBound = 60
	serialUpperBound = 60000
)

// dateLayouts are tried in order against string-typed date cells. Shopify
// exports use the first two; the rest cover hand-edited files.
var dateLayouts = []string{
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006",
	"2006/01/02",
}

// ParseCellDate interprets a raw date cell as a timestamp. Strings are tried
// against the known layouts, then as a numeric spreadsheet serial; float64
// cells (XLSX date cells read raw) go straight to serial conversion. Returns
// nil when the cell is empty or matches nothing.
func ParseCellDate(value any) *time.Time {
	switch v := value.(type) {
	case time.Time:
		return &v
	case float64:
		return serialToDate(v)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return &t
			}
		}
		if serial, err := strconv.ParseFloat(s, 64); err == nil {
			return serialToDate(serial)
		}
		return nil
	default:
		return nil
	}
}

// serialToDate converts an Excel-epoch serial number into a timestamp,
// rejecting values outside the plausible date window.
func serialToDate(serial float64) *time.Time {
	if serial <= serialLowerBound || serial >= serialUpperBound {
		return nil
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return nil
	}
	return &t
}

// MonthKey buckets a timestamp into its "YYYY-MM" calendar month, or
// UnknownMonthKey when the timestamp is absent.
func MonthKey(t *time.Time) string {
	if t == nil {
		return schema.UnknownMonthKey
	}
	return t.Format("2006-01")
}
