// Package schema has the data model, constants and helpers shared by all
// parts of orderscope.
package schema

// RawRow is a single line item from an order export, keyed by column header.
// Values are whatever the loader produced: strings for CSV cells, float64 for
// numeric spreadsheet cells, nil for absent cells. Rows are consumed
// read-only by the engine.
type RawRow map[string]any

// ColumnRoleMap maps each semantic role to the resolved header string.
// A role that did not match any header maps to the empty string.
type ColumnRoleMap map[ColumnRole]string

// Resolved reports whether every given role resolved to a header.
func (m ColumnRoleMap) Resolved(roles ...ColumnRole) bool {
	for _, role := range roles {
		if m[role] == "" {
			return false
		}
	}
	return true
}

// OrderMeta holds the per-order facts captured during the index scan.
// There is exactly one OrderMeta per distinct order id.
type OrderMeta struct {
	// Total is the order's monetary total, taken from the first row for the
	// order with a parseable total column. Nil when no row had one.
	Total *float64 `json:"total"`

	// MonthKey is the "YYYY-MM" calendar bucket derived from the order's
	// first-seen creation date, or UnknownMonthKey.
	MonthKey string `json:"month_key"`
}

// FilteredOrder is one matched order in a report: the summed quantity of the
// filtered product across the order's matching line items, plus the order
// total looked up from the index.
type FilteredOrder struct {
	OrderID  string   `json:"order_id"`
	Quantity float64  `json:"quantity"`
	Total    *float64 `json:"total"` // nil when the order has no parseable total
}

// DistributionRow is one bucket of the quantity histogram: how many matched
// orders purchased exactly Quantity units, and that count's share of all
// matched orders.
type DistributionRow struct {
	Quantity   float64 `json:"quantity"`
	OrderCount int     `json:"order_count"`
	Percentage float64 `json:"percentage"` // rounded to 2 decimal places
}

// Report is the full per-product summary for one scope (all months, or a
// single calendar month bucket). Plain data with no behavior so that any
// writer can render or serialize it without re-deriving aggregation logic.
type Report struct {
	Scope        string            `json:"scope"` // AllMonthsScope or a month key
	Rows         []FilteredOrder   `json:"rows"`
	Distribution []DistributionRow `json:"distribution"`
	AOV          *float64          `json:"aov"` // nil, not zero, when no matched order has a total
	TotalOrders  int               `json:"total_orders"`
}

// MonthlyCell is one (quantity, month) cell of the comparison table.
type MonthlyCell struct {
	// Percentage is the quantity's share of that month's matched orders.
	// A quantity absent from the month's distribution is a true 0 share.
	Percentage float64 `json:"percentage"`

	// Delta is the percentage-point change versus the previous month,
	// rounded to 2 decimal places. Nil for the first month in the sequence.
	Delta *float64 `json:"delta,omitempty"`
}

// MonthColumn holds one month's cells, aligned on the comparison's shared
// quantity axis.
type MonthColumn struct {
	Key         string        `json:"key"` // "YYYY-MM" or UnknownMonthKey
	TotalOrders int           `json:"total_orders"`
	AOV         *float64      `json:"aov"`
	Cells       []MonthlyCell `json:"cells"`
}

// MonthlyComparison aligns per-month distributions on the union of all
// quantity values seen across the months, sorted ascending. Months appear in
// chronological order with UnknownMonthKey pinned last.
type MonthlyComparison struct {
	Quantities []float64     `json:"quantities"`
	Months     []MonthColumn `json:"months"`
}

// RunRecord is the telemetry row written to the history store after a
// successful analysis run. Write-only: nothing in the engine reads it back.
type RunRecord struct {
	SourceFile   string   `json:"source_file"`
	Keyword      string   `json:"keyword"`
	Scope        string   `json:"scope"`
	TotalOrders  int      `json:"total_orders"`
	AOV          *float64 `json:"aov"`
	DurationMs   int64    `json:"duration_ms"`
	RowsScanned  int      `json:"rows_scanned"`
	MonthBuckets int      `json:"month_buckets"`
}
