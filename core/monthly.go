package core

import (
	"sort"

	"github.com/orderscope/orderscope/schema"
)

// SplitByMonth partitions a filtered per-order aggregate by each order's
// month bucket from the index. Orders missing from the index land in the
// Unknown bucket.
func SplitByMonth(filtered map[string]float64, index map[string]*schema.OrderMeta) map[string]map[string]float64 {
	byMonth := make(map[string]map[string]float64)
	for orderID, qty := range filtered {
		key := schema.UnknownMonthKey
		if meta, ok := index[orderID]; ok {
			key = meta.MonthKey
		}
		bucket, ok := byMonth[key]
		if !ok {
			bucket = make(map[string]float64)
			byMonth[key] = bucket
		}
		bucket[orderID] = qty
	}
	return byMonth
}

// BuildMonthReports summarizes each month bucket and returns the reports
// keyed by month alongside the keys in chronological order, Unknown last.
func BuildMonthReports(filtered map[string]float64, index map[string]*schema.OrderMeta) (map[string]schema.Report, []string) {
	byMonth := SplitByMonth(filtered, index)
	keys := make([]string, 0, len(byMonth))
	for key := range byMonth {
		keys = append(keys, key)
	}
	schema.SortMonthKeys(keys)

	reports := make(map[string]schema.Report, len(byMonth))
	for key, bucket := range byMonth {
		reports[key] = Summarize(key, bucket, index)
	}
	return reports, keys
}

// CompareMonths aligns the per-month distributions on the union of all
// quantities seen in any month and computes percentage-point deltas against
// each month's predecessor in the given order. The first month has no
// predecessor and carries nil deltas.
func CompareMonths(monthKeys []string, reports map[string]schema.Report) schema.MonthlyComparison {
	quantitySet := make(map[float64]struct{})
	for _, key := range monthKeys {
		for _, row := range reports[key].Distribution {
			quantitySet[row.Quantity] = struct{}{}
		}
	}
	quantities := make([]float64, 0, len(quantitySet))
	for q := range quantitySet {
		quantities = append(quantities, q)
	}
	sort.Float64s(quantities)

	comparison := schema.MonthlyComparison{
		Quantities: quantities,
		Months:     make([]schema.MonthColumn, 0, len(monthKeys)),
	}
	var prev []float64
	for _, key := range monthKeys {
		report := reports[key]
		shares := make(map[float64]float64, len(report.Distribution))
		for _, row := range report.Distribution {
			shares[row.Quantity] = row.Percentage
		}

		column := schema.MonthColumn{
			Key:         key,
			TotalOrders: report.TotalOrders,
			AOV:         report.AOV,
			Cells:       make([]schema.MonthlyCell, len(quantities)),
		}
		current := make([]float64, len(quantities))
		for i, q := range quantities {
			pct := shares[q] // absent quantity is a true 0 share
			current[i] = pct
			cell := schema.MonthlyCell{Percentage: pct}
			if prev != nil {
				delta := schema.Round2(pct - prev[i])
				cell.Delta = &delta
			}
			column.Cells[i] = cell
		}
		comparison.Months = append(comparison.Months, column)
		prev = current
	}
	return comparison
}
