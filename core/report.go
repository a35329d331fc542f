package core

import (
	"sort"

	"github.com/orderscope/orderscope/schema"
)

// Summarize turns a filtered per-order quantity aggregate into a full report
// for one scope: the matched orders with their totals, the quantity
// histogram, and the average order value over orders that carry a total.
func Summarize(scope string, filtered map[string]float64, index map[string]*schema.OrderMeta) schema.Report {
	report := schema.Report{
		Scope:        scope,
		Rows:         make([]schema.FilteredOrder, 0, len(filtered)),
		Distribution: []schema.DistributionRow{},
		TotalOrders:  len(filtered),
	}

	for orderID, qty := range filtered {
		row := schema.FilteredOrder{OrderID: orderID, Quantity: qty}
		if meta, ok := index[orderID]; ok {
			row.Total = meta.Total
		}
		report.Rows = append(report.Rows, row)
	}
	sort.Slice(report.Rows, func(i, j int) bool {
		return report.Rows[i].OrderID < report.Rows[j].OrderID
	})

	report.Distribution = buildDistribution(report.Rows, report.TotalOrders)
	report.AOV = averageOrderValue(report.Rows)
	return report
}

// buildDistribution counts orders per exact quantity, sorted by quantity
// ascending. Percentages divide by max(total, 1) so an empty report yields
// an empty histogram rather than NaN.
func buildDistribution(rows []schema.FilteredOrder, total int) []schema.DistributionRow {
	counts := make(map[float64]int)
	for _, row := range rows {
		counts[row.Quantity]++
	}
	quantities := make([]float64, 0, len(counts))
	for q := range counts {
		quantities = append(quantities, q)
	}
	sort.Float64s(quantities)

	denominator := total
	if denominator < 1 {
		denominator = 1
	}
	dist := make([]schema.DistributionRow, 0, len(quantities))
	for _, q := range quantities {
		count := counts[q]
		dist = append(dist, schema.DistributionRow{
			Quantity:   q,
			OrderCount: count,
			Percentage: schema.Round2(float64(count) / float64(denominator) * 100),
		})
	}
	return dist
}

// averageOrderValue averages totals over the matched orders that have one.
// Nil when none do, so a report over total-less data reads as "no signal"
// instead of a misleading zero.
func averageOrderValue(rows []schema.FilteredOrder) *float64 {
	var sum float64
	var n int
	for _, row := range rows {
		if row.Total != nil {
			sum += *row.Total
			n++
		}
	}
	if n == 0 {
		return nil
	}
	aov := schema.Round2(sum / float64(n))
	return &aov
}
