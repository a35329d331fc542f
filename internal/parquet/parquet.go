// Package parquet provides data structures and functions for exporting report
// data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/orderscope/orderscope/schema"
)

// FilteredOrderRow represents one matched order in a report export.
type FilteredOrderRow struct {
	// Scope is the report scope: "all" or a "YYYY-MM" month key
	Scope string `parquet:"scope,snappy"`

	// OrderID is the order identifier from the export
	OrderID string `parquet:"order_id,snappy"`

	// Quantity is the summed quantity of the filtered product in this order
	Quantity float64 `parquet:"quantity,snappy"`

	// Total is the order's monetary total (nullable)
	Total *float64 `parquet:"total,optional,snappy"`
}

// WriteReportParquet writes a report's matched orders to a Parquet file.
func WriteReportParquet(report schema.Report, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the FilteredOrderRow struct tags
	writer := parquet.NewGenericWriter[FilteredOrderRow](file)
	defer func() { _ = writer.Close() }()

	rows := ConvertReportRows(report)
	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}

// ConvertReportRows converts a schema.Report to rows for Parquet export.
func ConvertReportRows(report schema.Report) []FilteredOrderRow {
	rows := make([]FilteredOrderRow, len(report.Rows))
	for i, r := range report.Rows {
		rows[i] = FilteredOrderRow{
			Scope:    report.Scope,
			OrderID:  r.OrderID,
			Quantity: r.Quantity,
			Total:    r.Total,
		}
	}
	return rows
}
