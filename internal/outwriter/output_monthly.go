package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/orderscope/orderscope/internal/contract"
	"github.com/orderscope/orderscope/schema"
)

// PrintMonthly outputs the month-over-month comparison, dispatching based on
// the output format configured.
func PrintMonthly(comparison schema.MonthlyComparison, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, comparison)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMonthlyCSV(w, comparison)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for month comparisons")
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMonthlyTable(comparison, cfg, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeMonthlyTable writes the quantity-share matrix, one row per quantity and
// two columns per month: the month's share and its change versus the previous
// month.
func writeMonthlyTable(comparison schema.MonthlyComparison, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	if len(comparison.Months) == 0 {
		if _, err := fmt.Fprintf(writer, "No orders matched %q in any month\n", cfg.Keyword); err != nil {
			return err
		}
		return nil
	}

	table := tablewriter.NewWriter(writer)
	headers := []string{"Qty"}
	for _, month := range comparison.Months {
		headers = append(headers, month.Key, "Δ")
	}
	table.Header(headers)
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	red, green, yellow := deltaFormatters(cfg)
	var data [][]string
	for i, qty := range comparison.Quantities {
		row := []string{schema.FormatQuantity(qty)}
		for _, month := range comparison.Months {
			cell := month.Cells[i]
			row = append(row,
				fmt.Sprintf("%.2f%%", cell.Percentage),
				formatDelta(cell.Delta, red, green, yellow),
			)
		}
		data = append(data, row)
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	for _, month := range comparison.Months {
		if _, err := fmt.Fprintf(writer, "%s: %d orders, AOV %s\n", month.Key, month.TotalOrders, formatAOV(month.AOV)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(writer, "Comparison completed in %v across %d months. History backend: %s\n", duration, len(comparison.Months), cfg.HistoryBackend); err != nil {
		return err
	}
	return nil
}

// writeMonthlyCSV writes the comparison with one row per quantity and a
// share/delta column pair per month. Nil deltas stay empty cells.
func writeMonthlyCSV(w io.Writer, comparison schema.MonthlyComparison) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	header := []string{"quantity"}
	for _, month := range comparison.Months {
		header = append(header, month.Key+"_pct", month.Key+"_delta")
	}
	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i, qty := range comparison.Quantities {
		record := []string{schema.FormatQuantity(qty)}
		for _, month := range comparison.Months {
			cell := month.Cells[i]
			record = append(record, strconv.FormatFloat(cell.Percentage, 'f', 2, 64))
			if cell.Delta != nil {
				record = append(record, strconv.FormatFloat(*cell.Delta, 'f', 2, 64))
			} else {
				record = append(record, "")
			}
		}
		if err := csvWriter.Write(record); err != nil {
			return err
		}
	}
	return nil
}
