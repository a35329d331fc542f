package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/orderscope/orderscope/internal/contract"
	"github.com/orderscope/orderscope/internal/parquet"
	"github.com/orderscope/orderscope/schema"
)

// PrintReport outputs a single-scope report, dispatching based on the output format configured.
func PrintReport(report schema.Report, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportCSV(w, report)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		if err := parquet.WriteReportParquet(report, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote parquet to %s\n", cfg.OutputFile)
	default:
		// Default to human-readable tables
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportTables(report, cfg, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeReportTables writes the matched orders, the quantity distribution and
// the summary footer.
func writeReportTables(report schema.Report, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	if report.TotalOrders == 0 {
		if _, err := fmt.Fprintf(writer, "No orders matched %q in scope %s\n", cfg.Keyword, report.Scope); err != nil {
			return err
		}
		return nil
	}

	if err := writeOrdersTable(report, cfg, writer); err != nil {
		return err
	}
	if err := writeDistributionTable(report, writer); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Matched orders: %d, AOV: %s\n", report.TotalOrders, formatAOV(report.AOV)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v. History backend: %s\n", duration, cfg.HistoryBackend); err != nil {
		return err
	}
	return nil
}

// writeOrdersTable writes the matched orders, capped at the configured row
// limit so a broad keyword cannot flood the terminal.
func writeOrdersTable(report schema.Report, cfg *contract.Config, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"#", "Order", "Qty", "Total"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	shown := report.Rows
	if len(shown) > cfg.RowLimit {
		shown = shown[:cfg.RowLimit]
	}
	var data [][]string
	for i, row := range shown {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			row.OrderID,
			schema.FormatQuantity(row.Quantity),
			schema.FormatCurrency(row.Total),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if len(report.Rows) > cfg.RowLimit {
		if _, err := fmt.Fprintf(writer, "Showing first %d of %d matched orders\n", cfg.RowLimit, len(report.Rows)); err != nil {
			return err
		}
	}
	return nil
}

// writeDistributionTable writes the quantity histogram.
func writeDistributionTable(report schema.Report, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Qty", "Orders", "Share %"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, row := range report.Distribution {
		data = append(data, []string{
			schema.FormatQuantity(row.Quantity),
			strconv.Itoa(row.OrderCount),
			fmt.Sprintf("%.2f", row.Percentage),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeReportCSV writes the filtered dataset, one matched order per row.
func writeReportCSV(w io.Writer, report schema.Report) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write([]string{"order_id", "quantity", "total"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range report.Rows {
		total := ""
		if row.Total != nil {
			total = strconv.FormatFloat(*row.Total, 'f', 2, 64)
		}
		record := []string{
			row.OrderID,
			schema.FormatQuantity(row.Quantity),
			total,
		}
		if err := csvWriter.Write(record); err != nil {
			return err
		}
	}
	return nil
}
