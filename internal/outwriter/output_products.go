package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/orderscope/orderscope/internal/contract"
	"github.com/orderscope/orderscope/schema"
)

// PrintProducts outputs the distinct product names found in the export,
// dispatching based on the output format configured.
func PrintProducts(names []string, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, names)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			if err := csvWriter.Write([]string{"product"}); err != nil {
				return err
			}
			for _, name := range names {
				if err := csvWriter.Write([]string{name}); err != nil {
					return err
				}
			}
			return nil
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for product listings")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeProductsTable(names, cfg, duration, w)
		}, "Wrote table")
	}
	return nil
}

func writeProductsTable(names []string, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	if len(names) == 0 {
		_, err := fmt.Fprintln(writer, "No products found")
		return err
	}

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"#", "Product"})

	shown := names
	if len(shown) > cfg.RowLimit {
		shown = shown[:cfg.RowLimit]
	}
	// Leave room for the rank column and table borders.
	nameWidth := getTerminalWidth(cfg) - 12
	var data [][]string
	for i, name := range shown {
		data = append(data, []string{strconv.Itoa(i + 1), contract.TruncateName(name, nameWidth)})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if len(names) > cfg.RowLimit {
		if _, err := fmt.Fprintf(writer, "Showing first %d of %d products\n", cfg.RowLimit, len(names)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(writer, "%d distinct products found in %v\n", len(names), duration); err != nil {
		return err
	}
	return nil
}
