// Package loader reads order exports from CSV and XLSX files into raw rows.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/xuri/excelize/v2"

	"github.com/orderscope/orderscope/schema"
)

// ErrNoRows indicates the export had a header but no data rows.
var ErrNoRows = errors.New("export contains no data rows")

// LoadRows reads an export file and returns its header row plus one RawRow
// per data line, dispatching on the file extension. showProgress enables a
// byte-level progress bar on stderr for CSV files, which can run to hundreds
// of megabytes for large shops.
func LoadRows(path string, showProgress bool) ([]string, []schema.RawRow, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return loadCSV(path, showProgress)
	case ".xlsx", ".xlsm", ".xls":
		return loadXLSX(path)
	default:
		return nil, nil, fmt.Errorf("unsupported file type %q (expected .csv or .xlsx)", filepath.Ext(path))
	}
}

func loadCSV(path string, showProgress bool) ([]string, []schema.RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = f.Close() }()

	var src io.Reader = f
	if showProgress {
		if info, statErr := f.Stat(); statErr == nil {
			bar := progressbar.DefaultBytes(info.Size(), "reading "+filepath.Base(path))
			src = io.TeeReader(f, bar)
		}
	}

	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1 // exports from re-saved spreadsheets have ragged rows

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, ErrNoRows
		}
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\ufeff")
	}

	var rows []schema.RawRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read row %d: %w", len(rows)+2, err)
		}
		if row := recordToRow(headers, record); row != nil {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		return headers, nil, ErrNoRows
	}
	return headers, rows, nil
}

func loadXLSX(path string) ([]string, []schema.RawRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, ErrNoRows
	}

	// Raw cell values keep date cells as their serial numbers, which the
	// date normalizer converts deterministically regardless of the
	// workbook's display format.
	records, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, ErrNoRows
	}

	headers := records[0]
	var rows []schema.RawRow
	for _, record := range records[1:] {
		if row := recordToRow(headers, record); row != nil {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		return headers, nil, ErrNoRows
	}
	return headers, rows, nil
}

// recordToRow maps a record onto the header row, dropping records that are
// entirely empty. Short records leave trailing columns absent rather than
// mapping them to empty strings.
func recordToRow(headers, record []string) schema.RawRow {
	empty := true
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			empty = false
			break
		}
	}
	if empty {
		return nil
	}
	row := make(schema.RawRow, len(headers))
	for i, header := range headers {
		if i < len(record) {
			row[header] = record[i]
		}
	}
	return row
}
