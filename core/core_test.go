package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderscope/orderscope/internal/contract"
	"github.com/orderscope/orderscope/schema"
)

const sampleExport = `Name,Email,Created at,Lineitem quantity,Lineitem name,Total
#1001,a@example.com,2024-01-05 10:00:00,2,Widget A,50.00
#1001,,,1,Gadget B,
#1002,b@example.com,2024-02-10 12:30:00,3,Widget A,90.00
#1003,c@example.com,2024-02-11 09:00:00,1,Gadget B,25.00
`

func writeSampleExport(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orders.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleExport), 0o644))
	return path
}

func testConfig(t *testing.T) *contract.Config {
	t.Helper()
	return &contract.Config{
		InputFile: writeSampleExport(t),
		Keyword:   "widget",
		RowLimit:  contract.DefaultRowLimit,
		Output:    schema.TextOut,
		Aliases:   schema.DefaultAliases(),
	}
}

func TestGetReportResults(t *testing.T) {
	cfg := testConfig(t)
	report, rowsScanned, err := GetReportResults(cfg)
	require.NoError(t, err)

	assert.Equal(t, 4, rowsScanned)
	assert.Equal(t, schema.AllMonthsScope, report.Scope)
	assert.Equal(t, 2, report.TotalOrders)
	require.NotNil(t, report.AOV)
	assert.Equal(t, 70.0, *report.AOV)
}

func TestGetReportResults_MonthFilter(t *testing.T) {
	cfg := testConfig(t)
	cfg.Months = []string{"2024-02"}

	report, _, err := GetReportResults(cfg)
	require.NoError(t, err)
	assert.Equal(t, "2024-02", report.Scope)
	assert.Equal(t, 1, report.TotalOrders)
	require.Len(t, report.Rows, 1)
	assert.Equal(t, "#1002", report.Rows[0].OrderID)
}

func TestGetReportResults_MissingKeyword(t *testing.T) {
	cfg := testConfig(t)
	cfg.Keyword = ""
	_, _, err := GetReportResults(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--keyword is required")
}

func TestGetReportResults_MissingInput(t *testing.T) {
	cfg := testConfig(t)
	cfg.InputFile = ""
	_, _, err := GetReportResults(cfg)
	require.Error(t, err)
}

func TestGetReportResults_UnresolvableColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv")
	require.NoError(t, os.WriteFile(path, []byte("foo,bar\n1,2\n"), 0o644))

	cfg := testConfig(t)
	cfg.InputFile = path
	_, _, err := GetReportResults(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not resolve")
}

func TestGetMonthlyResults(t *testing.T) {
	cfg := testConfig(t)
	comparison, total, rowsScanned, err := GetMonthlyResults(cfg)
	require.NoError(t, err)

	assert.Equal(t, 4, rowsScanned)
	assert.Equal(t, 2, total)
	require.Len(t, comparison.Months, 2)
	assert.Equal(t, "2024-01", comparison.Months[0].Key)
	assert.Equal(t, "2024-02", comparison.Months[1].Key)
	assert.Equal(t, []float64{2, 3}, comparison.Quantities)
}

func TestGetProductResults(t *testing.T) {
	cfg := testConfig(t)
	names, err := GetProductResults(cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"Gadget B", "Widget A"}, names)
}
