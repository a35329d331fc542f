package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderscope/orderscope/schema"
)

// validInput returns a raw input that passes validation unchanged.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		InputFileStr:   "orders.csv",
		Keyword:        "widget",
		Limit:          DefaultRowLimit,
		Output:         "text",
		Progress:       "yes",
		Color:          "yes",
		HistoryBackend: "none",
	}
}

func TestProcessAndValidate_Defaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput()))

	assert.Equal(t, "orders.csv", cfg.InputFile)
	assert.Equal(t, "widget", cfg.Keyword)
	assert.Equal(t, DefaultRowLimit, cfg.RowLimit)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.True(t, cfg.Progress)
	assert.True(t, cfg.UseColors)
	assert.Equal(t, schema.NoneBackend, cfg.HistoryBackend)
	assert.Empty(t, cfg.Months)
	assert.Equal(t, schema.DefaultAliases(), cfg.Aliases)
}

func TestProcessAndValidate_TrimsInputs(t *testing.T) {
	input := validInput()
	input.InputFileStr = "  orders.csv  "
	input.Keyword = "  Widget  "
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, "orders.csv", cfg.InputFile)
	assert.Equal(t, "Widget", cfg.Keyword)
}

func TestProcessAndValidate_LimitBounds(t *testing.T) {
	tests := []struct {
		limit   int
		wantErr bool
	}{
		{0, true},
		{-5, true},
		{1, false},
		{DefaultRowLimit, false},
		{MaxRowLimit, false},
		{MaxRowLimit + 1, true},
	}
	for _, tt := range tests {
		input := validInput()
		input.Limit = tt.limit
		err := ProcessAndValidate(&Config{}, input)
		if tt.wantErr {
			assert.Error(t, err, "limit %d", tt.limit)
		} else {
			assert.NoError(t, err, "limit %d", tt.limit)
		}
	}
}

func TestProcessAndValidate_Output(t *testing.T) {
	for _, mode := range []string{"text", "csv", "json", "parquet", "TEXT", "Json"} {
		input := validInput()
		input.Output = mode
		assert.NoError(t, ProcessAndValidate(&Config{}, input), "output %q", mode)
	}

	input := validInput()
	input.Output = "yaml"
	err := ProcessAndValidate(&Config{}, input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestProcessAndValidate_Months(t *testing.T) {
	tests := []struct {
		months  string
		want    []string
		wantErr bool
	}{
		{"", nil, false},
		{"2024-01", []string{"2024-01"}, false},
		{"2024-01,2024-02", []string{"2024-01", "2024-02"}, false},
		{" 2024-01 , 2024-12 ", []string{"2024-01", "2024-12"}, false},
		{"unknown", []string{schema.UnknownMonthKey}, false},
		{"UNKNOWN", []string{schema.UnknownMonthKey}, false},
		{"2024-01,,2024-02", []string{"2024-01", "2024-02"}, false}, // empty entries skipped
		{"2024-13", nil, true}, // month out of range
		{"2024-00", nil, true},
		{"202401", nil, true},
		{"Jan 2024", nil, true},
	}
	for _, tt := range tests {
		input := validInput()
		input.Months = tt.months
		cfg := &Config{}
		err := ProcessAndValidate(cfg, input)
		if tt.wantErr {
			assert.Error(t, err, "months %q", tt.months)
			continue
		}
		require.NoError(t, err, "months %q", tt.months)
		assert.Equal(t, tt.want, cfg.Months, "months %q", tt.months)
	}
}

func TestProcessAndValidate_InvalidBools(t *testing.T) {
	input := validInput()
	input.Progress = "maybe"
	assert.Error(t, ProcessAndValidate(&Config{}, input))

	input = validInput()
	input.Color = "sometimes"
	assert.Error(t, ProcessAndValidate(&Config{}, input))
}

func TestProcessAndValidate_Backends(t *testing.T) {
	tests := []struct {
		backend string
		connStr string
		wantErr string
	}{
		{"none", "", ""},
		{"sqlite", "", ""},
		{"sqlite", "/tmp/history.db", ""},
		{"SQLite", "", ""}, // case-insensitive
		{"mysql", "user:pass@tcp(localhost:3306)/orderscope", ""},
		{"mysql", "", "history-db-connect is required"},
		{"mysql", "user:pass@localhost/orderscope", "@tcp("},
		{"postgresql", "host=localhost dbname=orderscope", ""},
		{"postgresql", "", "history-db-connect is required"},
		{"postgresql", "host=localhost", "dbname="},
		{"redis", "", "invalid history backend"},
	}
	for _, tt := range tests {
		input := validInput()
		input.HistoryBackend = tt.backend
		input.HistoryDBConnect = tt.connStr
		err := ProcessAndValidate(&Config{}, input)
		if tt.wantErr == "" {
			assert.NoError(t, err, "backend %q conn %q", tt.backend, tt.connStr)
		} else {
			require.Error(t, err, "backend %q conn %q", tt.backend, tt.connStr)
			assert.Contains(t, err.Error(), tt.wantErr)
		}
	}
}

func TestMergeAliases(t *testing.T) {
	merged := MergeAliases(AliasesRawInput{
		Order: "bestellung, order ref",
		Total: "grand total",
	})

	// Custom candidates come first, defaults follow.
	assert.Equal(t, []string{"bestellung", "order ref", "name", "order name"}, merged[schema.RoleOrder])
	assert.Equal(t, "grand total", merged[schema.RoleTotal][0])
	// Untouched roles keep defaults.
	assert.Equal(t, schema.DefaultAliases()[schema.RoleLineItem], merged[schema.RoleLineItem])
}

func TestRevalidateMonths(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, RevalidateMonths(cfg, "2024-05,unknown"))
	assert.Equal(t, []string{"2024-05", schema.UnknownMonthKey}, cfg.Months)

	assert.Error(t, RevalidateMonths(cfg, "not-a-month"))
}

func TestConfigClone(t *testing.T) {
	orig := &Config{
		Keyword: "widget",
		Months:  []string{"2024-01"},
		Aliases: schema.DefaultAliases(),
	}
	clone := orig.Clone()

	clone.Months[0] = "2099-12"
	clone.Aliases[schema.RoleOrder][0] = "mutated"

	assert.Equal(t, "2024-01", orig.Months[0], "clone must not share month slice")
	assert.Equal(t, "name", orig.Aliases[schema.RoleOrder][0], "clone must not share alias slices")
}
