package contract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/orderscope/orderscope/schema"
)

// Default values for configuration.
const (
	DefaultRowLimit = 500
	MaxRowLimit     = 100000
)

// monthKeyPattern matches the "YYYY-MM" month filter format.
var monthKeyPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// AliasesRawInput holds custom column aliases from the YAML config file.
// Each field is a comma-separated list of header names tried before the
// built-in candidates for that role.
type AliasesRawInput struct {
	Order    string `mapstructure:"order"`
	LineItem string `mapstructure:"lineitem"`
	Quantity string `mapstructure:"quantity"`
	Total    string `mapstructure:"total"`
	Created  string `mapstructure:"created"`
}

// Config holds the runtime configuration for the analysis.
// This struct remains the "final, validated" config.
type Config struct {
	InputFile  string
	Keyword    string
	Months     []string // empty means every month bucket
	RowLimit   int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	Progress   bool
	UseColors  bool

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	// Aliases is the per-role candidate list after merging custom
	// candidates ahead of the built-in ones.
	Aliases map[schema.ColumnRole][]string
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Months != nil {
		clone.Months = make([]string, len(c.Months))
		copy(clone.Months, c.Months)
	}
	if c.Aliases != nil {
		clone.Aliases = make(map[schema.ColumnRole][]string, len(c.Aliases))
		for role, candidates := range c.Aliases {
			clone.Aliases[role] = make([]string, len(candidates))
			copy(clone.Aliases[role], candidates)
		}
	}
	return &clone
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	InputFileStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Keyword          string `mapstructure:"keyword"`
	Months           string `mapstructure:"months"`
	Limit            int    `mapstructure:"limit"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Width            int    `mapstructure:"width"`
	Progress         string `mapstructure:"progress"`
	Color            string `mapstructure:"color"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`

	// --- Custom aliases from config file ---
	Aliases AliasesRawInput `mapstructure:"aliases"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processMonths(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfig(cfg, input); err != nil {
		return err
	}
	cfg.Aliases = MergeAliases(input.Aliases)
	return nil
}

// validateSimpleInputs processes and validates all non-month, non-backend fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.InputFile = strings.TrimSpace(input.InputFileStr)
	cfg.Keyword = strings.TrimSpace(input.Keyword)
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	// Parse progress flag
	progress, err := ParseBoolString(input.Progress)
	if err != nil {
		return fmt.Errorf("invalid --progress value: %w", err)
	}
	cfg.Progress = progress

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- RowLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxRowLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxRowLimit, input.Limit)
	}
	cfg.RowLimit = input.Limit

	// --- Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}

	return nil
}

// processMonths parses the comma-separated month filter. Each entry must be a
// "YYYY-MM" key or "unknown" (any case) for the bucket of undated orders.
func processMonths(cfg *Config, input *ConfigRawInput) error {
	cfg.Months = nil
	if strings.TrimSpace(input.Months) == "" {
		return nil
	}
	for part := range strings.SplitSeq(input.Months, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.EqualFold(part, schema.UnknownMonthKey) {
			cfg.Months = append(cfg.Months, schema.UnknownMonthKey)
			continue
		}
		if !monthKeyPattern.MatchString(part) {
			return fmt.Errorf("invalid month '%s'. must be YYYY-MM or unknown", part)
		}
		cfg.Months = append(cfg.Months, part)
	}
	return nil
}

// RevalidateMonths re-parses a month filter onto an existing config. Used by
// the MCP server, where tool arguments arrive after initial validation.
func RevalidateMonths(cfg *Config, months string) error {
	return processMonths(cfg, &ConfigRawInput{Months: months})
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfig validates the history backend configuration.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	return ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect)
}

// MergeAliases prepends custom per-role candidates to the built-in lists, so
// a user-declared header name outranks the defaults during resolution.
func MergeAliases(raw AliasesRawInput) map[schema.ColumnRole][]string {
	merged := schema.DefaultAliases()
	custom := map[schema.ColumnRole]string{
		schema.RoleOrder:    raw.Order,
		schema.RoleLineItem: raw.LineItem,
		schema.RoleQuantity: raw.Quantity,
		schema.RoleTotal:    raw.Total,
		schema.RoleCreated:  raw.Created,
	}
	for role, csv := range custom {
		if strings.TrimSpace(csv) == "" {
			continue
		}
		var extra []string
		for part := range strings.SplitSeq(csv, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				extra = append(extra, part)
			}
		}
		if len(extra) > 0 {
			merged[role] = append(extra, merged[role]...)
		}
	}
	return merged
}
