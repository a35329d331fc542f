package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/orderscope/orderscope/internal/contract"
	"github.com/orderscope/orderscope/internal/history"
	"github.com/orderscope/orderscope/schema"
)

// historySetup loads minimal configuration needed for history operations.
// This is used by commands that need store access without full shared setup.
func historySetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backendStr := viper.GetString("history-backend")
	connStr := viper.GetString("history-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	store, err := history.NewStore(backend, connStr)
	if err != nil {
		return fmt.Errorf("failed to initialize run history: %w", err)
	}
	historyStore = store

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.Output = schema.OutputMode(viper.GetString("output"))
	cfg.OutputFile = viper.GetString("output-file")
	cfg.RowLimit = viper.GetInt("limit")

	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize the store or create
// tables, allowing migrations to run on a fresh database.
func historyMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backendStr := viper.GetString("history-backend")
	connStr := viper.GetString("history-db-connect")

	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetHistoryDBFilePath()
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr

	return nil
}

// historyMigrateSetupWrapper wraps historyMigrateSetup to provide PreRunE for migrate command.
func historyMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return historyMigrateSetup()
}

// historyCmd focused on run history management.
//
// Note: History subcommands use minimal initialization (historySetup) instead
// of the full sharedSetup used by analysis commands. This avoids export file
// validation for simple store operations.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage recorded analysis runs",
	Long: `Manage the run history recorded by report and months commands.

When enabled, orderscope tracks every analysis run, storing:
- The export file and keyword analyzed
- Matched order counts and average order value
- Run duration and rows scanned

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled)

Subcommands:
  show    - List recent runs
  status  - Show history statistics
  clear   - Remove all recorded runs
  migrate - Run schema migrations`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// historyShowCmd lists recent runs.
var historyShowCmd = &cobra.Command{
	Use:     "show",
	Short:   "List recent analysis runs",
	PreRunE: historySetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		runs, err := historyStore.ListRuns(rootCtx, cfg.RowLimit)
		if err != nil {
			contract.LogFatal("Cannot list run history", err)
		}
		if len(runs) == 0 {
			cmd.Println("No runs recorded")
			return
		}
		for _, run := range runs {
			aov := "n/a"
			if run.Record.AOV != nil {
				aov = strconv.FormatFloat(*run.Record.AOV, 'f', 2, 64)
			}
			cmd.Printf("#%d %s  %s  keyword=%q scope=%s orders=%d aov=%s duration=%dms\n",
				run.ID, run.CreatedAt.Format("2006-01-02 15:04:05"), run.Record.SourceFile,
				run.Record.Keyword, run.Record.Scope, run.Record.TotalOrders, aov, run.Record.DurationMs)
		}
	},
}

// historyStatusCmd shows history statistics.
var historyStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Show run history statistics",
	PreRunE: historySetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		status, err := historyStore.GetStatus(rootCtx)
		if err != nil {
			contract.LogFatal("Cannot get history status", err)
		}
		cmd.Printf("Backend:  %s\n", status.Backend)
		if status.Location != "" {
			cmd.Printf("Location: %s\n", status.Location)
		}
		cmd.Printf("Runs:     %d\n", status.RunCount)
	},
}

// historyClearCmd removes all recorded runs.
var historyClearCmd = &cobra.Command{
	Use:     "clear",
	Short:   "Remove all recorded runs",
	PreRunE: historySetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		if err := historyStore.Clear(rootCtx); err != nil {
			contract.LogFatal("Cannot clear run history", err)
		}
		cmd.Println("Run history cleared")
	},
}

// historyMigrateCmd runs schema migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:     "migrate",
	Short:   "Run schema migrations for the history store",
	PreRunE: historyMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := history.Migrate(cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Cannot run history migrations", err)
		}
	},
}
