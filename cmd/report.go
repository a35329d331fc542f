package cmd

import (
	"github.com/spf13/cobra"

	"github.com/orderscope/orderscope/core"
	"github.com/orderscope/orderscope/internal/contract"
)

// reportCmd performs the single-scope product analysis.
var reportCmd = &cobra.Command{
	Use:   "report [export-file]",
	Short: "Analyze an export for a product keyword.",
	Long: `Filter an order export by product keyword and summarize the matched orders.

For every order containing the product, the report shows:
- The summed quantity of the product across the order's line items
- The order's monetary total, when the export carries one
- The quantity distribution across all matched orders
- The average order value over orders with a parseable total

Examples:
  # Summarize all orders containing "widget"
  orderscope report orders.csv -k widget

  # Restrict the report to two months
  orderscope report orders.csv -k widget --months 2024-01,2024-02

  # Export the filtered dataset to CSV
  orderscope report orders.csv -k widget --output csv --output-file widget.csv

  # Export matched orders to Parquet for analytics
  orderscope report orders.xlsx -k widget --output parquet --output-file widget.parquet`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteReport(rootCtx, cfg, historyStore); err != nil {
			contract.LogFatal("Cannot run report analysis", err)
		}
	},
}
