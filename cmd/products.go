package cmd

import (
	"github.com/spf13/cobra"

	"github.com/orderscope/orderscope/core"
	"github.com/orderscope/orderscope/internal/contract"
)

// productsCmd lists the distinct product names in an export.
var productsCmd = &cobra.Command{
	Use:   "products [export-file]",
	Short: "List the distinct product names found in an export.",
	Long: `Scan an export and list every distinct line-item name, sorted alphabetically.

Useful for picking a --keyword without opening the file in a spreadsheet.

Examples:
  orderscope products orders.csv
  orderscope products orders.xlsx --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteProducts(rootCtx, cfg, historyStore); err != nil {
			contract.LogFatal("Cannot list products", err)
		}
	},
}
