package cmd

import (
	"github.com/spf13/cobra"

	"github.com/orderscope/orderscope/core"
	"github.com/orderscope/orderscope/internal/contract"
)

// monthsCmd performs the month-over-month comparison.
var monthsCmd = &cobra.Command{
	Use:   "months [export-file]",
	Short: "Compare a product's quantity distribution month over month.",
	Long: `Bucket matched orders by calendar month and compare their quantity distributions.

Each month's histogram is aligned on a shared quantity axis, so a quantity
absent from one month reads as a true zero share. Cells carry the
percentage-point change against the previous month, making shifts in basket
size visible at a glance. Orders without a parseable creation date land in
the "Unknown" bucket, which always sorts last.

Examples:
  # Compare month by month
  orderscope months orders.csv -k widget

  # Focus on a quarter
  orderscope months orders.csv -k widget --months 2024-01,2024-02,2024-03

  # Machine-readable comparison
  orderscope months orders.csv -k widget --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMonths(rootCtx, cfg, historyStore); err != nil {
			contract.LogFatal("Cannot run month comparison", err)
		}
	},
}
