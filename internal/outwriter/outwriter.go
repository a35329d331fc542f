// Package outwriter has output and writer logic.
package outwriter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/orderscope/orderscope/internal/contract"
	"github.com/orderscope/orderscope/schema"
)

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// getTerminalWidth returns the width budget for table output, honoring the
// absolute override from flag/env before falling back to detection.
func getTerminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		// Conservative default for narrow terminals and CI
		return 80
	}
	return detectedWidth
}

// deltaFormatters returns the color closures used for month-over-month delta
// cells. A rising share of low-quantity orders usually means shrinking basket
// sizes, so positive deltas render red and negative ones green.
func deltaFormatters(cfg *contract.Config) (red, green, yellow func(...any) string) {
	if cfg.UseColors {
		red = color.New(color.FgRed).SprintFunc()
		green = color.New(color.FgGreen).SprintFunc()
		yellow = color.New(color.FgYellow).SprintFunc()
	} else {
		red = fmt.Sprint
		green = fmt.Sprint
		yellow = fmt.Sprint
	}
	return red, green, yellow
}

// formatDelta renders a nullable percentage-point delta with a direction
// indicator. The first month of a comparison has no predecessor and renders
// as a dash.
func formatDelta(delta *float64, red, green, yellow func(...any) string) string {
	if delta == nil {
		return "–"
	}
	switch {
	case *delta > 0:
		// Explicitly add + sign
		return red(fmt.Sprintf("+%.2f ▲", *delta))
	case *delta < 0:
		// Keeps the - sign from the float
		return green(fmt.Sprintf("%.2f ▼", *delta))
	default:
		return yellow(fmt.Sprintf("%.2f", 0.0))
	}
}

// formatAOV renders a nullable average order value for table footers.
func formatAOV(aov *float64) string {
	if aov == nil {
		return "n/a"
	}
	return schema.FormatCurrency(aov)
}
