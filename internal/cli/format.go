package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	// fatih/color turns these off when stdout is not a TTY.
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	headerColor  = color.New(color.FgBlue, color.Bold)
	dimColor     = color.New(color.FgHiBlack)
)

// printSection prints a section header with its item count.
func printSection(w io.Writer, title string, count int) {
	_, _ = headerColor.Fprintf(w, "▸ %s", title)
	_, _ = dimColor.Fprintf(w, " (%d)\n", count)
}

func printSuccess(w io.Writer, msg string) {
	_, _ = successColor.Fprintf(w, "✓ %s\n", msg)
}

func printWarning(w io.Writer, msg string) {
	_, _ = warningColor.Fprintf(w, "⚠ %s\n", msg)
}

func printError(w io.Writer, msg string) {
	_, _ = errorColor.Fprintf(w, "✗ %s\n", msg)
}

// printRow prints two-space indented columns, padding every column but the
// last to its width.
func printRow(w io.Writer, widths []int, cols ...string) {
	fmt.Fprint(w, " ")
	for i, c := range cols {
		if i < len(cols)-1 && i < len(widths) {
			fmt.Fprintf(w, " %-*s", widths[i], c)
			continue
		}
		fmt.Fprintf(w, " %s", c)
	}
	fmt.Fprintln(w)
}

// columnWidths returns the widest cell of each column.
func columnWidths(rows [][]string) []int {
	var widths []int
	for _, r := range rows {
		for i, c := range r {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], len(c))
		}
	}
	return widths
}

func printTable(w io.Writer, rows [][]string) {
	widths := columnWidths(rows)
	for _, r := range rows {
		printRow(w, widths, r...)
	}
}
