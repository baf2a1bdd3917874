package markdown

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Minimum column width and the display width of the " │ " separator
// between adjacent cells.
const (
	minColumnWidth = 3
	cellSeparator  = 3
)

// Layout is the result of table layout: the resolved column widths and
// the bordered plain-text rendering built from them.
type Layout struct {
	ColumnWidths []int
	Lines        []string
}

// LayoutTable computes column widths for the given rows under a width
// budget and renders the bordered table text. Row zero is the header.
// Columns get their natural width when the budget allows; otherwise
// widths shrink proportionally with a floor of three columns each, and
// leftover budget goes back to shrunk columns in column order. Cells
// wider than their column truncate with a trailing ellipsis.
func LayoutTable(rows [][]string, availableWidth int) Layout {
	widths := columnWidths(rows, availableWidth)
	if len(widths) == 0 {
		return Layout{}
	}

	lines := make([]string, 0, len(rows)+3)
	lines = append(lines, borderLine(widths, "┌", "┬", "┐"))
	for rowIndex, row := range rows {
		lines = append(lines, rowLine(row, widths))
		if rowIndex == 0 && len(rows) > 1 {
			lines = append(lines, borderLine(widths, "├", "┼", "┤"))
		}
	}
	lines = append(lines, borderLine(widths, "└", "┴", "┘"))

	return Layout{ColumnWidths: widths, Lines: lines}
}

// columnWidths resolves per-column widths for the rows under the
// budget. Returns nil for a table with no columns.
func columnWidths(rows [][]string, availableWidth int) []int {
	columns := 0
	for _, row := range rows {
		if len(row) > columns {
			columns = len(row)
		}
	}
	if columns == 0 {
		return nil
	}

	natural := make([]int, columns)
	for i := range natural {
		natural[i] = minColumnWidth
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := DisplayWidth(cell); w > natural[i] {
				natural[i] = w
			}
		}
	}

	naturalSum := 0
	for _, w := range natural {
		naturalSum += w
	}
	separators := cellSeparator * (columns - 1)

	budget := availableWidth - 2
	if budget < 20 {
		budget = 20
	}
	if naturalSum+separators <= budget {
		return natural
	}

	// Over budget: shrink proportionally with a per-column floor,
	// then hand leftover budget back to columns still below natural
	// width, in column order.
	contentBudget := budget - separators
	widths := make([]int, columns)
	scaledSum := 0
	for i, w := range natural {
		scaled := w * contentBudget / naturalSum
		if scaled < minColumnWidth {
			scaled = minColumnWidth
		}
		widths[i] = scaled
		scaledSum += scaled
	}
	leftover := contentBudget - scaledSum
	for i := 0; leftover > 0 && i < columns; i++ {
		deficit := natural[i] - widths[i]
		if deficit <= 0 {
			continue
		}
		grant := deficit
		if grant > leftover {
			grant = leftover
		}
		widths[i] += grant
		leftover -= grant
	}
	return widths
}

// fitCell truncates cell text to the column width, reserving one
// column for a trailing ellipsis when it overflows, and right-pads to
// exactly the column width. A one-column cell that overflows renders
// as the ellipsis alone.
func fitCell(cell string, width int) string {
	if width <= 0 {
		return ""
	}
	if DisplayWidth(cell) > width {
		if width == 1 {
			return "…"
		}
		cell = runewidth.Truncate(cell, width-1, "") + "…"
	}
	if pad := width - DisplayWidth(cell); pad > 0 {
		cell += strings.Repeat(" ", pad)
	}
	return cell
}

// rowLine renders one table row with cell borders.
func rowLine(row []string, widths []int) string {
	cells := make([]string, len(widths))
	for i, width := range widths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		cells[i] = fitCell(cell, width)
	}
	return "│ " + strings.Join(cells, " │ ") + " │"
}

// borderLine renders a horizontal border with the given corner and
// junction characters.
func borderLine(widths []int, left, mid, right string) string {
	parts := make([]string, len(widths))
	for i, width := range widths {
		parts[i] = strings.Repeat("─", width+2)
	}
	return left + strings.Join(parts, mid) + right
}
