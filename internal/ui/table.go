package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Grid renders headers and rows as a bordered table. Columns from firstData
// on are right-aligned.
func Grid(w io.Writer, headers []string, rows [][]string, firstData int) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(faintStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col >= firstData:
				return numericStyle
			default:
				return cellStyle
			}
		})
	fmt.Fprintln(w, t.Render())
}

// Crosstab prints a titled table: the row label, the statistic, then one
// column per column label.
func Crosstab(w io.Writer, title string, columns []string, rows [][]string) {
	fmt.Fprintln(w, titleStyle.Render(title))
	headers := append([]string{"", ""}, columns...)
	Grid(w, headers, rows, 2)
}
