package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	newStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
	titleStyle   = lipgloss.NewStyle().Bold(true)
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	numericStyle = cellStyle.Align(lipgloss.Right)
)

// MissingCell is printed in place of a missing value.
const MissingCell = "-"

// NewLine reports a stored document.
func NewLine(w io.Writer, id, path string) {
	fmt.Fprintln(w, newStyle.Render("new")+"  "+faintStyle.Render(id)+"  "+path)
}

// ErrLine reports a document that could not be imported.
func ErrLine(w io.Writer, path string, err error) {
	fmt.Fprintln(w, errStyle.Render("err")+"  "+path+": "+err.Error())
}

func SummaryLine(w io.Writer, imported, failed int) {
	if failed > 0 {
		fmt.Fprintf(w, "imported %d documents, %d failed\n", imported, failed)
		return
	}
	fmt.Fprintf(w, "imported %d documents\n", imported)
}

// Value renders an optional cell value.
func Value(v *string) string {
	if v == nil {
		return faintStyle.Render(MissingCell)
	}
	return *v
}
