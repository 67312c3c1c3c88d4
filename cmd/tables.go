package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chriserin/xtab/internal/parser"
	"github.com/chriserin/xtab/internal/ui"
)

var tablesCmd = &cobra.Command{
	Use:   "tables <file>",
	Short: "List the tables of an XtabML document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunTables(cmd.OutOrStdout(), args[0], parseOptions()...)
	},
}

func init() {
	rootCmd.AddCommand(tablesCmd)
}

func RunTables(w io.Writer, path string, opts ...parser.Option) error {
	doc, err := parser.ParseFile(path, opts...)
	if err != nil {
		return err
	}

	if doc.Version != "" || doc.Date != "" {
		fmt.Fprintf(w, "XtabML %s  %s %s\n", doc.Version, doc.Date, doc.Time)
	}

	rows := make([][]string, 0, len(doc.Tables))
	for i := range doc.Tables {
		t := &doc.Tables[i]
		r, c := t.Shape()
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			t.Title,
			fmt.Sprintf("%dx%d", r, c),
			strings.Join(t.StatisticTypes(), ", "),
		})
	}
	ui.Grid(w, []string{"#", "Title", "Shape", "Statistics"}, rows, 4)
	return nil
}
