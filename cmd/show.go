package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chriserin/xtab/internal/parser"
	"github.com/chriserin/xtab/internal/ui"
)

var (
	showTableFlag     int
	showStatisticFlag string
)

var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Print the tables of an XtabML document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunShow(cmd.OutOrStdout(), args[0], showTableFlag, showStatisticFlag, parseOptions()...)
	},
}

func init() {
	showCmd.Flags().IntVar(&showTableFlag, "table", 0, "Show only table N (1-based)")
	showCmd.Flags().StringVar(&showStatisticFlag, "statistic", "", "Show only this statistic")
	rootCmd.AddCommand(showCmd)
}

// RunShow prints every table of the document, or only table n when n > 0.
func RunShow(w io.Writer, path string, n int, statistic string, opts ...parser.Option) error {
	doc, err := parser.ParseFile(path, opts...)
	if err != nil {
		return err
	}

	if n < 0 || n > len(doc.Tables) {
		return fmt.Errorf("table %d out of range (document has %d)", n, len(doc.Tables))
	}

	for i := range doc.Tables {
		if n > 0 && i+1 != n {
			continue
		}
		if err := showTable(w, doc, &doc.Tables[i], statistic); err != nil {
			return fmt.Errorf("table %d: %w", i+1, err)
		}
	}
	return nil
}

func showTable(w io.Writer, doc *parser.Document, t *parser.Table, statistic string) error {
	labeled, ok := t.LabeledRows()
	if !ok {
		r, _ := t.Shape()
		return fmt.Errorf("%d data rows do not match %d row labels x %d statistics", len(t.Rows), r, len(t.Statistics))
	}

	if statistic != "" {
		if _, found := t.StatisticIndex(statistic); !found {
			return fmt.Errorf("no statistic %q (have %v)", statistic, t.StatisticTypes())
		}
	}

	var rows [][]string
	for _, lr := range labeled {
		label := lr.Label
		for _, series := range lr.Series {
			if statistic != "" && series.Statistic != statistic {
				continue
			}
			row := []string{label, series.Statistic}
			for _, cell := range series.Cells {
				row = append(row, ui.Value(cell.Ptr()))
			}
			rows = append(rows, row)
			label = ""
		}
	}

	ui.Crosstab(w, t.Title, t.ColumnLabels(), rows)
	for _, base := range t.ControlValues("base", doc) {
		fmt.Fprintf(w, "base: %s\n", base)
	}
	fmt.Fprintln(w)
	return nil
}
