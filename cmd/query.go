package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/chriserin/xtab/internal/db"
	"github.com/chriserin/xtab/internal/ui"
)

var queryCmd = &cobra.Command{
	Use:   "query <document-id> <table> <statistic>",
	Short: "Print one statistic of a stored table",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		position, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid table number: %s", args[1])
		}
		return RunQuery(cmd.Context(), cmd.OutOrStdout(), dbPath(), args[0], position, args[2])
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
}

func RunQuery(ctx context.Context, w io.Writer, path, documentID string, position int, statistic string) error {
	sqlDB, err := openStore(path)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	m, err := db.StatisticValues(ctx, sqlDB, documentID, position, statistic)
	if err != nil {
		return err
	}

	rows := make([][]string, len(m.Rows))
	for r, label := range m.Rows {
		row := []string{label, m.Statistic}
		for _, v := range m.Values[r] {
			row = append(row, ui.Value(v))
		}
		rows[r] = row
	}
	ui.Crosstab(w, m.Title, m.Columns, rows)
	return nil
}
