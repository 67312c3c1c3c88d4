package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/chriserin/xtab/internal/db"
	"github.com/chriserin/xtab/internal/ui"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List imported documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunList(cmd.Context(), cmd.OutOrStdout(), dbPath())
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func RunList(ctx context.Context, w io.Writer, path string) error {
	sqlDB, err := openStore(path)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	docs, err := db.ListDocuments(ctx, sqlDB)
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}
	if len(docs) == 0 {
		return nil
	}

	rows := make([][]string, 0, len(docs))
	for _, d := range docs {
		rows = append(rows, []string{
			d.ID,
			filepath.Base(d.Source),
			d.Version,
			d.Date,
			strconv.Itoa(d.Tables),
			d.ImportedAt,
		})
	}
	ui.Grid(w, []string{"ID", "File", "Version", "Date", "Tables", "Imported"}, rows, 4)
	return nil
}
