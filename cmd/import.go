package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/chriserin/xtab/internal/db"
	"github.com/chriserin/xtab/internal/parser"
	"github.com/chriserin/xtab/internal/ui"
)

var importCmd = &cobra.Command{
	Use:   "import <file|dir>...",
	Short: "Parse XtabML documents and store them",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunImport(cmd.Context(), cmd.OutOrStdout(), dbPath(), args, parseOptions()...)
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}

// RunImport stores every document named by args. A directory stands for the
// .xte files directly inside it. Documents that fail to parse are reported
// and skipped; the error at the end counts them.
func RunImport(ctx context.Context, w io.Writer, path string, args []string, opts ...parser.Option) error {
	sqlDB, err := openStore(path)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	files, err := expandInputs(args)
	if err != nil {
		return err
	}

	imported, failed := 0, 0
	for _, file := range files {
		doc, err := parser.ParseFile(file, opts...)
		if err != nil {
			logger.Warn("parse failed", "path", file, "error", err)
			ui.ErrLine(w, file, err)
			failed++
			continue
		}

		id, err := db.SaveDocument(ctx, sqlDB, file, doc)
		if err != nil {
			return fmt.Errorf("storing %s: %w", file, err)
		}
		logger.Info("document imported", "path", file, "document_id", id, "tables", len(doc.Tables))
		ui.NewLine(w, id, file)
		imported++
	}

	ui.SummaryLine(w, imported, failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed to parse", failed, len(files))
	}
	return nil
}

func expandInputs(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			// missing files are reported by the parser
			files = append(files, arg)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(arg, "*.xte"))
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", arg, err)
		}
		sort.Strings(matches)
		files = append(files, matches...)
	}
	return files, nil
}
