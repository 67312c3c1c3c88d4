package cmd

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/chriserin/xtab/internal/config"
	"github.com/chriserin/xtab/internal/logging"
	"github.com/chriserin/xtab/internal/parser"
)

var (
	dbPathFlag string

	cfg    *config.Config
	logger = slog.New(slog.DiscardHandler)
)

var rootCmd = &cobra.Command{
	Use:          "xtab",
	Short:        "xtab: read, store and query XtabML cross-tabulations",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPathFlag, "db", "", "database path (overrides XTAB_DB_PATH)")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads .env and the environment, then installs the logger.
func setup(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	c, err := config.Load()
	if err != nil {
		return err
	}
	if dbPathFlag != "" {
		c.Store.Path = dbPathFlag
	}
	cfg = c
	logger = logging.Setup(c.Logging.Level, c.Logging.Format, cmd.ErrOrStderr())
	logger.Debug("configuration loaded", "config", c.String())
	return nil
}

func parseOptions() []parser.Option {
	if cfg == nil {
		return []parser.Option{parser.WithLogger(logger)}
	}
	return cfg.ParseOptions(logger)
}

func dbPath() string {
	if cfg == nil {
		return ".xtab/xtab.db"
	}
	return cfg.Store.Path
}
