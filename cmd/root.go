package cmd

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"gymdesk/internal/adapters/http/perf"
	"gymdesk/internal/adapters/storage"
	"gymdesk/internal/config"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "gymdesk",
		Short:        "GymDesk: live class board and gym website API",
		Long:         "gymdesk serves the gym's JSON API and live class board, shows the board in a terminal, and loads timetables from YAML.",
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "path to a YAML config file (default ./gymdesk.yaml if present)")
	pf.String("db", "gymdesk.db", "SQLite database path")
	pf.String("timezone", "", "IANA timezone for the class board (default local)")

	rootCmd.AddCommand(
		newServeCmd(),
		newBoardCmd(),
		newSeedScheduleCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// loadConfig resolves configuration with this command's flags taking precedence.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}
	return config.Load(path, cmd.Flags())
}

// openDatabase opens and migrates the database, wrapping it with query timing.
func openDatabase(cfg config.Config, collector *perf.Collector) (*sql.DB, *storage.TimedDB, error) {
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	if err := storage.InitDB(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("initialize schema: %w", err)
	}
	return db, storage.NewTimedDB(db, collector, cfg.SlowQueryMs), nil
}
