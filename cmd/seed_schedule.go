package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	web "gymdesk/internal/adapters/http"
	"gymdesk/internal/application/orchestrators"
)

func newSeedScheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed-schedule <file.yaml>",
		Short: "Load classes, closures and tiers from a YAML file",
		Long:  "seed-schedule validates every entry in the file before writing any of them. Re-running the same file updates records in place; set replace: true to remove classes missing from the file.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read seed file: %w", err)
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			db, timed, err := openDatabase(cfg, nil)
			if err != nil {
				return err
			}
			defer db.Close()

			stores := web.NewSQLiteStores(timed)
			res, err := orchestrators.ExecuteSeedSchedule(cmd.Context(), data, orchestrators.SeedScheduleDeps{
				ScheduleStore: stores.ScheduleStore,
				ClosureStore:  stores.ClosureStore,
				TierStore:     stores.TierStore,
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "seeded %d classes, %d closures, %d tiers (removed %d classes)\n",
				res.Classes, res.Closures, res.Tiers, res.Removed)
			return err
		},
	}
}
