package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	web "gymdesk/internal/adapters/http"
	"gymdesk/internal/adapters/tui/board"
	"gymdesk/internal/application/projections"
	"gymdesk/internal/domain/clock"
)

func newBoardCmd() *cobra.Command {
	var (
		once bool
		at   string
	)
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show today's class board in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			loc, err := cfg.Location()
			if err != nil {
				return err
			}

			var clk clock.Clock = clock.System{Location: loc}
			if at != "" {
				t, err := time.Parse(time.RFC3339, at)
				if err != nil {
					return fmt.Errorf("--at must be RFC3339: %w", err)
				}
				clk = clock.NewFake(t.In(loc))
			}

			db, timed, err := openDatabase(cfg, nil)
			if err != nil {
				return err
			}
			defer db.Close()

			stores := web.NewSQLiteStores(timed)
			deps := projections.GetClassBoardDeps{
				ScheduleStore: stores.ScheduleStore,
				ClosureStore:  stores.ClosureStore,
				TrainerStore:  stores.TrainerStore,
			}
			opts := board.Options{
				GymName:  cfg.GymName,
				Clock:    clk,
				Interval: cfg.TickInterval,
				Load: func(ctx context.Context, now time.Time) (projections.ClassBoard, error) {
					return projections.QueryGetClassBoard(ctx, now, deps)
				},
			}

			if once {
				b, err := opts.Load(cmd.Context(), clk.Now())
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), board.Snapshot(opts, b))
				return err
			}

			// Log lines would tear the full-screen view.
			prev := slog.Default()
			slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
			defer slog.SetDefault(prev)
			return board.Run(cmd.Context(), opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&once, "once", false, "print the board once and exit")
	cmd.Flags().StringVar(&at, "at", "", "evaluate the board at this RFC3339 instant instead of now")
	cmd.Flags().Duration("tick", time.Second, "refresh interval")
	return cmd
}
