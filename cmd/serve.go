package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"gymdesk/internal/adapters/email"
	web "gymdesk/internal/adapters/http"
	"gymdesk/internal/adapters/http/perf"
	"gymdesk/internal/application/orchestrators"
	"gymdesk/internal/application/ticker"
	"gymdesk/internal/config"
	"gymdesk/internal/domain/clock"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and live class board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", cfg.Addr)
			if err != nil {
				return fmt.Errorf("listen on %s: %w", cfg.Addr, err)
			}
			return serve(ctx, cfg, ln)
		},
	}
	f := cmd.Flags()
	f.String("addr", ":8080", "listen address")
	f.String("env", config.EnvDevelopment, "production or development")
	f.String("static", "", "directory of static files served at /")
	f.Duration("tick", ticker.DefaultInterval, "class board refresh interval")
	return cmd
}

func newSender(cfg config.Config) email.Sender {
	if cfg.ResendAPIKey != "" {
		slog.Info("email sender configured", "provider", "resend")
		return email.NewResendSender(cfg.ResendAPIKey, cfg.ResendFrom)
	}
	if cfg.IsProduction() {
		slog.Warn("resend api key is not set; email delivery is disabled in production")
	} else {
		slog.Info("email sender configured", "provider", "noop")
	}
	return email.NewNoopSender()
}

// serve runs the API on ln until ctx is cancelled, then drains in-flight requests.
func serve(ctx context.Context, cfg config.Config, ln net.Listener) error {
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	collector := perf.NewCollector(cfg.PerfRingSize)
	db, timed, err := openDatabase(cfg, collector)
	if err != nil {
		ln.Close()
		return err
	}
	defer db.Close()

	stores := web.NewSQLiteStores(timed)
	clk := clock.System{Location: loc}

	if cfg.AdminEmail != "" {
		seedDeps := orchestrators.SeedAdminDeps{AccountStore: stores.AccountStore, GenerateID: uuid.NewString, Now: clk.Now}
		if err := orchestrators.ExecuteSeedAdmin(ctx, seedDeps, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			ln.Close()
			return fmt.Errorf("seed admin: %w", err)
		}
	}

	csrfKey, err := web.ResolveCSRFKey(cfg.CSRFKey, cfg.IsProduction())
	if err != nil {
		ln.Close()
		return err
	}

	boardTicker := ticker.New(clk, cfg.TickInterval)
	go boardTicker.Run(ctx)

	handler, err := web.NewMux(ctx, stores, web.Options{
		StaticDir:          cfg.StaticDir,
		Collector:          collector,
		Clock:              clk,
		Ticker:             boardTicker,
		CSRFKey:            csrfKey,
		Production:         cfg.IsProduction(),
		TrustedOrigins:     cfg.TrustedOrigins,
		GymName:            cfg.GymName,
		Sender:             newSender(cfg),
		RateLimitPerSecond: cfg.RateLimit,
		SlowRequestMs:      cfg.SlowRequestMs,
	})
	if err != nil {
		ln.Close()
		return err
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second, // the board stream clears its own deadline
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server_started", "addr", ln.Addr().String(), "env", cfg.Env, "db", cfg.DBPath, "timezone", loc.String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("server_stopping")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
