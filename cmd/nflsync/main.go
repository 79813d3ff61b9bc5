// Command nflsync ingests NFL provider data into Postgres and recomputes
// the per-team rank snapshots.
//
// Usage:
//
//	nflsync run [--best-effort] [--skip-rank] [--week 12]
//	nflsync rank
//	nflsync schedule
//	nflsync export teams
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/riskibarqy/nfl-insights/internal/app"
	"github.com/riskibarqy/nfl-insights/internal/config"
	"github.com/riskibarqy/nfl-insights/internal/observability"
	"github.com/riskibarqy/nfl-insights/internal/platform/logging"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "nflsync",
		Short:         "NFL stats ingestion and ranking jobs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(runCmd(), rankCmd(), scheduleCmd(), exportCmd())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "nflsync:", err)
		os.Exit(1)
	}
}

// withApp loads configuration, lets the command adjust it, then builds the
// application and tears it down when fn returns.
func withApp(ctx context.Context, adjust func(*config.Config), fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if adjust != nil {
		adjust(&cfg)
	}

	logger := logging.NewJSON(cfg.LogLevel).With(
		"service", cfg.ServiceName,
		"version", cfg.ServiceVersion,
		"env", cfg.AppEnv,
	)
	logging.SetDefault(logger)
	defer func() {
		_ = logger.Sync()
	}()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return fmt.Errorf("init uptrace: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("flush traces failed", "error", err)
		}
	}()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Warn("close app failed", "error", err)
		}
	}()

	return fn(ctx, a)
}
