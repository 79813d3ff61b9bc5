package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/riskibarqy/nfl-insights/internal/app"
	"github.com/riskibarqy/nfl-insights/internal/interfaces/httpapi"
	"github.com/riskibarqy/nfl-insights/internal/platform/logging"
	"github.com/riskibarqy/nfl-insights/internal/platform/metrics"
	"github.com/riskibarqy/nfl-insights/internal/usecase"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

func scheduleCmd() *cobra.Command {
	var runNow bool
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run the sync and rank jobs on SYNC_CRON and serve /metrics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), nil, func(ctx context.Context, a *app.App) error {
				return schedule(ctx, a, runNow)
			})
		},
	}
	cmd.Flags().BoolVar(&runNow, "run-now", false, "Run one sync immediately before waiting for the schedule")
	return cmd
}

func schedule(ctx context.Context, a *app.App, runNow bool) error {
	logger := a.Logger.Named("scheduler")

	cl := cronLogger{logger: logger}
	c := cron.New(cron.WithLocation(a.Config.SyncTimezone), cron.WithLogger(cl))
	// The --run-now tick shares the guard, so at most one sync runs at a time.
	job := cron.NewChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)).
		Then(cron.FuncJob(func() { syncAndRank(ctx, a, logger) }))
	if _, err := c.AddJob(a.Config.SyncCron, job); err != nil {
		return fmt.Errorf("schedule %q: %w", a.Config.SyncCron, err)
	}

	router := httpapi.NewRouter(
		httpapi.NewHandler(a.Rankings, a.DB(), logger),
		metrics.Handler(a.Registry),
		logger,
	)
	server := &http.Server{
		Addr:              a.Config.MetricsAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("ops server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	c.Start()
	logger.Info("scheduler started", "cron", a.Config.SyncCron, "timezone", a.Config.SyncTimezone.String())
	var manual sync.WaitGroup
	if runNow {
		manual.Go(job.Run)
	}

	var runErr error
	select {
	case <-ctx.Done():
	case err, ok := <-serveErr:
		if ok {
			runErr = fmt.Errorf("ops server: %w", err)
		}
	}

	// Wait for an in-flight job before the app closes the database.
	<-c.Stop().Done()
	manual.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("ops server shutdown failed", "error", err)
	}
	logger.Info("scheduler stopped")
	return runErr
}

// syncAndRank is one scheduled tick. Failures are logged and the scheduler
// keeps running.
func syncAndRank(ctx context.Context, a *app.App, logger *logging.Logger) {
	if ctx.Err() != nil {
		return
	}
	ctx, span := usecase.StartJobSpan(ctx, usecase.JobSync, "cron")
	defer span.End()

	report, err := a.Pipeline.Run(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "scheduled sync failed", "error", err)
		return
	}
	logger.InfoContext(ctx, "scheduled sync finished", "sources", len(report.Results))

	result, err := a.Ranks.Recompute(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "scheduled rank failed", "error", err)
		return
	}
	logger.InfoContext(ctx, "scheduled rank finished", "created", result.Created, "updated", result.Updated)
}

// cronLogger adapts the service logger to cron's logr-style interface.
type cronLogger struct {
	logger *logging.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
