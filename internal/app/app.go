package app

import (
	"context"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/riskibarqy/nfl-insights/external/feed"
	"github.com/riskibarqy/nfl-insights/internal/config"
	"github.com/riskibarqy/nfl-insights/internal/domain/teamstats"
	"github.com/riskibarqy/nfl-insights/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/nfl-insights/internal/infrastructure/repository/postgres"
	basecache "github.com/riskibarqy/nfl-insights/internal/platform/cache"
	"github.com/riskibarqy/nfl-insights/internal/platform/logging"
	"github.com/riskibarqy/nfl-insights/internal/platform/metrics"
	"github.com/riskibarqy/nfl-insights/internal/usecase"
)

// App wires the sync jobs to Postgres, the provider client and the caches.
type App struct {
	Config   config.Config
	Logger   *logging.Logger
	Pipeline *usecase.Pipeline
	Ranks    *usecase.RankService
	Rankings *cache.RankingRepository
	Registry *prometheus.Registry

	db      *sqlx.DB
	closers []func() error
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	policy, err := usecase.ParseFanOutPolicy(cfg.FanOutPolicy)
	if err != nil {
		return nil, err
	}
	sources, err := BuildSources(cfg, logger)
	if err != nil {
		return nil, err
	}

	db, err := OpenDB(ctx, cfg.DBURL, cfg.DBDisablePreparedBinary)
	if err != nil {
		return nil, err
	}
	a := &App{Config: cfg, Logger: logger, db: db}
	a.closers = append(a.closers, db.Close)

	a.Registry = prometheus.NewRegistry()
	a.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.New(a.Registry)

	var local *basecache.Store
	if cfg.CacheEnabled {
		local = basecache.NewStore(cfg.CacheTTL)
	}
	var remote cache.Purger
	if cfg.RedisURL != "" {
		client, err := basecache.DialRedis(ctx, cfg.RedisURL)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		remote = basecache.NewRedisPurger(client)
	}

	var listeners []usecase.CommitListener
	if local != nil || remote != nil {
		listeners = append(listeners, cache.NewInvalidator(local, remote, cfg.CacheKeyPrefix, logger.Named("cache")))
	}

	client := feed.NewClient(feed.ClientConfig{
		Timeout:      cfg.FetchTimeout,
		MaxBodyBytes: cfg.FetchMaxBodyBytes,
		UserAgent:    cfg.ServiceName + "/" + cfg.ServiceVersion,
		Logger:       logger.Named("feed"),
		Recorder:     recorder,
	})

	uow := postgres.NewUnitOfWork(db)
	a.Pipeline = usecase.NewPipeline(
		uow,
		client,
		sources,
		usecase.PipelineConfig{
			UpcomingWeek:   cfg.UpcomingWeek,
			WeeksBack:      cfg.WeeksBack,
			FanOutPolicy:   policy,
			MaxConcurrency: cfg.FetchMaxConcurrency,
		},
		recorder,
		logger.Named("pipeline"),
		listeners...,
	)
	a.Ranks = usecase.NewRankService(uow, cfg.RankWorkers, recorder, logger.Named("rank"), listeners...)
	a.Rankings = cache.NewRankingRepository(postgres.NewStore(db).Rankings(), local, cfg.CacheKeyPrefix)

	return a, nil
}

// BuildSources registers every source that has a configured endpoint.
// Category pages are added in the fixed category order.
func BuildSources(cfg config.Config, logger *logging.Logger) (usecase.PipelineSources, error) {
	sources := usecase.PipelineSources{
		Teams:       usecase.NewTeamsSource(cfg.Sources.Teams, logger),
		Games:       usecase.NewGamesSource(cfg.Sources.Events, logger),
		Players:     usecase.NewPlayersSource(cfg.Sources.Players, logger),
		PlayerStats: usecase.NewPlayerStatsSource(cfg.Sources.Stats, logger),
	}

	for _, category := range teamstats.Categories() {
		url, ok := cfg.Sources.Categories[category]
		if !ok {
			continue
		}
		src, err := usecase.NewTeamCategorySource(category, url, "", logger)
		if err != nil {
			return usecase.PipelineSources{}, fmt.Errorf("%w: %s: %v", usecase.ErrInvalidInput, config.CategoryURLKey(category), err)
		}
		sources.Singles = append(sources.Singles, src)
	}

	switch {
	case cfg.SnapCountFetch && cfg.Sources.SnapCount != "":
		sources.Singles = append(sources.Singles, usecase.NewSnapCountSource(cfg.Sources.SnapCount, true, cfg.SnapCountCachePath, logger))
	case !cfg.SnapCountFetch && fileExists(cfg.SnapCountCachePath):
		sources.Singles = append(sources.Singles, usecase.NewSnapCountSource(cfg.Sources.SnapCount, false, cfg.SnapCountCachePath, logger))
	case !cfg.SnapCountFetch:
		logger.Warn("snap count cache missing, source disabled", "path", cfg.SnapCountCachePath)
	}

	if cfg.Sources.Odds != "" {
		sources.Singles = append(sources.Singles, usecase.NewOddsSource(cfg.Sources.Odds, logger))
	}
	return sources, nil
}

// DB exposes the pool for health checks.
func (a *App) DB() *sqlx.DB {
	return a.db
}

// Close releases resources in reverse acquisition order.
func (a *App) Close() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
