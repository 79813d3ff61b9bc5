package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/nfl-insights/internal/domain/store"
	"github.com/riskibarqy/nfl-insights/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

var errPreviewRollback = errors.New("preview rollback")

type PipelineConfig struct {
	UpcomingWeek   int
	WeeksBack      int
	FanOutPolicy   FanOutPolicy
	MaxConcurrency int
}

// PipelineSources are the registered sources. The fan-out chain is fixed:
// team ids feed the roster fetch and roster ids feed the game log fetch.
// Any of them may be nil.
type PipelineSources struct {
	Teams       *TeamsSource
	Games       *GamesSource
	Players     *PlayersSource
	PlayerStats *PlayerStatsSource
	Singles     []SingleShotSource
}

// RunReport summarizes one pipeline run.
type RunReport struct {
	Results    []BatchResult
	StartedAt  time.Time
	FinishedAt time.Time
}

// Pipeline fetches every source concurrently, then transforms and persists
// them one stage at a time inside a single unit of work.
type Pipeline struct {
	uow       store.UnitOfWork
	fetcher   Fetcher
	sources   PipelineSources
	cfg       PipelineConfig
	listeners []CommitListener
	recorder  Recorder
	logger    *logging.Logger
	now       func() time.Time
}

func NewPipeline(
	uow store.UnitOfWork,
	fetcher Fetcher,
	sources PipelineSources,
	cfg PipelineConfig,
	recorder Recorder,
	logger *logging.Logger,
	listeners ...CommitListener,
) *Pipeline {
	if logger == nil {
		logger = logging.Default()
	}
	if recorder == nil {
		recorder = noopRecorder{}
	}
	if cfg.FanOutPolicy == "" {
		cfg.FanOutPolicy = FanOutAbortAll
	}
	return &Pipeline{
		uow:       uow,
		fetcher:   fetcher,
		sources:   sources,
		cfg:       cfg,
		listeners: listeners,
		recorder:  recorder,
		logger:    logger,
		now:       time.Now,
	}
}

// Sources lists every registered source in stage order.
func (p *Pipeline) Sources() []Source {
	var out []Source
	if p.sources.Teams != nil {
		out = append(out, p.sources.Teams)
	}
	if p.sources.Games != nil {
		out = append(out, p.sources.Games)
	}
	if p.sources.Players != nil {
		out = append(out, p.sources.Players)
	}
	if p.sources.PlayerStats != nil {
		out = append(out, p.sources.PlayerStats)
	}
	for _, src := range p.sources.Singles {
		if src != nil {
			out = append(out, src)
		}
	}
	return sortByStage(out)
}

// Run extracts, transforms and persists every source. Nothing is written
// when any step fails.
func (p *Pipeline) Run(ctx context.Context) (RunReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.Pipeline.Run")
	defer span.End()

	report := RunReport{StartedAt: p.now()}
	err := p.run(ctx, &report, false)
	report.FinishedAt = p.now()
	p.recorder.ObserveRun(JobSync, report.FinishedAt.Sub(report.StartedAt), err)
	if err != nil {
		failSpan(span, err)
		p.logger.ErrorContext(ctx, "sync run failed", "error", err)
		return report, err
	}

	for _, res := range report.Results {
		p.recorder.ObserveBatch(res)
	}
	publishCommit(ctx, p.logger, p.listeners, CommitEvent{Job: JobSync, Results: report.Results, CommittedAt: report.FinishedAt})
	p.logger.InfoContext(ctx, "sync run committed",
		"sources", len(report.Results),
		"elapsed", report.FinishedAt.Sub(report.StartedAt).String(),
	)
	return report, nil
}

// Preview runs the pipeline and rolls the transaction back, leaving each
// source's Export populated.
func (p *Pipeline) Preview(ctx context.Context) (RunReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.Pipeline.Preview")
	defer span.End()

	report := RunReport{StartedAt: p.now()}
	err := p.run(ctx, &report, true)
	report.FinishedAt = p.now()
	if err != nil && !errors.Is(err, errPreviewRollback) {
		return report, err
	}
	return report, nil
}

func (p *Pipeline) run(ctx context.Context, report *RunReport, rollback bool) error {
	if p.uow == nil || p.fetcher == nil {
		return fmt.Errorf("%w: pipeline store or fetcher is not configured", ErrDependencyUnavailable)
	}
	if err := p.Extract(ctx); err != nil {
		return fmt.Errorf("extract: %w", err)
	}

	return p.uow.WithinTx(ctx, func(ctx context.Context, st store.Store) error {
		results, err := p.Transform(ctx, st)
		if err != nil {
			return err
		}
		report.Results = results
		if rollback {
			return errPreviewRollback
		}
		return nil
	})
}

func (p *Pipeline) fetchGroup() FetchGroup {
	return FetchGroup{
		Fetcher:        p.fetcher,
		Policy:         p.cfg.FanOutPolicy,
		MaxConcurrency: p.cfg.MaxConcurrency,
		Logger:         p.logger,
	}
}

// Extract runs every fetch. The team -> roster -> game log chain runs in
// order; it runs concurrently with the games fan-out and the single-shot
// sources. The first failure cancels everything still in flight.
func (p *Pipeline) Extract(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.Pipeline.Extract")
	defer span.End()

	group := p.fetchGroup()
	g := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()

	if p.sources.Teams != nil {
		g.Go(func(ctx context.Context) error {
			return p.extractChain(ctx, group)
		})
	}
	if p.sources.Games != nil {
		weeks := WeekIDs(p.cfg.UpcomingWeek, p.cfg.WeeksBack)
		g.Go(func(ctx context.Context) error {
			return p.sources.Games.FetchAll(ctx, group, weeks)
		})
	}
	for _, src := range p.sources.Singles {
		if src == nil {
			continue
		}
		g.Go(func(ctx context.Context) error {
			if err := src.Fetch(ctx, p.fetcher); err != nil {
				return fmt.Errorf("%s: %w", src.Name(), err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (p *Pipeline) extractChain(ctx context.Context, group FetchGroup) error {
	if err := p.sources.Teams.Fetch(ctx, p.fetcher); err != nil {
		return fmt.Errorf("%s: %w", p.sources.Teams.Name(), err)
	}
	if p.sources.Players == nil {
		return nil
	}
	if err := p.sources.Players.FetchAll(ctx, group, p.sources.Teams.ExternalIDs()); err != nil {
		return err
	}
	if p.sources.PlayerStats == nil {
		return nil
	}
	return p.sources.PlayerStats.FetchRefs(ctx, group, p.sources.Players.Refs())
}

// Transform persists every source in stage order against st. It must run
// after Extract has returned.
func (p *Pipeline) Transform(ctx context.Context, st store.Store) ([]BatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.Pipeline.Transform")
	defer span.End()

	idx, err := BuildIndex(ctx, st)
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}

	sources := p.Sources()
	results := make([]BatchResult, 0, len(sources))
	for _, src := range sources {
		res, err := src.Transform(ctx, st, idx)
		if err != nil {
			return nil, fmt.Errorf("transform %s: %w", src.Name(), err)
		}
		p.logger.InfoContext(ctx, "source persisted",
			"source", res.Source,
			"stage", src.Stage().String(),
			"created", res.Created,
			"updated", res.Updated,
			"skipped", res.Skipped,
			"fetch_failed", res.FetchFailed,
		)
		results = append(results, res)
	}
	return results, nil
}
