package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/nfl-insights/internal/domain/ranking"
	"github.com/riskibarqy/nfl-insights/internal/domain/store"
	"github.com/riskibarqy/nfl-insights/internal/domain/teamstats"
	"github.com/riskibarqy/nfl-insights/internal/platform/logging"
)

const defaultRankWorkers = 4

// RankService recomputes every team's rank snapshot from the category
// tables in its own transaction.
type RankService struct {
	uow       store.UnitOfWork
	workers   int
	listeners []CommitListener
	recorder  Recorder
	logger    *logging.Logger
	now       func() time.Time
}

func NewRankService(uow store.UnitOfWork, workers int, recorder Recorder, logger *logging.Logger, listeners ...CommitListener) *RankService {
	if workers <= 0 {
		workers = defaultRankWorkers
	}
	if recorder == nil {
		recorder = noopRecorder{}
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &RankService{
		uow:       uow,
		workers:   workers,
		listeners: listeners,
		recorder:  recorder,
		logger:    logger,
		now:       time.Now,
	}
}

// categoryRanks is one category's team -> field -> rank result.
type categoryRanks map[int64]map[string]int

// Recompute ranks every category and upserts one snapshot per ranked team.
// Fields of categories a team is missing from are left untouched.
func (s *RankService) Recompute(ctx context.Context) (BatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankService.Recompute")
	defer span.End()

	started := s.now()
	result := BatchResult{Source: "rankings"}
	err := s.uow.WithinTx(ctx, func(ctx context.Context, st store.Store) error {
		categories := teamstats.Categories()
		rows := make([][]teamstats.Row, len(categories))
		for i, category := range categories {
			items, err := st.TeamStats().List(ctx, category)
			if err != nil {
				return fmt.Errorf("list %s stats: %w", category, err)
			}
			rows[i] = items
		}

		perCategory, err := s.rankCategories(categories, rows)
		if err != nil {
			return err
		}
		merged := mergeRanks(perCategory)

		teamIDs := make([]int64, 0, len(merged))
		for teamID := range merged {
			teamIDs = append(teamIDs, teamID)
		}
		sort.Slice(teamIDs, func(i, j int) bool { return teamIDs[i] < teamIDs[j] })

		for _, teamID := range teamIDs {
			created, err := st.Rankings().UpsertRanks(ctx, teamID, merged[teamID])
			if err != nil {
				return fmt.Errorf("upsert rank snapshot team=%d: %w", teamID, err)
			}
			result.record(created)
		}
		return nil
	})

	finished := s.now()
	s.recorder.ObserveRun(JobRank, finished.Sub(started), err)
	if err != nil {
		failSpan(span, err)
		s.logger.ErrorContext(ctx, "rank recompute failed", "error", err)
		return BatchResult{}, err
	}

	s.recorder.ObserveBatch(result)
	publishCommit(ctx, s.logger, s.listeners, CommitEvent{Job: JobRank, Results: []BatchResult{result}, CommittedAt: finished})
	s.logger.InfoContext(ctx, "rank snapshots committed", "created", result.Created, "updated", result.Updated)
	return result, nil
}

// rankCategories ranks each category on the worker pool. Each job writes
// only its own slot.
func (s *RankService) rankCategories(categories []teamstats.Category, rows [][]teamstats.Row) ([]categoryRanks, error) {
	out := make([]categoryRanks, len(categories))

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return nil, fmt.Errorf("create rank worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for i, category := range categories {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			out[i] = rankCategory(ranking.RulesFor(category), rows[i])
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit %s ranking: %w", category, err)
		}
	}
	workers.Wait()
	return out, nil
}

func rankCategory(rules []ranking.Rule, rows []teamstats.Row) categoryRanks {
	out := make(categoryRanks, len(rows))
	for _, rule := range rules {
		values := make(map[int64]float64, len(rows))
		for _, row := range rows {
			value, ok := row.Values[rule.Column]
			if !ok {
				continue
			}
			values[row.TeamID] = value
		}
		for teamID, rank := range ranking.DenseRank(values, rule.Descending) {
			fields, ok := out[teamID]
			if !ok {
				fields = make(map[string]int, len(rules))
				out[teamID] = fields
			}
			fields[rule.Field] = rank
		}
	}
	return out
}

// mergeRanks folds the per-category results into one field set per team.
// Rule fields are unique across categories, so no result overwrites another.
func mergeRanks(perCategory []categoryRanks) map[int64]map[string]int {
	out := make(map[int64]map[string]int)
	for _, ranks := range perCategory {
		for teamID, fields := range ranks {
			merged, ok := out[teamID]
			if !ok {
				merged = make(map[string]int, len(ranking.Rules()))
				out[teamID] = merged
			}
			for field, rank := range fields {
				merged[field] = rank
			}
		}
	}
	return out
}
