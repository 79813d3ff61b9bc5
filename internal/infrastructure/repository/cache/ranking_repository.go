package cache

import (
	"context"
	"strconv"

	"github.com/riskibarqy/nfl-insights/internal/domain/ranking"
	basecache "github.com/riskibarqy/nfl-insights/internal/platform/cache"
)

// RankingRepository serves rank snapshots from the in-process cache. Writes
// pass through; entries are dropped by the Invalidator after each commit.
type RankingRepository struct {
	next   ranking.Repository
	cache  *basecache.Store
	prefix string
}

func NewRankingRepository(next ranking.Repository, cache *basecache.Store, prefix string) *RankingRepository {
	return &RankingRepository{next: next, cache: cache, prefix: prefix}
}

// List reads straight through when the repository has no cache store.
func (r *RankingRepository) List(ctx context.Context) ([]ranking.Snapshot, error) {
	if r.cache == nil {
		return r.next.List(ctx)
	}
	v, err := r.cache.GetOrLoad(ctx, r.prefix+"ranking:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return cloneSnapshots(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]ranking.Snapshot)
	return cloneSnapshots(items), nil
}

// GetByTeam reports false when the team has no snapshot yet.
func (r *RankingRepository) GetByTeam(ctx context.Context, teamID int64) (ranking.Snapshot, bool, error) {
	find := func(ctx context.Context) (any, error) {
		items, err := r.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			if item.TeamID == teamID {
				return cachedSnapshot{value: item, exists: true}, nil
			}
		}
		return cachedSnapshot{}, nil
	}

	var (
		v   any
		err error
	)
	if r.cache == nil {
		v, err = find(ctx)
	} else {
		v, err = r.cache.GetOrLoad(ctx, r.prefix+"ranking:team:"+strconv.FormatInt(teamID, 10), find)
	}
	if err != nil {
		return ranking.Snapshot{}, false, err
	}

	cached, _ := v.(cachedSnapshot)
	return cloneSnapshot(cached.value), cached.exists, nil
}

func (r *RankingRepository) UpsertRanks(ctx context.Context, teamID int64, ranks map[string]int) (bool, error) {
	return r.next.UpsertRanks(ctx, teamID, ranks)
}

type cachedSnapshot struct {
	value  ranking.Snapshot
	exists bool
}

func cloneSnapshots(items []ranking.Snapshot) []ranking.Snapshot {
	out := make([]ranking.Snapshot, 0, len(items))
	for _, item := range items {
		out = append(out, cloneSnapshot(item))
	}
	return out
}

func cloneSnapshot(item ranking.Snapshot) ranking.Snapshot {
	ranks := make(map[string]int, len(item.Ranks))
	for k, v := range item.Ranks {
		ranks[k] = v
	}
	item.Ranks = ranks
	return item
}
