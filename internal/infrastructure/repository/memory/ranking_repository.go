package memory

import (
	"context"
	"fmt"
	"maps"
	"time"

	"github.com/riskibarqy/nfl-insights/internal/domain/ranking"
)

type RankingRepository struct {
	data *dataset
	now  func() time.Time
}

func (r *RankingRepository) List(_ context.Context) ([]ranking.Snapshot, error) {
	out := make([]ranking.Snapshot, 0, len(r.data.snapshots))
	for _, item := range r.data.snapshots {
		item.Ranks = maps.Clone(item.Ranks)
		out = append(out, item)
	}
	return out, nil
}

func (r *RankingRepository) UpsertRanks(_ context.Context, teamID int64, ranks map[string]int) (bool, error) {
	if !r.data.hasTeam(teamID) {
		return false, fmt.Errorf("rank snapshot references missing team %d", teamID)
	}
	known := make(map[string]struct{}, len(ranking.Rules()))
	for _, field := range ranking.Fields() {
		known[field] = struct{}{}
	}
	for field := range ranks {
		if _, ok := known[field]; !ok {
			return false, fmt.Errorf("unknown rank field %q", field)
		}
	}

	now := r.now().UTC()
	for i := range r.data.snapshots {
		if r.data.snapshots[i].TeamID != teamID {
			continue
		}
		if r.data.snapshots[i].Ranks == nil {
			r.data.snapshots[i].Ranks = make(map[string]int, len(ranks))
		}
		for field, rank := range ranks {
			r.data.snapshots[i].Ranks[field] = rank
		}
		r.data.snapshots[i].UpdatedAt = now
		return false, nil
	}
	r.data.snapshots = append(r.data.snapshots, ranking.Snapshot{
		TeamID:    teamID,
		Ranks:     maps.Clone(ranks),
		UpdatedAt: now,
	})
	return true, nil
}
