package memory

import (
	"context"
	"fmt"
	"maps"

	"github.com/riskibarqy/nfl-insights/internal/domain/snapcount"
)

type SnapCountRepository struct {
	data *dataset
}

func (r *SnapCountRepository) List(_ context.Context) ([]snapcount.SnapCount, error) {
	out := make([]snapcount.SnapCount, 0, len(r.data.snapCounts))
	for _, item := range r.data.snapCounts {
		item.Weekly = maps.Clone(item.Weekly)
		out = append(out, item)
	}
	return out, nil
}

func (r *SnapCountRepository) UpsertByPlayer(_ context.Context, item snapcount.SnapCount) (bool, error) {
	if !r.data.hasPlayer(item.PlayerID) {
		return false, fmt.Errorf("snap count references missing player %d", item.PlayerID)
	}
	item.Weekly = maps.Clone(item.Weekly)
	for i := range r.data.snapCounts {
		if r.data.snapCounts[i].PlayerID == item.PlayerID {
			r.data.snapCounts[i] = item
			return false, nil
		}
	}
	r.data.snapCounts = append(r.data.snapCounts, item)
	return true, nil
}
