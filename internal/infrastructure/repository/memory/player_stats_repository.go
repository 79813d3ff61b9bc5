package memory

import (
	"context"
	"fmt"

	"github.com/riskibarqy/nfl-insights/internal/domain/playerstats"
)

type PlayerStatsRepository struct {
	data *dataset
}

func (r *PlayerStatsRepository) List(_ context.Context) ([]playerstats.GameStats, error) {
	return append([]playerstats.GameStats(nil), r.data.playerStats...), nil
}

func (r *PlayerStatsRepository) UpsertByPlayerAndGame(_ context.Context, item playerstats.GameStats) (bool, error) {
	if !r.data.hasPlayer(item.PlayerID) || !r.data.hasGame(item.GameID) {
		return false, fmt.Errorf("stats for player %d game %d reference a missing row", item.PlayerID, item.GameID)
	}
	for i := range r.data.playerStats {
		if r.data.playerStats[i].PlayerID == item.PlayerID && r.data.playerStats[i].GameID == item.GameID {
			r.data.playerStats[i] = item
			return false, nil
		}
	}
	r.data.playerStats = append(r.data.playerStats, item)
	return true, nil
}
