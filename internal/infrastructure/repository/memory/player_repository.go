package memory

import (
	"context"
	"fmt"

	"github.com/riskibarqy/nfl-insights/internal/domain/player"
)

type PlayerRepository struct {
	data *dataset
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	return append([]player.Player(nil), r.data.players...), nil
}

func (r *PlayerRepository) UpsertByNameAndTeam(_ context.Context, item player.Player) (player.Player, bool, error) {
	if !r.data.hasTeam(item.TeamID) {
		return player.Player{}, false, fmt.Errorf("player %q references missing team %d", item.FullName, item.TeamID)
	}
	for i := range r.data.players {
		if r.data.players[i].FullName == item.FullName && r.data.players[i].TeamID == item.TeamID {
			item.ID = r.data.players[i].ID
			r.data.players[i] = item
			return item, false, nil
		}
	}
	item.ID = r.data.id()
	r.data.players = append(r.data.players, item)
	return item, true, nil
}
