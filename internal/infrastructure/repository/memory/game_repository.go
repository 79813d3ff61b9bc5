package memory

import (
	"context"
	"fmt"

	"github.com/riskibarqy/nfl-insights/internal/domain/game"
)

type GameRepository struct {
	data *dataset
}

func (r *GameRepository) List(_ context.Context) ([]game.Game, error) {
	return append([]game.Game(nil), r.data.games...), nil
}

func (r *GameRepository) UpsertByEvent(_ context.Context, item game.Game) (game.Game, bool, error) {
	if !r.data.hasTeam(item.HomeTeamID) || !r.data.hasTeam(item.AwayTeamID) {
		return game.Game{}, false, fmt.Errorf("game %s references a missing team", item.Event)
	}
	for i := range r.data.games {
		if r.data.games[i].Event == item.Event {
			item.ID = r.data.games[i].ID
			r.data.games[i] = item
			return item, false, nil
		}
	}
	item.ID = r.data.id()
	r.data.games = append(r.data.games, item)
	return item, true, nil
}
