package memory

import (
	"context"
	"fmt"

	"github.com/riskibarqy/nfl-insights/internal/domain/odds"
)

type OddsRepository struct {
	data *dataset
}

func (r *OddsRepository) List(_ context.Context) ([]odds.Line, error) {
	return append([]odds.Line(nil), r.data.odds...), nil
}

func (r *OddsRepository) Upsert(_ context.Context, item odds.Line) (bool, error) {
	if !r.data.hasTeam(item.TeamID) {
		return false, fmt.Errorf("odds line references missing team %d", item.TeamID)
	}
	for i := range r.data.odds {
		existing := r.data.odds[i]
		if existing.TeamID == item.TeamID && existing.Market == item.Market && existing.DisplayName == item.DisplayName {
			r.data.odds[i] = item
			return false, nil
		}
	}
	r.data.odds = append(r.data.odds, item)
	return true, nil
}
