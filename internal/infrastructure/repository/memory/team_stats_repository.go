package memory

import (
	"context"
	"fmt"
	"maps"

	"github.com/riskibarqy/nfl-insights/internal/domain/teamstats"
)

type TeamStatsRepository struct {
	data *dataset
}

func (r *TeamStatsRepository) List(_ context.Context, category teamstats.Category) ([]teamstats.Row, error) {
	if _, ok := teamstats.Lookup(category); !ok {
		return nil, fmt.Errorf("unknown team stats category %q", category)
	}
	rows := r.data.teamStats[category]
	out := make([]teamstats.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamstats.Row{TeamID: row.TeamID, Values: maps.Clone(row.Values)})
	}
	return out, nil
}

func (r *TeamStatsRepository) UpsertByTeam(_ context.Context, category teamstats.Category, row teamstats.Row) (bool, error) {
	def, ok := teamstats.Lookup(category)
	if !ok {
		return false, fmt.Errorf("unknown team stats category %q", category)
	}
	if !r.data.hasTeam(row.TeamID) {
		return false, fmt.Errorf("%s row references missing team %d", category, row.TeamID)
	}

	values := make(map[string]float64, len(def.Columns))
	for _, col := range def.Columns {
		values[col] = row.Values[col]
	}
	stored := teamstats.Row{TeamID: row.TeamID, Values: values}

	rows := r.data.teamStats[category]
	for i := range rows {
		if rows[i].TeamID == row.TeamID {
			rows[i] = stored
			return false, nil
		}
	}
	r.data.teamStats[category] = append(rows, stored)
	return true, nil
}
