package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/nfl-insights/internal/domain/team"
)

type TeamRepository struct {
	data *dataset
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	return append([]team.Team(nil), r.data.teams...), nil
}

// UpsertByAbbreviation mirrors the teams_slug_key constraint: a slug held by
// another abbreviation is rejected with team.ErrSlugTaken.
func (r *TeamRepository) UpsertByAbbreviation(_ context.Context, item team.Team) (team.Team, bool, error) {
	for _, existing := range r.data.teams {
		if item.Slug != "" && existing.Slug == item.Slug && !strings.EqualFold(existing.Abbreviation, item.Abbreviation) {
			return team.Team{}, false, fmt.Errorf("%w: slug=%s abbreviation=%s", team.ErrSlugTaken, item.Slug, existing.Abbreviation)
		}
	}
	for i := range r.data.teams {
		if strings.EqualFold(r.data.teams[i].Abbreviation, item.Abbreviation) {
			item.ID = r.data.teams[i].ID
			r.data.teams[i] = item
			return item, false, nil
		}
	}
	item.ID = r.data.id()
	r.data.teams = append(r.data.teams, item)
	return item, true, nil
}
