package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/nfl-insights/internal/domain/game"
	qb "github.com/riskibarqy/nfl-insights/internal/platform/querybuilder"
)

type GameRepository struct {
	q sqlx.ExtContext
}

func (r *GameRepository) List(ctx context.Context) ([]game.Game, error) {
	query, args, err := qb.Select("*").From("games").OrderBy("date", "id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select games query: %w", err)
	}

	var rows []gameTableModel
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select games: %w", err)
	}

	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, game.Game{
			ID:         row.ID,
			Event:      row.Event,
			Date:       row.Date.UTC(),
			Name:       row.Name,
			ShortName:  row.ShortName,
			SeasonYear: row.SeasonYear,
			SeasonType: row.SeasonType,
			Week:       row.Week,
			HomeTeamID: row.HomeTeamID,
			AwayTeamID: row.AwayTeamID,
			HomeScore:  row.HomeScore,
			AwayScore:  row.AwayScore,
			Status:     row.Status,
		})
	}
	return out, nil
}

func (r *GameRepository) UpsertByEvent(ctx context.Context, item game.Game) (game.Game, bool, error) {
	model := gameTableModel{
		Event:      item.Event,
		Date:       item.Date.UTC(),
		Name:       item.Name,
		ShortName:  item.ShortName,
		SeasonYear: item.SeasonYear,
		SeasonType: item.SeasonType,
		Week:       item.Week,
		HomeTeamID: item.HomeTeamID,
		AwayTeamID: item.AwayTeamID,
		HomeScore:  item.HomeScore,
		AwayScore:  item.AwayScore,
		Status:     item.Status,
	}
	query, args, err := qb.UpsertModel("games", model, []string{"event"}, "id", insertedFlag)
	if err != nil {
		return game.Game{}, false, fmt.Errorf("build upsert game query: %w", err)
	}

	res, err := upsert(ctx, r.q, query, args)
	if err != nil {
		return game.Game{}, false, fmt.Errorf("upsert game event=%s: %w", item.Event, err)
	}
	item.ID = res.ID
	return item, res.Inserted, nil
}
