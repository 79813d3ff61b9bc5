package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/nfl-insights/internal/domain/player"
	qb "github.com/riskibarqy/nfl-insights/internal/platform/querybuilder"
)

type PlayerRepository struct {
	q sqlx.ExtContext
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select("*").From("players").OrderBy("id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	var rows []playerTableModel
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, player.Player{
			ID:         row.ID,
			ExternalID: row.ExternalID,
			TeamID:     row.TeamID,
			Slug:       row.Slug,
			FirstName:  row.FirstName,
			LastName:   row.LastName,
			FullName:   row.FullName,
			Position:   row.Position,
			Jersey:     row.Jersey.String,
			Experience: row.Experience,
		})
	}
	return out, nil
}

func (r *PlayerRepository) UpsertByNameAndTeam(ctx context.Context, item player.Player) (player.Player, bool, error) {
	model := playerTableModel{
		ExternalID: item.ExternalID,
		TeamID:     item.TeamID,
		Slug:       item.Slug,
		FirstName:  item.FirstName,
		LastName:   item.LastName,
		FullName:   item.FullName,
		Position:   item.Position,
		Jersey:     nullableString(item.Jersey),
		Experience: item.Experience,
	}
	query, args, err := qb.UpsertModel("players", model, []string{"full_name", "team_id"}, "id", insertedFlag)
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build upsert player query: %w", err)
	}

	res, err := upsert(ctx, r.q, query, args)
	if err != nil {
		return player.Player{}, false, fmt.Errorf("upsert player name=%s team_id=%d: %w", item.FullName, item.TeamID, err)
	}
	item.ID = res.ID
	return item, res.Inserted, nil
}

func nullableString(v string) sql.NullString {
	v = strings.TrimSpace(v)
	return sql.NullString{String: v, Valid: v != ""}
}
