package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/nfl-insights/internal/domain/playerstats"
	qb "github.com/riskibarqy/nfl-insights/internal/platform/querybuilder"
)

type PlayerStatsRepository struct {
	q sqlx.ExtContext
}

func (r *PlayerStatsRepository) List(ctx context.Context) ([]playerstats.GameStats, error) {
	query, args, err := qb.Select("*").From("player_game_stats").OrderBy("player_id", "game_id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select player game stats query: %w", err)
	}

	var rows []playerGameStatsTableModel
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select player game stats: %w", err)
	}

	out := make([]playerstats.GameStats, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerstats.GameStats(row))
	}
	return out, nil
}

func (r *PlayerStatsRepository) UpsertByPlayerAndGame(ctx context.Context, item playerstats.GameStats) (bool, error) {
	query, args, err := qb.UpsertModel("player_game_stats", playerGameStatsTableModel(item), []string{"player_id", "game_id"}, insertedFlag)
	if err != nil {
		return false, fmt.Errorf("build upsert player game stats query: %w", err)
	}

	var inserted bool
	if err := sqlx.GetContext(ctx, r.q, &inserted, query, args...); err != nil {
		return false, fmt.Errorf("upsert player game stats player_id=%d game_id=%d: %w", item.PlayerID, item.GameID, err)
	}
	return inserted, nil
}
