package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/nfl-insights/internal/domain/odds"
	qb "github.com/riskibarqy/nfl-insights/internal/platform/querybuilder"
)

type OddsRepository struct {
	q sqlx.ExtContext
}

func (r *OddsRepository) List(ctx context.Context) ([]odds.Line, error) {
	query, args, err := qb.Select("team_id", "market", "display_name", "open_line", "open_odds", "close_line", "close_odds").
		From("team_odds").
		OrderBy("team_id", "market").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select odds query: %w", err)
	}

	var rows []oddsTableModel
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select odds: %w", err)
	}

	out := make([]odds.Line, 0, len(rows))
	for _, row := range rows {
		out = append(out, odds.Line(row))
	}
	return out, nil
}

func (r *OddsRepository) Upsert(ctx context.Context, item odds.Line) (bool, error) {
	query, args, err := qb.UpsertModel("team_odds", oddsTableModel(item), []string{"team_id", "market", "display_name"}, insertedFlag)
	if err != nil {
		return false, fmt.Errorf("build upsert odds query: %w", err)
	}

	var inserted bool
	if err := sqlx.GetContext(ctx, r.q, &inserted, query, args...); err != nil {
		return false, fmt.Errorf("upsert odds team_id=%d market=%s: %w", item.TeamID, item.Market, err)
	}
	return inserted, nil
}
