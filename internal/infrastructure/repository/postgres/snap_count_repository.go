package postgres

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/nfl-insights/internal/domain/snapcount"
	qb "github.com/riskibarqy/nfl-insights/internal/platform/querybuilder"
)

type SnapCountRepository struct {
	q sqlx.ExtContext
}

func (r *SnapCountRepository) List(ctx context.Context) ([]snapcount.SnapCount, error) {
	query, args, err := qb.Select("player_id", "position_group", "weekly", "total").
		From("player_snap_counts").
		OrderBy("player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select snap counts query: %w", err)
	}

	var rows []snapCountTableModel
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select snap counts: %w", err)
	}

	out := make([]snapcount.SnapCount, 0, len(rows))
	for _, row := range rows {
		weekly := map[string]int{}
		if row.Weekly != "" {
			if err := sonic.UnmarshalString(row.Weekly, &weekly); err != nil {
				return nil, fmt.Errorf("decode weekly snaps player_id=%d: %w", row.PlayerID, err)
			}
		}
		out = append(out, snapcount.SnapCount{
			PlayerID:      row.PlayerID,
			PositionGroup: row.PositionGroup,
			Weekly:        weekly,
			Total:         row.Total,
		})
	}
	return out, nil
}

func (r *SnapCountRepository) UpsertByPlayer(ctx context.Context, item snapcount.SnapCount) (bool, error) {
	weekly := item.Weekly
	if weekly == nil {
		weekly = map[string]int{}
	}
	encoded, err := sonic.MarshalString(weekly)
	if err != nil {
		return false, fmt.Errorf("encode weekly snaps player_id=%d: %w", item.PlayerID, err)
	}

	model := snapCountTableModel{
		PlayerID:      item.PlayerID,
		PositionGroup: item.PositionGroup,
		Weekly:        encoded,
		Total:         item.Total,
	}
	query, args, err := qb.UpsertModel("player_snap_counts", model, []string{"player_id"}, insertedFlag)
	if err != nil {
		return false, fmt.Errorf("build upsert snap count query: %w", err)
	}

	var inserted bool
	if err := sqlx.GetContext(ctx, r.q, &inserted, query, args...); err != nil {
		return false, fmt.Errorf("upsert snap count player_id=%d: %w", item.PlayerID, err)
	}
	return inserted, nil
}
