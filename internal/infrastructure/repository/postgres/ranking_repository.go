package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/nfl-insights/internal/domain/ranking"
	qb "github.com/riskibarqy/nfl-insights/internal/platform/querybuilder"
)

const rankSnapshotTable = "team_rank_snapshots"

type RankingRepository struct {
	q   sqlx.ExtContext
	now func() time.Time
}

func (r *RankingRepository) List(ctx context.Context) ([]ranking.Snapshot, error) {
	fields := ranking.Fields()
	query, args, err := qb.Select(append([]string{"team_id", "updated_at"}, fields...)...).
		From(rankSnapshotTable).
		OrderBy("team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select rank snapshots query: %w", err)
	}

	rows, err := r.q.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select rank snapshots: %w", err)
	}
	defer rows.Close()

	var out []ranking.Snapshot
	for rows.Next() {
		var (
			teamID    int64
			updatedAt time.Time
		)
		ranks := make([]sql.NullInt64, len(fields))
		dest := make([]any, 0, len(fields)+2)
		dest = append(dest, &teamID, &updatedAt)
		for i := range ranks {
			dest = append(dest, &ranks[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan rank snapshot: %w", err)
		}

		snapshot := ranking.Snapshot{TeamID: teamID, UpdatedAt: updatedAt.UTC(), Ranks: make(map[string]int)}
		for i, field := range fields {
			if ranks[i].Valid {
				snapshot.Ranks[field] = int(ranks[i].Int64)
			}
		}
		out = append(out, snapshot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rank snapshots: %w", err)
	}
	return out, nil
}

func (r *RankingRepository) UpsertRanks(ctx context.Context, teamID int64, ranks map[string]int) (bool, error) {
	now := time.Now
	if r.now != nil {
		now = r.now
	}
	query, args, err := buildRankUpsert(teamID, ranks, now().UTC())
	if err != nil {
		return false, err
	}

	var inserted bool
	if err := sqlx.GetContext(ctx, r.q, &inserted, query, args...); err != nil {
		return false, fmt.Errorf("upsert rank snapshot team_id=%d: %w", teamID, err)
	}
	return inserted, nil
}

// buildRankUpsert only sets the given fields on conflict, leaving ranks of
// categories that were not recomputed untouched.
func buildRankUpsert(teamID int64, ranks map[string]int, updatedAt time.Time) (string, []any, error) {
	if teamID <= 0 {
		return "", nil, fmt.Errorf("rank snapshot: team id is required")
	}
	known := make(map[string]struct{}, len(ranking.Fields()))
	for _, field := range ranking.Fields() {
		known[field] = struct{}{}
	}

	fields := make([]string, 0, len(ranks))
	for field := range ranks {
		if _, ok := known[field]; !ok {
			return "", nil, fmt.Errorf("rank snapshot: unknown field %q", field)
		}
		fields = append(fields, field)
	}
	sort.Strings(fields)

	values := make([]any, 0, len(fields)+2)
	values = append(values, teamID)
	for _, field := range fields {
		values = append(values, ranks[field])
	}
	values = append(values, updatedAt)

	cols := make([]string, 0, len(fields)+2)
	cols = append(cols, "team_id")
	cols = append(cols, fields...)
	cols = append(cols, "updated_at")

	query, args, err := qb.InsertInto(rankSnapshotTable).
		Columns(cols...).
		Values(values...).
		OnConflict("team_id").
		DoUpdate(cols[1:]...).
		Returning(insertedFlag).
		ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build upsert rank snapshot query: %w", err)
	}
	return query, args, nil
}
