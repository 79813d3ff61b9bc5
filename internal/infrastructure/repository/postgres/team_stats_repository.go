package postgres

import (
	"context"
	"fmt"
	"sort"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/nfl-insights/internal/domain/teamstats"
	qb "github.com/riskibarqy/nfl-insights/internal/platform/querybuilder"
)

// TeamStatsRepository serves every category table; the column set comes
// from the category definition rather than a row model.
type TeamStatsRepository struct {
	q sqlx.ExtContext
}

func (r *TeamStatsRepository) List(ctx context.Context, category teamstats.Category) ([]teamstats.Row, error) {
	def, ok := teamstats.Lookup(category)
	if !ok {
		return nil, fmt.Errorf("unknown team stats category %q", category)
	}

	query, args, err := qb.Select(append([]string{"team_id"}, def.Columns...)...).
		From(def.Table).
		OrderBy("team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select %s query: %w", def.Table, err)
	}

	rows, err := r.q.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", def.Table, err)
	}
	defer rows.Close()

	var out []teamstats.Row
	for rows.Next() {
		var teamID int64
		values := make([]float64, len(def.Columns))
		dest := make([]any, 0, len(def.Columns)+1)
		dest = append(dest, &teamID)
		for i := range values {
			dest = append(dest, &values[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", def.Table, err)
		}

		row := teamstats.Row{TeamID: teamID, Values: make(map[string]float64, len(def.Columns))}
		for i, col := range def.Columns {
			row.Values[col] = values[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s rows: %w", def.Table, err)
	}
	return out, nil
}

func (r *TeamStatsRepository) UpsertByTeam(ctx context.Context, category teamstats.Category, row teamstats.Row) (bool, error) {
	query, args, err := buildTeamStatsUpsert(category, row)
	if err != nil {
		return false, err
	}

	var inserted bool
	if err := sqlx.GetContext(ctx, r.q, &inserted, query, args...); err != nil {
		return false, fmt.Errorf("upsert %s team_id=%d: %w", category, row.TeamID, err)
	}
	return inserted, nil
}

// buildTeamStatsUpsert writes every defined column so a re-scrape fully
// replaces the stored row. Values outside the definition are ignored.
func buildTeamStatsUpsert(category teamstats.Category, row teamstats.Row) (string, []any, error) {
	def, ok := teamstats.Lookup(category)
	if !ok {
		return "", nil, fmt.Errorf("unknown team stats category %q", category)
	}
	if err := def.Validate(row); err != nil {
		return "", nil, err
	}

	cols := append([]string(nil), def.Columns...)
	sort.Strings(cols)
	values := make([]any, 0, len(cols)+1)
	values = append(values, row.TeamID)
	for _, col := range cols {
		values = append(values, row.Values[col])
	}

	query, args, err := qb.InsertInto(def.Table).
		Columns(append([]string{"team_id"}, cols...)...).
		Values(values...).
		OnConflict("team_id").
		Returning(insertedFlag).
		ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build upsert %s query: %w", def.Table, err)
	}
	return query, args, nil
}
