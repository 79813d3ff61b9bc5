package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/nfl-insights/internal/domain/team"
	qb "github.com/riskibarqy/nfl-insights/internal/platform/querybuilder"
)

type TeamRepository struct {
	q sqlx.ExtContext
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").OrderBy("id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, team.Team{
			ID:           row.ID,
			ExternalID:   row.ExternalID,
			Slug:         row.Slug,
			FullName:     row.FullName,
			Nickname:     row.Nickname,
			Abbreviation: row.Abbreviation,
			Conference:   row.Conference,
			Division:     row.Division,
		})
	}
	return out, nil
}

func (r *TeamRepository) UpsertByAbbreviation(ctx context.Context, item team.Team) (team.Team, bool, error) {
	model := teamTableModel{
		ExternalID:   item.ExternalID,
		Slug:         item.Slug,
		FullName:     item.FullName,
		Nickname:     item.Nickname,
		Abbreviation: item.Abbreviation,
		Conference:   item.Conference,
		Division:     item.Division,
	}
	query, args, err := qb.UpsertModel("teams", model, []string{"abbreviation"}, "id", insertedFlag)
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build upsert team query: %w", err)
	}

	res, err := upsert(ctx, r.q, query, args)
	if isConstraintViolation(err, "teams_slug_key") {
		return team.Team{}, false, fmt.Errorf("%w: slug=%s: %w", team.ErrSlugTaken, item.Slug, err)
	}
	if err != nil {
		return team.Team{}, false, fmt.Errorf("upsert team abbreviation=%s: %w", item.Abbreviation, err)
	}
	item.ID = res.ID
	return item, res.Inserted, nil
}

func isConstraintViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "23505" && pqErr.Constraint == constraint
}
