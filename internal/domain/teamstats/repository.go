package teamstats

import "context"

type Repository interface {
	List(ctx context.Context, category Category) ([]Row, error)
	// UpsertByTeam replaces the team's row for the category.
	UpsertByTeam(ctx context.Context, category Category, row Row) (bool, error)
}
