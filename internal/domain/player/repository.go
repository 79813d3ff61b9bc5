package player

import "context"

type Repository interface {
	List(ctx context.Context) ([]Player, error)
	// UpsertByNameAndTeam keys on (full_name, team_id).
	UpsertByNameAndTeam(ctx context.Context, item Player) (Player, bool, error)
}
