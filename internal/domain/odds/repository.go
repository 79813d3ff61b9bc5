package odds

import "context"

type Repository interface {
	List(ctx context.Context) ([]Line, error)
	// Upsert keys on (team_id, market, display_name).
	Upsert(ctx context.Context, item Line) (bool, error)
}
