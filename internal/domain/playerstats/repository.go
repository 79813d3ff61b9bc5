package playerstats

import "context"

type Repository interface {
	List(ctx context.Context) ([]GameStats, error)
	// UpsertByPlayerAndGame overwrites every tracked field of an existing row.
	UpsertByPlayerAndGame(ctx context.Context, item GameStats) (bool, error)
}
