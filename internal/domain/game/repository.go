package game

import "context"

type Repository interface {
	List(ctx context.Context) ([]Game, error)
	UpsertByEvent(ctx context.Context, item Game) (Game, bool, error)
}
