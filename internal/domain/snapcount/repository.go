package snapcount

import "context"

type Repository interface {
	List(ctx context.Context) ([]SnapCount, error)
	UpsertByPlayer(ctx context.Context, item SnapCount) (bool, error)
}
