package ranking

import "context"

type Repository interface {
	List(ctx context.Context) ([]Snapshot, error)
	// UpsertRanks writes only the given fields; other fields keep their
	// stored value.
	UpsertRanks(ctx context.Context, teamID int64, ranks map[string]int) (bool, error)
}
