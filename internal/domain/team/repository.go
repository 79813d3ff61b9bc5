package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Team, error)
	// UpsertByAbbreviation reports whether the row was created.
	UpsertByAbbreviation(ctx context.Context, item Team) (Team, bool, error)
}
