package store

import (
	"context"

	"github.com/riskibarqy/nfl-insights/internal/domain/game"
	"github.com/riskibarqy/nfl-insights/internal/domain/odds"
	"github.com/riskibarqy/nfl-insights/internal/domain/player"
	"github.com/riskibarqy/nfl-insights/internal/domain/playerstats"
	"github.com/riskibarqy/nfl-insights/internal/domain/ranking"
	"github.com/riskibarqy/nfl-insights/internal/domain/snapcount"
	"github.com/riskibarqy/nfl-insights/internal/domain/team"
	"github.com/riskibarqy/nfl-insights/internal/domain/teamstats"
)

// Store groups the repositories that share one transaction.
type Store interface {
	Teams() team.Repository
	Players() player.Repository
	Games() game.Repository
	PlayerStats() playerstats.Repository
	TeamStats() teamstats.Repository
	SnapCounts() snapcount.Repository
	Odds() odds.Repository
	Rankings() ranking.Repository
}

// UnitOfWork runs fn against a Store bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, s Store) error) error
}
