package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/nfl-insights/internal/domain/game"
	"github.com/riskibarqy/nfl-insights/internal/domain/odds"
	"github.com/riskibarqy/nfl-insights/internal/domain/player"
	"github.com/riskibarqy/nfl-insights/internal/domain/playerstats"
	"github.com/riskibarqy/nfl-insights/internal/domain/ranking"
	"github.com/riskibarqy/nfl-insights/internal/domain/snapcount"
	"github.com/riskibarqy/nfl-insights/internal/domain/store"
	"github.com/riskibarqy/nfl-insights/internal/domain/team"
	"github.com/riskibarqy/nfl-insights/internal/domain/teamstats"
)

// UnitOfWork runs a job inside one database transaction.
type UnitOfWork struct {
	db *sqlx.DB
}

func NewUnitOfWork(db *sqlx.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

func (u *UnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, s store.Store) error) error {
	tx, err := u.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(ctx, NewStore(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// Store binds the repositories to a connection or a transaction.
type Store struct {
	q sqlx.ExtContext
}

func NewStore(q sqlx.ExtContext) *Store {
	return &Store{q: q}
}

func (s *Store) Teams() team.Repository              { return &TeamRepository{q: s.q} }
func (s *Store) Players() player.Repository          { return &PlayerRepository{q: s.q} }
func (s *Store) Games() game.Repository              { return &GameRepository{q: s.q} }
func (s *Store) PlayerStats() playerstats.Repository { return &PlayerStatsRepository{q: s.q} }
func (s *Store) TeamStats() teamstats.Repository     { return &TeamStatsRepository{q: s.q} }
func (s *Store) SnapCounts() snapcount.Repository    { return &SnapCountRepository{q: s.q} }
func (s *Store) Odds() odds.Repository               { return &OddsRepository{q: s.q} }
func (s *Store) Rankings() ranking.Repository        { return &RankingRepository{q: s.q} }

// upsertResult is read from "RETURNING id, (xmax = 0) AS inserted".
type upsertResult struct {
	ID       int64 `db:"id"`
	Inserted bool  `db:"inserted"`
}

const insertedFlag = "(xmax = 0) AS inserted"

func upsert(ctx context.Context, q sqlx.ExtContext, query string, args []any) (upsertResult, error) {
	var out upsertResult
	if err := sqlx.GetContext(ctx, q, &out, query, args...); err != nil {
		return upsertResult{}, err
	}
	return out, nil
}
