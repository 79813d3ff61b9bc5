package memory

import (
	"context"
	"maps"
	"sync"
	"time"

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

// DB is an in-process store. WithinTx works on a copy of the data and
// swaps it in only when fn succeeds, so failed runs leave nothing behind.
type DB struct {
	mu   sync.RWMutex
	data *dataset
	now  func() time.Time
}

type dataset struct {
	nextID int64

	teams       []team.Team
	players     []player.Player
	games       []game.Game
	playerStats []playerstats.GameStats
	teamStats   map[teamstats.Category][]teamstats.Row
	snapCounts  []snapcount.SnapCount
	odds        []odds.Line
	snapshots   []ranking.Snapshot
}

func NewDB() *DB {
	return &DB{
		data: &dataset{teamStats: make(map[teamstats.Category][]teamstats.Row)},
		now:  time.Now,
	}
}

// SetClock replaces the clock used for snapshot timestamps.
func (db *DB) SetClock(now func() time.Time) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.now = now
}

func (db *DB) WithinTx(ctx context.Context, fn func(ctx context.Context, s store.Store) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	working := db.data.clone()
	if err := fn(ctx, &Store{data: working, now: db.now}); err != nil {
		return err
	}
	db.data = working
	return nil
}

// Snapshot returns a read view of the committed data.
func (db *DB) Snapshot() store.Store {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return &Store{data: db.data.clone(), now: db.now}
}

func (d *dataset) id() int64 {
	d.nextID++
	return d.nextID
}

func (d *dataset) clone() *dataset {
	out := &dataset{
		nextID:      d.nextID,
		teams:       append([]team.Team(nil), d.teams...),
		players:     append([]player.Player(nil), d.players...),
		games:       append([]game.Game(nil), d.games...),
		playerStats: append([]playerstats.GameStats(nil), d.playerStats...),
		teamStats:   make(map[teamstats.Category][]teamstats.Row, len(d.teamStats)),
		odds:        append([]odds.Line(nil), d.odds...),
	}
	for category, rows := range d.teamStats {
		copied := make([]teamstats.Row, 0, len(rows))
		for _, row := range rows {
			copied = append(copied, teamstats.Row{TeamID: row.TeamID, Values: maps.Clone(row.Values)})
		}
		out.teamStats[category] = copied
	}
	for _, item := range d.snapCounts {
		item.Weekly = maps.Clone(item.Weekly)
		out.snapCounts = append(out.snapCounts, item)
	}
	for _, item := range d.snapshots {
		item.Ranks = maps.Clone(item.Ranks)
		out.snapshots = append(out.snapshots, item)
	}
	return out
}

// Store binds the repositories to one dataset.
type Store struct {
	data *dataset
	now  func() time.Time
}

func (s *Store) Teams() team.Repository              { return &TeamRepository{data: s.data} }
func (s *Store) Players() player.Repository          { return &PlayerRepository{data: s.data} }
func (s *Store) Games() game.Repository              { return &GameRepository{data: s.data} }
func (s *Store) PlayerStats() playerstats.Repository { return &PlayerStatsRepository{data: s.data} }
func (s *Store) TeamStats() teamstats.Repository     { return &TeamStatsRepository{data: s.data} }
func (s *Store) SnapCounts() snapcount.Repository    { return &SnapCountRepository{data: s.data} }
func (s *Store) Odds() odds.Repository               { return &OddsRepository{data: s.data} }
func (s *Store) Rankings() ranking.Repository        { return &RankingRepository{data: s.data, now: s.now} }
