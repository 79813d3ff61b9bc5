package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/nfl-insights/internal/domain/ranking"
	"github.com/riskibarqy/nfl-insights/internal/domain/store"
	"github.com/riskibarqy/nfl-insights/internal/domain/team"
	"github.com/riskibarqy/nfl-insights/internal/domain/teamstats"
	"github.com/riskibarqy/nfl-insights/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/nfl-insights/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullRow(category teamstats.Category, teamID int64, overrides map[string]float64) teamstats.Row {
	def, _ := teamstats.Lookup(category)
	values := make(map[string]float64, len(def.Columns))
	for _, col := range def.Columns {
		values[col] = 1
	}
	for col, v := range overrides {
		values[col] = v
	}
	return teamstats.Row{TeamID: teamID, Values: values}
}

func seedTeams(t *testing.T, db *memory.DB, abbreviations ...string) []int64 {
	t.Helper()
	ids := make([]int64, 0, len(abbreviations))
	err := db.WithinTx(context.Background(), func(ctx context.Context, s store.Store) error {
		for _, abbr := range abbreviations {
			saved, _, err := s.Teams().UpsertByAbbreviation(ctx, team.Team{Abbreviation: abbr, Nickname: abbr})
			if err != nil {
				return err
			}
			ids = append(ids, saved.ID)
		}
		return nil
	})
	require.NoError(t, err)
	return ids
}

func snapshotsByTeam(t *testing.T, db *memory.DB) map[int64]ranking.Snapshot {
	t.Helper()
	items, err := db.Snapshot().Rankings().List(context.Background())
	require.NoError(t, err)
	out := make(map[int64]ranking.Snapshot, len(items))
	for _, item := range items {
		out[item.TeamID] = item
	}
	return out
}

func TestRankServiceRecompute_DenseRanksAndMergesCategories(t *testing.T) {
	t.Parallel()

	db := memory.NewDB()
	ids := seedTeams(t, db, "GB", "KC", "BUF")
	gb, kc, buf := ids[0], ids[1], ids[2]

	err := db.WithinTx(context.Background(), func(ctx context.Context, s store.Store) error {
		rows := []struct {
			category teamstats.Category
			row      teamstats.Row
		}{
			{teamstats.OffensePassing, fullRow(teamstats.OffensePassing, gb, map[string]float64{"pass_yards": 300, "pass_touchdowns": 2})},
			{teamstats.OffensePassing, fullRow(teamstats.OffensePassing, kc, map[string]float64{"pass_yards": 450, "pass_touchdowns": 3})},
			{teamstats.OffensePassing, fullRow(teamstats.OffensePassing, buf, map[string]float64{"pass_yards": 450, "pass_touchdowns": 3})},
			{teamstats.DefensePassing, fullRow(teamstats.DefensePassing, gb, map[string]float64{"pass_yards": 180})},
			{teamstats.DefensePassing, fullRow(teamstats.DefensePassing, kc, map[string]float64{"pass_yards": 240})},
			{teamstats.DefensePassing, fullRow(teamstats.DefensePassing, buf, map[string]float64{"pass_yards": 210})},
			{teamstats.CoverageScheme, fullRow(teamstats.CoverageScheme, gb, map[string]float64{"man_rate": 40})},
			{teamstats.CoverageScheme, fullRow(teamstats.CoverageScheme, kc, map[string]float64{"man_rate": 25})},
		}
		for _, item := range rows {
			if _, err := s.TeamStats().UpsertByTeam(ctx, item.category, item.row); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	var events []CommitEvent
	svc := NewRankService(db, 2, nil, logging.NewNop(), CommitListenerFunc(func(_ context.Context, event CommitEvent) error {
		events = append(events, event)
		return errors.New("cache unavailable")
	}))

	result, err := svc.Recompute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, result.Created)
	require.Len(t, events, 1)
	assert.Equal(t, JobRank, events[0].Job)

	snapshots := snapshotsByTeam(t, db)
	require.Len(t, snapshots, 3)

	assert.Equal(t, 2, snapshots[gb].Ranks["off_pass_yards_rank"])
	assert.Equal(t, 1, snapshots[kc].Ranks["off_pass_yards_rank"])
	assert.Equal(t, 1, snapshots[buf].Ranks["off_pass_yards_rank"])

	// "allowed" metrics rank ascending
	assert.Equal(t, 1, snapshots[gb].Ranks["def_pass_yards_rank"])
	assert.Equal(t, 3, snapshots[kc].Ranks["def_pass_yards_rank"])
	assert.Equal(t, 2, snapshots[buf].Ranks["def_pass_yards_rank"])

	assert.Equal(t, 1, snapshots[gb].Ranks["man_rate_rank"])
	assert.Equal(t, 2, snapshots[kc].Ranks["man_rate_rank"])
	_, ranked := snapshots[buf].Ranks["man_rate_rank"]
	assert.False(t, ranked, "team absent from a category must not get its fields")
}

func TestRankServiceRecompute_KeepsPriorFieldsOfAbsentCategories(t *testing.T) {
	t.Parallel()

	db := memory.NewDB()
	db.SetClock(func() time.Time { return time.Date(2024, 9, 20, 0, 0, 0, 0, time.UTC) })
	ids := seedTeams(t, db, "GB", "KC")
	gb, kc := ids[0], ids[1]

	err := db.WithinTx(context.Background(), func(ctx context.Context, s store.Store) error {
		if _, err := s.Rankings().UpsertRanks(ctx, gb, map[string]int{"man_rate_rank": 7}); err != nil {
			return err
		}
		for teamID, yards := range map[int64]float64{gb: 120, kc: 95} {
			row := fullRow(teamstats.OffenseRushing, teamID, map[string]float64{"rush_yards": yards})
			if _, err := s.TeamStats().UpsertByTeam(ctx, teamstats.OffenseRushing, row); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	result, err := NewRankService(db, 0, nil, logging.NewNop()).Recompute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 1, result.Created)

	snapshots := snapshotsByTeam(t, db)
	assert.Equal(t, 7, snapshots[gb].Ranks["man_rate_rank"])
	assert.Equal(t, 1, snapshots[gb].Ranks["off_rush_yards_rank"])
	assert.Equal(t, 2, snapshots[kc].Ranks["off_rush_yards_rank"])
	assert.Equal(t, time.Date(2024, 9, 20, 0, 0, 0, 0, time.UTC), snapshots[kc].UpdatedAt)
}

func TestMergeRanks_DoesNotOverwriteAcrossCategories(t *testing.T) {
	t.Parallel()

	merged := mergeRanks([]categoryRanks{
		{1: {"off_pass_yards_rank": 2}},
		{1: {"man_rate_rank": 4}, 2: {"man_rate_rank": 1}},
	})
	assert.Equal(t, map[int64]map[string]int{
		1: {"off_pass_yards_rank": 2, "man_rate_rank": 4},
		2: {"man_rate_rank": 1},
	}, merged)
}
