package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/nfl-insights/internal/domain/ranking"
	"github.com/riskibarqy/nfl-insights/internal/domain/store"
	"github.com/riskibarqy/nfl-insights/internal/domain/teamstats"
	rankingmock "github.com/riskibarqy/nfl-insights/internal/mocks/domain/ranking"
	teamstatsmock "github.com/riskibarqy/nfl-insights/internal/mocks/domain/teamstats"
	"github.com/riskibarqy/nfl-insights/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

// mockedStore serves only the repositories the rank service touches.
type mockedStore struct {
	store.Store
	teamStats teamstats.Repository
	rankings  ranking.Repository
}

func (s mockedStore) TeamStats() teamstats.Repository { return s.teamStats }
func (s mockedStore) Rankings() ranking.Repository    { return s.rankings }

type directUnitOfWork struct {
	store store.Store
}

func (u directUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, s store.Store) error) error {
	return fn(ctx, u.store)
}

func TestRankService_Recompute_UpsertsMergedRanksUsingMockery(t *testing.T) {
	t.Parallel()

	statsRepo := teamstatsmock.NewRepository(t)
	rankRepo := rankingmock.NewRepository(t)

	for _, category := range teamstats.Categories() {
		var rows []teamstats.Row
		if category == teamstats.OffenseRushing {
			rows = []teamstats.Row{
				fullRow(category, 1, map[string]float64{"rush_yards": 120}),
				fullRow(category, 2, map[string]float64{"rush_yards": 95}),
			}
		}
		statsRepo.On("List", mock.Anything, category).Return(rows, nil).Once()
	}
	rankRepo.
		On("UpsertRanks", mock.Anything, int64(1), map[string]int{
			"off_rush_yards_rank": 1, "off_rush_tds_rank": 1, "off_rush_attempts_rank": 1,
		}).
		Return(true, nil).
		Once()
	rankRepo.
		On("UpsertRanks", mock.Anything, int64(2), map[string]int{
			"off_rush_yards_rank": 2, "off_rush_tds_rank": 1, "off_rush_attempts_rank": 1,
		}).
		Return(false, nil).
		Once()

	svc := NewRankService(directUnitOfWork{store: mockedStore{teamStats: statsRepo, rankings: rankRepo}}, 2, nil, logging.NewNop())
	result, err := svc.Recompute(context.Background())
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if result.Created != 1 || result.Updated != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestRankService_Recompute_ListErrorSkipsUpsertsUsingMockery(t *testing.T) {
	t.Parallel()

	statsRepo := teamstatsmock.NewRepository(t)
	rankRepo := rankingmock.NewRepository(t)

	statsRepo.
		On("List", mock.Anything, teamstats.OffensePassing).
		Return(nil, errors.New("relation does not exist")).
		Once()

	svc := NewRankService(directUnitOfWork{store: mockedStore{teamStats: statsRepo, rankings: rankRepo}}, 1, nil, logging.NewNop())
	if _, err := svc.Recompute(context.Background()); err == nil {
		t.Fatalf("expected recompute to fail")
	}
	rankRepo.AssertNotCalled(t, "UpsertRanks", mock.Anything, mock.Anything, mock.Anything)
}
