package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/riskibarqy/nfl-insights/internal/domain/odds"
	"github.com/riskibarqy/nfl-insights/internal/domain/store"
	"github.com/riskibarqy/nfl-insights/internal/platform/logging"
)

type oddsPayload struct {
	Lines []struct {
		DisplayValue string `json:"displayValue"`
		Events       []struct {
			Competitions []struct {
				Competitors []oddsCompetitor `json:"competitors"`
			} `json:"competitions"`
		} `json:"events"`
	} `json:"lines"`
}

type oddsCompetitor struct {
	Team struct {
		Abbreviation string `json:"abbreviation"`
	} `json:"team"`
	Odds struct {
		Spread    *oddsMarket `json:"spread"`
		Moneyline *oddsMarket `json:"moneyline"`
		Total     *oddsMarket `json:"total"`
	} `json:"odds"`
}

type oddsMarket struct {
	DisplayName string    `json:"displayName"`
	Open        oddsPrice `json:"open"`
	Close       oddsPrice `json:"close"`
}

type oddsPrice struct {
	Line flexString `json:"line"`
	Odds flexString `json:"odds"`
}

// OddsSource reads the first line set of the odds feed.
type OddsSource struct {
	url    string
	logger *logging.Logger

	competitors []oddsCompetitor
	exported    []odds.Line
}

func NewOddsSource(url string, logger *logging.Logger) *OddsSource {
	if logger == nil {
		logger = logging.Default()
	}
	return &OddsSource{url: url, logger: logger}
}

func (s *OddsSource) Name() string { return "odds" }
func (s *OddsSource) Stage() Stage { return StageOdds }

func (s *OddsSource) Fetch(ctx context.Context, f Fetcher) error {
	var payload oddsPayload
	if err := f.FetchJSON(ctx, s.Name(), s.url, &payload); err != nil {
		return err
	}
	s.competitors = s.competitors[:0]
	if len(payload.Lines) == 0 {
		return nil
	}
	for _, event := range payload.Lines[0].Events {
		for _, comp := range event.Competitions {
			s.competitors = append(s.competitors, comp.Competitors...)
		}
	}
	return nil
}

func (s *OddsSource) Transform(ctx context.Context, st store.Store, idx *Index) (BatchResult, error) {
	result := BatchResult{Source: s.Name()}
	s.exported = s.exported[:0]

	for _, competitor := range s.competitors {
		owner, ok := idx.TeamByAbbreviation(competitor.Team.Abbreviation)
		if !ok {
			skipRecord(ctx, s.logger, &result, fmt.Errorf("%w: team %q", ErrUnresolved, competitor.Team.Abbreviation))
			continue
		}

		markets := []struct {
			name   string
			market *oddsMarket
		}{
			{odds.MarketSpread, competitor.Odds.Spread},
			{odds.MarketMoneyline, competitor.Odds.Moneyline},
			{odds.MarketTotal, competitor.Odds.Total},
		}
		for _, m := range markets {
			if m.market == nil {
				continue
			}
			line := odds.Line{
				TeamID:      owner.ID,
				Market:      m.name,
				DisplayName: m.market.DisplayName,
				OpenLine:    m.market.Open.Line.String(),
				OpenOdds:    m.market.Open.Odds.String(),
				CloseLine:   m.market.Close.Line.String(),
				CloseOdds:   m.market.Close.Odds.String(),
			}
			if err := line.Validate(); err != nil {
				skipRecord(ctx, s.logger, &result, err, "team", owner.Abbreviation, "market", m.name)
				continue
			}
			created, err := st.Odds().Upsert(ctx, line)
			if err != nil {
				return result, fmt.Errorf("upsert %s odds team=%s: %w", m.name, owner.Abbreviation, err)
			}
			s.exported = append(s.exported, line)
			result.record(created)
		}
	}
	return result, nil
}

func (s *OddsSource) Export() Table {
	out := Table{Headers: []string{"team_id", "market", "display_name", "open_line", "open_odds", "close_line", "close_odds"}}
	for _, item := range s.exported {
		out.Rows = append(out.Rows, []string{
			strconv.FormatInt(item.TeamID, 10), item.Market, item.DisplayName,
			item.OpenLine, item.OpenOdds, item.CloseLine, item.CloseOdds,
		})
	}
	return out
}
