package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/nfl-insights/internal/domain/game"
	"github.com/riskibarqy/nfl-insights/internal/domain/store"
	"github.com/riskibarqy/nfl-insights/internal/platform/logging"
)

type scoreboardPayload struct {
	Events []scoreboardEvent `json:"events"`
}

type scoreboardEvent struct {
	ID        flexString `json:"id"`
	Date      string     `json:"date"`
	Name      string     `json:"name"`
	ShortName string     `json:"shortName"`
	Season    struct {
		Year flexString `json:"year"`
		Type flexString `json:"type"`
	} `json:"season"`
	Week struct {
		Number flexString `json:"number"`
	} `json:"week"`
	Status struct {
		Type struct {
			Detail string `json:"detail"`
		} `json:"type"`
	} `json:"status"`
	Competitions []struct {
		Competitors []struct {
			HomeAway string     `json:"homeAway"`
			Score    flexString `json:"score"`
			Team     struct {
				Abbreviation string `json:"abbreviation"`
			} `json:"team"`
		} `json:"competitors"`
	} `json:"competitions"`
}

var eventDateLayouts = []string{time.RFC3339, "2006-01-02T15:04Z07:00", "2006-01-02T15:04Z"}

func parseEventDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("parse event date %q", raw)
}

// GamesSource fans out over week numbers of the scoreboard feed.
type GamesSource struct {
	urlTemplate string
	logger      *logging.Logger

	events      []scoreboardEvent
	fetchFailed int
	exported    []game.Game
}

func NewGamesSource(urlTemplate string, logger *logging.Logger) *GamesSource {
	if logger == nil {
		logger = logging.Default()
	}
	return &GamesSource{urlTemplate: urlTemplate, logger: logger}
}

func (s *GamesSource) Name() string { return "games" }
func (s *GamesSource) Stage() Stage { return StageGames }

// WeekIDs lists the weeks to sync: weeksBack weeks ending just before the
// upcoming week.
func WeekIDs(upcomingWeek, weeksBack int) []string {
	if weeksBack < 1 {
		weeksBack = 1
	}
	var out []string
	for week := upcomingWeek - weeksBack; week < upcomingWeek; week++ {
		if week < 1 {
			continue
		}
		out = append(out, strconv.Itoa(week))
	}
	return out
}

func (s *GamesSource) FetchAll(ctx context.Context, g FetchGroup, weeks []string) error {
	results, failed, err := fanOut(ctx, g, s.Name(), weeks, func(ctx context.Context, week string) (scoreboardPayload, error) {
		var payload scoreboardPayload
		err := g.Fetcher.FetchJSON(ctx, s.Name(), expandURL(s.urlTemplate, "week", week), &payload)
		return payload, err
	})
	if err != nil {
		return err
	}
	s.events = s.events[:0]
	for _, res := range results {
		s.events = append(s.events, res.Value.Events...)
	}
	s.fetchFailed = failed
	return nil
}

func (s *GamesSource) Transform(ctx context.Context, st store.Store, idx *Index) (BatchResult, error) {
	result := BatchResult{Source: s.Name(), FetchFailed: s.fetchFailed}
	s.exported = s.exported[:0]

	for _, event := range s.events {
		item, err := s.toGame(event, idx)
		if err != nil {
			skipRecord(ctx, s.logger, &result, err, "event", event.ID.String())
			continue
		}
		if err := item.Validate(); err != nil {
			skipRecord(ctx, s.logger, &result, err, "event", item.Event)
			continue
		}

		saved, created, err := st.Games().UpsertByEvent(ctx, item)
		if err != nil {
			return result, fmt.Errorf("upsert game event=%s: %w", item.Event, err)
		}
		idx.PutGame(saved)
		s.exported = append(s.exported, saved)
		result.record(created)
	}
	return result, nil
}

func (s *GamesSource) toGame(event scoreboardEvent, idx *Index) (game.Game, error) {
	date, err := parseEventDate(event.Date)
	if err != nil {
		return game.Game{}, err
	}

	item := game.Game{
		Event:      event.ID.String(),
		Date:       date,
		Name:       event.Name,
		ShortName:  event.ShortName,
		SeasonYear: event.Season.Year.Int(),
		SeasonType: event.Season.Type.Int(),
		Week:       event.Week.Number.Int(),
		Status:     event.Status.Type.Detail,
	}

	for _, comp := range event.Competitions {
		for _, competitor := range comp.Competitors {
			resolved, ok := idx.TeamByAbbreviation(competitor.Team.Abbreviation)
			if !ok {
				return game.Game{}, fmt.Errorf("%w: team %q", ErrUnresolved, competitor.Team.Abbreviation)
			}
			switch strings.ToLower(competitor.HomeAway) {
			case game.SideHome:
				item.HomeTeamID = resolved.ID
				item.HomeScore = competitor.Score.Int()
			case game.SideAway:
				item.AwayTeamID = resolved.ID
				item.AwayScore = competitor.Score.Int()
			}
		}
	}
	if item.HomeTeamID == 0 || item.AwayTeamID == 0 {
		return game.Game{}, fmt.Errorf("%w: event is missing a home or away team", ErrUnresolved)
	}
	return item, nil
}

func (s *GamesSource) Export() Table {
	out := Table{Headers: []string{"event", "date", "week", "short_name", "home_score", "away_score", "status"}}
	for _, item := range s.exported {
		out.Rows = append(out.Rows, []string{
			item.Event,
			item.Date.Format(time.RFC3339),
			strconv.Itoa(item.Week),
			item.ShortName,
			strconv.Itoa(item.HomeScore),
			strconv.Itoa(item.AwayScore),
			item.Status,
		})
	}
	return out
}
