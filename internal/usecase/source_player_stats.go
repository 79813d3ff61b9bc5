package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/riskibarqy/nfl-insights/internal/domain/playerstats"
	"github.com/riskibarqy/nfl-insights/internal/domain/store"
	"github.com/riskibarqy/nfl-insights/internal/platform/logging"
)

type gameLogPayload struct {
	Names       []string `json:"names"`
	SeasonTypes []struct {
		Categories []struct {
			Events []struct {
				EventID flexString   `json:"eventId"`
				Stats   []flexString `json:"stats"`
			} `json:"events"`
		} `json:"categories"`
	} `json:"seasonTypes"`
}

type gameLog struct {
	ref     PlayerRef
	payload gameLogPayload
}

// PlayerStatsSource fans out over the player ids produced by the roster
// fan-out and stores one stat line per (player, game).
type PlayerStatsSource struct {
	urlTemplate string
	logger      *logging.Logger

	logs        []gameLog
	fetchFailed int
	exported    []exportedStatLine
}

type exportedStatLine struct {
	player string
	event  string
	stats  playerstats.GameStats
}

func NewPlayerStatsSource(urlTemplate string, logger *logging.Logger) *PlayerStatsSource {
	if logger == nil {
		logger = logging.Default()
	}
	return &PlayerStatsSource{urlTemplate: urlTemplate, logger: logger}
}

func (s *PlayerStatsSource) Name() string { return "player_stats" }
func (s *PlayerStatsSource) Stage() Stage { return StagePlayerStats }

// FetchRefs fetches one game log per rostered player. Each ref carries the
// roster identity used to reconcile the log later.
func (s *PlayerStatsSource) FetchRefs(ctx context.Context, g FetchGroup, refs []PlayerRef) error {
	byID := make(map[string]PlayerRef, len(refs))
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		if ref.ExternalID == "" {
			continue
		}
		if _, dup := byID[ref.ExternalID]; dup {
			continue
		}
		byID[ref.ExternalID] = ref
		ids = append(ids, ref.ExternalID)
	}

	results, failed, err := fanOut(ctx, g, s.Name(), ids, func(ctx context.Context, playerID string) (gameLogPayload, error) {
		var payload gameLogPayload
		err := g.Fetcher.FetchJSON(ctx, s.Name(), expandURL(s.urlTemplate, "player_id", playerID), &payload)
		return payload, err
	})
	if err != nil {
		return err
	}

	s.logs = s.logs[:0]
	for _, res := range results {
		s.logs = append(s.logs, gameLog{ref: byID[res.ID], payload: res.Value})
	}
	s.fetchFailed = failed
	return nil
}

func (s *PlayerStatsSource) Transform(ctx context.Context, st store.Store, idx *Index) (BatchResult, error) {
	result := BatchResult{Source: s.Name(), FetchFailed: s.fetchFailed}
	s.exported = s.exported[:0]
	fields := playerstats.Fields()

	for _, log := range s.logs {
		owner, ok := idx.TeamByAbbreviation(log.ref.TeamAbbreviation)
		if !ok {
			skipRecord(ctx, s.logger, &result, fmt.Errorf("%w: team %q", ErrUnresolved, log.ref.TeamAbbreviation),
				"player", log.ref.FullName)
			continue
		}
		rostered, ok := idx.Player(log.ref.FullName, owner.ID)
		if !ok {
			skipRecord(ctx, s.logger, &result, fmt.Errorf("%w: player %q", ErrUnresolved, log.ref.FullName),
				"team", owner.Abbreviation)
			continue
		}

		for _, seasonType := range log.payload.SeasonTypes {
			for _, category := range seasonType.Categories {
				gamesPlayed := len(category.Events)
				for _, event := range category.Events {
					matched, ok := idx.GameByEvent(event.EventID.String())
					if !ok {
						skipRecord(ctx, s.logger, &result, fmt.Errorf("%w: game event %q", ErrUnresolved, event.EventID),
							"player", log.ref.FullName)
						continue
					}

					line, err := buildStatLine(log.payload.Names, event.Stats, fields)
					if err != nil {
						skipRecord(ctx, s.logger, &result, err, "player", log.ref.FullName, "event", event.EventID.String())
						continue
					}
					line.PlayerID = rostered.ID
					line.GameID = matched.ID
					line.GamesPlayed = gamesPlayed
					if err := line.Validate(); err != nil {
						skipRecord(ctx, s.logger, &result, err, "player", log.ref.FullName, "event", matched.Event)
						continue
					}

					created, err := st.PlayerStats().UpsertByPlayerAndGame(ctx, line)
					if err != nil {
						return result, fmt.Errorf("upsert player stats player=%d game=%d: %w", line.PlayerID, line.GameID, err)
					}
					s.exported = append(s.exported, exportedStatLine{player: rostered.FullName, event: matched.Event, stats: line})
					result.record(created)
				}
			}
		}
	}
	return result, nil
}

// buildStatLine zips the label list with one event's values. Labels absent
// from the event read as zero; isStarter defaults to true.
func buildStatLine(names []string, values []flexString, fields []playerstats.Field) (playerstats.GameStats, error) {
	raw := make(map[string]string, len(names))
	for i, name := range names {
		if i >= len(values) {
			break
		}
		raw[name] = values[i].String()
	}

	line := playerstats.GameStats{IsStarter: true}
	if v, ok := raw["isStarter"]; ok && v != "" {
		starter, err := strconv.ParseBool(strings.ToLower(v))
		if err != nil {
			return line, fmt.Errorf("parse isStarter %q: %w", v, err)
		}
		line.IsStarter = starter
	}
	for _, field := range fields {
		value, err := parseStat(raw[field.Label])
		if err != nil {
			return line, err
		}
		field.Set(&line, value)
	}
	return line, nil
}

func (s *PlayerStatsSource) Export() Table {
	out := Table{Headers: []string{"player", "event", "games_played", "starter", "pass_yards", "rush_yards", "rec_yards"}}
	for _, item := range s.exported {
		out.Rows = append(out.Rows, []string{
			item.player,
			item.event,
			strconv.Itoa(item.stats.GamesPlayed),
			strconv.FormatBool(item.stats.IsStarter),
			strconv.FormatFloat(item.stats.PassYards, 'f', -1, 64),
			strconv.FormatFloat(item.stats.RushYards, 'f', -1, 64),
			strconv.FormatFloat(item.stats.RecYards, 'f', -1, 64),
		})
	}
	return out
}
