package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/riskibarqy/nfl-insights/internal/domain/player"
	"github.com/riskibarqy/nfl-insights/internal/domain/store"
	"github.com/riskibarqy/nfl-insights/internal/platform/logging"
)

type rosterPayload struct {
	Team struct {
		Abbreviation string `json:"abbreviation"`
	} `json:"team"`
	Athletes []struct {
		Position string          `json:"position"`
		Items    []rosterAthlete `json:"items"`
	} `json:"athletes"`
}

type rosterAthlete struct {
	ID          flexString `json:"id"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	DisplayName string     `json:"displayName"`
	Jersey      flexString `json:"jersey"`
	Experience  struct {
		Years flexString `json:"years"`
	} `json:"experience"`
	Position struct {
		Abbreviation string `json:"abbreviation"`
	} `json:"position"`
}

// rosterEntry is a tracked athlete with the team abbreviation it was listed
// under.
type rosterEntry struct {
	athlete          rosterAthlete
	teamAbbreviation string
}

// PlayerRef identifies a rostered player for the stats fan-out.
type PlayerRef struct {
	ExternalID       string
	FullName         string
	TeamAbbreviation string
}

// PlayersSource fans out over team ids of the roster feed and keeps the
// offensive skill positions.
type PlayersSource struct {
	urlTemplate string
	logger      *logging.Logger

	entries     []rosterEntry
	fetchFailed int
	exported    []player.Player
}

func NewPlayersSource(urlTemplate string, logger *logging.Logger) *PlayersSource {
	if logger == nil {
		logger = logging.Default()
	}
	return &PlayersSource{urlTemplate: urlTemplate, logger: logger}
}

func (s *PlayersSource) Name() string { return "players" }
func (s *PlayersSource) Stage() Stage { return StagePlayers }

func (s *PlayersSource) FetchAll(ctx context.Context, g FetchGroup, teamIDs []string) error {
	results, failed, err := fanOut(ctx, g, s.Name(), teamIDs, func(ctx context.Context, teamID string) (rosterPayload, error) {
		var payload rosterPayload
		err := g.Fetcher.FetchJSON(ctx, s.Name(), expandURL(s.urlTemplate, "team_id", teamID), &payload)
		return payload, err
	})
	if err != nil {
		return err
	}

	s.entries = s.entries[:0]
	for _, res := range results {
		abbreviation := strings.ToUpper(strings.TrimSpace(res.Value.Team.Abbreviation))
		for _, group := range res.Value.Athletes {
			if !strings.EqualFold(group.Position, "offense") {
				continue
			}
			for _, athlete := range group.Items {
				if !player.IsTrackedPosition(athlete.Position.Abbreviation) {
					continue
				}
				s.entries = append(s.entries, rosterEntry{athlete: athlete, teamAbbreviation: abbreviation})
			}
		}
	}
	s.fetchFailed = failed
	return nil
}

// Refs returns the tracked players in roster order.
func (s *PlayersSource) Refs() []PlayerRef {
	out := make([]PlayerRef, 0, len(s.entries))
	for _, entry := range s.entries {
		out = append(out, PlayerRef{
			ExternalID:       entry.athlete.ID.String(),
			FullName:         strings.TrimSpace(entry.athlete.DisplayName),
			TeamAbbreviation: entry.teamAbbreviation,
		})
	}
	return out
}

func (s *PlayersSource) Transform(ctx context.Context, st store.Store, idx *Index) (BatchResult, error) {
	result := BatchResult{Source: s.Name(), FetchFailed: s.fetchFailed}
	s.exported = s.exported[:0]

	for _, entry := range s.entries {
		owner, ok := idx.TeamByAbbreviation(entry.teamAbbreviation)
		if !ok {
			skipRecord(ctx, s.logger, &result, fmt.Errorf("%w: team %q", ErrUnresolved, entry.teamAbbreviation),
				"player", entry.athlete.DisplayName)
			continue
		}

		fullName := strings.TrimSpace(entry.athlete.DisplayName)
		item := player.Player{
			ExternalID: entry.athlete.ID.String(),
			TeamID:     owner.ID,
			Slug:       player.Slug(fullName, owner.Abbreviation),
			FirstName:  strings.TrimSpace(entry.athlete.FirstName),
			LastName:   strings.TrimSpace(entry.athlete.LastName),
			FullName:   fullName,
			Position:   strings.ToUpper(strings.TrimSpace(entry.athlete.Position.Abbreviation)),
			Jersey:     entry.athlete.Jersey.String(),
			Experience: entry.athlete.Experience.Years.Int(),
		}
		if err := item.Validate(); err != nil {
			skipRecord(ctx, s.logger, &result, err, "player", fullName)
			continue
		}

		saved, created, err := st.Players().UpsertByNameAndTeam(ctx, item)
		if err != nil {
			return result, fmt.Errorf("upsert player %s (%s): %w", fullName, owner.Abbreviation, err)
		}
		idx.PutPlayer(saved)
		s.exported = append(s.exported, saved)
		result.record(created)
	}
	return result, nil
}

func (s *PlayersSource) Export() Table {
	out := Table{Headers: []string{"external_id", "full_name", "position", "jersey", "experience", "slug"}}
	for _, item := range s.exported {
		out.Rows = append(out.Rows, []string{
			item.ExternalID, item.FullName, item.Position, item.Jersey, strconv.Itoa(item.Experience), item.Slug,
		})
	}
	return out
}
