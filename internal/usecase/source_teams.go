package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/nfl-insights/internal/domain/store"
	"github.com/riskibarqy/nfl-insights/internal/domain/team"
	"github.com/riskibarqy/nfl-insights/internal/platform/logging"
)

type standingsPayload struct {
	Content struct {
		Standings struct {
			Groups []standingsConference `json:"groups"`
		} `json:"standings"`
	} `json:"content"`
}

type standingsConference struct {
	Abbreviation string              `json:"abbreviation"`
	Groups       []standingsDivision `json:"groups"`
}

type standingsDivision struct {
	Abbreviation string `json:"abbreviation"`
	Standings    struct {
		Entries []struct {
			Team standingsTeam `json:"team"`
		} `json:"entries"`
	} `json:"standings"`
}

type standingsTeam struct {
	ID           flexString `json:"id"`
	DisplayName  string     `json:"displayName"`
	Name         string     `json:"name"`
	Abbreviation string     `json:"abbreviation"`
}

// TeamsSource reads the conference/division standings feed. It is the root
// of the fetch chain: its team ids drive the roster fan-out.
type TeamsSource struct {
	url    string
	logger *logging.Logger

	teams []team.Team
}

func NewTeamsSource(url string, logger *logging.Logger) *TeamsSource {
	if logger == nil {
		logger = logging.Default()
	}
	return &TeamsSource{url: url, logger: logger}
}

func (s *TeamsSource) Name() string { return "teams" }
func (s *TeamsSource) Stage() Stage { return StageTeams }

func (s *TeamsSource) Fetch(ctx context.Context, f Fetcher) error {
	var payload standingsPayload
	if err := f.FetchJSON(ctx, s.Name(), s.url, &payload); err != nil {
		return err
	}
	s.teams = parseStandings(payload)
	return nil
}

func parseStandings(payload standingsPayload) []team.Team {
	var out []team.Team
	for _, conference := range payload.Content.Standings.Groups {
		for _, division := range conference.Groups {
			for _, entry := range division.Standings.Entries {
				fullName := strings.TrimSpace(entry.Team.DisplayName)
				out = append(out, team.Team{
					ExternalID:   entry.Team.ID.String(),
					Slug:         team.Slug(fullName),
					FullName:     fullName,
					Nickname:     strings.TrimSpace(entry.Team.Name),
					Abbreviation: strings.ToUpper(strings.TrimSpace(entry.Team.Abbreviation)),
					Conference:   strings.TrimSpace(conference.Abbreviation),
					Division:     strings.TrimSpace(division.Abbreviation),
				})
			}
		}
	}
	return out
}

// ExternalIDs returns the provider team ids in feed order.
func (s *TeamsSource) ExternalIDs() []string {
	out := make([]string, 0, len(s.teams))
	for _, item := range s.teams {
		if item.ExternalID == "" {
			continue
		}
		out = append(out, item.ExternalID)
	}
	return out
}

func (s *TeamsSource) Transform(ctx context.Context, st store.Store, idx *Index) (BatchResult, error) {
	result := BatchResult{Source: s.Name()}
	for _, item := range s.teams {
		if err := item.Validate(); err != nil {
			skipRecord(ctx, s.logger, &result, err, "abbreviation", item.Abbreviation)
			continue
		}
		if holder, ok := idx.TeamBySlug(item.Slug); ok && !strings.EqualFold(holder.Abbreviation, item.Abbreviation) {
			err := fmt.Errorf("%w: slug=%s held by %s", team.ErrSlugTaken, item.Slug, holder.Abbreviation)
			skipRecord(ctx, s.logger, &result, err, "abbreviation", item.Abbreviation)
			continue
		}
		saved, created, err := st.Teams().UpsertByAbbreviation(ctx, item)
		if err != nil {
			return result, fmt.Errorf("upsert team %s: %w", item.Abbreviation, err)
		}
		idx.PutTeam(saved)
		result.record(created)
	}
	return result, nil
}

func (s *TeamsSource) Export() Table {
	out := Table{Headers: []string{"abbreviation", "nickname", "full_name", "slug", "conference", "division"}}
	for _, item := range s.teams {
		out.Rows = append(out.Rows, []string{item.Abbreviation, item.Nickname, item.FullName, item.Slug, item.Conference, item.Division})
	}
	return out
}
