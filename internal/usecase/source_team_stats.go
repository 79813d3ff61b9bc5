package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/riskibarqy/nfl-insights/internal/domain/store"
	"github.com/riskibarqy/nfl-insights/internal/domain/teamstats"
	"github.com/riskibarqy/nfl-insights/internal/platform/htmltable"
	"github.com/riskibarqy/nfl-insights/internal/platform/logging"
)

// categoryLayout describes how one scraped page maps onto a category table.
type categoryLayout struct {
	provider string
	// team is the header of the column naming the team.
	team string
	// columns maps page headers to table columns.
	columns map[string]string
}

var nflPassingHeaders = map[string]string{
	"Att":     "pass_attempts",
	"Cmp":     "completions",
	"Cmp %":   "completion_pct",
	"Yds/Att": "yards_per_attempt",
	"TD":      "pass_touchdowns",
	"INT":     "interceptions",
	"Rate":    "pass_rating",
	"Sck":     "sacks",
}

var nflRushingHeaders = map[string]string{
	"Att":      "rush_attempts",
	"Rush Yds": "rush_yards",
	"YPC":      "yards_per_carry",
	"TD":       "rush_touchdowns",
	"Rush FUM": "rush_fumbles",
}

var nflReceivingHeaders = map[string]string{
	"Rec":     "receptions",
	"Yds":     "rec_yards",
	"Yds/Rec": "yards_per_reception",
	"TD":      "rec_touchdowns",
	"Rec FUM": "rec_fumbles",
}

var sumerHeaders = map[string]string{
	"Season":     "season",
	"EPA/Play":   "epa_per_play",
	"Total EPA":  "total_epa",
	"Success %":  "success_rate",
	"Scramble %": "scramble_rate",
	"Int %":      "interception_rate",
}

func withHeaders(base map[string]string, extra map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

var categoryLayouts = map[teamstats.Category]categoryLayout{
	teamstats.OffensePassing: {
		provider: htmltable.SourceNFL,
		team:     "Team",
		columns:  withHeaders(nflPassingHeaders, map[string]string{"Pass Yds": "pass_yards", "SckY": "sack_yards"}),
	},
	teamstats.OffenseRushing: {provider: htmltable.SourceNFL, team: "Team", columns: nflRushingHeaders},
	teamstats.OffenseReceiving: {
		provider: htmltable.SourceNFL,
		team:     "Team",
		columns:  nflReceivingHeaders,
	},
	teamstats.DefensePassing: {
		provider: htmltable.SourceNFL,
		team:     "Team",
		columns:  withHeaders(nflPassingHeaders, map[string]string{"Yds": "pass_yards"}),
	},
	teamstats.DefenseRushing: {provider: htmltable.SourceNFL, team: "Team", columns: nflRushingHeaders},
	teamstats.DefenseReceiving: {
		provider: htmltable.SourceNFL,
		team:     "Team",
		columns:  withHeaders(nflReceivingHeaders, map[string]string{"PDef": "passes_defended"}),
	},
	teamstats.AdvancedOffense: {
		provider: htmltable.SourceSumer,
		team:     "Team",
		columns: withHeaders(sumerHeaders, map[string]string{
			"EPA/Pass": "epa_per_pass",
			"EPA/Rush": "epa_per_rush",
			"ADoT":     "average_depth_of_target",
		}),
	},
	teamstats.AdvancedDefense: {
		provider: htmltable.SourceSumer,
		team:     "Team",
		columns: withHeaders(sumerHeaders, map[string]string{
			"EPA/Pass": "epa_allowed_per_pass",
			"EPA/Rush": "epa_allowed_per_rush",
			"ADoT":     "average_depth_of_target_against",
		}),
	},
	teamstats.CoverageScheme: {
		provider: htmltable.SourceSharp,
		team:     "Team",
		columns: map[string]string{
			"Man Rate":           "man_rate",
			"Zone Rate":          "zone_rate",
			"Middle Closed Rate": "middle_closed_rate",
			"Middle Open Rate":   "middle_open_rate",
		},
	},
	teamstats.PlayCalling: {
		provider: htmltable.SourceSharp,
		team:     "Team",
		columns: map[string]string{
			"Motion Rate":      "motion_rate",
			"Play Action Rate": "play_action_rate",
			"AirYards/Att":     "air_yards_per_attempt",
			"Shotgun Rate":     "shotgun_rate",
			"NoHuddle Rate":    "nohuddle_rate",
		},
	},
	teamstats.CoverageByPosition: {
		provider: htmltable.SourceSharp,
		team:     "Team",
		columns: map[string]string{
			"YPT Allowed WR":      "yards_allowed_wr",
			"YPT Allowed TE":      "yards_allowed_te",
			"YPT Allowed RB":      "yards_allowed_rb",
			"YPT Allowed Outside": "yards_allowed_outside",
			"YPT Allowed Slot":    "yards_allowed_slot",
		},
	},
}

// TeamCategorySource scrapes one per-team statistic table.
type TeamCategorySource struct {
	category teamstats.Category
	def      teamstats.Definition
	layout   categoryLayout
	url      string
	logger   *logging.Logger

	records  []htmltable.Record
	exported []teamstats.Row
}

// NewTeamCategorySource returns the source for category. provider overrides
// the canonicalizer used for team labels; empty keeps the default for the
// category.
func NewTeamCategorySource(category teamstats.Category, url, provider string, logger *logging.Logger) (*TeamCategorySource, error) {
	def, ok := teamstats.Lookup(category)
	if !ok {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, category)
	}
	layout, ok := categoryLayouts[category]
	if !ok {
		return nil, fmt.Errorf("%w: no page layout for category %q", ErrInvalidInput, category)
	}
	if provider != "" {
		layout.provider = provider
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &TeamCategorySource{category: category, def: def, layout: layout, url: url, logger: logger}, nil
}

func (s *TeamCategorySource) Name() string { return string(s.category) }
func (s *TeamCategorySource) Stage() Stage { return StageTeamCategories }

func (s *TeamCategorySource) Fetch(ctx context.Context, f Fetcher) error {
	document, err := f.FetchHTML(ctx, s.Name(), s.url)
	if err != nil {
		return err
	}
	s.Load(document)
	return nil
}

// Load extracts records from an already fetched page.
func (s *TeamCategorySource) Load(document string) {
	s.records = htmltable.ExtractFlat(document, s.layout.provider)
}

func (s *TeamCategorySource) Transform(ctx context.Context, st store.Store, idx *Index) (BatchResult, error) {
	result := BatchResult{Source: s.Name()}
	s.exported = s.exported[:0]

	for _, record := range s.records {
		label, _ := record.Get(s.layout.team)
		owner, ok := idx.TeamByLabel(label)
		if !ok {
			skipRecord(ctx, s.logger, &result, fmt.Errorf("%w: team %q", ErrUnresolved, label))
			continue
		}

		row, err := s.toRow(record)
		if err != nil {
			skipRecord(ctx, s.logger, &result, err, "team", owner.Abbreviation)
			continue
		}
		row.TeamID = owner.ID
		if err := s.def.Validate(row); err != nil {
			skipRecord(ctx, s.logger, &result, err, "team", owner.Abbreviation)
			continue
		}

		created, err := st.TeamStats().UpsertByTeam(ctx, s.category, row)
		if err != nil {
			return result, fmt.Errorf("upsert %s stats team=%s: %w", s.category, owner.Abbreviation, err)
		}
		s.exported = append(s.exported, row)
		result.record(created)
	}
	return result, nil
}

func (s *TeamCategorySource) toRow(record htmltable.Record) (teamstats.Row, error) {
	row := teamstats.Row{Values: make(map[string]float64, len(s.layout.columns))}
	for header, column := range s.layout.columns {
		raw, ok := record.Get(header)
		if !ok {
			return row, fmt.Errorf("missing column %q", header)
		}
		value, err := parseStat(raw)
		if err != nil {
			return row, fmt.Errorf("%s: %w", header, err)
		}
		row.Values[column] = value
	}
	return row, nil
}

func (s *TeamCategorySource) Export() Table {
	out := Table{Headers: append([]string{"team_id"}, s.def.Columns...)}
	for _, row := range s.exported {
		line := []string{strconv.FormatInt(row.TeamID, 10)}
		for _, col := range s.def.Columns {
			line = append(line, strconv.FormatFloat(row.Values[col], 'f', -1, 64))
		}
		out.Rows = append(out.Rows, line)
	}
	return out
}
