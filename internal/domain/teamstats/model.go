package teamstats

import (
	"fmt"
	"sort"
)

// Category names one of the per-team statistic tables.
type Category string

const (
	OffensePassing     Category = "offense_passing"
	OffenseRushing     Category = "offense_rushing"
	OffenseReceiving   Category = "offense_receiving"
	DefensePassing     Category = "defense_passing"
	DefenseRushing     Category = "defense_rushing"
	DefenseReceiving   Category = "defense_receiving"
	AdvancedOffense    Category = "advanced_offense"
	AdvancedDefense    Category = "advanced_defense"
	CoverageScheme     Category = "coverage_scheme"
	PlayCalling        Category = "play_calling"
	CoverageByPosition Category = "coverage_by_position"
)

// Definition describes the table backing a category and its value columns.
type Definition struct {
	Category Category
	Table    string
	Columns  []string
}

// Row is one team's values for a category, keyed by column.
type Row struct {
	TeamID int64
	Values map[string]float64
}

var definitions = map[Category]Definition{
	OffensePassing: {
		Category: OffensePassing,
		Table:    "team_offense_passing_stats",
		Columns: []string{
			"pass_attempts", "completions", "completion_pct", "yards_per_attempt", "pass_yards",
			"pass_touchdowns", "interceptions", "pass_rating", "sacks", "sack_yards",
		},
	},
	OffenseRushing: {
		Category: OffenseRushing,
		Table:    "team_offense_rushing_stats",
		Columns:  []string{"rush_attempts", "rush_yards", "yards_per_carry", "rush_touchdowns", "rush_fumbles"},
	},
	OffenseReceiving: {
		Category: OffenseReceiving,
		Table:    "team_offense_receiving_stats",
		Columns:  []string{"receptions", "rec_yards", "yards_per_reception", "rec_touchdowns", "rec_fumbles"},
	},
	DefensePassing: {
		Category: DefensePassing,
		Table:    "team_defense_passing_stats",
		Columns: []string{
			"pass_attempts", "completions", "completion_pct", "yards_per_attempt", "pass_yards",
			"pass_touchdowns", "interceptions", "pass_rating", "sacks",
		},
	},
	DefenseRushing: {
		Category: DefenseRushing,
		Table:    "team_defense_rushing_stats",
		Columns:  []string{"rush_attempts", "rush_yards", "yards_per_carry", "rush_touchdowns", "rush_fumbles"},
	},
	DefenseReceiving: {
		Category: DefenseReceiving,
		Table:    "team_defense_receiving_stats",
		Columns:  []string{"receptions", "rec_yards", "yards_per_reception", "rec_touchdowns", "rec_fumbles", "passes_defended"},
	},
	AdvancedOffense: {
		Category: AdvancedOffense,
		Table:    "team_advanced_offense_stats",
		Columns: []string{
			"season", "epa_per_play", "total_epa", "success_rate", "epa_per_pass", "epa_per_rush",
			"average_depth_of_target", "scramble_rate", "interception_rate",
		},
	},
	AdvancedDefense: {
		Category: AdvancedDefense,
		Table:    "team_advanced_defense_stats",
		Columns: []string{
			"season", "epa_per_play", "total_epa", "success_rate", "epa_allowed_per_pass", "epa_allowed_per_rush",
			"average_depth_of_target_against", "scramble_rate", "interception_rate",
		},
	},
	CoverageScheme: {
		Category: CoverageScheme,
		Table:    "team_coverage_scheme_stats",
		Columns:  []string{"man_rate", "zone_rate", "middle_closed_rate", "middle_open_rate"},
	},
	PlayCalling: {
		Category: PlayCalling,
		Table:    "team_play_calling_stats",
		Columns:  []string{"motion_rate", "play_action_rate", "air_yards_per_attempt", "shotgun_rate", "nohuddle_rate"},
	},
	CoverageByPosition: {
		Category: CoverageByPosition,
		Table:    "team_coverage_by_position_stats",
		Columns:  []string{"yards_allowed_wr", "yards_allowed_te", "yards_allowed_rb", "yards_allowed_outside", "yards_allowed_slot"},
	},
}

// Categories returns every category in a stable order.
func Categories() []Category {
	return []Category{
		OffensePassing, OffenseRushing, OffenseReceiving,
		DefensePassing, DefenseRushing, DefenseReceiving,
		AdvancedOffense, AdvancedDefense,
		CoverageScheme, PlayCalling, CoverageByPosition,
	}
}

func Lookup(category Category) (Definition, bool) {
	def, ok := definitions[category]
	return def, ok
}

// Validate requires a team and a value for every column, since rows are
// always written whole.
func (d Definition) Validate(row Row) error {
	if row.TeamID <= 0 {
		return fmt.Errorf("%s row: team id is required", d.Category)
	}
	var missing []string
	for _, col := range d.Columns {
		if _, ok := row.Values[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%s row: missing columns %v", d.Category, missing)
	}
	return nil
}
