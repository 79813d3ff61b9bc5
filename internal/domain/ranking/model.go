package ranking

import (
	"time"

	"github.com/riskibarqy/nfl-insights/internal/domain/teamstats"
)

// Snapshot holds one team's rank per tracked statistic. Fields absent from
// Ranks have never been ranked for the team.
type Snapshot struct {
	TeamID    int64
	Ranks     map[string]int
	UpdatedAt time.Time
}

// Rule ranks one column of a category table into one snapshot field.
type Rule struct {
	Category   teamstats.Category
	Column     string
	Field      string
	Descending bool
}

// Rules lists every snapshot field. "Allowed" metrics rank ascending.
func Rules() []Rule {
	return []Rule{
		{teamstats.OffensePassing, "pass_yards", "off_pass_yards_rank", true},
		{teamstats.OffensePassing, "pass_touchdowns", "off_pass_tds_rank", true},
		{teamstats.OffensePassing, "pass_rating", "off_pass_rating_rank", true},

		{teamstats.OffenseRushing, "rush_yards", "off_rush_yards_rank", true},
		{teamstats.OffenseRushing, "rush_touchdowns", "off_rush_tds_rank", true},
		{teamstats.OffenseRushing, "rush_attempts", "off_rush_attempts_rank", true},

		{teamstats.OffenseReceiving, "receptions", "off_receptions_rank", true},
		{teamstats.OffenseReceiving, "rec_yards", "off_rec_yards_rank", true},
		{teamstats.OffenseReceiving, "rec_touchdowns", "off_rec_tds_rank", true},

		{teamstats.DefensePassing, "pass_yards", "def_pass_yards_rank", false},
		{teamstats.DefensePassing, "pass_touchdowns", "def_pass_tds_rank", false},
		{teamstats.DefensePassing, "pass_rating", "def_pass_rating_rank", false},

		{teamstats.DefenseRushing, "rush_yards", "def_rush_yards_rank", false},
		{teamstats.DefenseRushing, "rush_touchdowns", "def_rush_tds_rank", false},
		{teamstats.DefenseRushing, "rush_attempts", "def_rush_attempts_rank", false},

		{teamstats.DefenseReceiving, "receptions", "def_receptions_rank", false},
		{teamstats.DefenseReceiving, "rec_yards", "def_rec_yards_rank", false},
		{teamstats.DefenseReceiving, "rec_touchdowns", "def_rec_tds_rank", false},
		{teamstats.DefenseReceiving, "passes_defended", "def_pass_defended_rank", true},

		{teamstats.AdvancedOffense, "epa_per_play", "off_expected_points_added_per_play_rank", true},
		{teamstats.AdvancedOffense, "epa_per_pass", "off_expected_points_added_per_pass_rank", true},
		{teamstats.AdvancedOffense, "epa_per_rush", "off_expected_points_added_per_rush_rank", true},

		{teamstats.AdvancedDefense, "epa_per_play", "def_expected_points_added_per_play_rank", false},
		{teamstats.AdvancedDefense, "epa_allowed_per_pass", "def_expected_points_added_allowed_per_pass_rank", false},
		{teamstats.AdvancedDefense, "epa_allowed_per_rush", "def_expected_points_added_allowed_per_rush_rank", false},

		{teamstats.CoverageScheme, "man_rate", "man_rate_rank", true},
		{teamstats.CoverageScheme, "zone_rate", "zone_rate_rank", true},
		{teamstats.CoverageScheme, "middle_closed_rate", "middle_closed_rate_rank", true},
		{teamstats.CoverageScheme, "middle_open_rate", "middle_open_rate_rank", true},

		{teamstats.PlayCalling, "motion_rate", "motion_rate_rank", true},
		{teamstats.PlayCalling, "play_action_rate", "play_action_rate_rank", true},
		{teamstats.PlayCalling, "shotgun_rate", "shotgun_rate_rank", true},
		{teamstats.PlayCalling, "nohuddle_rate", "nohuddle_rate_rank", true},

		{teamstats.CoverageByPosition, "yards_allowed_wr", "yards_allowed_wr_rank", false},
		{teamstats.CoverageByPosition, "yards_allowed_te", "yards_allowed_te_rank", false},
		{teamstats.CoverageByPosition, "yards_allowed_rb", "yards_allowed_rb_rank", false},
		{teamstats.CoverageByPosition, "yards_allowed_outside", "yards_allowed_outside_rank", false},
		{teamstats.CoverageByPosition, "yards_allowed_slot", "yards_allowed_slot_rank", false},
	}
}

// RulesFor returns the rules reading from one category, in Rules order.
func RulesFor(category teamstats.Category) []Rule {
	var out []Rule
	for _, rule := range Rules() {
		if rule.Category == category {
			out = append(out, rule)
		}
	}
	return out
}

// Fields lists every snapshot column name in Rules order.
func Fields() []string {
	rules := Rules()
	out := make([]string, 0, len(rules))
	for _, rule := range rules {
		out = append(out, rule.Field)
	}
	return out
}
