package postgres

import (
	"database/sql"
	"time"
)

type teamTableModel struct {
	ID           int64  `db:"id,readonly"`
	ExternalID   string `db:"external_id"`
	Slug         string `db:"slug"`
	FullName     string `db:"full_name"`
	Nickname     string `db:"nickname"`
	Abbreviation string `db:"abbreviation"`
	Conference   string `db:"conference"`
	Division     string `db:"division"`
}

type playerTableModel struct {
	ID         int64          `db:"id,readonly"`
	ExternalID string         `db:"external_id"`
	TeamID     int64          `db:"team_id"`
	Slug       string         `db:"slug"`
	FirstName  string         `db:"first_name"`
	LastName   string         `db:"last_name"`
	FullName   string         `db:"full_name"`
	Position   string         `db:"position"`
	Jersey     sql.NullString `db:"jersey"`
	Experience int            `db:"experience"`
}

type gameTableModel struct {
	ID         int64     `db:"id,readonly"`
	Event      string    `db:"event"`
	Date       time.Time `db:"date"`
	Name       string    `db:"name"`
	ShortName  string    `db:"short_name"`
	SeasonYear int       `db:"season_year"`
	SeasonType int       `db:"season_type"`
	Week       int       `db:"week"`
	HomeTeamID int64     `db:"home_team_id"`
	AwayTeamID int64     `db:"away_team_id"`
	HomeScore  int       `db:"home_score"`
	AwayScore  int       `db:"away_score"`
	Status     string    `db:"status"`
}

type playerGameStatsTableModel struct {
	PlayerID    int64 `db:"player_id"`
	GameID      int64 `db:"game_id"`
	GamesPlayed int   `db:"games_played"`
	IsStarter   bool  `db:"is_starter"`

	PassAttempts        float64 `db:"pass_attempts"`
	Completions         float64 `db:"completions"`
	PassYards           float64 `db:"pass_yards"`
	PassTouchdowns      float64 `db:"pass_touchdowns"`
	Interceptions       float64 `db:"interceptions"`
	CompletionPct       float64 `db:"completion_pct"`
	YardsPerPassAttempt float64 `db:"yards_per_pass_attempt"`
	LongPassing         float64 `db:"long_passing"`
	Sacks               float64 `db:"sacks"`
	PassRating          float64 `db:"pass_rating"`
	AdjustedQBR         float64 `db:"adjusted_qbr"`

	RushAttempts        float64 `db:"rush_attempts"`
	RushYards           float64 `db:"rush_yards"`
	RushTouchdowns      float64 `db:"rush_touchdowns"`
	YardsPerRushAttempt float64 `db:"yards_per_rush_attempt"`
	LongRushing         float64 `db:"long_rushing"`

	Receptions        float64 `db:"receptions"`
	RecTargets        float64 `db:"rec_targets"`
	RecYards          float64 `db:"rec_yards"`
	RecTouchdowns     float64 `db:"rec_touchdowns"`
	YardsPerReception float64 `db:"yards_per_reception"`
	LongReception     float64 `db:"long_reception"`

	Fumbles     float64 `db:"fumbles"`
	FumblesLost float64 `db:"fumbles_lost"`
}

type snapCountTableModel struct {
	PlayerID      int64  `db:"player_id"`
	PositionGroup string `db:"position_group"`
	Weekly        string `db:"weekly"`
	Total         int    `db:"total"`
}

type oddsTableModel struct {
	TeamID      int64  `db:"team_id"`
	Market      string `db:"market"`
	DisplayName string `db:"display_name"`
	OpenLine    string `db:"open_line"`
	OpenOdds    string `db:"open_odds"`
	CloseLine   string `db:"close_line"`
	CloseOdds   string `db:"close_odds"`
}
