package playerstats

import "github.com/riskibarqy/nfl-insights/internal/platform/validation"

// GameStats is one player's line for one game. It only exists for a
// reconciled (player, game) pair.
type GameStats struct {
	PlayerID    int64 `validate:"gt=0"`
	GameID      int64 `validate:"gt=0"`
	GamesPlayed int   `validate:"gte=0"`
	IsStarter   bool

	PassAttempts        float64
	Completions         float64
	PassYards           float64
	PassTouchdowns      float64
	Interceptions       float64
	CompletionPct       float64
	YardsPerPassAttempt float64
	LongPassing         float64
	Sacks               float64
	PassRating          float64
	AdjustedQBR         float64

	RushAttempts        float64
	RushYards           float64
	RushTouchdowns      float64
	YardsPerRushAttempt float64
	LongRushing         float64

	Receptions        float64
	RecTargets        float64
	RecYards          float64
	RecTouchdowns     float64
	YardsPerReception float64
	LongReception     float64

	Fumbles     float64
	FumblesLost float64
}

func (s GameStats) Validate() error {
	return validation.Struct(s)
}

// Field binds a provider stat label to the GameStats value it fills.
type Field struct {
	Label string
	Set   func(*GameStats, float64)
}

// Fields lists the numeric provider labels in storage order.
func Fields() []Field {
	return []Field{
		{"passingAttempts", func(s *GameStats, v float64) { s.PassAttempts = v }},
		{"completions", func(s *GameStats, v float64) { s.Completions = v }},
		{"passingYards", func(s *GameStats, v float64) { s.PassYards = v }},
		{"passingTouchdowns", func(s *GameStats, v float64) { s.PassTouchdowns = v }},
		{"interceptions", func(s *GameStats, v float64) { s.Interceptions = v }},
		{"completionPct", func(s *GameStats, v float64) { s.CompletionPct = v }},
		{"yardsPerPassAttempt", func(s *GameStats, v float64) { s.YardsPerPassAttempt = v }},
		{"longPassing", func(s *GameStats, v float64) { s.LongPassing = v }},
		{"sacks", func(s *GameStats, v float64) { s.Sacks = v }},
		{"QBRating", func(s *GameStats, v float64) { s.PassRating = v }},
		{"adjQBR", func(s *GameStats, v float64) { s.AdjustedQBR = v }},
		{"rushingAttempts", func(s *GameStats, v float64) { s.RushAttempts = v }},
		{"rushingYards", func(s *GameStats, v float64) { s.RushYards = v }},
		{"rushingTouchdowns", func(s *GameStats, v float64) { s.RushTouchdowns = v }},
		{"yardsPerRushAttempt", func(s *GameStats, v float64) { s.YardsPerRushAttempt = v }},
		{"longRushing", func(s *GameStats, v float64) { s.LongRushing = v }},
		{"receptions", func(s *GameStats, v float64) { s.Receptions = v }},
		{"receivingTargets", func(s *GameStats, v float64) { s.RecTargets = v }},
		{"receivingYards", func(s *GameStats, v float64) { s.RecYards = v }},
		{"receivingTouchdowns", func(s *GameStats, v float64) { s.RecTouchdowns = v }},
		{"yardsPerReception", func(s *GameStats, v float64) { s.YardsPerReception = v }},
		{"longReception", func(s *GameStats, v float64) { s.LongReception = v }},
		{"fumbles", func(s *GameStats, v float64) { s.Fumbles = v }},
		{"fumblesLost", func(s *GameStats, v float64) { s.FumblesLost = v }},
	}
}
