package game

import (
	"time"

	"github.com/riskibarqy/nfl-insights/internal/platform/validation"
)

const (
	SideHome = "home"
	SideAway = "away"
)

// Game is identified by the provider's event id.
type Game struct {
	ID         int64
	Event      string    `validate:"required"`
	Date       time.Time `validate:"required"`
	Name       string
	ShortName  string
	SeasonYear int `validate:"gte=0"`
	SeasonType int `validate:"gte=0"`
	Week       int `validate:"gte=0"`
	HomeTeamID int64 `validate:"gt=0"`
	AwayTeamID int64 `validate:"gt=0,nefield=HomeTeamID"`
	HomeScore  int
	AwayScore  int
	Status     string
}

func (g Game) Validate() error {
	return validation.Struct(g)
}
