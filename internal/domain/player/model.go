package player

import (
	"strings"
	"unicode"

	"github.com/riskibarqy/nfl-insights/internal/platform/validation"
)

const (
	PositionQB = "QB"
	PositionRB = "RB"
	PositionWR = "WR"
	PositionTE = "TE"
)

// Player is unique by full name within a team.
type Player struct {
	ID         int64
	ExternalID string `validate:"required"`
	TeamID     int64  `validate:"gt=0"`
	Slug       string `validate:"required"`
	FirstName  string
	LastName   string
	FullName   string `validate:"required"`
	Position   string `validate:"oneof=QB RB WR TE"`
	Jersey     string
	Experience int `validate:"gte=0"`
}

func (p Player) Validate() error {
	return validation.Struct(p)
}

// IsTrackedPosition reports whether ingestion keeps players at this position.
func IsTrackedPosition(position string) bool {
	switch strings.ToUpper(strings.TrimSpace(position)) {
	case PositionQB, PositionRB, PositionWR, PositionTE:
		return true
	default:
		return false
	}
}

// Slug strips punctuation, lowercases, joins words with '-' and suffixes the
// team abbreviation so namesakes on different teams stay distinct.
func Slug(fullName, teamAbbreviation string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(fullName) {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	slug := strings.Join(strings.Fields(b.String()), "-")
	if abbr := strings.ToLower(strings.TrimSpace(teamAbbreviation)); abbr != "" {
		slug += "-" + abbr
	}
	return slug
}
