package team

import (
	"errors"
	"strings"

	"github.com/riskibarqy/nfl-insights/internal/platform/validation"
)

// ErrSlugTaken reports a slug already held by a team with another
// abbreviation.
var ErrSlugTaken = errors.New("team slug already taken")

// Team is one franchise. Abbreviation is the stable identity; nickname and
// full name are secondary lookup keys used by scraped tables.
type Team struct {
	ID           int64
	ExternalID   string
	Slug         string
	FullName     string `validate:"required"`
	Nickname     string `validate:"required"`
	Abbreviation string `validate:"required,max=5"`
	Conference   string
	Division     string
}

func (t Team) Validate() error {
	return validation.Struct(t)
}

// Slug lowercases the full name and joins words with '-'.
func Slug(fullName string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(fullName)), " ", "-")
}
