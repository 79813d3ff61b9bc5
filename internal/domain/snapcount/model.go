package snapcount

import "github.com/riskibarqy/nfl-insights/internal/platform/validation"

// SnapCount is a player's season snap share by week, as published per
// position group.
type SnapCount struct {
	PlayerID      int64 `validate:"gt=0"`
	PositionGroup string `validate:"required"`
	Weekly        map[string]int
	Total         int `validate:"gte=0"`
}

func (s SnapCount) Validate() error {
	return validation.Struct(s)
}
