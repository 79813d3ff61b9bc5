package odds

import "github.com/riskibarqy/nfl-insights/internal/platform/validation"

const (
	MarketSpread    = "spread"
	MarketMoneyline = "moneyline"
	MarketTotal     = "total"
)

// Line is one team's opening and closing price in a betting market.
type Line struct {
	TeamID      int64  `validate:"gt=0"`
	Market      string `validate:"oneof=spread moneyline total"`
	DisplayName string
	OpenLine    string `validate:"max=10"`
	OpenOdds    string `validate:"max=10"`
	CloseLine   string `validate:"max=10"`
	CloseOdds   string `validate:"max=10"`
}

func (l Line) Validate() error {
	return validation.Struct(l)
}
