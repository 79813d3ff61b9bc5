package htmltable

import "strings"

const (
	SourceNFL          = "nfl"
	SourceSumer        = "sumer"
	SourceSharp        = "sharp"
	SourceFootballguys = "footballguys"
)

// Canonicalize normalizes a raw team label to the spelling stored on teams.
//
// nfl pages render the team name twice back to back, so the first half
// (rounded up) is kept. sumer pages render "City Name", so the last word is
// kept. Other sources are returned unchanged.
func Canonicalize(source, raw string) string {
	switch source {
	case SourceNFL:
		runes := []rune(raw)
		half := len(runes)/2 + len(runes)%2
		return string(runes[:half])
	case SourceSumer:
		fields := strings.Fields(raw)
		if len(fields) == 0 {
			return raw
		}
		return fields[len(fields)-1]
	default:
		return raw
	}
}
