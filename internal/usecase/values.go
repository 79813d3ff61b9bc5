package usecase

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
)

// parseStat reads a provider stat cell. "-" and empty cells mean zero,
// thousands separators are dropped and a trailing percent sign is ignored.
// NaN and infinities are rejected; they cannot be ranked.
func parseStat(raw string) (float64, error) {
	value := strings.TrimSpace(raw)
	if value == "" || value == "-" || value == "--" {
		return 0, nil
	}
	if idx := strings.Index(value, "%"); idx >= 0 {
		value = strings.TrimSpace(value[:idx])
	}
	value = strings.ReplaceAll(value, ",", "")
	out, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("parse stat %q: %w", raw, err)
	}
	if math.IsNaN(out) || math.IsInf(out, 0) {
		return 0, fmt.Errorf("parse stat %q: not a finite number", raw)
	}
	return out, nil
}

// flexString accepts a JSON string or number; providers are inconsistent
// about ids and scores.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	text := strings.TrimSpace(string(data))
	if text == "null" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(text, `"`) {
		var s string
		if err := sonic.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(strings.TrimSpace(s))
		return nil
	}
	*f = flexString(text)
	return nil
}

func (f flexString) String() string {
	return string(f)
}

func (f flexString) Int() int {
	out, err := parseStat(string(f))
	if err != nil {
		return 0
	}
	return int(out)
}
