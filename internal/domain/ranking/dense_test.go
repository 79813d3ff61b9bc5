package ranking

import (
	"testing"

	"github.com/riskibarqy/nfl-insights/internal/domain/teamstats"
)

func TestDenseRank(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		values     map[int64]float64
		descending bool
		want       map[int64]int
	}{
		{
			name:       "ties share rank and next value is plus one",
			values:     map[int64]float64{1: 10, 2: 10, 3: 5},
			descending: true,
			want:       map[int64]int{1: 1, 2: 1, 3: 2},
		},
		{
			name:       "ascending puts the smallest first",
			values:     map[int64]float64{1: 300, 2: 450, 3: 450},
			descending: false,
			want:       map[int64]int{1: 1, 2: 2, 3: 2},
		},
		{
			name:       "descending pass yards",
			values:     map[int64]float64{1: 300, 2: 450, 3: 450},
			descending: true,
			want:       map[int64]int{1: 2, 2: 1, 3: 1},
		},
		{
			name:       "negative rates",
			values:     map[int64]float64{1: -0.12, 2: 0.08, 3: 0.01, 4: -0.12},
			descending: true,
			want:       map[int64]int{1: 3, 2: 1, 3: 2, 4: 3},
		},
		{
			name:   "empty",
			values: map[int64]float64{},
			want:   map[int64]int{},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := DenseRank(tc.values, tc.descending)
			if len(got) != len(tc.want) {
				t.Fatalf("unexpected size: got=%d want=%d", len(got), len(tc.want))
			}
			for teamID, want := range tc.want {
				if got[teamID] != want {
					t.Fatalf("team %d: got=%d want=%d", teamID, got[teamID], want)
				}
			}
		})
	}
}

func TestRules_FieldsUniqueAndColumnsExist(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})
	for _, rule := range Rules() {
		if _, dup := seen[rule.Field]; dup {
			t.Fatalf("duplicate snapshot field %s", rule.Field)
		}
		seen[rule.Field] = struct{}{}

		def, ok := teamstats.Lookup(rule.Category)
		if !ok {
			t.Fatalf("unknown category %s", rule.Category)
		}
		found := false
		for _, col := range def.Columns {
			if col == rule.Column {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("rule %s reads missing column %s.%s", rule.Field, rule.Category, rule.Column)
		}
	}
	if len(seen) != 38 {
		t.Fatalf("unexpected snapshot field count: got=%d want=38", len(seen))
	}

	for _, category := range teamstats.Categories() {
		if len(RulesFor(category)) == 0 {
			t.Fatalf("category %s has no rank rules", category)
		}
	}
}
