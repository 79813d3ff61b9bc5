package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/riskibarqy/nfl-insights/internal/config"
	"github.com/riskibarqy/nfl-insights/internal/domain/teamstats"
	"github.com/riskibarqy/nfl-insights/internal/platform/logging"
)

func baseConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Sources: config.SourceURLs{
			Teams:      "https://site.example.com/standings",
			Players:    "https://site.example.com/teams/{team_id}/roster",
			Stats:      "https://site.example.com/athletes/{player_id}/gamelog",
			Events:     "https://site.example.com/scoreboard?week={week}",
			Categories: map[teamstats.Category]string{},
		},
		SnapCountFetch:     true,
		SnapCountCachePath: filepath.Join(t.TempDir(), "snap.html"),
	}
}

func sourceNames(t *testing.T, cfg config.Config) []string {
	t.Helper()
	sources, err := BuildSources(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("build sources: %v", err)
	}
	var names []string
	for _, src := range sources.Singles {
		names = append(names, src.Name())
	}
	return names
}

func TestBuildSources_CategoriesInFixedOrder(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Sources.Categories[teamstats.CoverageScheme] = "https://sharp.example.com/coverage"
	cfg.Sources.Categories[teamstats.OffensePassing] = "https://stats.example.com/passing"
	cfg.Sources.Odds = "https://site.example.com/odds"

	names := sourceNames(t, cfg)
	want := []string{"offense_passing", "coverage_scheme", "odds"}
	if len(names) != len(want) {
		t.Fatalf("unexpected sources: %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("source %d: got=%s want=%s", i, names[i], want[i])
		}
	}
}

func TestBuildSources_SnapCountModes(t *testing.T) {
	t.Run("fetch requires url", func(t *testing.T) {
		cfg := baseConfig(t)
		if names := sourceNames(t, cfg); len(names) != 0 {
			t.Fatalf("expected no singles, got %v", names)
		}
	})

	t.Run("fetch with url", func(t *testing.T) {
		cfg := baseConfig(t)
		cfg.Sources.SnapCount = "https://snaps.example.com/page"
		if names := sourceNames(t, cfg); len(names) != 1 || names[0] != "snap_counts" {
			t.Fatalf("unexpected sources: %v", names)
		}
	})

	t.Run("replay needs cache file", func(t *testing.T) {
		cfg := baseConfig(t)
		cfg.SnapCountFetch = false
		if names := sourceNames(t, cfg); len(names) != 0 {
			t.Fatalf("expected replay disabled without cache, got %v", names)
		}

		if err := os.WriteFile(cfg.SnapCountCachePath, []byte("<table></table>"), 0o644); err != nil {
			t.Fatalf("write cache: %v", err)
		}
		if names := sourceNames(t, cfg); len(names) != 1 || names[0] != "snap_counts" {
			t.Fatalf("unexpected sources: %v", names)
		}
	})
}
