package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/nfl-insights/internal/domain/store"
	"github.com/riskibarqy/nfl-insights/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

// Stage fixes the order in which sources are transformed and persisted.
// Later stages look up entities written by earlier ones.
type Stage int

const (
	StageTeams Stage = iota + 1
	StageGames
	StagePlayers
	StagePlayerStats
	StageTeamCategories
	StageSnapCounts
	StageOdds
)

func (s Stage) String() string {
	switch s {
	case StageTeams:
		return "teams"
	case StageGames:
		return "games"
	case StagePlayers:
		return "players"
	case StagePlayerStats:
		return "player_stats"
	case StageTeamCategories:
		return "team_categories"
	case StageSnapCounts:
		return "snap_counts"
	case StageOdds:
		return "odds"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Fetcher retrieves provider documents. Implementations share one
// connection pool for a whole run.
type Fetcher interface {
	FetchJSON(ctx context.Context, source, url string, target any) error
	FetchHTML(ctx context.Context, source, url string) (string, error)
}

// Source turns fetched provider data into persisted records. Transform
// must only be called after the source's fetches have completed.
type Source interface {
	Name() string
	Stage() Stage
	Transform(ctx context.Context, s store.Store, idx *Index) (BatchResult, error)
	Export() Table
}

// SingleShotSource fetches one document.
type SingleShotSource interface {
	Source
	Fetch(ctx context.Context, f Fetcher) error
}

// BatchResult counts what a transform did with its records.
type BatchResult struct {
	Source      string `json:"source"`
	Created     int    `json:"created"`
	Updated     int    `json:"updated"`
	Skipped     int    `json:"skipped"`
	FetchFailed int    `json:"fetch_failed"`
}

func (r *BatchResult) record(created bool) {
	if created {
		r.Created++
		return
	}
	r.Updated++
}

// Table is a tabular debug view of what a source produced.
type Table struct {
	Headers []string
	Rows    [][]string
}

type FanOutPolicy string

const (
	// FanOutAbortAll cancels the remaining fetches of a group on the first
	// failure and fails the group.
	FanOutAbortAll FanOutPolicy = "abort_all"
	// FanOutBestEffort logs failed fetches and keeps the successful ones.
	FanOutBestEffort FanOutPolicy = "best_effort"
)

func ParseFanOutPolicy(raw string) (FanOutPolicy, error) {
	switch FanOutPolicy(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FanOutAbortAll:
		return FanOutAbortAll, nil
	case FanOutBestEffort:
		return FanOutBestEffort, nil
	default:
		return "", fmt.Errorf("%w: unknown fan-out policy %q", ErrInvalidInput, raw)
	}
}

// FetchGroup carries what a fan-out fetch needs to run its ids concurrently.
type FetchGroup struct {
	Fetcher        Fetcher
	Policy         FanOutPolicy
	MaxConcurrency int
	Logger         *logging.Logger
}

// fanOutResult pairs a fetched value with the id it was fetched for.
type fanOutResult[T any] struct {
	ID    string
	Value T
}

// fanOut runs fetch once per id. Results keep the order of ids. Under
// FanOutAbortAll the first error cancels the context seen by the remaining
// fetches and is returned; under FanOutBestEffort failures are logged and
// counted instead.
func fanOut[T any](ctx context.Context, g FetchGroup, source string, ids []string, fetch func(ctx context.Context, id string) (T, error)) ([]fanOutResult[T], int, error) {
	if len(ids) == 0 {
		return nil, 0, nil
	}
	logger := g.Logger
	if logger == nil {
		logger = logging.Default()
	}

	values := make([]T, len(ids))
	ok := make([]bool, len(ids))
	failed := make([]bool, len(ids))

	p := pool.New().WithContext(ctx)
	if g.MaxConcurrency > 0 {
		p = p.WithMaxGoroutines(g.MaxConcurrency)
	}
	if g.Policy != FanOutBestEffort {
		p = p.WithCancelOnError().WithFirstError()
	}

	for i, id := range ids {
		p.Go(func(ctx context.Context) error {
			v, err := fetch(ctx, id)
			if err != nil {
				if g.Policy == FanOutBestEffort {
					failed[i] = true
					logger.WarnContext(ctx, "fan-out fetch failed, continuing", "source", source, "id", id, "error", err)
					return nil
				}
				return fmt.Errorf("%s id=%s: %w", source, id, err)
			}
			values[i] = v
			ok[i] = true
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, 0, err
	}

	out := make([]fanOutResult[T], 0, len(ids))
	failures := 0
	for i, id := range ids {
		if failed[i] {
			failures++
		}
		if !ok[i] {
			continue
		}
		out = append(out, fanOutResult[T]{ID: id, Value: values[i]})
	}
	return out, failures, nil
}

// sortByStage orders sources by stage, keeping registration order within
// a stage.
func sortByStage(sources []Source) []Source {
	out := append([]Source(nil), sources...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Stage() < out[j].Stage()
	})
	return out
}

// expandURL substitutes a {key} placeholder in a configured URL template.
func expandURL(template, key, value string) string {
	return strings.ReplaceAll(template, "{"+key+"}", value)
}
