package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/riskibarqy/nfl-insights/internal/domain/snapcount"
	"github.com/riskibarqy/nfl-insights/internal/domain/store"
	"github.com/riskibarqy/nfl-insights/internal/platform/htmltable"
	"github.com/riskibarqy/nfl-insights/internal/platform/logging"
)

const (
	snapPlayerHeader = "Player"
	snapTotalHeader  = "Total"
)

// SnapCountSource scrapes the position-grouped snap count page. When fetch
// is disabled the page is replayed from cachePath instead; when enabled the
// fetched page is written there for later replays.
type SnapCountSource struct {
	url       string
	fetch     bool
	cachePath string
	logger    *logging.Logger

	records  []htmltable.Record
	exported []exportedSnapCount
}

type exportedSnapCount struct {
	player string
	count  snapcount.SnapCount
}

func NewSnapCountSource(url string, fetch bool, cachePath string, logger *logging.Logger) *SnapCountSource {
	if logger == nil {
		logger = logging.Default()
	}
	return &SnapCountSource{url: url, fetch: fetch, cachePath: cachePath, logger: logger}
}

func (s *SnapCountSource) Name() string { return "snap_counts" }
func (s *SnapCountSource) Stage() Stage { return StageSnapCounts }

func (s *SnapCountSource) Fetch(ctx context.Context, f Fetcher) error {
	if !s.fetch {
		content, err := os.ReadFile(s.cachePath)
		if err != nil {
			return fmt.Errorf("read snap count cache %s: %w", s.cachePath, err)
		}
		s.logger.InfoContext(ctx, "snap counts replayed from cache", "path", s.cachePath)
		s.records = htmltable.ExtractGrouped(string(content))
		return nil
	}

	document, err := f.FetchHTML(ctx, s.Name(), s.url)
	if err != nil {
		return err
	}
	if s.cachePath != "" {
		if err := writeCacheFile(s.cachePath, document); err != nil {
			return err
		}
	}
	s.records = htmltable.ExtractGrouped(document)
	return nil
}

func writeCacheFile(path, content string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create snap count cache dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write snap count cache %s: %w", path, err)
	}
	return nil
}

func (s *SnapCountSource) Transform(ctx context.Context, st store.Store, idx *Index) (BatchResult, error) {
	result := BatchResult{Source: s.Name()}
	s.exported = s.exported[:0]

	for _, record := range s.records {
		name, _ := record.Get(snapPlayerHeader)
		owner, ok := idx.PlayerByName(name)
		if !ok {
			skipRecord(ctx, s.logger, &result, fmt.Errorf("%w: player %q", ErrUnresolved, name), "group", record.Group)
			continue
		}

		item, err := toSnapCount(record)
		if err != nil {
			skipRecord(ctx, s.logger, &result, err, "player", name)
			continue
		}
		item.PlayerID = owner.ID
		if err := item.Validate(); err != nil {
			skipRecord(ctx, s.logger, &result, err, "player", name)
			continue
		}

		created, err := st.SnapCounts().UpsertByPlayer(ctx, item)
		if err != nil {
			return result, fmt.Errorf("upsert snap count player=%d: %w", item.PlayerID, err)
		}
		s.exported = append(s.exported, exportedSnapCount{player: owner.FullName, count: item})
		result.record(created)
	}
	return result, nil
}

func toSnapCount(record htmltable.Record) (snapcount.SnapCount, error) {
	item := snapcount.SnapCount{
		PositionGroup: record.Group,
		Weekly:        make(map[string]int, len(record.Headers)),
	}
	for _, header := range record.Headers {
		if header == snapPlayerHeader {
			continue
		}
		value, err := parseStat(record.Values[header])
		if err != nil {
			return item, fmt.Errorf("%s: %w", header, err)
		}
		if header == snapTotalHeader {
			item.Total = int(value)
			continue
		}
		item.Weekly[header] = int(value)
	}
	return item, nil
}

func (s *SnapCountSource) Export() Table {
	out := Table{Headers: []string{"player", "group", "weeks", "total"}}
	for _, item := range s.exported {
		out.Rows = append(out.Rows, []string{
			item.player,
			item.count.PositionGroup,
			strconv.Itoa(len(item.count.Weekly)),
			strconv.Itoa(item.count.Total),
		})
	}
	return out
}
