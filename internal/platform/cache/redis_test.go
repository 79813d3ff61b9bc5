package cache

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/redis/go-redis/v9"
)

type fakeKeyspace struct {
	pages   [][]string
	deleted []string
	scanErr error
}

func (f *fakeKeyspace) Scan(_ context.Context, cursor uint64, match string, _ int64) *redis.ScanCmd {
	if f.scanErr != nil {
		return redis.NewScanCmdResult(nil, 0, f.scanErr)
	}
	prefix := strings.TrimSuffix(match, "*")
	var keys []string
	for _, key := range f.pages[cursor] {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	next := cursor + 1
	if int(next) >= len(f.pages) {
		next = 0
	}
	return redis.NewScanCmdResult(keys, next, nil)
}

func (f *fakeKeyspace) Del(_ context.Context, keys ...string) *redis.IntCmd {
	f.deleted = append(f.deleted, keys...)
	return redis.NewIntResult(int64(len(keys)), nil)
}

func TestRedisPurger_DeletePrefixWalksEveryPage(t *testing.T) {
	t.Parallel()

	keys := &fakeKeyspace{pages: [][]string{
		{"nfl:ranking:list", "other"},
		{},
		{"nfl:ranking:team:1"},
	}}
	removed, err := NewRedisPurger(keys).DeletePrefix(context.Background(), "nfl:")
	if err != nil {
		t.Fatalf("delete prefix: %v", err)
	}
	if removed != 2 {
		t.Fatalf("removed %d keys, want 2", removed)
	}
	if len(keys.deleted) != 2 || keys.deleted[0] != "nfl:ranking:list" || keys.deleted[1] != "nfl:ranking:team:1" {
		t.Fatalf("unexpected deleted keys: %v", keys.deleted)
	}
}

func TestRedisPurger_ScanError(t *testing.T) {
	t.Parallel()

	keys := &fakeKeyspace{scanErr: errors.New("connection refused")}
	if _, err := NewRedisPurger(keys).DeletePrefix(context.Background(), "nfl:"); err == nil {
		t.Fatalf("expected scan error")
	}
}
