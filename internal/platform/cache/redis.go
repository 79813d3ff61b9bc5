package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const scanBatch = 200

// keyspace is the part of the Redis client the purger needs.
type keyspace interface {
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisPurger removes shared cache entries written by read-side services.
type RedisPurger struct {
	keys keyspace
}

func NewRedisPurger(keys keyspace) *RedisPurger {
	return &RedisPurger{keys: keys}
}

// DialRedis parses url and pings the server before returning the client.
func DialRedis(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// DeletePrefix walks the keyspace with SCAN so large databases are never
// blocked by KEYS.
func (p *RedisPurger) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	if prefix == "" {
		return 0, nil
	}

	var (
		cursor  uint64
		removed int
	)
	for {
		keys, next, err := p.keys.Scan(ctx, cursor, prefix+"*", scanBatch).Result()
		if err != nil {
			return removed, fmt.Errorf("scan redis keys prefix=%s: %w", prefix, err)
		}
		if len(keys) > 0 {
			n, err := p.keys.Del(ctx, keys...).Result()
			if err != nil {
				return removed, fmt.Errorf("delete redis keys prefix=%s: %w", prefix, err)
			}
			removed += int(n)
		}
		if next == 0 {
			return removed, nil
		}
		cursor = next
	}
}
