package redisad

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"umrah_quotes/internal/adapters/observability"
)

// cacheName labels quote/catalog cache traffic in the metrics.
const cacheName = "quotes"

// Cache stores priced quotes and catalog reads as JSON blobs keyed by the
// app layer (quote:{id}, quotes:{limit}:{offset}, hotels:all,
// settings:grouped). Values are immutable between writes: every quote
// mutation evicts its keys, so TTLs only bound catalog staleness.
type Cache struct{ c *redis.Client }

func New(addr, pass string, db int) *Cache {
	return &Cache{c: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

func (r *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	blob, err := r.c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		observability.ObserveCache(cacheName, "miss")
		return false, nil
	}
	if err != nil {
		return false, err
	}
	observability.ObserveCache(cacheName, "hit")
	return true, json.Unmarshal(blob, dst)
}

func (r *Cache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	blob, err := json.Marshal(v)
	if err != nil {
		return err
	}
	observability.ObserveCache(cacheName, "set")
	return r.c.Set(ctx, key, blob, time.Duration(ttlSec)*time.Second).Err()
}

func (r *Cache) Del(ctx context.Context, key string) error {
	observability.ObserveCache(cacheName, "del")
	return r.c.Del(ctx, key).Err()
}
