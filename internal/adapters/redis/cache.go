// Package redisad holds the redis-backed search cache and local store.
package redisad

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"travel_booking/internal/adapters/observability"
)

const cacheNamespace = "travel:cache:"

// Cache stores search pages as JSON under a shared namespace.
type Cache struct{ c *redis.Client }

func New(addr, pass string, db int) *Cache {
	return NewWithClient(redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}))
}

// NewWithClient shares one client between the cache and the KV store.
func NewWithClient(c *redis.Client) *Cache { return &Cache{c: c} }

func (r *Cache) Client() *redis.Client { return r.c }

func (r *Cache) Ping(ctx context.Context) error { return r.c.Ping(ctx).Err() }

// Get decodes the entry into dst. An entry that no longer decodes is dropped and reported as a miss.
func (r *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	v, err := r.c.Get(ctx, cacheNamespace+key).Bytes()
	if errors.Is(err, redis.Nil) {
		observability.ObserveCache("search", "miss")
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(v, dst); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("dropping undecodable cache entry")
		observability.ObserveCache("search", "miss")
		return false, r.c.Del(ctx, cacheNamespace+key).Err()
	}
	observability.ObserveCache("search", "hit")
	return true, nil
}

func (r *Cache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	observability.ObserveCache("search", "set")
	return r.c.Set(ctx, cacheNamespace+key, b, time.Duration(ttlSec)*time.Second).Err()
}

func (r *Cache) Del(ctx context.Context, key string) error {
	observability.ObserveCache("search", "del")
	return r.c.Del(ctx, cacheNamespace+key).Err()
}
