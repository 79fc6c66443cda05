package redisad

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"travel_booking/internal/adapters/observability"
)

// KV is local storage backed by redis. Keys are namespaced by prefix so several
// clients can share one database.
type KV struct {
	c      *redis.Client
	prefix string
}

func NewKV(c *redis.Client, prefix string) *KV { return &KV{c: c, prefix: prefix} }

func (k *KV) key(s string) string { return k.prefix + s }

func (k *KV) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := k.c.Get(ctx, k.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		observability.ObserveCache("redis_kv", "miss")
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	observability.ObserveCache("redis_kv", "hit")
	return v, true, nil
}

// Set stores value without expiry, like browser local storage.
func (k *KV) Set(ctx context.Context, key, value string) error {
	observability.ObserveCache("redis_kv", "set")
	return k.c.Set(ctx, k.key(key), value, 0).Err()
}

func (k *KV) Del(ctx context.Context, key string) error {
	observability.ObserveCache("redis_kv", "del")
	return k.c.Del(ctx, k.key(key)).Err()
}
