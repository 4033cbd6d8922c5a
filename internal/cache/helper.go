package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Aside implements the cache-aside pattern: on a hit, dest is populated from
// the cached JSON; on a miss, fill is invoked and its result is cached for ttl.
// When Redis is unavailable the fill function runs directly.
func Aside[T any](ctx context.Context, key string, dest *T, ttl time.Duration, fill func() error) error {
	if client == nil {
		return fill()
	}

	raw, err := client.Get(ctx, key).Bytes()
	if err == nil {
		if unmarshalErr := json.Unmarshal(raw, dest); unmarshalErr == nil {
			return nil
		}
		// Corrupt entry: drop it and fall through to the fill path.
		client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		// Redis is unhealthy; serve from the source of truth.
		return fill()
	}

	if err := fill(); err != nil {
		return err
	}

	if data, marshalErr := json.Marshal(dest); marshalErr == nil {
		client.Set(ctx, key, data, ttl)
	}
	return nil
}
