// Package stats keeps per-model invocation outcome counters in Redis.
package stats

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "chat-assistant:usage:"

type RedisStats struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStats(addr, password string, db int, ttl time.Duration) *RedisStats {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewRedisStatsFromClient(rdb, ttl)
}

func NewRedisStatsFromClient(client *redis.Client, ttl time.Duration) *RedisStats {
	return &RedisStats{
		client: client,
		ttl:    ttl,
	}
}

// Record increments the outcome counter of a model. The key expires ttl after
// the last write so idle models drop out.
func (r *RedisStats) Record(ctx context.Context, modelID, outcome string) error {
	key := usageKey(modelID)

	pipe := r.client.TxPipeline()
	pipe.HIncrBy(ctx, key, outcome, 1)
	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record usage for %s: %w", modelID, err)
	}
	return nil
}

// Snapshot returns outcome counters for the given models. Models without
// recorded usage map to an empty set.
func (r *RedisStats) Snapshot(ctx context.Context, modelIDs []string) (map[string]map[string]int64, error) {
	pipe := r.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(modelIDs))
	for i, id := range modelIDs {
		cmds[i] = pipe.HGetAll(ctx, usageKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("read usage: %w", err)
	}

	out := make(map[string]map[string]int64, len(modelIDs))
	for i, id := range modelIDs {
		raw, err := cmds[i].Result()
		if err != nil && err != redis.Nil {
			return nil, fmt.Errorf("read usage for %s: %w", id, err)
		}
		counts := make(map[string]int64, len(raw))
		for outcome, v := range raw {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("usage counter %s/%s: %w", id, outcome, err)
			}
			counts[outcome] = n
		}
		out[id] = counts
	}
	return out, nil
}

func (r *RedisStats) Close() error {
	return r.client.Close()
}

func usageKey(modelID string) string {
	return keyPrefix + modelID
}
