package stats

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unreachable(t *testing.T) *RedisStats {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	s := NewRedisStatsFromClient(client, time.Minute)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestUsageKey(t *testing.T) {
	assert.Equal(t, "chat-assistant:usage:model_a", usageKey("model_a"))
}

func TestRecord_UnreachableRedis(t *testing.T) {
	s := unreachable(t)

	err := s.Record(context.Background(), "model_a", "ok")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model_a")
}

func TestSnapshot_NoModels(t *testing.T) {
	s := unreachable(t)

	got, err := s.Snapshot(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
