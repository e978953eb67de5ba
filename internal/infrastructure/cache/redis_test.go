package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type summary struct {
	Average *float64    `json:"average"`
	Total   int         `json:"total"`
	Dist    map[int]int `json:"dist"`
}

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCacheFromClient(client), mr
}

func TestRedisCache_SetGet(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	avg := 3.6
	in := summary{Average: &avg, Total: 5, Dist: map[int]int{1: 1, 2: 0, 3: 1, 4: 1, 5: 2}}
	require.NoError(t, c.Set(ctx, "review:stats:seller:s1", in, time.Minute))

	var out summary
	found, err := c.Get(ctx, "review:stats:seller:s1", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)

	mr.FastForward(2 * time.Minute)
	found, err = c.Get(ctx, "review:stats:seller:s1", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCache_Miss(t *testing.T) {
	c, _ := newTestCache(t)

	var out summary
	found, err := c.Get(context.Background(), "missing", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCache_Delete(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", 1, time.Minute))
	require.NoError(t, c.Set(ctx, "b", 2, time.Minute))
	require.NoError(t, c.Delete(ctx, "a", "b", "never-set"))
	require.NoError(t, c.Delete(ctx))

	assert.False(t, mr.Exists("a"))
	assert.False(t, mr.Exists("b"))
}

func TestRedisCache_Incr(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	first, err := c.Incr(ctx, "gen")
	require.NoError(t, err)
	second, err := c.Incr(ctx, "gen")
	require.NoError(t, err)
	assert.Equal(t, int64(1), first)
	assert.Equal(t, int64(2), second)

	var stored int64
	found, err := c.Get(ctx, "gen", &stored)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(2), stored)
}

func TestRedisCache_PingFailsWhenServerDown(t *testing.T) {
	c, mr := newTestCache(t)
	require.NoError(t, c.Ping(context.Background()))

	mr.Close()
	assert.Error(t, c.Ping(context.Background()))
}
