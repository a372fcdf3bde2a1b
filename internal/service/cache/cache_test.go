package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTLCacheExpiresLazily(t *testing.T) {
	c, err := NewTTLCache(8)
	require.NoError(t, err)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, c.SetBytes(ctx, "k", []byte("v"), time.Minute))

	b, ok, err := c.GetBytes(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), b)

	now = now.Add(61 * time.Second)
	_, ok, _ = c.GetBytes(ctx, "k")
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestTTLCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c, err := NewTTLCache(2)
	require.NoError(t, err)

	c.Set("a", []byte("1"), 0)
	c.Set("b", []byte("2"), 0)
	_, _ = c.Get("a")
	c.Set("c", []byte("3"), 0)

	_, okA := c.Get("a")
	_, okB := c.Get("b")
	assert.True(t, okA)
	assert.False(t, okB)
}

func TestNewSelectsBackend(t *testing.T) {
	mem, err := New(Config{Backend: BackendMemory, Size: 4})
	require.NoError(t, err)
	assert.IsType(t, &TTLCache{}, mem)

	rc, err := New(Config{Backend: BackendRedis, Redis: RedisConfig{Addr: "localhost:0"}})
	require.NoError(t, err)
	assert.IsType(t, &RedisCache{}, rc)

	_, err = New(Config{Backend: "disk"})
	assert.Error(t, err)
}
