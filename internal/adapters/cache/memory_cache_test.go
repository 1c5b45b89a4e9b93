package cache

import (
	"context"
	"testing"
	"time"

	"github.com/mikey/spamshield/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCache(now time.Time) *MemoryCache {
	c := NewMemoryCache(zap.NewNop(), 0)
	c.now = func() time.Time { return now }
	return c
}

func entry(key string, expiresAt time.Time) *core.CacheEntry {
	return &core.CacheEntry{
		Key:       key,
		Verdict:   core.Verdict{IsSpam: true, Score: 45, Reasons: []string{"Invalid email format"}},
		LastSeen:  expiresAt.Add(-time.Minute),
		ExpiresAt: expiresAt,
	}
}

func TestMemoryCache_SetGet(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c := newTestCache(now)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, entry("k", now.Add(time.Minute))))

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 45, got.Verdict.Score)
	assert.Equal(t, []string{"Invalid email format"}, got.Verdict.Reasons)
}

func TestMemoryCache_NotFound(t *testing.T) {
	c := newTestCache(time.Now())

	_, err := c.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryCache_Expired(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c := newTestCache(now)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, entry("k", now)))

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrExpired)
}

func TestMemoryCache_ReturnsCopies(t *testing.T) {
	now := time.Now()
	c := newTestCache(now)
	ctx := context.Background()

	e := entry("k", now.Add(time.Hour))
	require.NoError(t, c.Set(ctx, e))
	e.Verdict.Reasons[0] = "mutated after set"

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	got.Verdict.Reasons[0] = "mutated after get"

	again, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "Invalid email format", again.Verdict.Reasons[0])
}

func TestMemoryCache_SetRequiresKey(t *testing.T) {
	c := newTestCache(time.Now())

	assert.Error(t, c.Set(context.Background(), nil))
	assert.Error(t, c.Set(context.Background(), &core.CacheEntry{}))
}

func TestMemoryCache_DeleteAndCleanup(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c := newTestCache(now)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, entry("live", now.Add(time.Hour))))
	require.NoError(t, c.Set(ctx, entry("dead", now.Add(-time.Second))))
	require.NoError(t, c.Set(ctx, entry("gone", now.Add(time.Hour))))

	require.NoError(t, c.Delete(ctx, "gone"))
	require.NoError(t, c.Cleanup(ctx))

	assert.Equal(t, 1, c.Len())
	_, err := c.Get(ctx, "live")
	assert.NoError(t, err)
}

func TestMemoryCache_BackgroundCleanup(t *testing.T) {
	c := NewMemoryCache(zap.NewNop(), 5*time.Millisecond)
	defer c.Stop()

	require.NoError(t, c.Set(context.Background(), entry("old", time.Now().Add(-time.Second))))

	assert.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestMemoryCache_StopIsIdempotent(t *testing.T) {
	c := NewMemoryCache(zap.NewNop(), time.Hour)

	assert.NotPanics(t, func() {
		c.Stop()
		c.Stop()
	})
}
