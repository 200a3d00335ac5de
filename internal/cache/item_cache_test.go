package cache

import (
	"context"
	"testing"
	"time"

	dom "todolist/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*ItemCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewItemCache(rdb, time.Minute), mr
}

func TestItemCacheRoundTrip(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	miss, err := c.GetList(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, miss)

	items := []dom.Item{{ID: 1, OwnerID: 1, Title: "Buy milk", Due: "2024-01-01", Description: "2%"}}
	require.NoError(t, c.SetList(ctx, 1, items, 0))
	assert.Equal(t, time.Minute, mr.TTL("items:owner:1"))

	got, err := c.GetList(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, items, got)

	other, err := c.GetList(ctx, 2)
	require.NoError(t, err)
	assert.Nil(t, other, "listings are per owner")

	require.NoError(t, c.Invalidate(ctx, 1))
	got, err = c.GetList(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestItemCacheEmptyListIsAHit(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetList(ctx, 3, nil, 0))
	got, err := c.GetList(ctx, 3)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestItemCacheExpires(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetList(ctx, 1, []dom.Item{{ID: 1, OwnerID: 1, Title: "x"}}, 0))
	mr.FastForward(2 * time.Minute)

	got, err := c.GetList(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestItemCacheDropsFillAfterInvalidate(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	gen, err := c.Generation(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, gen)

	// A write lands between reading the store and filling the cache.
	require.NoError(t, c.Invalidate(ctx, 1))
	err = c.SetList(ctx, 1, []dom.Item{}, gen)
	assert.ErrorIs(t, err, ErrStale)

	got, err := c.GetList(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got, "stale listing not stored")

	gen, err = c.Generation(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), gen)
	require.NoError(t, c.SetList(ctx, 1, []dom.Item{{ID: 1, OwnerID: 1, Title: "x"}}, gen))
	got, err = c.GetList(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
