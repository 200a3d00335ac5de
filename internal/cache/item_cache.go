package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	dom "todolist/internal/domain"

	"github.com/redis/go-redis/v9"
)

const keyOwnerList = "items:owner:"

// ErrStale is returned by SetList when the listing was invalidated after
// the caller read its generation.
var ErrStale = errors.New("cache: listing invalidated during fill")

// ItemCache caches each owner's item listing in Redis.
type ItemCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewItemCache returns a new ItemCache.
func NewItemCache(rdb *redis.Client, ttl time.Duration) *ItemCache {
	return &ItemCache{rdb: rdb, ttl: ttl}
}

func listKey(ownerID int64) string {
	return keyOwnerList + strconv.FormatInt(ownerID, 10)
}

func genKey(ownerID int64) string {
	return listKey(ownerID) + ":gen"
}

// Generation returns the owner's invalidation counter. Read it before
// loading from the store and hand it to SetList.
func (c *ItemCache) Generation(ctx context.Context, ownerID int64) (int64, error) {
	gen, err := c.rdb.Get(ctx, genKey(ownerID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// GetList returns the cached listing, or nil on a miss.
// An owner with no items is cached as an empty, non-nil slice.
func (c *ItemCache) GetList(ctx context.Context, ownerID int64) ([]dom.Item, error) {
	b, err := c.rdb.Get(ctx, listKey(ownerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	list := []dom.Item{}
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetList stores the owner's listing if no Invalidate ran since gen was
// read. Otherwise it returns ErrStale and leaves the cache empty.
func (c *ItemCache) SetList(ctx context.Context, ownerID int64, list []dom.Item, gen int64) error {
	if list == nil {
		list = []dom.Item{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}

	gk := genKey(ownerID)
	err = c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, gk).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != gen {
			return ErrStale
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, listKey(ownerID), b, c.ttl)
			return nil
		})
		return err
	}, gk)
	if errors.Is(err, redis.TxFailedErr) {
		return ErrStale
	}
	return err
}

// Invalidate drops the owner's listing after a write and bumps the
// generation so in-flight fills are discarded.
func (c *ItemCache) Invalidate(ctx context.Context, ownerID int64) error {
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey(ownerID))
		pipe.Del(ctx, listKey(ownerID))
		return nil
	})
	return err
}
