package cache

import (
	"context"
	"delivery-zone-service/internal/domain"
	"delivery-zone-service/internal/platform/metrics"
	"delivery-zone-service/internal/platform/obs"
	"delivery-zone-service/internal/ports"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// RedisStoreCache is a read-through cache in front of a StoreDirectory.
//
// Only successful fetches are cached. Concurrent misses for the same key
// share one upstream call. When Redis itself fails the cache steps aside
// and the inner directory is called directly.
type RedisStoreCache struct {
	rdb     *redis.Client
	inner   ports.StoreDirectory
	key     string
	ttl     time.Duration
	metrics *metrics.Metrics
	group   singleflight.Group
}

// cachedStore is the JSON form stored in Redis.
type cachedStore struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Direction string  `json:"direction"`
}

// NewRedisStoreCache keys entries by source, typically the directory base URL.
func NewRedisStoreCache(
	rdb *redis.Client,
	inner ports.StoreDirectory,
	source string,
	ttl time.Duration,
	m *metrics.Metrics,
) (*RedisStoreCache, error) {
	if rdb == nil {
		return nil, errors.New("store cache: redis client is nil")
	}
	if inner == nil {
		return nil, errors.New("store cache: inner directory is nil")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("store cache: ttl must be > 0, got %s", ttl)
	}

	return &RedisStoreCache{
		rdb:     rdb,
		inner:   inner,
		key:     "stores:v1:" + source,
		ttl:     ttl,
		metrics: m,
	}, nil
}

func (c *RedisStoreCache) ListStores(ctx context.Context) (_ []domain.Store, err error) {
	defer obs.Time(ctx, "store.cache.ListStores")(&err)

	stores, hit, err := c.get(ctx)
	if err != nil {
		c.metrics.ObserveCache("error")
		log.Printf("store cache: get key=%s: %v (falling through)", c.key, err)
	} else if hit {
		c.metrics.ObserveCache("hit")
		return stores, nil
	} else {
		c.metrics.ObserveCache("miss")
	}

	v, err, _ := c.group.Do(c.key, func() (any, error) {
		fresh, err := c.inner.ListStores(ctx)
		if err != nil {
			return nil, err
		}
		if err := c.set(ctx, fresh); err != nil {
			log.Printf("store cache: set key=%s: %v", c.key, err)
		}
		return fresh, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]domain.Store), nil
}

func (c *RedisStoreCache) get(ctx context.Context) ([]domain.Store, bool, error) {
	raw, err := c.rdb.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var rows []cachedStore
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, false, fmt.Errorf("decode cached stores: %w", err)
	}

	out := make([]domain.Store, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Store(r))
	}
	return out, true, nil
}

func (c *RedisStoreCache) set(ctx context.Context, stores []domain.Store) error {
	rows := make([]cachedStore, 0, len(stores))
	for _, s := range stores {
		rows = append(rows, cachedStore(s))
	}

	raw, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encode stores: %w", err)
	}

	if err := c.rdb.Set(ctx, c.key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Invalidate drops the cached list.
func (c *RedisStoreCache) Invalidate(ctx context.Context) error {
	if err := c.rdb.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("store cache: invalidate key=%s: %w", c.key, err)
	}
	return nil
}
