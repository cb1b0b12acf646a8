package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// StockCache holds serialized public stock listings. Invalidate bumps a version
// counter so every cached listing becomes unreachable at once.
//
// Readers take the version before loading from the database and write the
// listing under that same version. A listing loaded before an invalidation
// then lands under a key nobody reads anymore.
type StockCache interface {
	Version(ctx context.Context) (int64, error)
	GetPublic(ctx context.Context, version int64, filterKey string) ([]byte, bool, error)
	SetPublic(ctx context.Context, version int64, filterKey string, payload []byte) error
	Invalidate(ctx context.Context) error
}

const (
	RedisStockVersionKey    = "stock:public:version"
	RedisStockListingFormat = "stock:public:v%d:%s"

	stockCacheTimeout = 2 * time.Second
)

type redisStockCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStockCache(client *redis.Client, ttl time.Duration) StockCache {
	return &redisStockCache{client: client, ttl: ttl}
}

func (c *redisStockCache) Version(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, stockCacheTimeout)
	defer cancel()

	v, err := c.client.Get(ctx, RedisStockVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

func (c *redisStockCache) GetPublic(ctx context.Context, version int64, filterKey string) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, stockCacheTimeout)
	defer cancel()

	payload, err := c.client.Get(ctx, fmt.Sprintf(RedisStockListingFormat, version, filterKey)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return payload, true, nil
}

func (c *redisStockCache) SetPublic(ctx context.Context, version int64, filterKey string, payload []byte) error {
	ctx, cancel := context.WithTimeout(ctx, stockCacheTimeout)
	defer cancel()

	return c.client.Set(ctx, fmt.Sprintf(RedisStockListingFormat, version, filterKey), payload, c.ttl).Err()
}

func (c *redisStockCache) Invalidate(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, stockCacheTimeout)
	defer cancel()

	return c.client.Incr(ctx, RedisStockVersionKey).Err()
}
