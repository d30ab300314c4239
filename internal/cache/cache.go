// Package cache stores the computed analytics summary between requests.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dom/moodbite/internal/domain"
	"github.com/redis/go-redis/v9"
)

const analyticsKey = "moodbite:analytics:summary"

// AnalyticsCache holds at most one analytics summary. Get reports ok=false on a miss.
type AnalyticsCache interface {
	Get(ctx context.Context) (*domain.Analytics, bool, error)
	Set(ctx context.Context, summary *domain.Analytics) error
	Invalidate(ctx context.Context) error
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type redisAnalyticsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient builds a client and checks the server is reachable.
func NewRedisClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func NewRedisAnalyticsCache(client *redis.Client, ttl time.Duration) *redisAnalyticsCache {
	return &redisAnalyticsCache{client: client, ttl: ttl}
}

func (c *redisAnalyticsCache) Get(ctx context.Context) (*domain.Analytics, bool, error) {
	raw, err := c.client.Get(ctx, analyticsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var summary domain.Analytics
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil, false, fmt.Errorf("decode cached analytics: %w", err)
	}
	return &summary, true, nil
}

func (c *redisAnalyticsCache) Set(ctx context.Context, summary *domain.Analytics) error {
	raw, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, analyticsKey, raw, c.ttl).Err()
}

func (c *redisAnalyticsCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, analyticsKey).Err()
}

type nopAnalyticsCache struct{}

// NewNop returns a cache that never stores anything.
func NewNop() AnalyticsCache {
	return nopAnalyticsCache{}
}

func (nopAnalyticsCache) Get(context.Context) (*domain.Analytics, bool, error) { return nil, false, nil }
func (nopAnalyticsCache) Set(context.Context, *domain.Analytics) error        { return nil }
func (nopAnalyticsCache) Invalidate(context.Context) error                    { return nil }
