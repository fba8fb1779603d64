// Package cache provides statistics snapshot caches.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/personal-finance/tracker-api/internal/application/adapter"
	"github.com/personal-finance/tracker-api/internal/domain/entity"
)

const statisticsKeyPrefix = "stats"

// RedisStatisticsCache stores statistics snapshots in Redis as JSON.
type RedisStatisticsCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ adapter.StatisticsCache = (*RedisStatisticsCache)(nil)

// NewRedisStatisticsCache creates a cache that keeps each snapshot for ttl.
func NewRedisStatisticsCache(client *redis.Client, ttl time.Duration) *RedisStatisticsCache {
	return &RedisStatisticsCache{
		client: client,
		ttl:    ttl,
	}
}

// NewRedisClient creates a Redis client from a redis:// URL.
// A non-empty password or non-zero db overrides the URL.
func NewRedisClient(url, password string, db int) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	if db != 0 {
		opts.DB = db
	}
	return redis.NewClient(opts), nil
}

// Get returns the snapshot stored for the user and version, or nil on a miss.
func (c *RedisStatisticsCache) Get(ctx context.Context, userID uuid.UUID, version int64) (*entity.Statistics, error) {
	payload, err := c.client.Get(ctx, statisticsKey(userID, version)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read statistics from cache: %w", err)
	}

	stats := entity.NewStatistics()
	if err := json.Unmarshal(payload, stats); err != nil {
		return nil, fmt.Errorf("failed to decode cached statistics: %w", err)
	}
	return stats, nil
}

// Set stores the snapshot for the user and version.
func (c *RedisStatisticsCache) Set(ctx context.Context, userID uuid.UUID, version int64, stats *entity.Statistics) error {
	payload, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to encode statistics: %w", err)
	}
	if err := c.client.Set(ctx, statisticsKey(userID, version), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write statistics to cache: %w", err)
	}
	return nil
}

// Ping checks if Redis is reachable.
func (c *RedisStatisticsCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func statisticsKey(userID uuid.UUID, version int64) string {
	return fmt.Sprintf("%s:%s:%d", statisticsKeyPrefix, userID, version)
}
