package cache

import (
	"context"

	"github.com/google/uuid"

	"github.com/personal-finance/tracker-api/internal/domain/entity"
)

// NoopStatisticsCache never stores anything. It is used when Redis is disabled.
type NoopStatisticsCache struct{}

// Get always misses.
func (NoopStatisticsCache) Get(context.Context, uuid.UUID, int64) (*entity.Statistics, error) {
	return nil, nil
}

// Set discards the snapshot.
func (NoopStatisticsCache) Set(context.Context, uuid.UUID, int64, *entity.Statistics) error {
	return nil
}

// Ping always succeeds.
func (NoopStatisticsCache) Ping(context.Context) error {
	return nil
}
