// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/personal-finance/tracker-api/internal/domain/entity"
)

// StatisticsCache memoizes aggregated statistics per user and ledger version.
// A snapshot stored under a version is only valid for that exact version.
type StatisticsCache interface {
	// Get returns the cached snapshot, or nil when there is none.
	Get(ctx context.Context, userID uuid.UUID, version int64) (*entity.Statistics, error)

	// Set stores a snapshot for the given version.
	Set(ctx context.Context, userID uuid.UUID, version int64, stats *entity.Statistics) error

	// Ping checks if the cache backend is reachable.
	Ping(ctx context.Context) error
}
