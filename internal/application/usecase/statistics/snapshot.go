// Package statistics contains statistics-related use cases.
package statistics

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/personal-finance/tracker-api/internal/application/adapter"
	"github.com/personal-finance/tracker-api/internal/domain/entity"
	"github.com/personal-finance/tracker-api/internal/domain/service"
)

// SnapshotLoader aggregates a user's full ledger into statistics.
//
// Results are memoized under the user's ledger version, which the repository
// bumps atomically with every write, so a cached snapshot always matches the
// ledger it is served for. Cache failures fall back to a fresh aggregation.
type SnapshotLoader struct {
	transactionRepo adapter.TransactionRepository
	cache           adapter.StatisticsCache
	group           singleflight.Group
}

// NewSnapshotLoader creates a new SnapshotLoader instance.
func NewSnapshotLoader(transactionRepo adapter.TransactionRepository, cache adapter.StatisticsCache) *SnapshotLoader {
	return &SnapshotLoader{
		transactionRepo: transactionRepo,
		cache:           cache,
	}
}

// Load returns the statistics of every transaction of the user.
func (l *SnapshotLoader) Load(ctx context.Context, userID uuid.UUID) (*entity.Statistics, error) {
	version, err := l.transactionRepo.LedgerVersion(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger version: %w", err)
	}

	if stats := l.cached(ctx, userID, version); stats != nil {
		return stats, nil
	}

	key := fmt.Sprintf("%s:%d", userID, version)
	// The load is shared with other callers, so one caller's cancellation must not fail them.
	loadCtx := context.WithoutCancel(ctx)
	result, err, _ := l.group.Do(key, func() (any, error) {
		transactions, err := l.transactionRepo.FindByUser(loadCtx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to load transactions: %w", err)
		}

		stats := service.Aggregate(transactions)

		if err := l.cache.Set(loadCtx, userID, version, stats); err != nil {
			slog.WarnContext(loadCtx, "Failed to cache statistics",
				"userID", userID,
				"version", version,
				"error", err,
			)
		}
		return stats, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*entity.Statistics), nil
}

func (l *SnapshotLoader) cached(ctx context.Context, userID uuid.UUID, version int64) *entity.Statistics {
	stats, err := l.cache.Get(ctx, userID, version)
	if err != nil {
		slog.WarnContext(ctx, "Failed to read cached statistics",
			"userID", userID,
			"version", version,
			"error", err,
		)
		return nil
	}
	return stats
}
