package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/personal-finance/tracker-api/internal/application/adapter"
)

// BudgetReconciler recomputes stored budget projections from the ledger.
type BudgetReconciler interface {
	ReconcileAll(ctx context.Context, locker adapter.WriteLocker) (int, error)
}

// TokenCleaner removes expired refresh tokens.
type TokenCleaner interface {
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// ReconcileBudgetsJob corrects every drifted budget.
func ReconcileBudgetsJob(reconciler BudgetReconciler, locker adapter.WriteLocker) JobFunc {
	return func(ctx context.Context) error {
		corrected, err := reconciler.ReconcileAll(ctx, locker)
		if corrected > 0 {
			slog.InfoContext(ctx, "Budgets reconciled", "corrected", corrected)
		}
		return err
	}
}

// CleanupTokensJob deletes refresh tokens that have expired.
func CleanupTokensJob(cleaner TokenCleaner) JobFunc {
	return func(ctx context.Context) error {
		removed, err := cleaner.DeleteExpired(ctx, time.Now().UTC())
		if removed > 0 {
			slog.InfoContext(ctx, "Expired refresh tokens removed", "count", removed)
		}
		return err
	}
}

// IdleEvicter drops idle per-client state.
type IdleEvicter interface {
	Cleanup() int
}

// EvictIdleClientsJob frees the login rate limiter entries of idle clients.
func EvictIdleClientsJob(evicter IdleEvicter) JobFunc {
	return func(ctx context.Context) error {
		if removed := evicter.Cleanup(); removed > 0 {
			slog.DebugContext(ctx, "Idle rate limiter entries evicted", "count", removed)
		}
		return nil
	}
}
