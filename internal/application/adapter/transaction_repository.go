// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-finance/tracker-api/internal/domain/entity"
)

// TransactionFilter defines filter options for listing transactions.
type TransactionFilter struct {
	UserID    uuid.UUID
	Type      *entity.TransactionType
	Category  string     // Normalized category, exact match
	StartDate *time.Time // Inclusive
	EndDate   *time.Time // Inclusive
}

// TransactionRepository defines the interface for transaction persistence operations.
// Every mutating method bumps the owner's ledger version in the same database transaction.
type TransactionRepository interface {
	// Create creates a new transaction in the database.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByUser retrieves all transactions for a given user, newest first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error)

	// FindByFilter retrieves transactions matching the filter, newest first.
	FindByFilter(ctx context.Context, filter TransactionFilter) ([]*entity.Transaction, error)

	// FindRecent retrieves the newest transactions of a user.
	FindRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Transaction, error)

	// Update updates an existing transaction in the database.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete permanently removes a transaction from the database.
	Delete(ctx context.Context, transaction *entity.Transaction) error

	// SumExpensesByCategory returns the exact sum of a user's expenses in one category.
	SumExpensesByCategory(ctx context.Context, userID uuid.UUID, category string) (decimal.Decimal, error)

	// ListCategories returns the distinct categories used by a user, ascending.
	ListCategories(ctx context.Context, userID uuid.UUID) ([]string, error)

	// LedgerVersion returns the user's ledger version, which changes on every write.
	LedgerVersion(ctx context.Context, userID uuid.UUID) (int64, error)
}
