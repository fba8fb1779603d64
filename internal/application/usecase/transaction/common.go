// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-finance/tracker-api/internal/application/adapter"
	"github.com/personal-finance/tracker-api/internal/domain/entity"
)

const (
	// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
	MaxDescriptionLength = 255
	// MaxCategoryLength is the maximum allowed length for a normalized category.
	MaxCategoryLength = 100
)

// BudgetTracker keeps budget projections in step with ledger writes.
type BudgetTracker interface {
	// OnTransactionAdded accounts a newly created transaction.
	OnTransactionAdded(ctx context.Context, transaction *entity.Transaction) error

	// Reconcile recomputes the budget of one category from the ledger.
	Reconcile(ctx context.Context, userID uuid.UUID, category string) error
}

// TransactionOutput represents a transaction in use case outputs.
type TransactionOutput struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Type        entity.TransactionType
	Amount      decimal.Decimal
	Category    string
	Description string
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTransactionOutput converts a transaction entity to its output form.
func NewTransactionOutput(transaction *entity.Transaction) *TransactionOutput {
	return &TransactionOutput{
		ID:          transaction.ID,
		UserID:      transaction.UserID,
		Type:        transaction.Type,
		Amount:      transaction.Amount,
		Category:    transaction.Category,
		Description: transaction.Description,
		Date:        transaction.Date,
		CreatedAt:   transaction.CreatedAt,
		UpdatedAt:   transaction.UpdatedAt,
	}
}

// ledgerHooks runs the side effects that follow a committed ledger write.
// None of them can fail the write; failures are logged.
type ledgerHooks struct {
	tracker   BudgetTracker
	publisher adapter.EventPublisher
}

func (h ledgerHooks) added(ctx context.Context, transaction *entity.Transaction) {
	if err := h.tracker.OnTransactionAdded(ctx, transaction); err != nil {
		slog.WarnContext(ctx, "Failed to track budget for new transaction",
			"transactionID", transaction.ID,
			"category", transaction.Category,
			"error", err,
		)
	}
}

func (h ledgerHooks) reconcile(ctx context.Context, userID uuid.UUID, categories ...string) {
	seen := make(map[string]struct{}, len(categories))
	for _, category := range categories {
		if _, ok := seen[category]; ok {
			continue
		}
		seen[category] = struct{}{}

		if err := h.tracker.Reconcile(ctx, userID, category); err != nil {
			slog.WarnContext(ctx, "Failed to reconcile budget",
				"userID", userID,
				"category", category,
				"error", err,
			)
		}
	}
}

func (h ledgerHooks) publish(ctx context.Context, eventType adapter.LedgerEventType, transaction *entity.Transaction) {
	if h.publisher == nil {
		return
	}
	if err := h.publisher.Publish(ctx, adapter.NewLedgerEvent(eventType, transaction)); err != nil {
		slog.WarnContext(ctx, "Failed to publish ledger event",
			"type", eventType,
			"transactionID", transaction.ID,
			"error", err,
		)
	}
}
