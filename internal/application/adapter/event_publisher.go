// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-finance/tracker-api/internal/domain/entity"
)

// LedgerEventType identifies a committed change to a user's ledger.
type LedgerEventType string

const (
	LedgerEventTransactionCreated LedgerEventType = "transaction.created"
	LedgerEventTransactionUpdated LedgerEventType = "transaction.updated"
	LedgerEventTransactionDeleted LedgerEventType = "transaction.deleted"
)

// LedgerEvent describes a committed transaction write.
type LedgerEvent struct {
	Type          LedgerEventType        `json:"type"`
	UserID        uuid.UUID              `json:"user_id"`
	TransactionID uuid.UUID              `json:"transaction_id"`
	Kind          entity.TransactionType `json:"kind"`
	Category      string                 `json:"category"`
	Amount        decimal.Decimal        `json:"amount"`
	OccurredAt    time.Time              `json:"occurred_at"`
}

// NewLedgerEvent builds an event for the given transaction.
func NewLedgerEvent(eventType LedgerEventType, transaction *entity.Transaction) LedgerEvent {
	return LedgerEvent{
		Type:          eventType,
		UserID:        transaction.UserID,
		TransactionID: transaction.ID,
		Kind:          transaction.Type,
		Category:      transaction.Category,
		Amount:        transaction.Amount,
		OccurredAt:    time.Now().UTC(),
	}
}

// EventPublisher publishes ledger events to a message broker.
type EventPublisher interface {
	// Publish sends a single event. Callers treat failures as non-fatal.
	Publish(ctx context.Context, event LedgerEvent) error

	// Close releases the broker connection.
	Close() error
}
