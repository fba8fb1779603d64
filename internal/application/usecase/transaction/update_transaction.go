// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-finance/tracker-api/internal/application/adapter"
	"github.com/personal-finance/tracker-api/internal/domain/entity"
	domainerror "github.com/personal-finance/tracker-api/internal/domain/error"
)

// UpdateTransactionInput represents the input for transaction update.
// Nil fields are left unchanged; date and id are never edited.
type UpdateTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
	Type          *entity.TransactionType
	Amount        *decimal.Decimal
	Category      *string
	Description   *string
}

func (i UpdateTransactionInput) isEmpty() bool {
	return i.Type == nil && i.Amount == nil && i.Category == nil && i.Description == nil
}

// UpdateTransactionOutput represents the output of transaction update.
type UpdateTransactionOutput struct {
	Transaction *TransactionOutput
}

// UpdateTransactionUseCase handles transaction update logic.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	locker          adapter.WriteLocker
	hooks           ledgerHooks
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	tracker BudgetTracker,
	publisher adapter.EventPublisher,
	locker adapter.WriteLocker,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionRepo: transactionRepo,
		locker:          locker,
		hooks:           ledgerHooks{tracker: tracker, publisher: publisher},
	}
}

// Execute performs the transaction update.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	if input.isEmpty() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeNoFieldsToUpdate,
			"at least one of type, amount, category or description is required",
			domainerror.ErrNoFieldsToUpdate,
		)
	}

	// Validate every provided field before touching the stored record
	if input.Type != nil && !input.Type.IsValid() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionType,
		)
	}
	if input.Amount != nil {
		if err := validateAmount(*input.Amount); err != nil {
			return nil, err
		}
	}
	var category string
	if input.Category != nil {
		normalized, err := validateCategory(*input.Category)
		if err != nil {
			return nil, err
		}
		category = normalized
	}
	if input.Description != nil {
		if err := validateDescription(*input.Description); err != nil {
			return nil, err
		}
	}

	unlock := uc.locker.Lock(input.UserID)
	defer unlock()

	transaction, err := findOwnedTransaction(ctx, uc.transactionRepo, input.TransactionID, input.UserID)
	if err != nil {
		return nil, err
	}
	previousCategory := transaction.Category

	// Update fields if provided
	if input.Type != nil {
		transaction.Type = *input.Type
	}
	if input.Amount != nil {
		transaction.Amount = *input.Amount
	}
	if input.Category != nil {
		transaction.Category = category
	}
	if input.Description != nil {
		transaction.Description = *input.Description
	}
	transaction.UpdatedAt = time.Now().UTC()

	// Save changes
	if err := uc.transactionRepo.Update(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	uc.hooks.reconcile(ctx, transaction.UserID, previousCategory, transaction.Category)
	uc.hooks.publish(ctx, adapter.LedgerEventTransactionUpdated, transaction)

	return &UpdateTransactionOutput{
		Transaction: NewTransactionOutput(transaction),
	}, nil
}
