// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/personal-finance/tracker-api/internal/application/adapter"
	"github.com/personal-finance/tracker-api/internal/domain/entity"
	domainerror "github.com/personal-finance/tracker-api/internal/domain/error"
)

// DeleteTransactionInput represents the input for transaction deletion.
type DeleteTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
}

// DeleteTransactionUseCase handles transaction deletion logic.
type DeleteTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	locker          adapter.WriteLocker
	hooks           ledgerHooks
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	tracker BudgetTracker,
	publisher adapter.EventPublisher,
	locker adapter.WriteLocker,
) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{
		transactionRepo: transactionRepo,
		locker:          locker,
		hooks:           ledgerHooks{tracker: tracker, publisher: publisher},
	}
}

// Execute performs the transaction deletion.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, input DeleteTransactionInput) error {
	unlock := uc.locker.Lock(input.UserID)
	defer unlock()

	transaction, err := findOwnedTransaction(ctx, uc.transactionRepo, input.TransactionID, input.UserID)
	if err != nil {
		return err
	}

	if err := uc.transactionRepo.Delete(ctx, transaction); err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return transactionNotFound()
		}
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	uc.hooks.reconcile(ctx, transaction.UserID, transaction.Category)
	uc.hooks.publish(ctx, adapter.LedgerEventTransactionDeleted, transaction)

	return nil
}

// findOwnedTransaction loads a transaction of the given user.
// Foreign transactions are reported as not found.
func findOwnedTransaction(
	ctx context.Context,
	repo adapter.TransactionRepository,
	transactionID uuid.UUID,
	userID uuid.UUID,
) (*entity.Transaction, error) {
	transaction, err := repo.FindByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, transactionNotFound()
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}

	if transaction.UserID != userID {
		return nil, transactionNotFound()
	}

	return transaction, nil
}

func transactionNotFound() error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeTransactionNotFound,
		"transaction not found",
		domainerror.ErrTransactionNotFound,
	)
}
