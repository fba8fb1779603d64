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

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	UserID      uuid.UUID
	Type        entity.TransactionType
	Amount      decimal.Decimal
	Category    string
	Description string
	Date        time.Time // Zero means now
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *TransactionOutput
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	locker          adapter.WriteLocker
	hooks           ledgerHooks
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	tracker BudgetTracker,
	publisher adapter.EventPublisher,
	locker adapter.WriteLocker,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		locker:          locker,
		hooks:           ledgerHooks{tracker: tracker, publisher: publisher},
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	// Validate transaction type
	if !input.Type.IsValid() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionType,
		)
	}

	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}

	category, err := validateCategory(input.Category)
	if err != nil {
		return nil, err
	}

	if err := validateDescription(input.Description); err != nil {
		return nil, err
	}

	transaction := entity.NewTransaction(
		input.UserID,
		input.Type,
		input.Amount,
		category,
		input.Description,
		input.Date,
	)

	unlock := uc.locker.Lock(input.UserID)
	defer unlock()

	// Save transaction to database
	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	uc.hooks.added(ctx, transaction)
	uc.hooks.publish(ctx, adapter.LedgerEventTransactionCreated, transaction)

	return &CreateTransactionOutput{
		Transaction: NewTransactionOutput(transaction),
	}, nil
}

func validateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must not be negative",
			domainerror.ErrInvalidTransactionAmount,
		)
	}
	if !amount.Equal(amount.Round(2)) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must have at most 2 decimal places",
			domainerror.ErrInvalidTransactionAmount,
		)
	}
	if !entity.AmountFits(amount) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeAmountTooLarge,
			"amount must have at most 13 integer digits",
			domainerror.ErrInvalidTransactionAmount,
		)
	}
	return nil
}

func validateCategory(category string) (string, error) {
	normalized := entity.NormalizeCategory(category)
	if normalized == "" {
		return "", domainerror.NewTransactionError(
			domainerror.ErrCodeCategoryRequired,
			"category is required",
			domainerror.ErrCategoryRequired,
		)
	}
	if len(normalized) > MaxCategoryLength {
		return "", domainerror.NewTransactionError(
			domainerror.ErrCodeCategoryTooLong,
			fmt.Sprintf("category must not exceed %d characters", MaxCategoryLength),
			domainerror.ErrCategoryTooLong,
		)
	}
	return normalized, nil
}

func validateDescription(description string) error {
	if len(description) > MaxDescriptionLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}
	return nil
}
