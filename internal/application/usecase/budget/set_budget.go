// Package budget contains budget-related use cases.
package budget

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-finance/tracker-api/internal/application/adapter"
	"github.com/personal-finance/tracker-api/internal/domain/entity"
	domainerror "github.com/personal-finance/tracker-api/internal/domain/error"
)

// SetBudgetInput represents the input for creating or updating a budget.
type SetBudgetInput struct {
	UserID        uuid.UUID
	Category      string
	Limit         decimal.Decimal
	AlertOnExceed bool
}

// SetBudgetOutput represents the output of setting a budget.
type SetBudgetOutput struct {
	Budget  *BudgetOutput
	Created bool
}

// SetBudgetUseCase handles budget upserts.
type SetBudgetUseCase struct {
	budgetRepo adapter.BudgetRepository
	tracker    *Tracker
	locker     adapter.WriteLocker
}

// NewSetBudgetUseCase creates a new SetBudgetUseCase instance.
func NewSetBudgetUseCase(
	budgetRepo adapter.BudgetRepository,
	tracker *Tracker,
	locker adapter.WriteLocker,
) *SetBudgetUseCase {
	return &SetBudgetUseCase{
		budgetRepo: budgetRepo,
		tracker:    tracker,
		locker:     locker,
	}
}

// Execute creates the budget of a category, or updates its limit when one exists.
// A new budget starts from the full sum of the category's existing expenses.
func (uc *SetBudgetUseCase) Execute(ctx context.Context, input SetBudgetInput) (*SetBudgetOutput, error) {
	// Validate input
	category := entity.NormalizeCategory(input.Category)
	if category == "" {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetCategoryRequired,
			"category is required",
			domainerror.ErrBudgetCategoryRequired,
		)
	}
	if input.Limit.IsNegative() || !input.Limit.Equal(input.Limit.Round(2)) {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetLimit,
			"limit must be a non-negative amount with at most 2 decimal places",
			domainerror.ErrInvalidBudgetLimit,
		)
	}
	if !entity.AmountFits(input.Limit) {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetLimitTooLarge,
			"limit must have at most 13 integer digits",
			domainerror.ErrInvalidBudgetLimit,
		)
	}

	unlock := uc.locker.Lock(input.UserID)
	defer unlock()

	existing, err := uc.budgetRepo.FindByUserAndCategory(ctx, input.UserID, category)
	if err != nil && !errors.Is(err, domainerror.ErrBudgetNotFound) {
		return nil, fmt.Errorf("failed to find budget: %w", err)
	}

	// Update an existing budget in place
	if existing != nil {
		existing.Limit = input.Limit
		existing.AlertOnExceed = input.AlertOnExceed
		existing.UpdatedAt = time.Now().UTC()

		spent, err := uc.tracker.Spent(ctx, input.UserID, category)
		if err != nil {
			return nil, err
		}
		existing.Spent = spent

		if err := uc.budgetRepo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update budget: %w", err)
		}
		return &SetBudgetOutput{Budget: toBudgetOutput(existing), Created: false}, nil
	}

	// Create a new budget seeded from the ledger
	budget := entity.NewBudget(input.UserID, category, input.Limit, input.AlertOnExceed)
	spent, err := uc.tracker.Spent(ctx, input.UserID, category)
	if err != nil {
		return nil, err
	}
	budget.Spent = spent

	if err := uc.budgetRepo.Create(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	return &SetBudgetOutput{Budget: toBudgetOutput(budget), Created: true}, nil
}
