// Package budget contains budget-related use cases.
package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/personal-finance/tracker-api/internal/application/adapter"
	"github.com/personal-finance/tracker-api/internal/domain/entity"
	domainerror "github.com/personal-finance/tracker-api/internal/domain/error"
)

// DeleteBudgetInput represents the input for budget deletion.
type DeleteBudgetInput struct {
	UserID   uuid.UUID
	Category string
}

// DeleteBudgetUseCase handles budget deletion.
type DeleteBudgetUseCase struct {
	budgetRepo adapter.BudgetRepository
	locker     adapter.WriteLocker
}

// NewDeleteBudgetUseCase creates a new DeleteBudgetUseCase instance.
func NewDeleteBudgetUseCase(budgetRepo adapter.BudgetRepository, locker adapter.WriteLocker) *DeleteBudgetUseCase {
	return &DeleteBudgetUseCase{
		budgetRepo: budgetRepo,
		locker:     locker,
	}
}

// Execute deletes the budget of a category.
func (uc *DeleteBudgetUseCase) Execute(ctx context.Context, input DeleteBudgetInput) error {
	category := entity.NormalizeCategory(input.Category)
	if category == "" {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetCategoryRequired,
			"category is required",
			domainerror.ErrBudgetCategoryRequired,
		)
	}

	unlock := uc.locker.Lock(input.UserID)
	defer unlock()

	if err := uc.budgetRepo.Delete(ctx, input.UserID, category); err != nil {
		if errors.Is(err, domainerror.ErrBudgetNotFound) {
			return domainerror.NewBudgetError(
				domainerror.ErrCodeBudgetNotFound,
				"budget not found",
				domainerror.ErrBudgetNotFound,
			)
		}
		return fmt.Errorf("failed to delete budget: %w", err)
	}

	return nil
}
