// Package budget contains budget-related use cases.
package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-finance/tracker-api/internal/application/adapter"
	"github.com/personal-finance/tracker-api/internal/domain/entity"
)

// BudgetOutput represents a budget with its derived status.
type BudgetOutput struct {
	ID            uuid.UUID
	Category      string
	Limit         decimal.Decimal
	Spent         decimal.Decimal
	Remaining     decimal.Decimal
	Percentage    decimal.Decimal
	Status        entity.BudgetStatus
	AlertOnExceed bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func toBudgetOutput(budget *entity.Budget) *BudgetOutput {
	return &BudgetOutput{
		ID:            budget.ID,
		Category:      budget.Category,
		Limit:         budget.Limit,
		Spent:         budget.Spent,
		Remaining:     budget.Limit.Sub(budget.Spent),
		Percentage:    budget.Percentage(),
		Status:        budget.Status(),
		AlertOnExceed: budget.AlertOnExceed,
		CreatedAt:     budget.CreatedAt,
		UpdatedAt:     budget.UpdatedAt,
	}
}

// ListBudgetsInput represents the input for listing budgets.
type ListBudgetsInput struct {
	UserID uuid.UUID
}

// ListBudgetsOutput represents the output of listing budgets.
type ListBudgetsOutput struct {
	Budgets []*BudgetOutput
}

// ListBudgetsUseCase handles listing budgets with a spent recomputed from the ledger.
type ListBudgetsUseCase struct {
	budgetRepo adapter.BudgetRepository
	tracker    *Tracker
	locker     adapter.WriteLocker
}

// NewListBudgetsUseCase creates a new ListBudgetsUseCase instance.
func NewListBudgetsUseCase(
	budgetRepo adapter.BudgetRepository,
	tracker *Tracker,
	locker adapter.WriteLocker,
) *ListBudgetsUseCase {
	return &ListBudgetsUseCase{
		budgetRepo: budgetRepo,
		tracker:    tracker,
		locker:     locker,
	}
}

// Execute lists the budgets of a user. Each spent is recomputed before it is returned.
func (uc *ListBudgetsUseCase) Execute(ctx context.Context, input ListBudgetsInput) (*ListBudgetsOutput, error) {
	// Refreshing may write the stored projection.
	unlock := uc.locker.Lock(input.UserID)
	defer unlock()

	budgets, err := uc.budgetRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}

	output := &ListBudgetsOutput{
		Budgets: make([]*BudgetOutput, 0, len(budgets)),
	}
	for _, budget := range budgets {
		if _, err := uc.tracker.Refresh(ctx, budget); err != nil {
			return nil, err
		}
		output.Budgets = append(output.Budgets, toBudgetOutput(budget))
	}

	return output, nil
}
