// Package budget contains budget-related use cases.
package budget

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-finance/tracker-api/internal/application/adapter"
	"github.com/personal-finance/tracker-api/internal/domain/entity"
	domainerror "github.com/personal-finance/tracker-api/internal/domain/error"
)

// Tracker keeps the stored spent of each budget in step with the expense ledger.
// It never takes the user write lock itself; callers that mutate the ledger hold it.
type Tracker struct {
	budgetRepo      adapter.BudgetRepository
	transactionRepo adapter.TransactionRepository
	userRepo        adapter.UserRepository
	notifier        adapter.BudgetNotifier
}

// NewTracker creates a new Tracker instance. The notifier may be nil.
func NewTracker(
	budgetRepo adapter.BudgetRepository,
	transactionRepo adapter.TransactionRepository,
	userRepo adapter.UserRepository,
	notifier adapter.BudgetNotifier,
) *Tracker {
	return &Tracker{
		budgetRepo:      budgetRepo,
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
		notifier:        notifier,
	}
}

// OnTransactionAdded adds a new expense to the budget of its category.
// Income and expenses without a budget are ignored.
func (t *Tracker) OnTransactionAdded(ctx context.Context, transaction *entity.Transaction) error {
	if !transaction.IsExpense() {
		return nil
	}

	budget, err := t.budgetRepo.FindByUserAndCategory(ctx, transaction.UserID, transaction.Category)
	if err != nil {
		if errors.Is(err, domainerror.ErrBudgetNotFound) {
			return nil
		}
		return fmt.Errorf("failed to find budget: %w", err)
	}

	wasOver := budget.IsOverBudget()
	budget.Spent = budget.Spent.Add(transaction.Amount)

	if err := t.budgetRepo.UpdateSpent(ctx, budget.ID, budget.Spent); err != nil {
		return fmt.Errorf("failed to update budget spent: %w", err)
	}

	if !wasOver && budget.IsOverBudget() && budget.AlertOnExceed {
		t.notifyExceeded(ctx, budget)
	}

	return nil
}

// Reconcile recomputes the spent of the user's budget for one category.
// It is a no-op when the category has no budget.
func (t *Tracker) Reconcile(ctx context.Context, userID uuid.UUID, category string) error {
	budget, err := t.budgetRepo.FindByUserAndCategory(ctx, userID, entity.NormalizeCategory(category))
	if err != nil {
		if errors.Is(err, domainerror.ErrBudgetNotFound) {
			return nil
		}
		return fmt.Errorf("failed to find budget: %w", err)
	}

	_, err = t.Refresh(ctx, budget)
	return err
}

// Spent returns the sum of the user's expenses in a category as recorded in the ledger.
func (t *Tracker) Spent(ctx context.Context, userID uuid.UUID, category string) (decimal.Decimal, error) {
	spent, err := t.transactionRepo.SumExpensesByCategory(ctx, userID, category)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum expenses: %w", err)
	}
	return spent, nil
}

// Refresh recomputes the spent of a budget from the ledger and persists it when it drifted.
// It reports whether the stored value changed.
func (t *Tracker) Refresh(ctx context.Context, budget *entity.Budget) (bool, error) {
	spent, err := t.Spent(ctx, budget.UserID, budget.Category)
	if err != nil {
		return false, err
	}

	if spent.Equal(budget.Spent) {
		return false, nil
	}

	budget.Spent = spent
	if err := t.budgetRepo.UpdateSpent(ctx, budget.ID, spent); err != nil {
		return false, fmt.Errorf("failed to update budget spent: %w", err)
	}
	return true, nil
}

// ReconcileAll refreshes every budget of every user, holding each user's write lock
// while that user's budgets are refreshed. It returns the number of corrected budgets.
func (t *Tracker) ReconcileAll(ctx context.Context, locker adapter.WriteLocker) (int, error) {
	userIDs, err := t.userRepo.FindAllIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list users: %w", err)
	}

	corrected := 0
	for _, userID := range userIDs {
		if err := ctx.Err(); err != nil {
			return corrected, err
		}

		n, err := t.reconcileUser(ctx, locker, userID)
		corrected += n
		if err != nil {
			return corrected, err
		}
	}

	return corrected, nil
}

func (t *Tracker) reconcileUser(ctx context.Context, locker adapter.WriteLocker, userID uuid.UUID) (int, error) {
	unlock := locker.Lock(userID)
	defer unlock()

	budgets, err := t.budgetRepo.FindByUserID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to list budgets: %w", err)
	}

	corrected := 0
	for _, budget := range budgets {
		changed, err := t.Refresh(ctx, budget)
		if err != nil {
			return corrected, err
		}
		if changed {
			corrected++
		}
	}
	return corrected, nil
}

// notifyExceeded sends the over-budget alert. Failures are logged, never returned.
func (t *Tracker) notifyExceeded(ctx context.Context, budget *entity.Budget) {
	if t.notifier == nil {
		return
	}

	user, err := t.userRepo.FindByID(ctx, budget.UserID)
	if err != nil {
		slog.WarnContext(ctx, "Failed to load user for budget alert",
			"userID", budget.UserID,
			"category", budget.Category,
			"error", err,
		)
		return
	}

	alert := adapter.BudgetAlert{
		Email:    user.Email,
		Name:     user.Name,
		Category: budget.Category,
		Limit:    budget.Limit,
		Spent:    budget.Spent,
	}
	if err := t.notifier.NotifyBudgetExceeded(ctx, alert); err != nil {
		slog.WarnContext(ctx, "Failed to send budget alert",
			"userID", budget.UserID,
			"category", budget.Category,
			"error", err,
		)
	}
}
