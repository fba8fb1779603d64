// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-finance/tracker-api/internal/domain/entity"
)

// BudgetRepository defines the interface for budget persistence operations.
type BudgetRepository interface {
	// Create creates a new budget.
	Create(ctx context.Context, budget *entity.Budget) error

	// Update updates limit, spent and alert settings of an existing budget.
	Update(ctx context.Context, budget *entity.Budget) error

	// UpdateSpent overwrites the stored spent projection of a budget.
	UpdateSpent(ctx context.Context, id uuid.UUID, spent decimal.Decimal) error

	// FindByUserAndCategory retrieves the budget of a user for one category.
	FindByUserAndCategory(ctx context.Context, userID uuid.UUID, category string) (*entity.Budget, error)

	// FindByUserID retrieves all budgets of a user ordered by category.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Budget, error)

	// Delete removes the budget of a user for one category.
	Delete(ctx context.Context, userID uuid.UUID, category string) error
}
