// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/personal-finance/tracker-api/internal/application/adapter"
)

// ListCategoriesUseCase returns the distinct categories a user has recorded.
type ListCategoriesUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(transactionRepo adapter.TransactionRepository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute lists the categories in ascending order.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, userID uuid.UUID) ([]string, error) {
	categories, err := uc.transactionRepo.ListCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if categories == nil {
		categories = []string{}
	}
	return categories, nil
}
