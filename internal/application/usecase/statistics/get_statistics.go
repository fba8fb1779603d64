// Package statistics contains statistics-related use cases.
package statistics

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-finance/tracker-api/internal/application/adapter"
	"github.com/personal-finance/tracker-api/internal/domain/entity"
	"github.com/personal-finance/tracker-api/internal/domain/service"
)

// RecentTransactionsLimit is the number of newest transactions returned with the statistics.
const RecentTransactionsLimit = 5

// CategoryTotalOutput represents the expense total of one category.
type CategoryTotalOutput struct {
	Category string
	Amount   decimal.Decimal
}

// GetStatisticsInput represents the input for fetching statistics.
type GetStatisticsInput struct {
	UserID uuid.UUID
}

// GetStatisticsOutput represents the statistics overview of a user.
type GetStatisticsOutput struct {
	TotalIncome        decimal.Decimal
	TotalExpense       decimal.Decimal
	Balance            decimal.Decimal
	CategoryTotals     []CategoryTotalOutput // Largest first
	Chart              []service.ChartSlice
	RecentTransactions []*entity.Transaction
}

// GetStatisticsUseCase handles the statistics overview.
type GetStatisticsUseCase struct {
	loader          *SnapshotLoader
	transactionRepo adapter.TransactionRepository
}

// NewGetStatisticsUseCase creates a new GetStatisticsUseCase instance.
func NewGetStatisticsUseCase(loader *SnapshotLoader, transactionRepo adapter.TransactionRepository) *GetStatisticsUseCase {
	return &GetStatisticsUseCase{
		loader:          loader,
		transactionRepo: transactionRepo,
	}
}

// Execute computes totals, category totals and the newest transactions of the user.
func (uc *GetStatisticsUseCase) Execute(ctx context.Context, input GetStatisticsInput) (*GetStatisticsOutput, error) {
	stats, err := uc.loader.Load(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	recent, err := uc.transactionRepo.FindRecent(ctx, input.UserID, RecentTransactionsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent transactions: %w", err)
	}

	return &GetStatisticsOutput{
		TotalIncome:        stats.TotalIncome,
		TotalExpense:       stats.TotalExpense,
		Balance:            stats.Balance,
		CategoryTotals:     categoryTotals(stats),
		Chart:              service.CategoryChart(stats),
		RecentTransactions: recent,
	}, nil
}

func categoryTotals(stats *entity.Statistics) []CategoryTotalOutput {
	totals := make([]CategoryTotalOutput, 0, len(stats.CategoryTotals))
	for _, category := range stats.SortedCategories() {
		totals = append(totals, CategoryTotalOutput{
			Category: category,
			Amount:   stats.CategoryTotals[category],
		})
	}
	return totals
}
