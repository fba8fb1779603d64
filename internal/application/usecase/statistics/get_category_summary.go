// Package statistics contains statistics-related use cases.
package statistics

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-finance/tracker-api/internal/domain/service"
)

var hundred = decimal.NewFromInt(100)

// CategoryShareOutput represents one category's expense total and share of all expenses.
type CategoryShareOutput struct {
	Category   string
	Amount     decimal.Decimal
	Percentage decimal.Decimal
}

// GetCategorySummaryInput represents the input for the category summary.
type GetCategorySummaryInput struct {
	UserID uuid.UUID
}

// GetCategorySummaryOutput represents the category breakdown of a user's expenses.
type GetCategorySummaryOutput struct {
	Categories   []CategoryShareOutput
	TotalExpense decimal.Decimal
	Chart        []service.ChartSlice
	Summary      string
}

// GetCategorySummaryUseCase handles the category breakdown.
type GetCategorySummaryUseCase struct {
	loader *SnapshotLoader
}

// NewGetCategorySummaryUseCase creates a new GetCategorySummaryUseCase instance.
func NewGetCategorySummaryUseCase(loader *SnapshotLoader) *GetCategorySummaryUseCase {
	return &GetCategorySummaryUseCase{
		loader: loader,
	}
}

// Execute returns every expense category, largest first.
func (uc *GetCategorySummaryUseCase) Execute(ctx context.Context, input GetCategorySummaryInput) (*GetCategorySummaryOutput, error) {
	stats, err := uc.loader.Load(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	output := &GetCategorySummaryOutput{
		Categories:   make([]CategoryShareOutput, 0, len(stats.CategoryTotals)),
		TotalExpense: stats.TotalExpense,
		Chart:        service.CategoryChart(stats),
		Summary:      service.CategorySummary(stats),
	}

	for _, category := range stats.SortedCategories() {
		amount := stats.CategoryTotals[category]
		percentage := decimal.Zero
		if stats.TotalExpense.IsPositive() {
			percentage = amount.Mul(hundred).Div(stats.TotalExpense)
		}
		output.Categories = append(output.Categories, CategoryShareOutput{
			Category:   category,
			Amount:     amount,
			Percentage: percentage,
		})
	}

	return output, nil
}
