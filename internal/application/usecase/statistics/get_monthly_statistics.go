// Package statistics contains statistics-related use cases.
package statistics

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/personal-finance/tracker-api/internal/domain/error"
)

const (
	// DefaultMonthsPerPage is the number of months shown per page.
	DefaultMonthsPerPage = 6
	// MaxMonthsPerPage bounds the page size.
	MaxMonthsPerPage = 120
)

// MonthOutput represents the totals of one calendar month.
type MonthOutput struct {
	Month   string // YYYY-MM
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
}

// GetMonthlyStatisticsInput represents the input for fetching monthly statistics.
// Zero Page and Limit select the defaults.
type GetMonthlyStatisticsInput struct {
	UserID uuid.UUID
	Page   int
	Limit  int
}

// GetMonthlyStatisticsOutput represents a page of months in chronological order.
type GetMonthlyStatisticsOutput struct {
	Months      []MonthOutput
	AllMonths   []MonthOutput
	Page        int
	Limit       int
	TotalMonths int
	HasMore     bool
}

// GetMonthlyStatisticsUseCase handles monthly statistics.
type GetMonthlyStatisticsUseCase struct {
	loader *SnapshotLoader
}

// NewGetMonthlyStatisticsUseCase creates a new GetMonthlyStatisticsUseCase instance.
func NewGetMonthlyStatisticsUseCase(loader *SnapshotLoader) *GetMonthlyStatisticsUseCase {
	return &GetMonthlyStatisticsUseCase{
		loader: loader,
	}
}

// Execute returns the requested page of months, oldest first.
func (uc *GetMonthlyStatisticsUseCase) Execute(ctx context.Context, input GetMonthlyStatisticsInput) (*GetMonthlyStatisticsOutput, error) {
	page, limit, err := normalizePaging(input.Page, input.Limit)
	if err != nil {
		return nil, err
	}

	stats, err := uc.loader.Load(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	all := make([]MonthOutput, 0, len(stats.MonthlyTotals))
	for _, month := range stats.SortedMonths() {
		totals := stats.MonthlyTotals[month]
		all = append(all, MonthOutput{
			Month:   month,
			Income:  totals.Income,
			Expense: totals.Expense,
			Net:     totals.Net(),
		})
	}

	start := (page - 1) * limit
	end := start + limit
	if start > len(all) {
		start = len(all)
	}
	if end > len(all) {
		end = len(all)
	}

	return &GetMonthlyStatisticsOutput{
		Months:      all[start:end],
		AllMonths:   all,
		Page:        page,
		Limit:       limit,
		TotalMonths: len(all),
		HasMore:     end < len(all),
	}, nil
}

func normalizePaging(page, limit int) (int, int, error) {
	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = DefaultMonthsPerPage
	}

	if page < 1 {
		return 0, 0, domainerror.NewStatisticsError(
			domainerror.ErrCodeInvalidPage,
			"page must be a positive number",
			domainerror.ErrInvalidPage,
		)
	}
	if limit < 1 || limit > MaxMonthsPerPage {
		return 0, 0, domainerror.NewStatisticsError(
			domainerror.ErrCodeInvalidPageSize,
			fmt.Sprintf("limit must be between 1 and %d", MaxMonthsPerPage),
			domainerror.ErrInvalidPageSize,
		)
	}
	return page, limit, nil
}
