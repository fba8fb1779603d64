package dto

import (
	"github.com/personal-finance/tracker-api/internal/application/usecase/statistics"
	"github.com/personal-finance/tracker-api/internal/domain/service"
)

// CategoryTotalResponse represents the expense total of one category.
type CategoryTotalResponse struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
}

// StatisticsResponse represents the statistics overview.
type StatisticsResponse struct {
	TotalIncome        string                  `json:"total_income"`
	TotalExpense       string                  `json:"total_expense"`
	Balance            string                  `json:"balance"`
	CategoryTotals     []CategoryTotalResponse `json:"category_totals"`
	Chart              []ChartSliceResponse    `json:"chart"`
	RecentTransactions []TransactionResponse   `json:"recent_transactions"`
}

// MonthResponse represents the totals of one month.
type MonthResponse struct {
	Month   string `json:"month"`
	Income  string `json:"income"`
	Expense string `json:"expense"`
	Net     string `json:"net"`
}

// MonthlyTotalsResponse represents the income and expense of one month in the full map.
type MonthlyTotalsResponse struct {
	Income  string `json:"income"`
	Expense string `json:"expense"`
}

// MonthlyStatisticsResponse represents a page of months plus the full month map.
type MonthlyStatisticsResponse struct {
	Months        []MonthResponse                  `json:"months"`
	MonthlyTotals map[string]MonthlyTotalsResponse `json:"monthly_totals"`
	Page          int                              `json:"page"`
	Limit         int                              `json:"limit"`
	TotalMonths   int                              `json:"total_months"`
	HasMore       bool                             `json:"has_more"`
}

// CategoryShareResponse represents one row of the category summary.
type CategoryShareResponse struct {
	Category   string `json:"category"`
	Amount     string `json:"amount"`
	Percentage string `json:"percentage"`
}

// CategorySummaryResponse represents the category breakdown.
type CategorySummaryResponse struct {
	Categories   []CategoryShareResponse `json:"categories"`
	TotalExpense string                  `json:"total_expense"`
	Chart        []ChartSliceResponse    `json:"chart"`
	Summary      string                  `json:"summary"`
}

// ToStatisticsResponse converts the statistics overview to its response form.
func ToStatisticsResponse(output *statistics.GetStatisticsOutput) StatisticsResponse {
	totals := make([]CategoryTotalResponse, 0, len(output.CategoryTotals))
	for _, total := range output.CategoryTotals {
		totals = append(totals, CategoryTotalResponse{Category: total.Category, Amount: Money(total.Amount)})
	}

	recent := make([]TransactionResponse, 0, len(output.RecentTransactions))
	for _, txn := range output.RecentTransactions {
		recent = append(recent, ToTransactionResponseFromEntity(txn))
	}

	return StatisticsResponse{
		TotalIncome:        Money(output.TotalIncome),
		TotalExpense:       Money(output.TotalExpense),
		Balance:            Money(output.Balance),
		CategoryTotals:     totals,
		Chart:              toChartResponse(output.Chart),
		RecentTransactions: recent,
	}
}

// ToMonthlyStatisticsResponse converts the monthly statistics page to its response form.
func ToMonthlyStatisticsResponse(output *statistics.GetMonthlyStatisticsOutput) MonthlyStatisticsResponse {
	months := make([]MonthResponse, 0, len(output.Months))
	for _, month := range output.Months {
		months = append(months, toMonthResponse(month))
	}

	all := make(map[string]MonthlyTotalsResponse, len(output.AllMonths))
	for _, month := range output.AllMonths {
		all[month.Month] = MonthlyTotalsResponse{Income: Money(month.Income), Expense: Money(month.Expense)}
	}

	return MonthlyStatisticsResponse{
		Months:        months,
		MonthlyTotals: all,
		Page:          output.Page,
		Limit:         output.Limit,
		TotalMonths:   output.TotalMonths,
		HasMore:       output.HasMore,
	}
}

// ToCategorySummaryResponse converts the category breakdown to its response form.
func ToCategorySummaryResponse(output *statistics.GetCategorySummaryOutput) CategorySummaryResponse {
	rows := make([]CategoryShareResponse, 0, len(output.Categories))
	for _, row := range output.Categories {
		rows = append(rows, CategoryShareResponse{
			Category:   row.Category,
			Amount:     Money(row.Amount),
			Percentage: Money(row.Percentage),
		})
	}

	return CategorySummaryResponse{
		Categories:   rows,
		TotalExpense: Money(output.TotalExpense),
		Chart:        toChartResponse(output.Chart),
		Summary:      output.Summary,
	}
}

func toMonthResponse(month statistics.MonthOutput) MonthResponse {
	return MonthResponse{
		Month:   month.Month,
		Income:  Money(month.Income),
		Expense: Money(month.Expense),
		Net:     Money(month.Net),
	}
}

func toChartResponse(slices []service.ChartSlice) []ChartSliceResponse {
	chart := make([]ChartSliceResponse, 0, len(slices))
	for _, slice := range slices {
		chart = append(chart, ChartSliceResponse{Label: slice.Label, Weight: Money(slice.Weight)})
	}
	return chart
}
