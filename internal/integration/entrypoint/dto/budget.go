package dto

import (
	"github.com/shopspring/decimal"

	"github.com/personal-finance/tracker-api/internal/application/usecase/budget"
	"github.com/personal-finance/tracker-api/internal/application/usecase/insight"
)

// SetBudgetRequest represents the request body for creating or updating a budget.
type SetBudgetRequest struct {
	Category      string           `json:"category" binding:"required"`
	Limit         *decimal.Decimal `json:"limit" binding:"required"`
	AlertOnExceed bool             `json:"alert_on_exceed"`
}

// BudgetResponse represents a budget with its derived status.
type BudgetResponse struct {
	ID            string `json:"id"`
	Category      string `json:"category"`
	Limit         string `json:"limit"`
	Spent         string `json:"spent"`
	Remaining     string `json:"remaining"`
	Percentage    string `json:"percentage"`
	Status        string `json:"status"`
	AlertOnExceed bool   `json:"alert_on_exceed"`
}

// BudgetListResponse represents the budget list response.
type BudgetListResponse struct {
	Budgets []BudgetResponse `json:"budgets"`
}

// InsightRequest represents the request body for an insight.
// An empty summary is built from the user's own category totals.
type InsightRequest struct {
	Summary string `json:"summary"`
}

// InsightResponse represents the insight answer.
type InsightResponse struct {
	Insight  string `json:"insight"`
	Summary  string `json:"summary"`
	Fallback bool   `json:"fallback"`
}

// ToBudgetResponse converts a budget output to its response form.
func ToBudgetResponse(output *budget.BudgetOutput) BudgetResponse {
	return BudgetResponse{
		ID:            output.ID.String(),
		Category:      output.Category,
		Limit:         Money(output.Limit),
		Spent:         Money(output.Spent),
		Remaining:     Money(output.Remaining),
		Percentage:    Money(output.Percentage),
		Status:        string(output.Status),
		AlertOnExceed: output.AlertOnExceed,
	}
}

// ToBudgetListResponse converts the budget list to its response form.
func ToBudgetListResponse(output *budget.ListBudgetsOutput) BudgetListResponse {
	budgets := make([]BudgetResponse, 0, len(output.Budgets))
	for _, b := range output.Budgets {
		budgets = append(budgets, ToBudgetResponse(b))
	}
	return BudgetListResponse{Budgets: budgets}
}

// ToInsightResponse converts the insight output to its response form.
func ToInsightResponse(output *insight.GetInsightOutput) InsightResponse {
	return InsightResponse{
		Insight:  output.Insight.Text,
		Summary:  output.Insight.Summary,
		Fallback: output.Insight.Fallback,
	}
}
