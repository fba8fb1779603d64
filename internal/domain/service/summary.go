// Package service holds pure domain computations over entities.
package service

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/personal-finance/tracker-api/internal/domain/entity"
)

// InsightPromptPrefix is the fixed instruction placed before the category summary.
const InsightPromptPrefix = "Give me a short, actionable budget insight based on this data: "

// NoDataLabel labels the placeholder slice of an empty category chart.
const NoDataLabel = "No data"

// ChartSlice is one weighted slice of the category share chart.
type ChartSlice struct {
	Label  string
	Weight decimal.Decimal
}

// CategorySummary renders category totals as "food: $250.00, transport: $100.00",
// largest spend first. It returns an empty string when there are no expenses.
func CategorySummary(stats *entity.Statistics) string {
	if stats == nil || len(stats.CategoryTotals) == 0 {
		return ""
	}

	parts := make([]string, 0, len(stats.CategoryTotals))
	for _, category := range stats.SortedCategories() {
		parts = append(parts, fmt.Sprintf("%s: $%s", category, stats.CategoryTotals[category].StringFixed(2)))
	}
	return strings.Join(parts, ", ")
}

// InsightPrompt embeds a category summary in the insight instruction.
func InsightPrompt(summary string) string {
	return InsightPromptPrefix + summary
}

// CategoryChart returns the category share chart slices.
// An empty category map yields a single "No data" slice of weight 1 so that
// the chart is never rendered empty.
func CategoryChart(stats *entity.Statistics) []ChartSlice {
	if stats == nil || len(stats.CategoryTotals) == 0 {
		return []ChartSlice{{Label: NoDataLabel, Weight: decimal.NewFromInt(1)}}
	}

	slices := make([]ChartSlice, 0, len(stats.CategoryTotals))
	for _, category := range stats.SortedCategories() {
		slices = append(slices, ChartSlice{Label: category, Weight: stats.CategoryTotals[category]})
	}
	return slices
}
