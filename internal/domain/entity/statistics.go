// Package entity defines the core business entities for the domain layer.
package entity

import (
	"sort"

	"github.com/shopspring/decimal"
)

// MonthlyTotal holds the income and expense sums of one calendar month.
type MonthlyTotal struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// Net returns income minus expense for the month.
func (m MonthlyTotal) Net() decimal.Decimal {
	return m.Income.Sub(m.Expense)
}

// Statistics is the derived summary of a user's ledger.
// It is never stored authoritatively; it can always be recomputed from transactions.
type Statistics struct {
	TotalIncome    decimal.Decimal            `json:"total_income"`
	TotalExpense   decimal.Decimal            `json:"total_expense"`
	Balance        decimal.Decimal            `json:"balance"`
	CategoryTotals map[string]decimal.Decimal `json:"category_totals"`
	MonthlyTotals  map[string]MonthlyTotal    `json:"monthly_totals"`
}

// NewStatistics returns empty statistics with zero totals and empty maps.
func NewStatistics() *Statistics {
	return &Statistics{
		TotalIncome:    decimal.Zero,
		TotalExpense:   decimal.Zero,
		Balance:        decimal.Zero,
		CategoryTotals: make(map[string]decimal.Decimal),
		MonthlyTotals:  make(map[string]MonthlyTotal),
	}
}

// SortedMonths returns the month keys in ascending chronological order.
// "YYYY-MM" keys sort chronologically when sorted lexically.
func (s *Statistics) SortedMonths() []string {
	months := make([]string, 0, len(s.MonthlyTotals))
	for month := range s.MonthlyTotals {
		months = append(months, month)
	}
	sort.Strings(months)
	return months
}

// SortedCategories returns category names by descending total, ties by name.
func (s *Statistics) SortedCategories() []string {
	categories := make([]string, 0, len(s.CategoryTotals))
	for category := range s.CategoryTotals {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		a, b := s.CategoryTotals[categories[i]], s.CategoryTotals[categories[j]]
		if !a.Equal(b) {
			return a.GreaterThan(b)
		}
		return categories[i] < categories[j]
	})
	return categories
}
