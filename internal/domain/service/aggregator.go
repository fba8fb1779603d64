// Package service holds pure domain computations over entities.
package service

import (
	"github.com/personal-finance/tracker-api/internal/domain/entity"
)

// Aggregate derives statistics from a set of transactions.
//
// It has no side effects, does not depend on input order, and never rounds:
// amounts are summed exactly and only formatted for output by callers.
// Category totals include expenses only, keyed by normalized category;
// monthly totals are keyed by the UTC "YYYY-MM" of the transaction date.
func Aggregate(transactions []*entity.Transaction) *entity.Statistics {
	stats := entity.NewStatistics()

	for _, txn := range transactions {
		if txn == nil {
			continue
		}

		month := stats.MonthlyTotals[txn.MonthKey()]

		switch txn.Type {
		case entity.TransactionTypeIncome:
			stats.TotalIncome = stats.TotalIncome.Add(txn.Amount)
			month.Income = month.Income.Add(txn.Amount)
		case entity.TransactionTypeExpense:
			stats.TotalExpense = stats.TotalExpense.Add(txn.Amount)
			month.Expense = month.Expense.Add(txn.Amount)

			category := entity.NormalizeCategory(txn.Category)
			stats.CategoryTotals[category] = stats.CategoryTotals[category].Add(txn.Amount)
		default:
			continue
		}

		stats.MonthlyTotals[txn.MonthKey()] = month
	}

	stats.Balance = stats.TotalIncome.Sub(stats.TotalExpense)

	return stats
}
