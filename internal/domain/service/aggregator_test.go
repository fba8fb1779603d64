// Package service holds pure domain computations over entities.
package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-finance/tracker-api/internal/domain/entity"
)

func newTxn(t entity.TransactionType, amount string, category string, date time.Time) *entity.Transaction {
	return entity.NewTransaction(uuid.Nil, t, decimal.RequireFromString(amount), category, "", date)
}

func TestAggregate_Scenario(t *testing.T) {
	day := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	transactions := []*entity.Transaction{
		newTxn(entity.TransactionTypeIncome, "1000", "salary", day),
		newTxn(entity.TransactionTypeExpense, "200", "food", day),
		newTxn(entity.TransactionTypeExpense, "50", "Food ", day),
		newTxn(entity.TransactionTypeExpense, "100", "transport", day),
	}

	stats := Aggregate(transactions)

	checks := []struct {
		name     string
		got      decimal.Decimal
		expected string
	}{
		{"total income", stats.TotalIncome, "1000"},
		{"total expense", stats.TotalExpense, "350"},
		{"balance", stats.Balance, "650"},
		{"food", stats.CategoryTotals["food"], "250"},
		{"transport", stats.CategoryTotals["transport"], "100"},
		{"month income", stats.MonthlyTotals["2024-03"].Income, "1000"},
		{"month expense", stats.MonthlyTotals["2024-03"].Expense, "350"},
	}
	for _, c := range checks {
		t.Run(c.name, func(t *testing.T) {
			if !c.got.Equal(decimal.RequireFromString(c.expected)) {
				t.Errorf("expected %s, got %s", c.expected, c.got)
			}
		})
	}

	if len(stats.CategoryTotals) != 2 {
		t.Errorf("expected 2 categories, got %d", len(stats.CategoryTotals))
	}
	if _, ok := stats.CategoryTotals["salary"]; ok {
		t.Error("expected income category to be absent from category totals")
	}
}

func TestAggregate_Empty(t *testing.T) {
	stats := Aggregate(nil)

	if !stats.TotalIncome.IsZero() || !stats.TotalExpense.IsZero() || !stats.Balance.IsZero() {
		t.Errorf("expected zero totals, got %s/%s/%s", stats.TotalIncome, stats.TotalExpense, stats.Balance)
	}
	if len(stats.CategoryTotals) != 0 {
		t.Errorf("expected empty category totals, got %v", stats.CategoryTotals)
	}
	if len(stats.MonthlyTotals) != 0 {
		t.Errorf("expected empty monthly totals, got %v", stats.MonthlyTotals)
	}
}

func TestAggregate_OrderIndependentAndIdempotent(t *testing.T) {
	transactions := []*entity.Transaction{
		newTxn(entity.TransactionTypeIncome, "10.10", "salary", time.Date(2024, 1, 31, 23, 0, 0, 0, time.UTC)),
		newTxn(entity.TransactionTypeExpense, "0.10", "coffee", time.Date(2024, 2, 1, 0, 30, 0, 0, time.UTC)),
		newTxn(entity.TransactionTypeExpense, "0.20", "coffee", time.Date(2023, 12, 5, 0, 0, 0, 0, time.UTC)),
		newTxn(entity.TransactionTypeIncome, "3.33", "gift", time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC)),
	}
	reversed := make([]*entity.Transaction, len(transactions))
	for i, txn := range transactions {
		reversed[len(transactions)-1-i] = txn
	}

	first := Aggregate(transactions)
	second := Aggregate(reversed)
	third := Aggregate(transactions)

	for _, other := range []*entity.Statistics{second, third} {
		if !first.Balance.Equal(other.Balance) {
			t.Errorf("expected balance %s, got %s", first.Balance, other.Balance)
		}
		if !first.CategoryTotals["coffee"].Equal(other.CategoryTotals["coffee"]) {
			t.Errorf("expected coffee %s, got %s", first.CategoryTotals["coffee"], other.CategoryTotals["coffee"])
		}
		if len(first.MonthlyTotals) != len(other.MonthlyTotals) {
			t.Errorf("expected %d months, got %d", len(first.MonthlyTotals), len(other.MonthlyTotals))
		}
	}

	// No rounding during accumulation.
	if !first.CategoryTotals["coffee"].Equal(decimal.RequireFromString("0.3")) {
		t.Errorf("expected exact 0.3, got %s", first.CategoryTotals["coffee"])
	}
}

func TestAggregate_InvariantsHold(t *testing.T) {
	var transactions []*entity.Transaction
	for i := 0; i < 40; i++ {
		txnType := entity.TransactionTypeExpense
		if i%3 == 0 {
			txnType = entity.TransactionTypeIncome
		}
		date := time.Date(2023, time.Month(i%12+1), i%27+1, 0, 0, 0, 0, time.UTC)
		amount := decimal.NewFromInt(int64(i*7 + 1)).Div(decimal.NewFromInt(4))
		transactions = append(transactions, entity.NewTransaction(uuid.Nil, txnType, amount, []string{"a", "B", " c "}[i%3], "", date))
	}

	stats := Aggregate(transactions)

	if !stats.Balance.Equal(stats.TotalIncome.Sub(stats.TotalExpense)) {
		t.Error("expected balance to equal income minus expense")
	}

	categorySum := decimal.Zero
	for _, amount := range stats.CategoryTotals {
		categorySum = categorySum.Add(amount)
	}
	if !categorySum.Equal(stats.TotalExpense) {
		t.Errorf("expected category sum %s to equal total expense %s", categorySum, stats.TotalExpense)
	}

	income, expense := decimal.Zero, decimal.Zero
	for _, month := range stats.MonthlyTotals {
		income = income.Add(month.Income)
		expense = expense.Add(month.Expense)
	}
	if !income.Equal(stats.TotalIncome) || !expense.Equal(stats.TotalExpense) {
		t.Errorf("expected monthly sums %s/%s to equal totals %s/%s", income, expense, stats.TotalIncome, stats.TotalExpense)
	}
}

func TestAggregate_MonthKeyUsesUTC(t *testing.T) {
	zone := time.FixedZone("UTC-5", -5*60*60)
	// 2024-01-31 22:00 at UTC-5 is 2024-02-01 03:00 UTC.
	txn := newTxn(entity.TransactionTypeExpense, "5", "food", time.Date(2024, 1, 31, 22, 0, 0, 0, zone))

	stats := Aggregate([]*entity.Transaction{txn})

	if _, ok := stats.MonthlyTotals["2024-02"]; !ok {
		t.Errorf("expected bucket 2024-02, got %v", stats.SortedMonths())
	}
}

func TestStatistics_SortedMonths(t *testing.T) {
	stats := Aggregate([]*entity.Transaction{
		newTxn(entity.TransactionTypeExpense, "1", "x", time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)),
		newTxn(entity.TransactionTypeExpense, "1", "x", time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)),
		newTxn(entity.TransactionTypeIncome, "1", "x", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)),
	})

	months := stats.SortedMonths()
	expected := []string{"2023-02", "2024-02", "2024-11"}
	if len(months) != len(expected) {
		t.Fatalf("expected %d months, got %d", len(expected), len(months))
	}
	for i := range expected {
		if months[i] != expected[i] {
			t.Errorf("expected month %d to be %s, got %s", i, expected[i], months[i])
		}
	}
}
