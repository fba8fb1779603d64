// Package service holds pure domain computations over entities.
package service

import (
	"testing"
	"time"

	"github.com/personal-finance/tracker-api/internal/domain/entity"
)

func TestCategorySummary(t *testing.T) {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	stats := Aggregate([]*entity.Transaction{
		newTxn(entity.TransactionTypeExpense, "100", "transport", day),
		newTxn(entity.TransactionTypeExpense, "250", "food", day),
		newTxn(entity.TransactionTypeIncome, "1000", "salary", day),
	})

	got := CategorySummary(stats)
	expected := "food: $250.00, transport: $100.00"
	if got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}

	if summary := CategorySummary(entity.NewStatistics()); summary != "" {
		t.Errorf("expected empty summary, got %q", summary)
	}
}

func TestInsightPrompt(t *testing.T) {
	got := InsightPrompt("food: $250.00")
	expected := "Give me a short, actionable budget insight based on this data: food: $250.00"
	if got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestCategoryChart(t *testing.T) {
	t.Run("empty statistics use placeholder slice", func(t *testing.T) {
		slices := CategoryChart(Aggregate(nil))
		if len(slices) != 1 {
			t.Fatalf("expected 1 slice, got %d", len(slices))
		}
		if slices[0].Label != NoDataLabel || slices[0].Weight.IntPart() != 1 {
			t.Errorf("expected placeholder slice, got %+v", slices[0])
		}
	})

	t.Run("income only still uses placeholder", func(t *testing.T) {
		stats := Aggregate([]*entity.Transaction{
			newTxn(entity.TransactionTypeIncome, "10", "salary", time.Now()),
		})
		slices := CategoryChart(stats)
		if len(slices) != 1 || slices[0].Label != NoDataLabel {
			t.Errorf("expected placeholder slice, got %+v", slices)
		}
	})

	t.Run("slices ordered by amount", func(t *testing.T) {
		stats := Aggregate([]*entity.Transaction{
			newTxn(entity.TransactionTypeExpense, "5", "books", time.Now()),
			newTxn(entity.TransactionTypeExpense, "50", "rent", time.Now()),
		})
		slices := CategoryChart(stats)
		if len(slices) != 2 {
			t.Fatalf("expected 2 slices, got %d", len(slices))
		}
		if slices[0].Label != "rent" || slices[1].Label != "books" {
			t.Errorf("expected rent then books, got %s then %s", slices[0].Label, slices[1].Label)
		}
	})
}
