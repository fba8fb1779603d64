// Package entity defines the core business entities for the domain layer.
package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestBudget_Status(t *testing.T) {
	tests := []struct {
		name     string
		spent    string
		limit    string
		expected BudgetStatus
	}{
		{name: "nothing spent", spent: "0", limit: "100", expected: BudgetStatusGood},
		{name: "79.9 percent", spent: "79.9", limit: "100", expected: BudgetStatusGood},
		{name: "exactly 80 percent", spent: "80", limit: "100", expected: BudgetStatusGood},
		{name: "80.1 percent", spent: "80.1", limit: "100", expected: BudgetStatusWarning},
		{name: "exactly 100 percent", spent: "100", limit: "100", expected: BudgetStatusWarning},
		{name: "100.01 percent", spent: "100.01", limit: "100", expected: BudgetStatusOverBudget},
		{name: "125 percent", spent: "250", limit: "200", expected: BudgetStatusOverBudget},
		{name: "zero limit with spend", spent: "1", limit: "0", expected: BudgetStatusOverBudget},
		{name: "zero limit without spend", spent: "0", limit: "0", expected: BudgetStatusGood},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			budget := NewBudget(uuid.New(), "food", decimal.RequireFromString(tt.limit), true)
			budget.Spent = decimal.RequireFromString(tt.spent)

			if got := budget.Status(); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestBudget_Percentage(t *testing.T) {
	budget := NewBudget(uuid.New(), "food", decimal.NewFromInt(200), false)
	budget.Spent = decimal.NewFromInt(250)

	if got := budget.Percentage(); !got.Equal(decimal.NewFromInt(125)) {
		t.Errorf("expected 125, got %s", got)
	}

	budget.Limit = decimal.Zero
	if got := budget.Percentage(); !got.IsZero() {
		t.Errorf("expected 0 for zero limit, got %s", got)
	}
}

func TestBudget_ZeroLimitPairsZeroPercentageWithStatus(t *testing.T) {
	tests := []struct {
		name     string
		spent    string
		expected BudgetStatus
	}{
		{name: "with spend", spent: "15.50", expected: BudgetStatusOverBudget},
		{name: "without spend", spent: "0", expected: BudgetStatusGood},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			budget := NewBudget(uuid.New(), "food", decimal.Zero, false)
			budget.Spent = decimal.RequireFromString(tt.spent)

			if got := budget.Percentage(); !got.IsZero() {
				t.Errorf("expected percentage 0, got %s", got)
			}
			if got := budget.Status(); got != tt.expected {
				t.Errorf("expected status %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"Food", "food"},
		{"  Food  ", "food"},
		{"food", "food"},
		{"Eating Out", "eating out"},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := NormalizeCategory(tt.in)
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
			if again := NormalizeCategory(got); again != got {
				t.Errorf("expected idempotent result %q, got %q", got, again)
			}
		})
	}
}
