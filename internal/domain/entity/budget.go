// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetStatus classifies how much of a budget limit has been spent.
type BudgetStatus string

const (
	BudgetStatusGood       BudgetStatus = "good"
	BudgetStatusWarning    BudgetStatus = "warning"
	BudgetStatusOverBudget BudgetStatus = "over-budget"
)

// BudgetWarningThreshold is the spent percentage above which a budget is in warning.
const BudgetWarningThreshold = 80

var hundred = decimal.NewFromInt(100)

// Budget is a spending limit for one category of one user.
// Spent is a projection of the user's expense ledger for that category.
type Budget struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Category      string
	Limit         decimal.Decimal
	Spent         decimal.Decimal
	AlertOnExceed bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewBudget creates a new Budget with zero spent.
func NewBudget(userID uuid.UUID, category string, limit decimal.Decimal, alertOnExceed bool) *Budget {
	now := time.Now().UTC()
	return &Budget{
		ID:            uuid.New(),
		UserID:        userID,
		Category:      NormalizeCategory(category),
		Limit:         limit,
		Spent:         decimal.Zero,
		AlertOnExceed: alertOnExceed,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Percentage returns spent / limit * 100.
//
// A non-positive limit has no meaningful ratio and yields zero. For such a
// budget Status carries the signal: a zero limit with any spending reports
// 0 alongside over-budget, so callers must read status, not percentage.
func (b *Budget) Percentage() decimal.Decimal {
	if b.Limit.Sign() <= 0 {
		return decimal.Zero
	}
	return b.Spent.Mul(hundred).Div(b.Limit)
}

// IsOverBudget reports whether spending exceeds the limit.
func (b *Budget) IsOverBudget() bool {
	return b.Spent.GreaterThan(b.Limit)
}

// Status classifies the budget:
// good up to 80% inclusive, warning above 80% up to 100% inclusive,
// over-budget above 100%.
func (b *Budget) Status() BudgetStatus {
	if b.Limit.Sign() <= 0 {
		if b.Spent.Sign() > 0 {
			return BudgetStatusOverBudget
		}
		return BudgetStatusGood
	}

	// Compared as spent*100 against limit*threshold to avoid division rounding.
	switch {
	case b.IsOverBudget():
		return BudgetStatusOverBudget
	case b.Spent.Mul(hundred).GreaterThan(b.Limit.Mul(decimal.NewFromInt(BudgetWarningThreshold))):
		return BudgetStatusWarning
	default:
		return BudgetStatusGood
	}
}
