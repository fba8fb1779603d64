// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// IsValid reports whether the type is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeExpense || t == TransactionTypeIncome
}

// NormalizeCategory returns the canonical form a category is stored and grouped by.
func NormalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

// MaxAmountIntegerDigits is how many integer digits a stored amount may carry (decimal(15,2)).
const MaxAmountIntegerDigits = 13

// amountCeiling is the smallest value that no longer fits the amount columns.
var amountCeiling = decimal.New(1, MaxAmountIntegerDigits)

// AmountFits reports whether amount fits the amount columns without overflow.
func AmountFits(amount decimal.Decimal) bool {
	return amount.Abs().LessThan(amountCeiling)
}

// MonthKeyLayout is the layout of the calendar month bucket key ("YYYY-MM").
const MonthKeyLayout = "2006-01"

// Transaction represents a single income or expense record owned by one user.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Type        TransactionType
	Amount      decimal.Decimal // Always non-negative; direction is given by Type
	Category    string          // Stored in canonical (normalized) form
	Description string
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTransaction creates a new Transaction entity.
// A zero date defaults to the creation time. The category is normalized.
func NewTransaction(
	userID uuid.UUID,
	transactionType TransactionType,
	amount decimal.Decimal,
	category string,
	description string,
	date time.Time,
) *Transaction {
	now := time.Now().UTC()
	if date.IsZero() {
		date = now
	}

	return &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        transactionType,
		Amount:      amount,
		Category:    NormalizeCategory(category),
		Description: description,
		Date:        date.UTC(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsExpense reports whether the transaction is an expense.
func (t *Transaction) IsExpense() bool {
	return t.Type == TransactionTypeExpense
}

// MonthKey returns the UTC calendar month bucket of the transaction date.
func (t *Transaction) MonthKey() string {
	return t.Date.UTC().Format(MonthKeyLayout)
}
