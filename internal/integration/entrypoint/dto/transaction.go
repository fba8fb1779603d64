package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/personal-finance/tracker-api/internal/application/usecase/transaction"
	"github.com/personal-finance/tracker-api/internal/domain/entity"
)

// CreateTransactionRequest represents the request body for creating a transaction.
// Amount accepts a JSON number or decimal string; Date is YYYY-MM-DD and defaults to today.
type CreateTransactionRequest struct {
	Type        string           `json:"type" binding:"required"`
	Amount      *decimal.Decimal `json:"amount" binding:"required"`
	Category    string           `json:"category" binding:"required"`
	Description string           `json:"description"`
	Date        string           `json:"date"`
}

// UpdateTransactionRequest represents the request body for editing a transaction.
// Absent fields are left unchanged.
type UpdateTransactionRequest struct {
	Type        *string          `json:"type"`
	Amount      *decimal.Decimal `json:"amount"`
	Category    *string          `json:"category"`
	Description *string          `json:"description"`
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Amount      string    `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TransactionListResponse represents the transaction list response.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Count        int                   `json:"count"`
}

// CategoryListResponse represents the distinct categories of a user.
type CategoryListResponse struct {
	Categories []string `json:"categories"`
}

// ToTransactionResponse converts a use case transaction to its response form.
func ToTransactionResponse(output *transaction.TransactionOutput) TransactionResponse {
	return TransactionResponse{
		ID:          output.ID.String(),
		Type:        string(output.Type),
		Amount:      Money(output.Amount),
		Category:    output.Category,
		Description: output.Description,
		Date:        output.Date.Format(DateLayout),
		CreatedAt:   output.CreatedAt,
		UpdatedAt:   output.UpdatedAt,
	}
}

// ToTransactionResponseFromEntity converts a transaction entity to its response form.
func ToTransactionResponseFromEntity(txn *entity.Transaction) TransactionResponse {
	return ToTransactionResponse(transaction.NewTransactionOutput(txn))
}

// ToTransactionListResponse converts the list output to its response form.
func ToTransactionListResponse(output *transaction.ListTransactionsOutput) TransactionListResponse {
	transactions := make([]TransactionResponse, 0, len(output.Transactions))
	for _, txn := range output.Transactions {
		transactions = append(transactions, ToTransactionResponse(txn))
	}
	return TransactionListResponse{
		Transactions: transactions,
		Count:        len(transactions),
	}
}
