// Package transaction contains transaction-related use cases.
package transaction

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/personal-finance/tracker-api/internal/application/adapter"
)

// ExportFilename is the suggested download name of the CSV export.
const ExportFilename = "transactions.csv"

var exportHeader = []string{"Date", "Type", "Category", "Description", "Amount"}

// ExportTransactionsOutput represents the output of a CSV export.
type ExportTransactionsOutput struct {
	Filename string
	Content  []byte
	Rows     int
}

// ExportTransactionsUseCase renders a user's transactions as CSV.
type ExportTransactionsUseCase struct {
	list *ListTransactionsUseCase
}

// NewExportTransactionsUseCase creates a new ExportTransactionsUseCase instance.
func NewExportTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ExportTransactionsUseCase {
	return &ExportTransactionsUseCase{
		list: NewListTransactionsUseCase(transactionRepo),
	}
}

// Execute exports the transactions matching the filters, newest first.
// Dates are rendered as YYYY-MM-DD and amounts with two decimals.
func (uc *ExportTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ExportTransactionsOutput, error) {
	transactions, err := uc.list.find(ctx, input)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(exportHeader); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, transaction := range transactions {
		record := []string{
			transaction.Date.UTC().Format("2006-01-02"),
			string(transaction.Type),
			transaction.Category,
			transaction.Description,
			transaction.Amount.StringFixed(2),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	return &ExportTransactionsOutput{
		Filename: ExportFilename,
		Content:  buf.Bytes(),
		Rows:     len(transactions),
	}, nil
}
